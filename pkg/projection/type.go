package projection

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// Type describes one concrete entity type: the server type projection it
// is read through, the class its properties belong to, and the factory
// that wraps a Projection into T.
type Type[T Entity] struct {
	Name         string
	ProjectionID uuid.UUID
	ClassID      uuid.UUID
	New          func(*Projection) T
}

// Wrap returns p as T.
func (t Type[T]) Wrap(p *Projection) T {
	return t.New(p)
}

// Info returns the untyped descriptor for t.
func (t Type[T]) Info() TypeInfo {
	return TypeInfo{
		Name:         t.Name,
		ProjectionID: t.ProjectionID,
		ClassID:      t.ClassID,
		wrap:         func(p *Projection) Entity { return t.New(p) },
	}
}

// TypeInfo is the registry entry for an entity type.
type TypeInfo struct {
	Name         string
	ProjectionID uuid.UUID
	ClassID      uuid.UUID
	wrap         func(*Projection) Entity
}

// Wrap returns p as the registered entity type.
func (ti TypeInfo) Wrap(p *Projection) Entity {
	if ti.wrap == nil {
		return p
	}
	return ti.wrap(p)
}

var registry = struct {
	sync.RWMutex
	byName map[string]TypeInfo
}{byName: make(map[string]TypeInfo)}

// Register adds t to the type registry and returns it. Entity packages call
// Register once per type from a package-level var. It panics when t has no
// name or factory, or the name is already taken.
func Register[T Entity](t Type[T]) Type[T] {
	if t.Name == "" || t.New == nil {
		panic("projection: Register requires a name and a factory")
	}
	key := strings.ToLower(t.Name)
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.byName[key]; dup {
		panic("projection: Register called twice for type " + t.Name)
	}
	registry.byName[key] = t.Info()
	return t
}

// Lookup finds a registered type by name, ignoring case.
func Lookup(name string) (TypeInfo, error) {
	registry.RLock()
	defer registry.RUnlock()
	ti, ok := registry.byName[strings.ToLower(name)]
	if !ok {
		return TypeInfo{}, fmt.Errorf("%w: %q", types.ErrUnknownType, name)
	}
	return ti, nil
}

// Types returns every registered type ordered by name.
func Types() []TypeInfo {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]TypeInfo, 0, len(registry.byName))
	for _, ti := range registry.byName {
		out = append(out, ti)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
