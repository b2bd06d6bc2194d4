package projection

import (
	"iter"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// RelatedList is a live view over a one-to-many relationship field of an
// owning projection. Reads and writes go straight to the owner's current
// record; the list holds no state of its own. Elements are returned as
// read-only T.
//
// Add, Remove and Contains identify elements by BaseId when both sides
// have one, then by FullName when both sides have one, and otherwise by
// structural record equality.
type RelatedList[T Entity] struct {
	owner      *Projection
	field      string
	publicName string
	wrap       func(*Projection) T
}

// NewRelatedList returns the view over field of owner. For a writable owner
// an absent field is materialized as an empty list so later writes through
// any view of the same owner are visible to each other.
func NewRelatedList[T Entity](owner *Projection, field string, wrap func(*Projection) T, publicName ...string) *RelatedList[T] {
	l := &RelatedList[T]{owner: owner, field: field, wrap: wrap}
	if len(publicName) > 0 {
		l.publicName = publicName[0]
	}
	if !owner.readOnly {
		l.backing()
	}
	return l
}

// items returns the current elements without materializing anything.
func (l *RelatedList[T]) items() []types.Value {
	v, _ := l.owner.current.Get(l.field)
	return v.Items()
}

// backing returns the elements, first storing an empty list in the owner
// when the field is absent or not a list.
func (l *RelatedList[T]) backing() []types.Value {
	v, ok := l.owner.current.Get(l.field)
	if !ok || v.Kind() != types.KindList {
		l.owner.current.Set(l.field, types.List())
		return nil
	}
	return v.Items()
}

// Len returns the number of elements.
func (l *RelatedList[T]) Len() int {
	return len(l.items())
}

// At returns element i as a read-only T. It panics when i is out of range.
func (l *RelatedList[T]) At(i int) T {
	return l.wrap(readOnly(l.items()[i].Record()))
}

// Items returns a snapshot of the elements.
func (l *RelatedList[T]) Items() []T {
	return GetRelatedList(l.owner, l.field, l.wrap)
}

// All iterates the elements in order. The backing slice is read once, so
// the sequence is stable for the duration of one iteration.
func (l *RelatedList[T]) All() iter.Seq2[int, T] {
	items := l.items()
	return func(yield func(int, T) bool) {
		for i, item := range items {
			rec := item.Record()
			if rec == nil {
				continue
			}
			if !yield(i, l.wrap(readOnly(rec))) {
				return
			}
		}
	}
}

// Contains reports whether an element identical to item is present.
func (l *RelatedList[T]) Contains(item T) bool {
	return l.indexOf(item.Base().current) >= 0
}

// Add appends a copy of item's current record. Adding an item that is
// already present is a no-op. Returns ErrReadOnly for a read-only owner.
func (l *RelatedList[T]) Add(item T) error {
	if l.owner.readOnly {
		return readOnlyError(l.field)
	}
	rec := item.Base().current
	if l.indexOf(rec) >= 0 {
		return nil
	}
	items := l.backing()
	next := make([]types.Value, len(items), len(items)+1)
	copy(next, items)
	next = append(next, types.Nested(rec.Clone()))
	l.owner.current.Set(l.field, types.List(next...))
	l.owner.touch(l.field, []string{l.publicName})
	return nil
}

// Remove deletes the first element identical to item and reports whether
// one was removed. Returns ErrReadOnly for a read-only owner.
func (l *RelatedList[T]) Remove(item T) (bool, error) {
	if l.owner.readOnly {
		return false, readOnlyError(l.field)
	}
	i := l.indexOf(item.Base().current)
	if i < 0 {
		return false, nil
	}
	items := l.items()
	next := make([]types.Value, 0, len(items)-1)
	next = append(next, items[:i]...)
	next = append(next, items[i+1:]...)
	l.owner.current.Set(l.field, types.List(next...))
	l.owner.touch(l.field, []string{l.publicName})
	return true, nil
}

func (l *RelatedList[T]) indexOf(rec *types.Record) int {
	for i, item := range l.items() {
		if other := item.Record(); other != nil && sameObject(other, rec) {
			return i
		}
	}
	return -1
}

// sameObject applies the relationship identity rule.
func sameObject(a, b *types.Record) bool {
	aID, bID := a.Text(FieldBaseID), b.Text(FieldBaseID)
	if aID != "" && bID != "" {
		return aID == bID || types.SameGUID(aID, bID)
	}
	aName, bName := a.Text(FieldFullName), b.Text(FieldFullName)
	if aName != "" && bName != "" {
		return aName == bName
	}
	return a.Equal(b)
}
