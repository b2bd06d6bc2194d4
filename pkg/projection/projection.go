// Package projection implements the typed, change-tracked object layer over
// schema-less portal records.
//
// A Projection holds two Record snapshots: current, which accessors read and
// write, and original, the state last loaded from or saved to the server.
// Concrete entity types embed *Projection and declare their properties as
// calls to the package-level accessors (GetPrimitive, SetEnumeration,
// GetRelated, ...).
//
// A Projection is not safe for concurrent mutation; callers serialize
// access to one instance themselves.
package projection

import (
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Well-known wire fields used for identity.
const (
	FieldBaseID      = "BaseId"
	FieldFullName    = "FullName"
	FieldDisplayName = "DisplayName"
	FieldClassTypeID = "ClassTypeId"
)

// Change records one successful mutation. Property is the public property
// name reported to callers; Field is the wire field that was written.
type Change struct {
	Property string
	Field    string
}

// Projection is the change-tracked facade over a pair of records.
type Projection struct {
	current  *types.Record
	original *types.Record
	dirty    bool
	readOnly bool
	changes  []Change
}

// Entity is implemented by every concrete type declared over a Projection.
// Embedding *Projection satisfies it.
type Entity interface {
	Base() *Projection
}

// New returns a writable projection over rec with no original snapshot, the
// state of an object instantiated from a template and not yet committed.
func New(rec *types.Record) *Projection {
	if rec == nil {
		rec = types.NewRecord()
	}
	return &Projection{current: rec}
}

// Load returns a writable projection for a record read from the server.
// original starts as an independent copy of current.
func Load(rec *types.Record) *Projection {
	p := New(rec)
	p.original = p.current.Clone()
	return p
}

// readOnly returns a read-only projection over a copy of rec. Nested
// relationship values are always exposed this way.
func readOnly(rec *types.Record) *Projection {
	return &Projection{current: rec.Clone(), readOnly: true}
}

// Base returns p. It lets entity types that embed *Projection satisfy Entity.
func (p *Projection) Base() *Projection { return p }

// Current returns the live current record. Mutating it directly bypasses
// read-only checks and change tracking.
func (p *Projection) Current() *types.Record { return p.current }

// Original returns the original snapshot, or nil for unsaved objects.
func (p *Projection) Original() *types.Record { return p.original }

// IsDirty reports whether a mutation happened since load or last commit.
func (p *Projection) IsDirty() bool { return p.dirty }

// IsReadOnly reports whether mutating accessors are rejected.
func (p *Projection) IsReadOnly() bool { return p.readOnly }

// IsNew reports whether the object has never been committed.
func (p *Projection) IsNew() bool { return p.original == nil }

// Changes returns the pending mutations in the order they happened.
func (p *Projection) Changes() []Change {
	out := make([]Change, len(p.changes))
	copy(out, p.changes)
	return out
}

// Diff returns the fields whose current value differs from original. For a
// new object every current field is reported.
func (p *Projection) Diff() []string {
	if p.original == nil {
		return p.current.Keys()
	}
	return p.original.Diff(p.current)
}

// BaseID returns the server object id, or "" before the first commit.
func (p *Projection) BaseID() string { return p.current.Text(FieldBaseID) }

// FullName returns the server's fully qualified object name.
func (p *Projection) FullName() string { return p.current.Text(FieldFullName) }

// DisplayName returns the object's display name.
func (p *Projection) DisplayName() string { return p.current.Text(FieldDisplayName) }

// MarkCommitted records a successful commit: a server-assigned baseID is
// written into current, original is captured if this was a creation, and
// the dirty flag and pending changes are cleared.
func (p *Projection) MarkCommitted(baseID string) {
	if baseID != "" {
		p.current.Set(FieldBaseID, types.String(baseID))
	}
	if p.original == nil {
		p.original = p.current.Clone()
	}
	p.dirty = false
	p.changes = nil
}

// MarshalJSON writes the current record.
func (p *Projection) MarshalJSON() ([]byte, error) {
	return p.current.MarshalJSON()
}

func (p *Projection) touch(field string, publicName []string) {
	name := field
	if len(publicName) > 0 && publicName[0] != "" {
		name = publicName[0]
	}
	p.dirty = true
	p.changes = append(p.changes, Change{Property: name, Field: field})
}
