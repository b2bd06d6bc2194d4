// Package criteria builds query predicates for the portal's projection query
// endpoint and serializes them to the server's criteria JSON grammar.
//
// A Criteria is built incrementally and validated only when it is
// serialized, so partially built criteria are never an error by themselves.
package criteria

import (
	"fmt"

	"github.com/google/uuid"
)

// PropertyPath names a field of an entity class and renders it in the two
// addressing forms the server understands.
type PropertyPath struct {
	ClassID uuid.UUID
	Name    string
}

// Path returns a PropertyPath for name on the class classID.
func Path(classID uuid.UUID, name string) PropertyPath {
	return PropertyPath{ClassID: classID, Name: name}
}

// Typed returns the class-qualified form,
// "$Context/Property[Type='<class guid>']/<name>$".
func (p PropertyPath) Typed() string {
	return fmt.Sprintf("$Context/Property[Type='%s']/%s$", p.ClassID, p.Name)
}

// Generic returns the bare field name.
func (p PropertyPath) Generic() string {
	return p.Name
}
