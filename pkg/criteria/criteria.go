package criteria

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// Grouping combines the expressions of a Criteria.
type Grouping int

// Groupings. Simple holds exactly one expression; And and Or hold two or more.
const (
	Simple Grouping = iota + 1
	And
	Or
)

// String returns the wire name of the grouping.
func (g Grouping) String() string {
	switch g {
	case Simple:
		return "SimpleExpression"
	case And:
		return "And"
	case Or:
		return "Or"
	default:
		return fmt.Sprintf("Grouping(%d)", int(g))
	}
}

// Criteria is a predicate over one type projection.
type Criteria struct {
	ProjectionID uuid.UUID
	Grouping     Grouping
	Expressions  []Expression
}

// New returns an empty criteria for the given type projection.
func New(projectionID uuid.UUID, grouping Grouping) *Criteria {
	return &Criteria{ProjectionID: projectionID, Grouping: grouping}
}

// Add appends expressions in order and returns c for chaining.
func (c *Criteria) Add(exprs ...Expression) *Criteria {
	c.Expressions = append(c.Expressions, exprs...)
	return c
}

// Where appends a typed-property expression.
func (c *Criteria) Where(classID uuid.UUID, field string, op Operator, value string) *Criteria {
	return c.Add(Typed(classID, field, op, value))
}

// Validate checks the structural rules: at least one expression, exactly one
// for Simple, two or more for And/Or, and every expression valid.
func (c *Criteria) Validate() error {
	n := len(c.Expressions)
	if n == 0 {
		return fmt.Errorf("%w: no expressions", types.ErrInvalidCriteria)
	}
	switch c.Grouping {
	case Simple:
		if n != 1 {
			return fmt.Errorf("%w: simple criteria needs exactly one expression, has %d", types.ErrInvalidCriteria, n)
		}
	case And, Or:
		if n < 2 {
			return fmt.Errorf("%w: %s criteria needs at least two expressions, has %d", types.ErrInvalidCriteria, c.Grouping, n)
		}
	default:
		return fmt.Errorf("%w: unknown grouping %s", types.ErrInvalidCriteria, c.Grouping)
	}
	for i, e := range c.Expressions {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("expression %d: %w", i, err)
		}
	}
	return nil
}

// MarshalJSON validates c and renders
//
//	{"Id":"<projection>","Criteria":{"Base":{"Expression":<node>}}}
//
// where node is a single SimpleExpression or an And/Or group holding the
// expressions in insertion order.
func (c *Criteria) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	node, err := c.expressionNode()
	if err != nil {
		return nil, err
	}
	out, err := sjson.SetBytes(nil, "Id", types.FormatD(c.ProjectionID))
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(out, "Criteria.Base.Expression", node)
}

func (c *Criteria) expressionNode() ([]byte, error) {
	if c.Grouping == Simple {
		return c.Expressions[0].MarshalJSON()
	}
	group := c.Grouping.String()
	node, err := sjson.SetRawBytes(nil, group+".Expression", []byte("[]"))
	if err != nil {
		return nil, err
	}
	for _, e := range c.Expressions {
		raw, err := e.MarshalJSON()
		if err != nil {
			return nil, err
		}
		node, err = sjson.SetRawBytes(node, group+".Expression.-1", raw)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// String returns the serialized criteria, or the validation error text.
func (c *Criteria) String() string {
	out, err := c.MarshalJSON()
	if err != nil {
		return err.Error()
	}
	return string(out)
}
