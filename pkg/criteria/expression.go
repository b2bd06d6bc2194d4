package criteria

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// PropertyType selects how the left side of an expression addresses a field.
type PropertyType int

// Property types. Projection properties use the class-qualified path;
// generic properties use the bare field name.
const (
	PropertyProjection PropertyType = iota + 1
	PropertyGeneric
)

// String returns the wire key for the property type.
func (t PropertyType) String() string {
	switch t {
	case PropertyProjection:
		return "Property"
	case PropertyGeneric:
		return "GenericProperty"
	default:
		return fmt.Sprintf("PropertyType(%d)", int(t))
	}
}

// Valid reports whether t is a defined property type.
func (t PropertyType) Valid() bool {
	return t == PropertyProjection || t == PropertyGeneric
}

// Operator is a comparison operator.
type Operator int

// Comparison operators.
const (
	Equal Operator = iota + 1
	Greater
	GreaterEqual
	Less
	LessEqual
	Like
	NotEqual
)

var operatorNames = map[Operator]string{
	Equal:        "Equal",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Like:         "Like",
	NotEqual:     "NotEqual",
}

// String returns the wire name of the operator.
func (o Operator) String() string {
	if s, ok := operatorNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Valid reports whether o is a defined operator.
func (o Operator) Valid() bool {
	_, ok := operatorNames[o]
	return ok
}

// ParseOperator maps a wire name back to its Operator.
func ParseOperator(s string) (Operator, bool) {
	for op, name := range operatorNames {
		if name == s {
			return op, true
		}
	}
	return 0, false
}

// Expression is one comparison: <property> <operator> <value>.
type Expression struct {
	PropertyName string
	PropertyType PropertyType
	Operator     Operator
	Value        string
}

// Typed builds an expression on a class-qualified property.
func Typed(classID uuid.UUID, field string, op Operator, value string) Expression {
	return Expression{
		PropertyName: Path(classID, field).Typed(),
		PropertyType: PropertyProjection,
		Operator:     op,
		Value:        value,
	}
}

// Generic builds an expression on a bare field name.
func Generic(field string, op Operator, value string) Expression {
	return Expression{
		PropertyName: Path(uuid.Nil, field).Generic(),
		PropertyType: PropertyGeneric,
		Operator:     op,
		Value:        value,
	}
}

// Validate reports ErrInvalidCriteria when the property name or value is
// empty, or the operator or property type is undefined.
func (e Expression) Validate() error {
	switch {
	case e.PropertyName == "":
		return fmt.Errorf("%w: expression has no property name", types.ErrInvalidCriteria)
	case e.Value == "":
		return fmt.Errorf("%w: expression on %q has no value", types.ErrInvalidCriteria, e.PropertyName)
	case !e.PropertyType.Valid():
		return fmt.Errorf("%w: expression on %q has %s", types.ErrInvalidCriteria, e.PropertyName, e.PropertyType)
	case !e.Operator.Valid():
		return fmt.Errorf("%w: expression on %q has %s", types.ErrInvalidCriteria, e.PropertyName, e.Operator)
	}
	return nil
}

// MarshalJSON renders the expression as a SimpleExpression node. It does not
// validate; Criteria serialization validates first. The property name and
// value are emitted verbatim, without HTML escaping.
func (e Expression) MarshalJSON() ([]byte, error) {
	out, err := sjson.SetRawBytes(nil, "SimpleExpression.ValueExpressionLeft."+e.PropertyType.String(), types.QuoteJSON(e.PropertyName))
	if err != nil {
		return nil, err
	}
	out, err = sjson.SetBytes(out, "SimpleExpression.Operator", e.Operator.String())
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(out, "SimpleExpression.ValueExpressionRight.Value", types.QuoteJSON(e.Value))
}
