package criteria

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// conditionOperators maps the shorthand condition tokens to operators.
// Two-character tokens come first so "<=" is not read as "<".
var conditionOperators = []struct {
	token string
	op    Operator
}{
	{"!=", NotEqual},
	{">=", GreaterEqual},
	{"<=", LessEqual},
	{"=", Equal},
	{">", Greater},
	{"<", Less},
	{"~", Like},
}

// genericFields are addressed by bare name rather than class path.
var genericFields = map[string]bool{
	"BaseId":      true,
	"FullName":    true,
	"DisplayName": true,
}

// ParseCondition parses a "Field<op>Value" shorthand such as "Title~net%"
// or "Amount>=100" into an expression on classID. Identity fields become
// generic properties. The operator is the first token found scanning left
// to right.
func ParseCondition(classID uuid.UUID, s string) (Expression, error) {
	for i := 0; i < len(s); i++ {
		for _, co := range conditionOperators {
			if !strings.HasPrefix(s[i:], co.token) {
				continue
			}
			field := strings.TrimSpace(s[:i])
			value := s[i+len(co.token):]
			if field == "" {
				return Expression{}, fmt.Errorf("%w: condition %q has no field", types.ErrInvalidCriteria, s)
			}
			var e Expression
			if genericFields[field] {
				e = Generic(field, co.op, value)
			} else {
				e = Typed(classID, field, co.op, value)
			}
			return e, e.Validate()
		}
	}
	return Expression{}, fmt.Errorf("%w: condition %q has no operator", types.ErrInvalidCriteria, s)
}

// GroupingFor picks Simple for a single expression, otherwise Or when anyOf
// is set and And otherwise.
func GroupingFor(n int, anyOf bool) Grouping {
	switch {
	case n == 1:
		return Simple
	case anyOf:
		return Or
	default:
		return And
	}
}

// FromConditions builds a criteria on projectionID from shorthand
// conditions on classID, grouped by GroupingFor.
func FromConditions(projectionID, classID uuid.UUID, anyOf bool, conds ...string) (*Criteria, error) {
	if len(conds) == 0 {
		return nil, fmt.Errorf("%w: no conditions", types.ErrInvalidCriteria)
	}
	c := New(projectionID, GroupingFor(len(conds), anyOf))
	for _, s := range conds {
		e, err := ParseCondition(classID, s)
		if err != nil {
			return nil, err
		}
		c.Add(e)
	}
	return c, nil
}
