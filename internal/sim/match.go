package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// ErrBadCriteria is returned for criteria the simulator cannot evaluate.
var ErrBadCriteria = errors.New("unsupported criteria")

type predicate struct {
	field string
	op    string
	value string
}

// filter is a parsed criteria document.
type filter struct {
	projectionID string
	grouping     string
	preds        []predicate
}

// parseCriteria reads the criteria wire format back into a filter.
func parseCriteria(body []byte) (filter, error) {
	if !gjson.ValidBytes(body) {
		return filter{}, fmt.Errorf("%w: body is not JSON", ErrBadCriteria)
	}
	doc := gjson.ParseBytes(body)
	f := filter{projectionID: doc.Get("Id").String()}
	if f.projectionID == "" {
		return filter{}, fmt.Errorf("%w: missing Id", ErrBadCriteria)
	}

	expr := doc.Get("Criteria.Base.Expression")
	var nodes []gjson.Result
	switch {
	case expr.Get("SimpleExpression").Exists():
		f.grouping = "SimpleExpression"
		nodes = []gjson.Result{expr}
	case expr.Get("And").Exists():
		f.grouping = "And"
		nodes = expr.Get("And.Expression").Array()
	case expr.Get("Or").Exists():
		f.grouping = "Or"
		nodes = expr.Get("Or.Expression").Array()
	default:
		return filter{}, fmt.Errorf("%w: no expression", ErrBadCriteria)
	}
	if len(nodes) == 0 {
		return filter{}, fmt.Errorf("%w: empty %s", ErrBadCriteria, f.grouping)
	}

	for _, n := range nodes {
		se := n.Get("SimpleExpression")
		if !se.Exists() {
			return filter{}, fmt.Errorf("%w: nested groups are not supported", ErrBadCriteria)
		}
		var field string
		if p := se.Get("ValueExpressionLeft.Property"); p.Exists() {
			field = fieldFromPath(p.String())
		} else {
			field = se.Get("ValueExpressionLeft.GenericProperty").String()
		}
		op := se.Get("Operator").String()
		if field == "" || !knownOperator(op) {
			return filter{}, fmt.Errorf("%w: expression %s", ErrBadCriteria, se.Raw)
		}
		f.preds = append(f.preds, predicate{
			field: field,
			op:    op,
			value: se.Get("ValueExpressionRight.Value").String(),
		})
	}
	return f, nil
}

// fieldFromPath extracts the field name from
// $Context/Property[Type='<class>']/<field>$.
func fieldFromPath(path string) string {
	path = strings.TrimSuffix(path, "$")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func knownOperator(op string) bool {
	switch op {
	case "Equal", "NotEqual", "Greater", "GreaterEqual", "Less", "LessEqual", "Like":
		return true
	}
	return false
}

// match reports whether the record body satisfies f.
func (f filter) match(body []byte) bool {
	if f.grouping == "Or" {
		for _, p := range f.preds {
			if p.match(body) {
				return true
			}
		}
		return false
	}
	for _, p := range f.preds {
		if !p.match(body) {
			return false
		}
	}
	return true
}

// match evaluates one predicate. A missing or null field matches nothing.
func (p predicate) match(body []byte) bool {
	res := gjson.GetBytes(body, escapePath(p.field))
	if !res.Exists() || res.Type == gjson.Null {
		return false
	}
	actual := res.String()
	if res.IsObject() {
		// Enumerations compare on Id, relationships on BaseId.
		if id := res.Get("Id"); id.Exists() {
			actual = id.String()
		} else {
			actual = res.Get("BaseId").String()
		}
	}

	switch p.op {
	case "Equal":
		return equalValues(actual, p.value)
	case "NotEqual":
		return !equalValues(actual, p.value)
	case "Like":
		return likeMatch(strings.ToLower(p.value), strings.ToLower(actual))
	}
	c := compareValues(actual, p.value)
	switch p.op {
	case "Greater":
		return c > 0
	case "GreaterEqual":
		return c >= 0
	case "Less":
		return c < 0
	case "LessEqual":
		return c <= 0
	}
	return false
}

func equalValues(a, b string) bool {
	if types.IsGUID(a) && types.IsGUID(b) {
		return types.SameGUID(a, b)
	}
	return strings.EqualFold(a, b)
}

// compareValues orders numbers numerically, dates chronologically and
// everything else case-insensitively.
func compareValues(a, b string) int {
	if fa, err := strconv.ParseFloat(a, 64); err == nil {
		if fb, err := strconv.ParseFloat(b, 64); err == nil {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, err := time.Parse(time.RFC3339Nano, a); err == nil {
		if tb, err := time.Parse(time.RFC3339Nano, b); err == nil {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// likeMatch implements SQL LIKE with % (any run) and _ (one character).
func likeMatch(pattern, s string) bool {
	p, t := []rune(pattern), []rune(s)
	pi, ti := 0, 0
	star, mark := -1, 0
	for ti < len(t) {
		switch {
		case pi < len(p) && (p[pi] == '_' || p[pi] == t[ti]):
			pi++
			ti++
		case pi < len(p) && p[pi] == '%':
			star, mark = pi, ti
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			ti = mark
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '%' {
		pi++
	}
	return pi == len(p)
}

// escapePath escapes gjson path metacharacters in a field name.
func escapePath(field string) string {
	var b strings.Builder
	for _, r := range field {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
