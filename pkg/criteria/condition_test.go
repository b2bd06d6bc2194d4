package criteria

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/portal/pkg/types"
)

func TestParseCondition(t *testing.T) {
	class := uuid.MustParse("2afe355c-24a7-b20f-36e3-253b7249818d")
	tests := []struct {
		in    string
		field string
		op    Operator
		value string
		typ   PropertyType
	}{
		{"PurchaseOrderNumber=Testing123", "PurchaseOrderNumber", Equal, "Testing123", PropertyProjection},
		{"Title!=x", "Title", NotEqual, "x", PropertyProjection},
		{"Amount>=100", "Amount", GreaterEqual, "100", PropertyProjection},
		{"Amount<=100", "Amount", LessEqual, "100", PropertyProjection},
		{"Amount>1", "Amount", Greater, "1", PropertyProjection},
		{"Amount<1", "Amount", Less, "1", PropertyProjection},
		{"Title~net%", "Title", Like, "net%", PropertyProjection},
		{"BaseId=abc", "BaseId", Equal, "abc", PropertyGeneric},
		{"Note=a=b", "Note", Equal, "a=b", PropertyProjection},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := ParseCondition(class, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.op, e.Operator)
			assert.Equal(t, tt.value, e.Value)
			assert.Equal(t, tt.typ, e.PropertyType)
			if tt.typ == PropertyGeneric {
				assert.Equal(t, tt.field, e.PropertyName)
			} else {
				assert.Equal(t, Path(class, tt.field).Typed(), e.PropertyName)
			}
		})
	}
}

func TestParseConditionRejects(t *testing.T) {
	for _, in := range []string{"", "Title", "=x", "Title="} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCondition(uuid.Nil, in)
			assert.ErrorIs(t, err, types.ErrInvalidCriteria)
		})
	}
}

func TestGroupingFor(t *testing.T) {
	assert.Equal(t, Simple, GroupingFor(1, true))
	assert.Equal(t, And, GroupingFor(2, false))
	assert.Equal(t, Or, GroupingFor(3, true))
}

func TestFromConditions(t *testing.T) {
	proj := uuid.MustParse("f27daae2-280c-dd8b-24e7-9bdb5120d6d2")
	class := uuid.MustParse("2afe355c-24a7-b20f-36e3-253b7249818d")

	c, err := FromConditions(proj, class, false, "PurchaseOrderNumber=Testing123", "DisplayName~T%")
	require.NoError(t, err)
	assert.Equal(t, And, c.Grouping)
	require.Len(t, c.Expressions, 2)
	assert.Equal(t, PropertyGeneric, c.Expressions[1].PropertyType)
	require.NoError(t, c.Validate())

	_, err = FromConditions(proj, class, true)
	assert.ErrorIs(t, err, types.ErrInvalidCriteria)

	_, err = FromConditions(proj, class, true, "ok=1", "broken")
	assert.ErrorIs(t, err, types.ErrInvalidCriteria)
}
