package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const incidentJSON = `{"BaseId":"7b6c2a1e-0f3d-4d6a-9c1b-2e8f4a5b6c7d","Id":"IR1042","Title":"Printer offline",` +
	`"Priority":2,"Escalated":false,"Cost":12.50,"Closed":null,` +
	`"Status":{"Id":"5e2d3932-ca6d-1515-7310-6f58584df73e","Name":"Active"},` +
	`"RelatesToConfigItem":[{"BaseId":"aaaaaaaa-0000-0000-0000-000000000001","DisplayName":"PRN-01"}]}`

func TestParseRecordKeepsFieldOrder(t *testing.T) {
	r, err := ParseRecord([]byte(incidentJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"BaseId", "Id", "Title", "Priority", "Escalated", "Cost", "Closed", "Status", "RelatesToConfigItem",
	}, r.Keys())
}

func TestParseRecordVariants(t *testing.T) {
	r, err := ParseRecord([]byte(incidentJSON))
	require.NoError(t, err)

	tests := []struct {
		field string
		kind  Kind
	}{
		{"Title", KindString},
		{"Priority", KindNumber},
		{"Escalated", KindBool},
		{"Cost", KindNumber},
		{"Closed", KindNull},
		{"Status", KindRecord},
		{"RelatesToConfigItem", KindList},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			v, ok := r.Get(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}

	assert.Equal(t, "Active", r.Nested("Status").Text("Name"))
	assert.Equal(t, "12.50", r.Text("Cost"), "number literal is kept verbatim")
}

func TestRecordRoundTripIsByteIdentical(t *testing.T) {
	r, err := ParseRecord([]byte(incidentJSON))
	require.NoError(t, err)

	out, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, incidentJSON, string(out))
}

func TestRecordKeepsHTMLCharactersVerbatim(t *testing.T) {
	const in = `{"Title":"café <b>&","Note":"tab\there"}`
	r, err := ParseRecord([]byte(in))
	require.NoError(t, err)

	out, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
	assert.Equal(t, `"a<b>&c"`, string(QuoteJSON("a<b>&c")))
}

func TestParseRecordRejectsNonObjects(t *testing.T) {
	for _, in := range []string{`[]`, `"x"`, `{"a":`, ``} {
		_, err := ParseRecord([]byte(in))
		assert.ErrorIs(t, err, ErrInvalidRecord, "input %q", in)
	}
}

func TestParseRecords(t *testing.T) {
	recs, err := ParseRecords([]byte(`[{"a":1},{"b":"x"}]`))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "1", recs[0].Text("a"))
	assert.Equal(t, "x", recs[1].Text("b"))

	recs, err = ParseRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	_, err = ParseRecords([]byte(`[{"a":1},2]`))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRecordSetKeepsPosition(t *testing.T) {
	r := NewRecord()
	r.Set("a", String("1"))
	r.Set("b", String("2"))
	r.Set("a", String("3"))

	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.Equal(t, "3", r.Text("a"))

	assert.True(t, r.Delete("a"))
	assert.False(t, r.Delete("a"))
	assert.Equal(t, []string{"b"}, r.Keys())
}

func TestRecordCloneIsIndependent(t *testing.T) {
	r, err := ParseRecord([]byte(incidentJSON))
	require.NoError(t, err)

	c := r.Clone()
	require.True(t, r.Equal(c))

	c.Nested("Status").Set("Name", String("Closed"))
	c.Set("Title", String("changed"))

	assert.Equal(t, "Active", r.Nested("Status").Text("Name"))
	assert.Equal(t, "Printer offline", r.Text("Title"))
	assert.False(t, r.Equal(c))
	assert.Equal(t, []string{"Title", "Status"}, r.Diff(c))
}

func TestRecordDiffReportsAddedFields(t *testing.T) {
	a := NewRecord()
	a.Set("x", Int(1))
	b := a.Clone()
	b.Set("y", Bool(true))

	assert.Equal(t, []string{"y"}, a.Diff(b))
	assert.Empty(t, a.Diff(a.Clone()))
}

func TestValueText(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name   string
		value  Value
		want   string
		wantOK bool
	}{
		{"string", String("abc"), "abc", true},
		{"int", Int(42), "42", true},
		{"float", Float(1.25), "1.25", true},
		{"bool", Bool(true), "true", true},
		{"date", Date(ts), "2024-03-01T09:30:00Z", true},
		{"null", Null(), "", false},
		{"record", Nested(NewRecord()), "", false},
		{"list", List(), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.Text()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNestedNilIsNull(t *testing.T) {
	assert.True(t, Nested(nil).IsNull())
	assert.Equal(t, KindList, List().Kind())
	assert.NotNil(t, List().Items())
}

func TestNilRecordMarshalsNull(t *testing.T) {
	var r *Record
	out, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
