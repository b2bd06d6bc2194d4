package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGUIDForms(t *testing.T) {
	want := uuid.MustParse("2afe355c-24a7-b20f-36e3-253b7249818d")
	for _, in := range []string{
		"2afe355c-24a7-b20f-36e3-253b7249818d",
		"{2afe355c-24a7-b20f-36e3-253b7249818d}",
		"2AFE355C-24A7-B20F-36E3-253B7249818D",
		"2afe355c24a7b20f36e3253b7249818d",
		"  2afe355c-24a7-b20f-36e3-253b7249818d ",
	} {
		got, err := ParseGUID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseGUID("not-a-guid")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestFormatGUID(t *testing.T) {
	id := uuid.MustParse("2afe355c-24a7-b20f-36e3-253b7249818d")
	assert.Equal(t, "2afe355c-24a7-b20f-36e3-253b7249818d", FormatD(id))
	assert.Equal(t, "{2afe355c-24a7-b20f-36e3-253b7249818d}", FormatB(id))
}

func TestSameGUID(t *testing.T) {
	assert.True(t, SameGUID("{2AFE355C-24A7-B20F-36E3-253B7249818D}", "2afe355c-24a7-b20f-36e3-253b7249818d"))
	assert.False(t, SameGUID("2afe355c-24a7-b20f-36e3-253b7249818d", "00000000-0000-0000-0000-000000000000"))
	assert.False(t, SameGUID("abc", "abc"))
}

func TestEnumValueEmpty(t *testing.T) {
	assert.True(t, EnumValue{}.IsEmpty())
	e := NewEnumValue(uuid.MustParse("5e2d3932-ca6d-1515-7310-6f58584df73e"), "Active", "IncidentStatusEnum.Active", false, false, 10)
	assert.False(t, e.IsEmpty())
	assert.Equal(t, "Active", e.String())
	assert.Equal(t, 10, e.Ordinal)
}

func TestAPIErrorMatchesErrAPI(t *testing.T) {
	var err error = &APIError{StatusCode: 500, Message: "Object reference not set"}
	assert.ErrorIs(t, err, ErrAPI)
	assert.Equal(t, "Object reference not set", err.Error())
}
