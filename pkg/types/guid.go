package types

import (
	"strings"

	"github.com/google/uuid"
)

// EmptyGUID is the all-zero GUID. The portal uses it as the "no value"
// marker for enumerations and relationship ids.
var EmptyGUID = uuid.Nil

// ParseGUID parses a GUID in any of the forms the portal emits: D
// ("xxxxxxxx-xxxx-..."), B ("{xxxxxxxx-...}"), or N (32 hex digits).
// Returns ErrTypeMismatch wrapped with the offending text on failure.
func ParseGUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, typeMismatch("guid", s)
	}
	return id, nil
}

// IsGUID reports whether s parses as a GUID.
func IsGUID(s string) bool {
	_, err := ParseGUID(s)
	return err == nil
}

// FormatD renders id in the hyphenated form used in criteria ids.
func FormatD(id uuid.UUID) string {
	return id.String()
}

// FormatB renders id in braces form, e.g. "{2afe355c-24a7-b20f-36e3-253b7249818d}".
func FormatB(id uuid.UUID) string {
	return "{" + id.String() + "}"
}

// SameGUID reports whether a and b name the same GUID regardless of case or
// textual form. Two strings that are not GUIDs are never the same.
func SameGUID(a, b string) bool {
	x, err := ParseGUID(a)
	if err != nil {
		return false
	}
	y, err := ParseGUID(b)
	if err != nil {
		return false
	}
	return x == y
}
