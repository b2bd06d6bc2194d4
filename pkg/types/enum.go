package types

import "github.com/google/uuid"

// EnumValue references one member of a server-defined enumeration list.
// Values are immutable; copy them freely. An EnumValue whose ID is
// EmptyGUID stands for "no value".
type EnumValue struct {
	ID          uuid.UUID // Enumeration member id.
	DisplayText string    // Localized text shown to users.
	Name        string    // Internal member name.
	Ordinal     int       // Sort order within the list; lower sorts first.
	IsFlatList  bool      // True when loaded from a flattened list.
	HasChildren bool      // True when the member has child members.
}

// NewEnumValue builds an EnumValue.
func NewEnumValue(id uuid.UUID, displayText, name string, isFlatList, hasChildren bool, ordinal int) EnumValue {
	return EnumValue{
		ID:          id,
		DisplayText: displayText,
		Name:        name,
		Ordinal:     ordinal,
		IsFlatList:  isFlatList,
		HasChildren: hasChildren,
	}
}

// IsEmpty reports whether e is the "no value" sentinel.
func (e EnumValue) IsEmpty() bool {
	return e.ID == EmptyGUID
}

// String returns the display text.
func (e EnumValue) String() string {
	return e.DisplayText
}
