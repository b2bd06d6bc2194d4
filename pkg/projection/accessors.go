package projection

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// Enumeration sub-record fields.
const (
	enumFieldID   = "Id"
	enumFieldName = "Name"
)

// legacyDateLayout is the zone-less form some portal builds emit.
const legacyDateLayout = "2006-01-02T15:04:05.999999999"

// GetPrimitive returns field converted to T. An absent or null field yields
// the zero value of T; for pointer types that is nil. Supported T: string,
// bool, int, int32, int64, float32, float64, time.Time, uuid.UUID,
// types.Value, and pointers to the scalar types. A value that cannot be
// converted returns ErrTypeMismatch.
func GetPrimitive[T any](p *Projection, field string) (T, error) {
	var out T
	v, ok := p.current.Get(field)
	if !ok || v.IsNull() {
		return out, nil
	}
	if err := coerce(v, &out); err != nil {
		return out, fmt.Errorf("field %s: %w", field, err)
	}
	return out, nil
}

// SetPrimitive stores value in its canonical string form, marks p dirty,
// and records a change under publicName (or field when none is given).
// Returns ErrReadOnly on a read-only projection.
func SetPrimitive[T any](p *Projection, field string, value T, publicName ...string) error {
	if p.readOnly {
		return readOnlyError(field)
	}
	v, err := canonical(value)
	if err != nil {
		return fmt.Errorf("field %s: %w", field, err)
	}
	p.current.Set(field, v)
	p.touch(field, publicName)
	return nil
}

// GetEnumeration returns the enumeration stored in field, or nil when the
// field is absent or its Id is null, empty, or the empty GUID.
func GetEnumeration(p *Projection, field string) *types.EnumValue {
	sub := p.current.Nested(field)
	if sub == nil {
		return nil
	}
	idText := sub.Text(enumFieldID)
	if idText == "" {
		return nil
	}
	id, err := types.ParseGUID(idText)
	if err != nil || id == types.EmptyGUID {
		return nil
	}
	name := sub.Text(enumFieldName)
	e := types.NewEnumValue(id, name, name, false, false, 0)
	return &e
}

// SetEnumeration writes value as {"Id":<guid>,"Name":<text>}. A nil or
// empty value writes {"Id":null,"Name":""}.
func SetEnumeration(p *Projection, field string, value *types.EnumValue, publicName ...string) error {
	if p.readOnly {
		return readOnlyError(field)
	}
	p.current.Set(field, types.Nested(enumRecord(value)))
	p.touch(field, publicName)
	return nil
}

func enumRecord(value *types.EnumValue) *types.Record {
	rec := types.NewRecord()
	if value == nil || value.IsEmpty() {
		rec.Set(enumFieldID, types.Null())
		rec.Set(enumFieldName, types.String(""))
		return rec
	}
	text := value.DisplayText
	if text == "" {
		text = value.Name
	}
	rec.Set(enumFieldID, types.String(types.FormatD(value.ID)))
	rec.Set(enumFieldName, types.String(text))
	return rec
}

// GetRelated wraps the record nested in field as a read-only T. The second
// result is false when the field is absent or not a record.
func GetRelated[T Entity](p *Projection, field string, wrap func(*Projection) T) (T, bool) {
	var zero T
	sub := p.current.Nested(field)
	if sub == nil {
		return zero, false
	}
	return wrap(readOnly(sub)), true
}

// SetRelated replaces the record nested in field with a copy of value's
// current record. value itself stays writable. A nil value, or one with no
// underlying projection, clears the field.
func SetRelated(p *Projection, field string, value Entity, publicName ...string) error {
	if p.readOnly {
		return readOnlyError(field)
	}
	if isNilEntity(value) {
		return ClearRelated(p, field, publicName...)
	}
	p.current.Set(field, types.Nested(value.Base().current.Clone()))
	p.touch(field, publicName)
	return nil
}

// isNilEntity reports whether e is nil, a typed nil pointer, or wraps a nil
// projection.
func isNilEntity(e Entity) bool {
	if e == nil {
		return true
	}
	if rv := reflect.ValueOf(e); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return true
	}
	return e.Base() == nil
}

// ClearRelated sets a single-object relationship to null.
func ClearRelated(p *Projection, field string, publicName ...string) error {
	if p.readOnly {
		return readOnlyError(field)
	}
	p.current.Set(field, types.Null())
	p.touch(field, publicName)
	return nil
}

// GetRelatedList returns a fresh slice of read-only T, one per record in
// the list held by field. Non-record elements are skipped.
func GetRelatedList[T Entity](p *Projection, field string, wrap func(*Projection) T) []T {
	v, _ := p.current.Get(field)
	items := v.Items()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if rec := item.Record(); rec != nil {
			out = append(out, wrap(readOnly(rec)))
		}
	}
	return out
}

func readOnlyError(field string) error {
	return fmt.Errorf("%w: cannot set %s", types.ErrReadOnly, field)
}

// coerce converts v into *dst. dst is a pointer to one of the supported
// accessor types.
func coerce(v types.Value, dst any) error {
	switch d := dst.(type) {
	case *types.Value:
		*d = v.Clone()
		return nil
	case *string:
		s, ok := v.Text()
		if !ok {
			return mismatch("string", v)
		}
		*d = s
		return nil
	case *bool:
		if b, ok := v.Bool(); ok {
			*d = b
			return nil
		}
		s, _ := v.Text()
		b, err := strconv.ParseBool(s)
		if err != nil {
			return mismatch("bool", v)
		}
		*d = b
		return nil
	case *int:
		i, err := toInt(v, strconv.IntSize)
		*d = int(i)
		return err
	case *int32:
		i, err := toInt(v, 32)
		*d = int32(i)
		return err
	case *int64:
		i, err := toInt(v, 64)
		*d = i
		return err
	case *float32:
		f, err := toFloat(v, 32)
		*d = float32(f)
		return err
	case *float64:
		f, err := toFloat(v, 64)
		*d = f
		return err
	case *time.Time:
		t, err := toTime(v)
		*d = t
		return err
	case *uuid.UUID:
		s, _ := v.Text()
		id, err := types.ParseGUID(s)
		if err != nil {
			return mismatch("guid", v)
		}
		*d = id
		return nil
	case **string:
		return coercePtr(v, d)
	case **bool:
		return coercePtr(v, d)
	case **int:
		return coercePtr(v, d)
	case **int32:
		return coercePtr(v, d)
	case **int64:
		return coercePtr(v, d)
	case **float32:
		return coercePtr(v, d)
	case **float64:
		return coercePtr(v, d)
	case **time.Time:
		return coercePtr(v, d)
	case **uuid.UUID:
		return coercePtr(v, d)
	default:
		return fmt.Errorf("%w: unsupported accessor type %T", types.ErrTypeMismatch, dst)
	}
}

func coercePtr[E any](v types.Value, d **E) error {
	var e E
	if err := coerce(v, &e); err != nil {
		return err
	}
	*d = &e
	return nil
}

func toInt(v types.Value, bits int) (int64, error) {
	s, ok := v.Text()
	if !ok {
		return 0, mismatch("integer", v)
	}
	if i, err := strconv.ParseInt(s, 10, bits); err == nil {
		return i, nil
	}
	// Accept integral decimals such as "3.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, mismatch("integer", v)
	}
	i := int64(f)
	if bits < 64 && (i > 1<<(bits-1)-1 || i < -(1<<(bits-1))) {
		return 0, mismatch("integer", v)
	}
	return i, nil
}

func toFloat(v types.Value, bits int) (float64, error) {
	s, ok := v.Text()
	if !ok {
		return 0, mismatch("number", v)
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, mismatch("number", v)
	}
	return f, nil
}

func toTime(v types.Value) (time.Time, error) {
	if t, ok := v.Date(); ok {
		return t, nil
	}
	s, ok := v.Text()
	if !ok {
		return time.Time{}, mismatch("date", v)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(legacyDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, mismatch("date", v)
	}
	return t, nil
}

// canonical converts a setter argument into the string form the server
// expects. Nil pointers become null.
func canonical(value any) (types.Value, error) {
	switch x := value.(type) {
	case types.Value:
		return x.Clone(), nil
	case string:
		return types.String(x), nil
	case bool:
		return types.String(strconv.FormatBool(x)), nil
	case int:
		return types.String(strconv.Itoa(x)), nil
	case int32:
		return types.String(strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return types.String(strconv.FormatInt(x, 10)), nil
	case float32:
		return types.String(strconv.FormatFloat(float64(x), 'f', -1, 32)), nil
	case float64:
		return types.String(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case time.Time:
		return types.String(x.UTC().Format(types.DateLayout)), nil
	case uuid.UUID:
		return types.String(types.FormatD(x)), nil
	case *string:
		return canonicalPtr(x)
	case *bool:
		return canonicalPtr(x)
	case *int:
		return canonicalPtr(x)
	case *int32:
		return canonicalPtr(x)
	case *int64:
		return canonicalPtr(x)
	case *float32:
		return canonicalPtr(x)
	case *float64:
		return canonicalPtr(x)
	case *time.Time:
		return canonicalPtr(x)
	case *uuid.UUID:
		return canonicalPtr(x)
	default:
		return types.Value{}, fmt.Errorf("%w: unsupported accessor type %T", types.ErrTypeMismatch, value)
	}
}

func canonicalPtr[E any](ptr *E) (types.Value, error) {
	if ptr == nil {
		return types.Null(), nil
	}
	return canonical(*ptr)
}

func mismatch(want string, v types.Value) error {
	s, _ := v.Text()
	return fmt.Errorf("%w: want %s, got %s %q", types.ErrTypeMismatch, want, v.Kind(), s)
}
