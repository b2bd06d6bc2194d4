package types

import (
	"strconv"
	"time"
)

// Kind tags the variant held by a Value.
type Kind uint8

// Value kinds. A number keeps its JSON literal so large integers and
// decimals survive a read/write cycle unchanged.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindRecord
	KindList
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
	KindDate:   "date",
	KindRecord: "record",
	KindList:   "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// DateLayout is the layout used when a date is written to the wire.
const DateLayout = time.RFC3339Nano

// Value is one field value of a Record. The zero Value is null.
type Value struct {
	kind Kind
	text string // string payload or number literal
	b    bool
	t    time.Time
	rec  *Record
	list []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a number value from its JSON literal. The literal is not
// validated; callers pass text produced by a JSON parser or strconv.
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

// Int returns a number value for i.
func Int(i int64) Value { return Number(strconv.FormatInt(i, 10)) }

// Float returns a number value for f in its shortest exact form.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'f', -1, 64)) }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Nested returns a value holding r. A nil record yields null.
func Nested(r *Record) Value {
	if r == nil {
		return Null()
	}
	return Value{kind: KindRecord, rec: r}
}

// List returns a list value holding items. A nil slice yields an empty list.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload and whether v is a bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Date returns the date payload and whether v is a date.
func (v Value) Date() (time.Time, bool) { return v.t, v.kind == KindDate }

// Record returns the nested record, or nil when v is not a record.
func (v Value) Record() *Record {
	if v.kind != KindRecord {
		return nil
	}
	return v.rec
}

// Items returns the list elements, or nil when v is not a list. The returned
// slice aliases the value; use Clone before handing it to another owner.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Text returns the scalar payload as text: strings as-is, numbers as their
// literal, bools as "true"/"false", dates in DateLayout. Null, records and
// lists return "" and false.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindString, KindNumber:
		return v.text, true
	case KindBool:
		return strconv.FormatBool(v.b), true
	case KindDate:
		return v.t.Format(DateLayout), true
	default:
		return "", false
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindRecord:
		return Nested(v.rec.Clone())
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.Clone()
		}
		return List(items...)
	default:
		return v
	}
}

// Equal reports whether v and o hold the same variant and payload. Records
// compare field by field; lists compare element-wise in order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString, KindNumber:
		return v.text == o.text
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.t.Equal(o.t)
	case KindRecord:
		return v.rec.Equal(o.rec)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}
