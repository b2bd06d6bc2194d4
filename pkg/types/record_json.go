package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseRecord parses a JSON object into a Record, keeping field order.
func ParseRecord(data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidRecord)
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: want object, got %s", ErrInvalidRecord, res.Type)
	}
	return recordFromResult(res), nil
}

// ParseRecords parses a JSON array of objects. Elements that are not objects
// are rejected.
func ParseRecords(data []byte) ([]*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidRecord)
	}
	res := gjson.ParseBytes(data)
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: want array, got %s", ErrInvalidRecord, res.Type)
	}
	var (
		out []*Record
		bad error
	)
	res.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			bad = fmt.Errorf("%w: array element %d is not an object", ErrInvalidRecord, len(out))
			return false
		}
		out = append(out, recordFromResult(item))
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if out == nil {
		out = []*Record{}
	}
	return out, nil
}

// ValueFromJSON converts a parsed gjson result into a Value.
func ValueFromJSON(res gjson.Result) Value {
	switch {
	case res.IsObject():
		return Nested(recordFromResult(res))
	case res.IsArray():
		items := []Value{}
		res.ForEach(func(_, item gjson.Result) bool {
			items = append(items, ValueFromJSON(item))
			return true
		})
		return List(items...)
	}
	switch res.Type {
	case gjson.String:
		return String(res.Str)
	case gjson.Number:
		return Number(res.Raw)
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	default:
		return Null()
	}
}

func recordFromResult(res gjson.Result) *Record {
	r := NewRecord()
	res.ForEach(func(key, val gjson.Result) bool {
		r.Set(key.Str, ValueFromJSON(val))
		return true
	})
	return r
}

// MarshalJSON writes the record as a JSON object in field order. A nil
// record marshals as null.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r.appendJSON(nil), nil
}

// UnmarshalJSON replaces r's contents with the parsed object.
func (r *Record) UnmarshalJSON(data []byte) error {
	parsed, err := ParseRecord(data)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// MarshalJSON writes the value in its wire form.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil), nil
}

func (r *Record) appendJSON(buf []byte) []byte {
	buf = append(buf, '{')
	for i, k := range r.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendString(buf, k)
		buf = append(buf, ':')
		buf = r.fields[k].appendJSON(buf)
	}
	return append(buf, '}')
}

func (v Value) appendJSON(buf []byte) []byte {
	switch v.kind {
	case KindString:
		return appendString(buf, v.text)
	case KindNumber:
		return append(buf, v.text...)
	case KindBool:
		if v.b {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case KindDate:
		return appendString(buf, v.t.Format(DateLayout))
	case KindRecord:
		return v.rec.appendJSON(buf)
	case KindList:
		buf = append(buf, '[')
		for i, item := range v.list {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = item.appendJSON(buf)
		}
		return append(buf, ']')
	default:
		return append(buf, "null"...)
	}
}

func appendString(buf []byte, s string) []byte {
	return append(buf, QuoteJSON(s)...)
}

// QuoteJSON returns s as a JSON string literal. Unlike json.Marshal it
// leaves <, > and & unescaped so text round-trips byte for byte.
func QuoteJSON(s string) []byte {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return bytes.TrimSuffix(b.Bytes(), []byte("\n"))
}
