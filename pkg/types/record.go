package types

// Record is an ordered, schema-less mapping from field name to Value. It is
// one wire-level snapshot of a server object. Field order is the order in
// which fields were first set (or parsed) and is kept on output.
//
// A Record is not safe for concurrent mutation.
type Record struct {
	keys   []string
	fields map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value of a field and whether it is present.
func (r *Record) Get(name string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.fields[name]
	return v, ok
}

// Has reports whether the field is present, including present-but-null.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set stores v under name. An existing field keeps its position.
func (r *Record) Set(name string, v Value) {
	if r.fields == nil {
		r.fields = make(map[string]Value)
	}
	if _, ok := r.fields[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.fields[name] = v
}

// Delete removes a field and reports whether it was present.
func (r *Record) Delete(name string) bool {
	if r == nil {
		return false
	}
	if _, ok := r.fields[name]; !ok {
		return false
	}
	delete(r.fields, name)
	for i, k := range r.keys {
		if k == name {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return true
}

// Text returns the scalar text of a field, or "" when the field is absent,
// null, or not a scalar.
func (r *Record) Text(name string) string {
	v, _ := r.Get(name)
	s, _ := v.Text()
	return s
}

// Nested returns the record held by a field, or nil.
func (r *Record) Nested(name string) *Record {
	v, _ := r.Get(name)
	return v.Record()
}

// Clone returns a deep copy. Cloning nil returns nil.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		keys:   make([]string, len(r.keys)),
		fields: make(map[string]Value, len(r.fields)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.fields {
		out.fields[k] = v.Clone()
	}
	return out
}

// Equal reports whether r and o hold the same fields with equal values.
// Field order is not significant.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == nil && o == nil
	}
	if len(r.fields) != len(o.fields) {
		return false
	}
	for k, v := range r.fields {
		ov, ok := o.fields[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Diff returns the names of fields whose values differ between r and o,
// in r's field order followed by fields only present in o.
func (r *Record) Diff(o *Record) []string {
	var out []string
	for _, k := range r.Keys() {
		ov, ok := o.Get(k)
		if v, _ := r.Get(k); !ok || !v.Equal(ov) {
			out = append(out, k)
		}
	}
	for _, k := range o.Keys() {
		if !r.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
