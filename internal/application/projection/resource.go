// Package projection turns stored records into client-facing views with a
// fixed field order and optional column allow-listing.
package projection

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

// LiteralTimeFormat is the textual timestamp layout used by resources that
// render times literally.
const LiteralTimeFormat = "2006-01-02 15:04:05"

// Field is one named output value.
type Field struct {
	Name  string
	Value any
}

// F is shorthand for building a Field.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Resource is an ordered set of output fields. It encodes as a JSON object
// whose keys keep the resource's declared order.
type Resource struct {
	fields []Field
}

// NewResource builds a resource from fields in order.
func NewResource(fields ...Field) Resource {
	return Resource{fields: fields}
}

// Keys returns the field names in order.
func (r Resource) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Name
	}
	return keys
}

// Get returns the value of a field.
func (r Resource) Get(name string) (any, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Len returns the number of fields
func (r Resource) Len() int {
	return len(r.fields)
}

// Map returns the fields as an unordered map.
func (r Resource) Map() map[string]any {
	m := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON implements json.Marshaler
func (r Resource) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Project restricts the default fields to allow, keeping default order.
// An empty allow-list is the only "no filter" marker; unknown names are
// ignored, so allow equal to the default field set returns every field.
func Project(defaults []Field, allow []string) Resource {
	if len(allow) == 0 {
		return NewResource(defaults...)
	}
	wanted := make(map[string]struct{}, len(allow))
	for _, name := range allow {
		wanted[name] = struct{}{}
	}
	out := make([]Field, 0, len(allow))
	for _, f := range defaults {
		if _, ok := wanted[f.Name]; ok {
			out = append(out, f)
		}
	}
	return NewResource(out...)
}

// Ref is a resolved relation: its id and display name.
type Ref struct {
	ID   int64
	Name string
}

// RelationPair renders a relation as "<x>_id" and "<x>_name" fields. A nil
// ref yields null for both.
func RelationPair(idKey, nameKey string, ref *Ref) []Field {
	if ref == nil {
		return []Field{F(idKey, nil), F(nameKey, nil)}
	}
	return []Field{F(idKey, ref.ID), F(nameKey, ref.Name)}
}

// Timestamp passes a time through for native JSON encoding, null when zero.
func Timestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// LiteralTimestamp renders t in LiteralTimeFormat, null when zero.
func LiteralTimestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(LiteralTimeFormat)
}

// RefResolver loads display names for relation ids. A nil id, a missing
// row or a soft-deleted row resolves to nil without error.
type RefResolver interface {
	Resolve(ctx context.Context, table string, id *int64) (*Ref, error)
}
