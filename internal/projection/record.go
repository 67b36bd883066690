package projection

import (
	"bytes"
	"encoding/json"
)

// Field is one key/value pair of an ordered JSON object.
type Field struct {
	Key   string
	Value any
}

// Fields is a JSON object whose keys marshal in slice order.
type Fields []Field

// Get returns the value stored under key.
func (fs Fields) Get(key string) (any, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (fs Fields) Keys() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Key
	}
	return out
}

// MarshalJSON writes the fields as a JSON object in slice order.
func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Record is the output object for one test entry.
type Record struct {
	ID     string
	Type   Kind
	Fields Fields
}

// MarshalJSON writes "@id" and "@type" followed by the projected fields.
func (r Record) MarshalJSON() ([]byte, error) {
	all := make(Fields, 0, len(r.Fields)+2)
	all = append(all, Field{"@id", r.ID}, Field{"@type", string(r.Type)})
	all = append(all, r.Fields...)
	return all.MarshalJSON()
}
