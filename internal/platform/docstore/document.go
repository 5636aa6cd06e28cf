// Package docstore exposes relational tables as document collections and
// executes declarative view plans (match, join, compute, group, project,
// window) over them.
package docstore

import (
	"reflect"
	"strings"
)

// Document is a projected record. Identifiers are uuid.UUID values and
// array fields are []any.
type Document map[string]any

// Clone returns a shallow copy of d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Get returns the value at a dotted path, following embedded documents but
// not arrays. It returns nil when any segment is missing.
func (d Document) Get(path string) any {
	var cur any = d
	for _, seg := range strings.Split(path, ".") {
		m, ok := asDocument(cur)
		if !ok {
			return nil
		}
		cur = m[seg]
	}
	return cur
}

// Values resolves a dotted path, flattening every array met on the way.
// For {"subscribers": [{"subscriber": a}, {"subscriber": b}]} the path
// "subscribers.subscriber" yields [a, b].
func (d Document) Values(path string) []any {
	cur := []any{d}
	for _, seg := range strings.Split(path, ".") {
		var next []any
		for _, c := range cur {
			m, ok := asDocument(c)
			if !ok {
				continue
			}
			v, ok := m[seg]
			if !ok || v == nil {
				continue
			}
			if arr, ok := asSlice(v); ok {
				next = append(next, arr...)
				continue
			}
			next = append(next, v)
		}
		cur = next
	}
	return cur
}

// Project returns a new document holding only fields. Missing fields are omitted.
func (d Document) Project(fields []string) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := d[f]; ok {
			out[f] = v
		}
	}
	return out
}

func asDocument(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return Document(m), true
	}
	return nil, false
}

// asSlice converts any slice except []byte into []any.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []Document:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
