package docstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ErrNoDocument is returned by FindOne when nothing matches.
var ErrNoDocument = errors.New("docstore: no document")

// Store resolves collections by name and runs view plans across them.
type Store struct {
	collections map[string]Collection
}

// NewStore registers cols by name.
func NewStore(cols ...Collection) *Store {
	s := &Store{collections: make(map[string]Collection, len(cols))}
	for _, c := range cols {
		s.collections[c.Name()] = c
	}
	return s
}

// Collection returns the named collection.
func (s *Store) Collection(name string) (Collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return c, nil
}

// Find runs a single-collection query.
func (s *Store) Find(ctx context.Context, name string, q Query) ([]Document, error) {
	c, err := s.Collection(name)
	if err != nil {
		return nil, err
	}
	return c.Find(ctx, q)
}

// FindOne returns the first document matching filter.
func (s *Store) FindOne(ctx context.Context, name string, filter Filter) (Document, error) {
	docs, err := s.Find(ctx, name, Query{Filter: filter, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoDocument
	}
	return docs[0], nil
}

// RunView executes p. The window is pushed down to the source query when no
// later stage can drop or merge rows.
func (s *Store) RunView(ctx context.Context, p Plan) ([]Document, error) {
	src, err := s.Collection(p.Source)
	if err != nil {
		return nil, err
	}

	q := Query{Filter: p.Match, Sort: p.Sort, Expand: p.Expand}
	pushed := p.Window != nil && p.Window.Limit > 0 && p.Group == nil && !p.dropsRows()
	if pushed {
		q.Offset = p.Window.Skip
		q.Limit = p.Window.Limit
	}

	docs, err := src.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	for _, j := range p.Joins {
		if docs, err = s.join(ctx, docs, j); err != nil {
			return nil, err
		}
	}

	for _, c := range p.Computed {
		for _, d := range docs {
			d[c.Field] = compute(d, c)
		}
	}

	if p.Group != nil {
		docs = []Document{group(docs, p.Group)}
	}

	if len(p.Project) > 0 {
		for i, d := range docs {
			docs[i] = d.Project(p.Project)
		}
	}

	if p.Window != nil && !pushed {
		docs = window(docs, *p.Window)
	}
	return docs, nil
}

func (s *Store) join(ctx context.Context, docs []Document, j Join) ([]Document, error) {
	if len(docs) == 0 {
		return docs, nil
	}

	keys := localKeys(docs, j.LocalField)
	index := make(map[any][]Document)
	if len(keys) > 0 {
		from, err := s.Collection(j.From)
		if err != nil {
			return nil, err
		}
		filter := Filter{j.ForeignField: keys}
		for k, v := range j.Match {
			filter[k] = v
		}
		matches, err := from.Find(ctx, Query{Filter: filter, Expand: j.Expand})
		if err != nil {
			return nil, err
		}
		for _, nested := range j.Joins {
			if matches, err = s.join(ctx, matches, nested); err != nil {
				return nil, err
			}
		}
		for _, m := range matches {
			key := m[j.ForeignField]
			if !hashable(key) {
				continue
			}
			if len(j.Project) > 0 {
				m = m.Project(j.Project)
			}
			index[key] = append(index[key], m)
		}
	}

	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		joined := lookup(d[j.LocalField], index, j.Distinct)
		switch {
		case j.Unwind:
			for _, m := range joined {
				c := d.Clone()
				c[j.As] = m
				out = append(out, c)
			}
		case j.First:
			if len(joined) > 0 {
				d[j.As] = joined[0]
			} else {
				d[j.As] = nil
			}
			out = append(out, d)
		default:
			d[j.As] = joined
			out = append(out, d)
		}
	}
	return out, nil
}

// localKeys returns the distinct non-nil local values in first-seen order.
func localKeys(docs []Document, field string) []any {
	seen := make(map[any]struct{})
	var keys []any
	add := func(v any) {
		if !hashable(v) {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		keys = append(keys, v)
	}
	for _, d := range docs {
		v := d[field]
		if arr, ok := asSlice(v); ok {
			for _, e := range arr {
				add(e)
			}
			continue
		}
		add(v)
	}
	return keys
}

func lookup(local any, index map[any][]Document, distinct bool) []Document {
	joined := []Document{}
	arr, isArray := asSlice(local)
	if !isArray {
		if !hashable(local) {
			return joined
		}
		return append(joined, index[local]...)
	}
	seen := make(map[any]struct{})
	for _, v := range arr {
		if !hashable(v) {
			continue
		}
		if distinct {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		joined = append(joined, index[v]...)
	}
	return joined
}

// hashable reports whether v can be used as a join key.
func hashable(v any) bool {
	return v != nil && reflect.TypeOf(v).Comparable()
}

func compute(d Document, c Computed) any {
	switch c.Op {
	case OpSize:
		return len(d.Values(c.Path))
	case OpContains:
		for _, v := range d.Values(c.Path) {
			if v == c.Value {
				return true
			}
		}
		return false
	case OpSum:
		return sum(d.Values(c.Path))
	}
	return nil
}

func group(docs []Document, g *Group) Document {
	out := make(Document, len(g.Accumulators))
	for _, acc := range g.Accumulators {
		switch acc.Op {
		case OpCount:
			out[acc.Field] = int64(len(docs))
		case OpSum:
			var values []any
			for _, d := range docs {
				values = append(values, d.Values(acc.Path)...)
			}
			out[acc.Field] = sum(values)
		}
	}
	return out
}

// sum returns an int64 unless a floating point value is present.
func sum(values []any) any {
	var (
		ints     int64
		floats   float64
		hasFloat bool
	)
	for _, v := range values {
		switch n := v.(type) {
		case int:
			ints += int64(n)
		case int32:
			ints += int64(n)
		case int64:
			ints += n
		case uint:
			ints += int64(n)
		case uint32:
			ints += int64(n)
		case uint64:
			ints += int64(n)
		case float32:
			floats += float64(n)
			hasFloat = true
		case float64:
			floats += n
			hasFloat = true
		}
	}
	if hasFloat {
		return floats + float64(ints)
	}
	return ints
}

func window(docs []Document, w Window) []Document {
	if w.Skip >= len(docs) {
		return []Document{}
	}
	docs = docs[w.Skip:]
	if w.Limit > 0 && w.Limit < len(docs) {
		docs = docs[:w.Limit]
	}
	return docs
}
