package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

var (
	// ErrUnknownCollection is returned when a plan names an unregistered collection.
	ErrUnknownCollection = errors.New("docstore: unknown collection")
	// ErrUnknownField is returned when a filter, sort or expansion names an unmapped field.
	ErrUnknownField = errors.New("docstore: unknown field")
)

// Filter matches documents by field equality. A slice value matches any of its elements.
type Filter map[string]any

// Sort orders a query by a document field.
type Sort struct {
	Field string
	Desc  bool
}

// Query is a single-collection read.
type Query struct {
	Filter Filter
	Sort   []Sort
	// Offset is only applied together with a positive Limit.
	Offset int
	Limit  int
	// Expand names derived array fields to load (for example a user's watch history).
	Expand []string
}

// Collection is the read side of the entity store.
type Collection interface {
	Name() string
	Find(ctx context.Context, q Query) ([]Document, error)
}

// Expander loads a derived field for a batch of documents in place.
type Expander func(ctx context.Context, db *gorm.DB, docs []Document) error

// CollectionSpec describes how a GORM model is exposed as documents.
type CollectionSpec[M any] struct {
	Name string
	// Columns maps document fields to table columns. Only mapped fields can be filtered or sorted.
	Columns map[string]string
	// ToDocument renders a row. It decides which fields are ever visible.
	ToDocument func(*M) Document
	Expanders  map[string]Expander
}

// ModelCollection is a Collection backed by a GORM model.
type ModelCollection[M any] struct {
	db   *gorm.DB
	spec CollectionSpec[M]
}

// NewModelCollection creates a collection over model M.
func NewModelCollection[M any](db *gorm.DB, spec CollectionSpec[M]) *ModelCollection[M] {
	return &ModelCollection[M]{db: db, spec: spec}
}

func (c *ModelCollection[M]) Name() string {
	return c.spec.Name
}

// Find runs q against the model's table. Results are ordered by id unless q.Sort is set.
func (c *ModelCollection[M]) Find(ctx context.Context, q Query) ([]Document, error) {
	tx := c.db.WithContext(ctx).Model(new(M))

	fields := make([]string, 0, len(q.Filter))
	for f := range q.Filter {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		col, err := c.column(f)
		if err != nil {
			return nil, err
		}
		if values, ok := asSlice(q.Filter[f]); ok {
			if len(values) == 0 {
				return []Document{}, nil
			}
			tx = tx.Where(col+" IN ?", values)
			continue
		}
		tx = tx.Where(col+" = ?", q.Filter[f])
	}

	if len(q.Sort) == 0 {
		q.Sort = []Sort{{Field: "id"}}
	}
	for _, s := range q.Sort {
		col, err := c.column(s.Field)
		if err != nil {
			return nil, err
		}
		if s.Desc {
			tx = tx.Order(col + " DESC")
		} else {
			tx = tx.Order(col + " ASC")
		}
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
		if q.Offset > 0 {
			tx = tx.Offset(q.Offset)
		}
	}

	var rows []M
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("docstore: find %s: %w", c.spec.Name, err)
	}

	docs := make([]Document, len(rows))
	for i := range rows {
		docs[i] = c.spec.ToDocument(&rows[i])
	}

	for _, name := range q.Expand {
		expand, ok := c.spec.Expanders[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, c.spec.Name, name)
		}
		if len(docs) == 0 {
			continue
		}
		if err := expand(ctx, c.db.WithContext(ctx), docs); err != nil {
			return nil, fmt.Errorf("docstore: expand %s.%s: %w", c.spec.Name, name, err)
		}
	}
	return docs, nil
}

func (c *ModelCollection[M]) column(field string) (string, error) {
	col, ok := c.spec.Columns[field]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownField, c.spec.Name, field)
	}
	return col, nil
}
