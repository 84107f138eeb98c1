// Package listview derives the visible rows of a list screen from an in-memory
// collection: substring filtering on one field followed by a stable sort on up
// to two fields. Fields are read through a typed accessor table, so records
// stay plain structs.
package listview

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrUnknownField = errors.New("listview: unknown field")

// Field maps a field key to a pure getter.
type Field[T any] struct {
	Key   string
	Label string
	Kind  Kind
	Get   func(T) Value
}

// Query is everything a view needs besides the collection itself.
type Query struct {
	FilterField string
	FilterText  string
	Sort        Criteria
}

// Schema is the accessor table of one record type.
type Schema[T any] struct {
	fields []Field[T]
	index  map[string]int
	lang   language.Tag
}

// NewSchema builds a schema whose text ordering follows lang.
func NewSchema[T any](lang language.Tag, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		fields: fields,
		index:  make(map[string]int, len(fields)),
		lang:   lang,
	}
	for i, f := range fields {
		s.index[f.Key] = i
	}
	return s
}

func (s *Schema[T]) Fields() []Field[T] {
	return slices.Clone(s.fields)
}

func (s *Schema[T]) Field(key string) (Field[T], bool) {
	i, ok := s.index[key]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

func (s *Schema[T]) lookup(key string) (Field[T], error) {
	f, ok := s.Field(key)
	if !ok {
		return Field[T]{}, errors.Wrapf(ErrUnknownField, "%q", key)
	}
	return f, nil
}

// Validate checks that every key the query references exists.
func (s *Schema[T]) Validate(q Query) error {
	if q.FilterField != "" {
		if _, err := s.lookup(q.FilterField); err != nil {
			return err
		}
	}
	for _, cr := range q.Sort {
		if _, err := s.lookup(cr.Field); err != nil {
			return err
		}
	}
	return nil
}

// Filter keeps the items whose case-folded value at key contains the
// case-folded text. An empty text keeps everything. The result is a new slice.
func (s *Schema[T]) Filter(items []T, key, text string) ([]T, error) {
	if text == "" {
		return slices.Clone(items), nil
	}
	f, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	needle := fold.String(text)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(fold.String(f.Get(it).String()), needle) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Sort returns a stably sorted copy of items.
func (s *Schema[T]) Sort(items []T, criteria Criteria) ([]T, error) {
	out := slices.Clone(items)
	if len(criteria) == 0 {
		return out, nil
	}
	getters := make([]func(T) Value, len(criteria))
	for i, cr := range criteria {
		f, err := s.lookup(cr.Field)
		if err != nil {
			return nil, err
		}
		getters[i] = f.Get
	}
	c := newComparer(s.lang)
	slices.SortStableFunc(out, func(a, b T) int {
		for i, cr := range criteria {
			r, flip := c.compare(getters[i](a), getters[i](b))
			if r == 0 {
				continue
			}
			if flip && cr.Dir == Desc {
				return -r
			}
			return r
		}
		return 0
	})
	return out, nil
}

// Apply runs the filter stage and then the sort stage.
func (s *Schema[T]) Apply(items []T, q Query) ([]T, error) {
	if err := s.Validate(q); err != nil {
		return nil, err
	}
	filtered, err := s.Filter(items, q.FilterField, q.FilterText)
	if err != nil {
		return nil, err
	}
	return s.Sort(filtered, q.Sort)
}

// comparer is not safe for concurrent use; build one per sort.
type comparer struct {
	coll *collate.Collator
	fold cases.Caser
}

func newComparer(lang language.Tag) *comparer {
	return &comparer{
		coll: collate.New(lang),
		fold: cases.Fold(),
	}
}

// compare orders a and b ascending. flip is false when the result comes from
// the missing-value rule: missing values go last whatever the direction.
func (c *comparer) compare(a, b Value) (r int, flip bool) {
	switch {
	case !a.present && !b.present:
		return 0, false
	case !b.present:
		return -1, false
	case !a.present:
		return 1, false
	}
	switch a.kind {
	case KindNumber:
		if a.isInt && b.isInt {
			return cmp.Compare(a.i, b.i), true
		}
		return cmp.Compare(a.num, b.num), true
	case KindDate:
		return a.date.Compare(b.date), true
	default:
		return c.coll.CompareString(c.fold.String(a.text), c.fold.String(b.text)), true
	}
}
