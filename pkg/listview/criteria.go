package listview

import (
	"fmt"
	"strings"
)

// MaxCriteria is the number of sort keys a view keeps at once.
const MaxCriteria = 2

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Asc, fmt.Errorf("listview: unknown sort direction %q", s)
}

type Criterion struct {
	Field string
	Dir   Direction
}

func (c Criterion) String() string {
	return c.Field + ":" + c.Dir.String()
}

// Criteria is an ordered list of sort keys, primary first.
type Criteria []Criterion

// Toggle returns the criteria after a click on field's header:
// absent fields are appended ascending (overwriting the second slot when full),
// ascending flips to descending, descending is removed.
func (c Criteria) Toggle(field string) Criteria {
	next := make(Criteria, len(c))
	copy(next, c)

	for i, cr := range next {
		if cr.Field != field {
			continue
		}
		if cr.Dir == Asc {
			next[i].Dir = Desc
			return next
		}
		return append(next[:i], next[i+1:]...)
	}

	if len(next) < MaxCriteria {
		return append(next, Criterion{Field: field, Dir: Asc})
	}
	next[MaxCriteria-1] = Criterion{Field: field, Dir: Asc}
	return next
}

func (c Criteria) Find(field string) (Criterion, bool) {
	for _, cr := range c {
		if cr.Field == field {
			return cr, true
		}
	}
	return Criterion{}, false
}

// String encodes the criteria as "field:dir,field:dir".
func (c Criteria) String() string {
	parts := make([]string, len(c))
	for i, cr := range c {
		parts[i] = cr.String()
	}
	return strings.Join(parts, ",")
}

// ParseCriterion reads "field" or "field:asc|desc".
func ParseCriterion(s string) (Criterion, error) {
	field, dir, _ := strings.Cut(strings.TrimSpace(s), ":")
	if field == "" {
		return Criterion{}, fmt.Errorf("listview: empty sort field in %q", s)
	}
	d, err := ParseDirection(dir)
	if err != nil {
		return Criterion{}, err
	}
	return Criterion{Field: field, Dir: d}, nil
}

// ParseCriteria is the inverse of Criteria.String.
func ParseCriteria(s string) (Criteria, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out Criteria
	for _, part := range strings.Split(s, ",") {
		cr, err := ParseCriterion(part)
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	if len(out) > MaxCriteria {
		return nil, fmt.Errorf("listview: at most %d sort criteria, got %d", MaxCriteria, len(out))
	}
	return out, nil
}
