package listview

import (
	"strconv"
	"time"
)

// Kind tells the comparator how to order two values of a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

// Value is a field value read from a record. The zero Value is a missing text value.
type Value struct {
	kind    Kind
	present bool
	num     float64
	isInt   bool
	i       int64
	text    string
	date    time.Time
}

func Number(n float64) Value {
	return Value{kind: KindNumber, present: true, num: n}
}

// Int keeps the exact integer; cédulas and phone numbers can exceed 2^53.
func Int(n int64) Value {
	return Value{kind: KindNumber, present: true, num: float64(n), isInt: true, i: n}
}

// Text treats the empty string as missing.
func Text(s string) Value {
	if s == "" {
		return Value{kind: KindText}
	}
	return Value{kind: KindText, present: true, text: s}
}

// Date treats the zero time as missing.
func Date(t time.Time) Value {
	if t.IsZero() {
		return Value{kind: KindDate}
	}
	return Value{kind: KindDate, present: true, date: t}
}

func Missing(kind Kind) Value {
	return Value{kind: kind}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Present() bool { return v.present }

// String is the form the filter stage matches against. Missing values render empty.
func (v Value) String() string {
	if !v.present {
		return ""
	}
	switch v.kind {
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.i, 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format(time.DateOnly)
	default:
		return v.text
	}
}
