package domain

import "github.com/pkg/errors"

var ErrUnknownFormField = errors.New("campo desconocido")

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldDate
)

// FormField describes one input of a create/edit form.
type FormField struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
}
