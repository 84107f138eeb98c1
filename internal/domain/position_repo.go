package domain

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PositionRepo is the remote collection of positions, keyed by id.
type PositionRepo interface {
	GetAllPositions(ctx context.Context) ([]Position, error)
	AddPosition(ctx context.Context, in PositionInput) (Position, error)
	UpdatePosition(ctx context.Context, id int64, in PositionInput) (Position, error)
	DeletePosition(ctx context.Context, id int64) error
}

type Position struct {
	ID         int64           `json:"id"`
	Name       string          `json:"nombre"`
	Level      int             `json:"nivel"`
	BaseSalary decimal.Decimal `json:"sueldo_base"`
	Status     int             `json:"estatus"`
}

type PositionInput struct {
	Name       string          `validate:"required"`
	Level      int             `validate:"gte=0"`
	BaseSalary decimal.Decimal `validate:"-"`
}

// MarshalJSON sends the salary as a JSON number; the API rejects strings.
func (in PositionInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string      `json:"nombre"`
		Level      int         `json:"nivel"`
		BaseSalary json.Number `json:"sueldo_base"`
	}{
		Name:       in.Name,
		Level:      in.Level,
		BaseSalary: json.Number(in.BaseSalary.String()),
	})
}

type PositionForm struct {
	Name       string
	Level      string
	BaseSalary string
}

var PositionFormFields = []FormField{
	{Key: "nombre", Label: "Nombre", Kind: FieldText, Required: true},
	{Key: "nivel", Label: "Nivel", Kind: FieldNumber, Required: true},
	{Key: "sueldo_base", Label: "Sueldo base", Kind: FieldNumber, Required: true},
}

func PositionFormOf(p Position) PositionForm {
	return PositionForm{
		Name:       p.Name,
		Level:      strconv.Itoa(p.Level),
		BaseSalary: p.BaseSalary.StringFixed(2),
	}
}

func (f *PositionForm) ptr(field string) (*string, error) {
	switch field {
	case "nombre":
		return &f.Name, nil
	case "nivel":
		return &f.Level, nil
	case "sueldo_base":
		return &f.BaseSalary, nil
	}
	return nil, ErrUnknownFormField
}

func (f *PositionForm) Set(field, value string) error {
	p, err := f.ptr(field)
	if err != nil {
		return err
	}
	*p = strings.TrimSpace(value)
	return nil
}

func (f PositionForm) Get(field string) string {
	p, err := f.ptr(field)
	if err != nil {
		return ""
	}
	return *p
}

func (f PositionForm) Input() (PositionInput, error) {
	const op = "validar cargo"
	var in PositionInput

	if f.Name == "" {
		return in, ValidationError(op, "El nombre es requerido.")
	}
	if f.Level == "" {
		return in, ValidationError(op, "El nivel es requerido.")
	}
	level, err := strconv.Atoi(f.Level)
	if err != nil || level < 0 {
		return in, ValidationError(op, "El nivel debe ser un número entero.")
	}
	if f.BaseSalary == "" {
		return in, ValidationError(op, "El sueldo base es requerido.")
	}
	salary, err := decimal.NewFromString(strings.ReplaceAll(f.BaseSalary, ",", "."))
	if err != nil {
		return in, ValidationError(op, "El sueldo base debe ser un número.")
	}
	if salary.IsNegative() {
		return in, ValidationError(op, "El sueldo base no puede ser negativo.")
	}
	in.Name = f.Name
	in.Level = level
	in.BaseSalary = salary
	return in, nil
}
