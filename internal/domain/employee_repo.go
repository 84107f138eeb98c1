package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// EmployeeRepo is the remote collection of employees, keyed by cédula.
type EmployeeRepo interface {
	GetAllEmployees(ctx context.Context) ([]Employee, error)
	AddEmployee(ctx context.Context, in EmployeeInput) (Employee, error)
	UpdateEmployee(ctx context.Context, cedula int64, in EmployeeInput) (Employee, error)
	DeleteEmployee(ctx context.Context, cedula int64) error
}

type Employee struct {
	Cedula    int64  `json:"cedula"`
	Name      string `json:"nombre"`
	Position  string `json:"cargo"`
	BirthDate Date   `json:"fecha_nacimiento"`
	Sex       string `json:"sexo"`
	HireDate  Date   `json:"fecha_ingreso"`
	Phone     *int64 `json:"telefono"`
	Email     string `json:"correo"`
	Status    int    `json:"estatus"`
}

// Age is derived from the birth date; ok is false when it is unknown.
func (e Employee) Age(now time.Time) (age int, ok bool) {
	if e.BirthDate.IsZero() {
		return 0, false
	}
	return AgeAt(e.BirthDate.Time, now), true
}

// EmployeeInput is the body of add and update requests.
type EmployeeInput struct {
	Cedula    int64  `json:"cedula" validate:"gt=0"`
	Name      string `json:"nombre" validate:"required"`
	Position  string `json:"cargo"`
	BirthDate Date   `json:"fecha_nacimiento"`
	Sex       string `json:"sexo,omitempty" validate:"omitempty,oneof=M F"`
	HireDate  Date   `json:"fecha_ingreso"`
	Phone     *int64 `json:"telefono,omitempty" validate:"omitempty,gte=0"`
	Email     string `json:"correo,omitempty" validate:"omitempty,email"`
}

// EmployeeForm is the draft edited field by field; every value stays a
// string until the form is submitted.
type EmployeeForm struct {
	Cedula    string
	Name      string
	Position  string
	BirthDate string
	Sex       string
	HireDate  string
	Phone     string
	Email     string
}

var EmployeeFormFields = []FormField{
	{Key: "cedula", Label: "Cédula", Kind: FieldNumber, Required: true},
	{Key: "nombre", Label: "Nombre", Kind: FieldText, Required: true},
	{Key: "cargo", Label: "Cargo", Kind: FieldText},
	{Key: "fecha_nacimiento", Label: "Fecha de nacimiento", Kind: FieldDate},
	{Key: "sexo", Label: "Sexo", Kind: FieldText},
	{Key: "fecha_ingreso", Label: "Fecha de ingreso", Kind: FieldDate},
	{Key: "telefono", Label: "Teléfono", Kind: FieldNumber},
	{Key: "correo", Label: "Correo", Kind: FieldText},
}

func EmployeeFormOf(e Employee) EmployeeForm {
	f := EmployeeForm{
		Cedula:    strconv.FormatInt(e.Cedula, 10),
		Name:      e.Name,
		Position:  e.Position,
		BirthDate: e.BirthDate.String(),
		Sex:       e.Sex,
		HireDate:  e.HireDate.String(),
		Email:     e.Email,
	}
	if e.Phone != nil {
		f.Phone = strconv.FormatInt(*e.Phone, 10)
	}
	return f
}

func (f *EmployeeForm) ptr(field string) (*string, error) {
	switch field {
	case "cedula":
		return &f.Cedula, nil
	case "nombre":
		return &f.Name, nil
	case "cargo":
		return &f.Position, nil
	case "fecha_nacimiento":
		return &f.BirthDate, nil
	case "sexo":
		return &f.Sex, nil
	case "fecha_ingreso":
		return &f.HireDate, nil
	case "telefono":
		return &f.Phone, nil
	case "correo":
		return &f.Email, nil
	}
	return nil, ErrUnknownFormField
}

func (f *EmployeeForm) Set(field, value string) error {
	p, err := f.ptr(field)
	if err != nil {
		return err
	}
	*p = strings.TrimSpace(value)
	return nil
}

func (f EmployeeForm) Get(field string) string {
	p, err := f.ptr(field)
	if err != nil {
		return ""
	}
	return *p
}

// Input parses the draft. Required fields, numbers and dates are checked here;
// struct rules are left to the validator.
func (f EmployeeForm) Input() (EmployeeInput, error) {
	const op = "validar empleado"
	var in EmployeeInput

	if f.Cedula == "" {
		return in, ValidationError(op, "La cédula es requerida.")
	}
	cedula, err := strconv.ParseInt(f.Cedula, 10, 64)
	if err != nil {
		return in, ValidationError(op, "La cédula debe ser un número.")
	}
	if cedula <= 0 {
		return in, ValidationError(op, "La cédula debe ser un número positivo.")
	}
	if f.Name == "" {
		return in, ValidationError(op, "El nombre es requerido.")
	}
	in.Cedula = cedula
	in.Name = f.Name
	in.Position = f.Position
	in.Sex = normalizeSex(f.Sex)
	in.Email = f.Email

	if f.BirthDate != "" {
		if in.BirthDate, err = ParseDate(f.BirthDate); err != nil {
			return in, ValidationError(op, "Formato de fecha de nacimiento inválido (YYYY-MM-DD).")
		}
	}
	if f.HireDate != "" {
		if in.HireDate, err = ParseDate(f.HireDate); err != nil {
			return in, ValidationError(op, "Formato de fecha de ingreso inválido (YYYY-MM-DD).")
		}
	}
	if f.Phone != "" {
		phone, err := strconv.ParseInt(f.Phone, 10, 64)
		if err != nil || phone < 0 {
			return in, ValidationError(op, "El teléfono debe ser un número.")
		}
		in.Phone = &phone
	}
	return in, nil
}

// normalizeSex accepts "M", "f", "Masculino" or "femenino".
func normalizeSex(s string) string {
	s = strings.ToUpper(s)
	if len(s) > 1 && (s[0] == 'M' || s[0] == 'F') {
		return s[:1]
	}
	return s
}
