package telegram

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"gestion-bot/internal/app/screen"
	"gestion-bot/internal/app/service"
	"gestion-bot/internal/domain"
)

const labelWidth = 22

func shorten(s string) string {
	if utf8.RuneCountInString(s) <= labelWidth {
		return s
	}
	r := []rune(s)
	return string(r[:labelWidth-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newEmployeeView(s *screen.Employees, now func() time.Time, positionNames func() []string) view {
	return &screenView[domain.Employee, domain.EmployeeForm]{
		s:          s,
		title:      "Empleados",
		singular:   "empleado",
		columns:    []string{"cedula", "nombre", "cargo", "edad", "fecha_ingreso"},
		formFields: domain.EmployeeFormFields,
		keyField:   "cedula",
		cell: func(e domain.Employee, key string) string {
			switch key {
			case "cedula":
				return strconv.FormatInt(e.Cedula, 10)
			case "nombre":
				return shorten(e.Name)
			case "cargo":
				return orDash(shorten(e.Position))
			case "edad":
				if age, ok := e.Age(now()); ok {
					return strconv.Itoa(age)
				}
				return "-"
			case "sexo":
				return orDash(e.Sex)
			case "fecha_nacimiento":
				return e.BirthDate.Display()
			case "fecha_ingreso":
				return e.HireDate.Display()
			case "telefono":
				if e.Phone == nil {
					return "-"
				}
				return strconv.FormatInt(*e.Phone, 10)
			case "correo":
				return orDash(e.Email)
			}
			return ""
		},
		rowLabel: func(e domain.Employee) string { return shorten(e.Name) },
		draftValue: func(f domain.EmployeeForm, field string) string {
			return f.Get(field)
		},
		hint: func(f domain.EmployeeForm) string {
			return positionHint(f.Position, positionNames())
		},
	}
}

// positionHint warns about a cargo that matches no known position name and
// suggests the closest ones. The value is kept either way.
func positionHint(typed string, names []string) string {
	if typed == "" || len(names) == 0 {
		return ""
	}
	fold := cases.Fold()
	for _, n := range names {
		if fold.String(n) == fold.String(typed) {
			return ""
		}
	}
	suggestions := service.SuggestNames(typed, names, 3)
	if len(suggestions) == 0 {
		return "El cargo «" + typed + "» no está registrado."
	}
	return "El cargo «" + typed + "» no está registrado. Sugerencias: " + strings.Join(suggestions, ", ")
}

func newPositionView(s *screen.Positions) view {
	return &screenView[domain.Position, domain.PositionForm]{
		s:          s,
		title:      "Cargos",
		singular:   "cargo",
		columns:    []string{"id", "nombre", "nivel", "sueldo_base"},
		formFields: domain.PositionFormFields,
		keyField:   "id",
		cell: func(p domain.Position, key string) string {
			switch key {
			case "id":
				return strconv.FormatInt(p.ID, 10)
			case "nombre":
				return shorten(p.Name)
			case "nivel":
				return strconv.Itoa(p.Level)
			case "sueldo_base":
				return p.BaseSalary.StringFixed(2)
			}
			return ""
		},
		rowLabel: func(p domain.Position) string { return shorten(p.Name) },
		draftValue: func(f domain.PositionForm, field string) string {
			return f.Get(field)
		},
	}
}
