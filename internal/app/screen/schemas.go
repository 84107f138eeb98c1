package screen

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"gestion-bot/internal/domain"
	"gestion-bot/pkg/listview"
)

const (
	EmployeesName = "empleados"
	PositionsName = "cargos"
)

type (
	Employees = Screen[domain.Employee, int64, domain.EmployeeForm]
	Positions = Screen[domain.Position, int64, domain.PositionForm]
)

func EmployeeSchema(lang language.Tag, now func() time.Time) *listview.Schema[domain.Employee] {
	type e = domain.Employee
	return listview.NewSchema(lang,
		listview.Field[e]{Key: "cedula", Label: "Cédula", Kind: listview.KindNumber,
			Get: func(x e) listview.Value { return listview.Int(x.Cedula) }},
		listview.Field[e]{Key: "nombre", Label: "Nombre", Kind: listview.KindText,
			Get: func(x e) listview.Value { return listview.Text(x.Name) }},
		listview.Field[e]{Key: "cargo", Label: "Cargo", Kind: listview.KindText,
			Get: func(x e) listview.Value { return listview.Text(x.Position) }},
		listview.Field[e]{Key: "edad", Label: "Edad", Kind: listview.KindNumber,
			Get: func(x e) listview.Value {
				age, ok := x.Age(now())
				if !ok {
					return listview.Missing(listview.KindNumber)
				}
				return listview.Int(int64(age))
			}},
		listview.Field[e]{Key: "sexo", Label: "Sexo", Kind: listview.KindText,
			Get: func(x e) listview.Value { return listview.Text(x.Sex) }},
		listview.Field[e]{Key: "fecha_nacimiento", Label: "Nacimiento", Kind: listview.KindDate,
			Get: func(x e) listview.Value { return listview.Date(x.BirthDate.Time) }},
		listview.Field[e]{Key: "fecha_ingreso", Label: "Ingreso", Kind: listview.KindDate,
			Get: func(x e) listview.Value { return listview.Date(x.HireDate.Time) }},
		listview.Field[e]{Key: "telefono", Label: "Teléfono", Kind: listview.KindNumber,
			Get: func(x e) listview.Value {
				if x.Phone == nil {
					return listview.Missing(listview.KindNumber)
				}
				return listview.Int(*x.Phone)
			}},
		listview.Field[e]{Key: "correo", Label: "Correo", Kind: listview.KindText,
			Get: func(x e) listview.Value { return listview.Text(x.Email) }},
	)
}

func PositionSchema(lang language.Tag) *listview.Schema[domain.Position] {
	type p = domain.Position
	return listview.NewSchema(lang,
		listview.Field[p]{Key: "id", Label: "ID", Kind: listview.KindNumber,
			Get: func(x p) listview.Value { return listview.Int(x.ID) }},
		listview.Field[p]{Key: "nombre", Label: "Nombre", Kind: listview.KindText,
			Get: func(x p) listview.Value { return listview.Text(x.Name) }},
		listview.Field[p]{Key: "nivel", Label: "Nivel", Kind: listview.KindNumber,
			Get: func(x p) listview.Value { return listview.Int(int64(x.Level)) }},
		listview.Field[p]{Key: "sueldo_base", Label: "Sueldo base", Kind: listview.KindNumber,
			Get: func(x p) listview.Value { return listview.Number(x.BaseSalary.InexactFloat64()) }},
	)
}

func NewEmployees(res Resource[domain.Employee, int64, domain.EmployeeForm], lang language.Tag, now func() time.Time, log logrus.FieldLogger) *Employees {
	return New(EmployeesName, res, EmployeeSchema(lang, now), log)
}

func NewPositions(res Resource[domain.Position, int64, domain.PositionForm], lang language.Tag, log logrus.FieldLogger) *Positions {
	return New(PositionsName, res, PositionSchema(lang), log)
}
