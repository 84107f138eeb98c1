package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"gestion-bot/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldLabels = map[string]string{
	"Cedula":   "La cédula",
	"Name":     "El nombre",
	"Sex":      "El sexo",
	"Phone":    "El teléfono",
	"Email":    "El correo",
	"Level":    "El nivel",
	"Position": "El cargo",
}

// checkStruct runs the struct rules and reports the first failure as a
// validation error.
func checkStruct(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.Error{Kind: domain.KindValidation, Op: op, Err: err}
	}
	return domain.ValidationError(op, ruleMessage(verrs[0]))
}

func ruleMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.StructField()]
	if !ok {
		label = "El campo " + fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " es requerido."
	case "gt", "gte":
		return label + " debe ser un número positivo."
	case "email":
		return label + " no es una dirección válida."
	case "oneof":
		return label + " debe ser uno de: " + fe.Param() + "."
	}
	return label + " no es válido."
}
