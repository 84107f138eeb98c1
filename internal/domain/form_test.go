package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEmployeeForm_Input(t *testing.T) {
	var f EmployeeForm
	require.NoError(t, f.Set("cedula", " 12345678 "))
	require.NoError(t, f.Set("nombre", "Ana Pérez"))
	require.NoError(t, f.Set("fecha_ingreso", "2020-02-01"))
	require.NoError(t, f.Set("telefono", "4125551234"))
	require.NoError(t, f.Set("sexo", "femenino"))
	require.ErrorIs(t, f.Set("sueldo", "1"), ErrUnknownFormField)

	in, err := f.Input()
	require.NoError(t, err)
	require.Equal(t, int64(12345678), in.Cedula)
	require.Equal(t, "F", in.Sex)
	require.Equal(t, NewDate(2020, time.February, 1), in.HireDate)
	require.NotNil(t, in.Phone)
	require.Equal(t, int64(4125551234), *in.Phone)
	require.True(t, in.BirthDate.IsZero())
}

func TestEmployeeForm_InputRejects(t *testing.T) {
	cases := map[string]EmployeeForm{
		"La cédula es requerida.":                            {Name: "Ana"},
		"La cédula debe ser un número.":                      {Cedula: "12a", Name: "Ana"},
		"El nombre es requerido.":                            {Cedula: "1"},
		"Formato de fecha de ingreso inválido (YYYY-MM-DD).": {Cedula: "1", Name: "Ana", HireDate: "01/02/2020"},
	}
	for want, f := range cases {
		_, err := f.Input()
		require.True(t, IsKind(err, KindValidation), want)
		require.Equal(t, want, UserMessage(err))
	}
}

func TestEmployeeFormOf_RoundTrips(t *testing.T) {
	phone := int64(5551234)
	e := Employee{Cedula: 7, Name: "Luis", BirthDate: NewDate(1985, time.March, 3), Phone: &phone}
	f := EmployeeFormOf(e)
	require.Equal(t, "7", f.Get("cedula"))
	require.Equal(t, "1985-03-03", f.Get("fecha_nacimiento"))
	require.Equal(t, "5551234", f.Get("telefono"))
	require.Equal(t, "", f.Get("fecha_ingreso"))
}

func TestPositionForm_Input(t *testing.T) {
	f := PositionForm{Name: "Analista", Level: "2", BaseSalary: "1500,50"}
	in, err := f.Input()
	require.NoError(t, err)
	require.Equal(t, 2, in.Level)
	require.True(t, decimal.RequireFromString("1500.5").Equal(in.BaseSalary))

	b, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"nombre":"Analista","nivel":2,"sueldo_base":1500.5}`, string(b))
}

func TestPositionForm_InputRejects(t *testing.T) {
	for _, f := range []PositionForm{
		{Level: "1", BaseSalary: "10"},
		{Name: "x", Level: "uno", BaseSalary: "10"},
		{Name: "x", Level: "1", BaseSalary: "diez"},
		{Name: "x", Level: "1", BaseSalary: "-5"},
	} {
		_, err := f.Input()
		require.True(t, IsKind(err, KindValidation), "%+v", f)
	}
}

func TestUserMessage_StatusWithoutMessage(t *testing.T) {
	err := &Error{Kind: KindStatus, Op: "listar", Status: 503}
	require.Equal(t, "La solicitud falló. Estado: 503", UserMessage(err))
}
