package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"gestion-bot/internal/app/screen"
	"gestion-bot/internal/domain"
	"gestion-bot/pkg/listview"
)

func TestParseSets(t *testing.T) {
	pairs, err := parseSets([]string{"nombre=Ana María", "telefono=", "correo=a=b@x.com"})
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"nombre", "Ana María"}, {"telefono", ""}, {"correo", "a=b@x.com"}}, pairs)

	_, err = parseSets([]string{"nombre"})
	require.Error(t, err)
	_, err = parseSets([]string{"=x"})
	require.Error(t, err)
}

func TestParseSortFlags(t *testing.T) {
	crit, err := parseSortFlags([]string{"nivel", "sueldo_base:desc"})
	require.NoError(t, err)
	require.Equal(t, listview.Criteria{{Field: "nivel", Dir: listview.Asc}, {Field: "sueldo_base", Dir: listview.Desc}}, crit)

	crit, err = parseSortFlags(nil)
	require.NoError(t, err)
	require.Empty(t, crit)

	_, err = parseSortFlags([]string{"a", "b", "c"})
	require.Error(t, err)
}

func TestWriteTable_MissingAsDash(t *testing.T) {
	var buf bytes.Buffer
	rows := []domain.Employee{{Cedula: 12345678, Name: "Ana"}}
	require.NoError(t, writeTable(&buf, screen.EmployeeSchema(language.Spanish, time.Now), rows))

	out := buf.String()
	require.Contains(t, out, "Cédula")
	require.Contains(t, out, "12345678")
	require.Contains(t, out, "Ana")
	require.Contains(t, out, "-")
}

func TestRootCmd_Tree(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{{"bot"}, {"empleados", "list"}, {"cargos", "update"}, {"empleados", "delete"}} {
		found, _, err := root.Find(path)
		require.NoError(t, err)
		require.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestListQuery_FilterWithoutFieldUsesFallback(t *testing.T) {
	q, err := listQuery("", "an", "nombre", nil)
	require.NoError(t, err)
	require.Equal(t, "nombre", q.FilterField)

	rows := []domain.Position{{ID: 1, Name: "Analista"}, {ID: 2, Name: "Gerente"}}
	got, err := screen.PositionSchema(language.Spanish).Apply(rows, q)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)

	q, err = listQuery("nivel", "2", "nombre", []string{"id:desc"})
	require.NoError(t, err)
	require.Equal(t, "nivel", q.FilterField)
	require.Equal(t, listview.Criteria{{Field: "id", Dir: listview.Desc}}, q.Sort)
}
