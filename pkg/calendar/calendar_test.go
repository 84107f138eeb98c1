package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuild_LeapFebruary(t *testing.T) {
	title, markup := Build("empleados.fecha_ingreso", 2024, time.February)
	require.Equal(t, "Seleccione una fecha: Febrero 2024", title)

	var days int
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			if b.Unique == DayUnique {
				days++
			}
		}
	}
	require.Equal(t, 29, days)

	last := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	require.Len(t, last, 4)
	require.Equal(t, "empleados.fecha_ingreso|2023-02", last[0].Data)
	require.Equal(t, "empleados.fecha_ingreso|2024-03", last[2].Data)
}

func TestParse(t *testing.T) {
	ev, ok := Parse(DayUnique, "empleados.fecha_nacimiento|1990-05-17")
	require.True(t, ok)
	require.True(t, ev.Day)
	require.Equal(t, "empleados.fecha_nacimiento", ev.Tag)
	require.Equal(t, time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC), ev.Date)

	ev, ok = Parse(NavUnique, "x|2023-12")
	require.True(t, ok)
	require.False(t, ev.Day)
	require.Equal(t, time.December, ev.Date.Month())

	_, ok = Parse(DayUnique, "1990-05-17")
	require.False(t, ok)
	_, ok = Parse("cal_other", "x|2023-12")
	require.False(t, ok)
}
