package keyboards

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"

	"gestion-bot/pkg/listview"
)

func buttons(m *telebot.ReplyMarkup) []telebot.InlineButton {
	var out []telebot.InlineButton
	for _, row := range m.InlineKeyboard {
		out = append(out, row...)
	}
	return out
}

func TestSortLabel(t *testing.T) {
	crit := listview.Criteria{{Field: "nivel", Dir: listview.Asc}, {Field: "sueldo_base", Dir: listview.Desc}}
	require.Equal(t, "Nivel ↑1", SortLabel("Nivel", crit, "nivel"))
	require.Equal(t, "Sueldo ↓2", SortLabel("Sueldo", crit, "sueldo_base"))
	require.Equal(t, "Nombre", SortLabel("Nombre", crit, "nombre"))
	require.Equal(t, "Nivel ↓", SortLabel("Nivel", listview.Criteria{{Field: "nivel", Dir: listview.Desc}}, "nivel"))
}

func TestList_CallbackData(t *testing.T) {
	m := List(ListSpec{
		Screen:   "cargos",
		Sortable: []Column{{Key: "nombre", Label: "Nombre"}, {Key: "nivel", Label: "Nivel"}},
		Rows:     []RowRef{{Key: "4", Label: "Analista"}, {Key: "7", Label: "Gerente"}, {Key: "9", Label: "Chofer"}},
	})
	bs := buttons(m)
	require.Equal(t, "sort", bs[0].Unique)
	require.Equal(t, "cargos|nombre", bs[0].Data)
	require.Equal(t, "row", bs[2].Unique)
	require.Equal(t, "cargos|4", bs[2].Data)

	for _, b := range bs {
		require.LessOrEqual(t, len("\f"+b.Unique+"|"+b.Data), 64, b.Text)
	}
	last := m.InlineKeyboard[len(m.InlineKeyboard)-1]
	require.Equal(t, "new", last[0].Unique)
	require.Equal(t, "reload", last[2].Unique)
}

func TestForm_LockedKey(t *testing.T) {
	m := Form("empleados", []FormButton{
		{Key: "cedula", Label: "Cédula", Value: "123", Locked: true},
		{Key: "nombre", Label: "Nombre"},
	})
	bs := buttons(m)
	require.Equal(t, "🔒 Cédula: 123", bs[0].Text)
	require.Equal(t, "Nombre: —", bs[1].Text)
	require.Equal(t, "empleados|nombre", bs[1].Data)
	require.Equal(t, "frm_save", bs[2].Unique)
}

func TestMonthKeyboard(t *testing.T) {
	title, m := BuildMonthKeyboard("debito_cargo", 2024)
	require.Equal(t, "Seleccione el mes: 2024", title)
	bs := buttons(m)
	require.Equal(t, "Ene", bs[0].Text)
	require.Equal(t, "debito_cargo|2024-01", bs[0].Data)
	require.Equal(t, "debito_cargo|2024-12", bs[11].Data)
	require.Equal(t, "debito_cargo|2023", bs[12].Data)
}

func TestPaymentsMenu_AllActions(t *testing.T) {
	_, m := PaymentsMenu()
	var acts []string
	for _, b := range buttons(m) {
		if b.Unique == "pay_act" {
			acts = append(acts, b.Data)
		}
	}
	require.Equal(t, []string{"credito_empleado", "credito_cargo", "debito_empleado", "debito_cargo"}, acts)
}
