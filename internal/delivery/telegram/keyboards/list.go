package keyboards

import (
	"strconv"

	"gopkg.in/telebot.v3"

	"gestion-bot/pkg/listview"
)

type Column struct {
	Key   string
	Label string
}

// RowRef is one visible record: its key as callback text and a short label.
type RowRef struct {
	Key   string
	Label string
}

type ListSpec struct {
	Screen   string
	Sortable []Column
	Sort     listview.Criteria
	Rows     []RowRef
	Filtered bool
}

// SortLabel decorates a header with its direction and, when two criteria
// are active, its priority.
func SortLabel(label string, crit listview.Criteria, key string) string {
	for i, cr := range crit {
		if cr.Field != key {
			continue
		}
		arrow := "↑"
		if cr.Dir == listview.Desc {
			arrow = "↓"
		}
		if len(crit) > 1 {
			return label + " " + arrow + strconv.Itoa(i+1)
		}
		return label + " " + arrow
	}
	return label
}

func List(spec ListSpec) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row

	header := telebot.Row{}
	for _, col := range spec.Sortable {
		header = append(header, markup.Data(SortLabel(col.Label, spec.Sort, col.Key), "sort", spec.Screen, col.Key))
		if len(header) == 3 {
			rows = append(rows, header)
			header = telebot.Row{}
		}
	}
	if len(header) > 0 {
		rows = append(rows, header)
	}

	line := telebot.Row{}
	for _, r := range spec.Rows {
		line = append(line, markup.Data(r.Label, "row", spec.Screen, r.Key))
		if len(line) == 2 {
			rows = append(rows, line)
			line = telebot.Row{}
		}
	}
	if len(line) > 0 {
		rows = append(rows, line)
	}

	filter := "🔍 Filtrar"
	if spec.Filtered {
		filter = "🔍 Filtro activo"
	}
	rows = append(rows, markup.Row(
		markup.Data("➕ Nuevo", "new", spec.Screen),
		markup.Data(filter, "flt", spec.Screen),
		markup.Data("🔄", "reload", spec.Screen),
	))
	markup.Inline(rows...)
	return markup
}

func FilterFields(screen string, fields []Column, current string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	line := telebot.Row{}
	for _, f := range fields {
		label := f.Label
		if f.Key == current {
			label = "• " + label
		}
		line = append(line, markup.Data(label, "flt_field", screen, f.Key))
		if len(line) == 3 {
			rows = append(rows, line)
			line = telebot.Row{}
		}
	}
	if len(line) > 0 {
		rows = append(rows, line)
	}
	rows = append(rows, markup.Row(
		markup.Data("✖ Quitar filtro", "flt_clear", screen),
		markup.Data("⬅ Volver", "back", screen),
	))
	markup.Inline(rows...)
	return markup
}

func RowMenu(screen, key string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("✏️ Editar", "edit", screen, key),
			markup.Data("🗑 Eliminar", "del", screen, key),
		),
		markup.Row(markup.Data("⬅ Volver", "back", screen)),
	)
	return markup
}

func ConfirmDelete(screen, key string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Sí, eliminar", "del_yes", screen, key),
		markup.Data("Cancelar", "del_no", screen),
	))
	return markup
}

type FormButton struct {
	Key    string
	Label  string
	Value  string
	Locked bool
}

func Form(screen string, fields []FormButton) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	for _, f := range fields {
		value := f.Value
		if value == "" {
			value = "—"
		}
		text := f.Label + ": " + value
		if f.Locked {
			text = "🔒 " + text
		}
		rows = append(rows, markup.Row(markup.Data(text, "frm_field", screen, f.Key)))
	}
	rows = append(rows, markup.Row(
		markup.Data("💾 Guardar", "frm_save", screen),
		markup.Data("✖ Cancelar", "frm_cancel", screen),
	))
	markup.Inline(rows...)
	return markup
}
