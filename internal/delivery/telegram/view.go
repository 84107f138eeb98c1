package telegram

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/telebot.v3"

	"gestion-bot/internal/app/screen"
	"gestion-bot/internal/delivery/telegram/keyboards"
	"gestion-bot/internal/domain"
	"gestion-bot/pkg/listview"
)

// maxRows caps one list message; narrow the filter to see the rest.
const maxRows = 30

// maxRowButtons caps the per-record buttons under a list.
const maxRowButtons = 20

// view is a screen as the chat sees it, with record keys carried as text.
type view interface {
	Name() string
	Title() string
	Load(ctx context.Context) error
	Leave()
	Render(notice string) (string, *telebot.ReplyMarkup)
	RenderRow(key string) (string, *telebot.ReplyMarkup, error)
	FilterColumns() []keyboards.Column
	ToggleSort(field string) error
	SetFilterField(field string) error
	SetFilterText(text string)
	Query() listview.Query
	SetQuery(q listview.Query) error
	OpenCreate()
	OpenEdit(key string) error
	FormField(field string) (domain.FormField, bool)
	FieldLocked(field string) bool
	SetField(field, value string) error
	RenderForm(notice string) (string, *telebot.ReplyMarkup)
	FormOpen() bool
	CloseForm()
	Submit(ctx context.Context) error
	Delete(ctx context.Context, key string) error
}

// screenView adapts a typed screen to the chat.
type screenView[T any, F any] struct {
	s          *screen.Screen[T, int64, F]
	title      string
	singular   string
	columns    []string
	formFields []domain.FormField
	keyField   string
	cell       func(rec T, key string) string
	rowLabel   func(rec T) string
	draftValue func(form F, field string) string
	hint       func(form F) string
}

func (v *screenView[T, F]) Name() string { return v.s.Name() }

func (v *screenView[T, F]) Title() string { return v.title }

func (v *screenView[T, F]) Load(ctx context.Context) error { return v.s.Load(ctx) }

func (v *screenView[T, F]) Leave() { v.s.Leave() }

func parseKey(key string) (int64, error) {
	k, err := strconv.ParseInt(key, 10, 64)
	return k, errors.Wrapf(err, "clave %q", key)
}

func (v *screenView[T, F]) columnLabel(key string) string {
	if f, ok := v.s.Schema().Field(key); ok && f.Label != "" {
		return f.Label
	}
	return key
}

func (v *screenView[T, F]) Render(notice string) (string, *telebot.ReplyMarkup) {
	st := v.s.State()
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>", html.EscapeString(v.title))
	if notice != "" {
		b.WriteString("\n" + html.EscapeString(notice))
	}
	if st.Err != nil {
		b.WriteString("\n⚠️ " + html.EscapeString(domain.UserMessage(st.Err)))
	}

	rows, err := v.s.Rows()
	if err != nil {
		rows = nil
		b.WriteString("\n⚠️ " + html.EscapeString(err.Error()))
	}
	q := st.Query
	if q.FilterText != "" {
		fmt.Fprintf(&b, "\nFiltro: %s contiene «%s»", html.EscapeString(v.columnLabel(q.FilterField)), html.EscapeString(q.FilterText))
	}
	if len(q.Sort) > 0 {
		parts := make([]string, len(q.Sort))
		for i, cr := range q.Sort {
			parts[i] = v.columnLabel(cr.Field) + " " + cr.Dir.String()
		}
		fmt.Fprintf(&b, "\nOrden: %s", html.EscapeString(strings.Join(parts, ", ")))
	}

	switch {
	case !st.Loaded && st.Busy:
		b.WriteString("\n\nCargando…")
	case !st.Loaded:
		b.WriteString("\n\nSin datos. Pulse 🔄 para cargar.")
	case len(rows) == 0:
		b.WriteString("\n\nNo hay registros.")
	default:
		shown := rows
		if len(shown) > maxRows {
			shown = shown[:maxRows]
		}
		var table strings.Builder
		w := tabwriter.NewWriter(&table, 0, 0, 1, ' ', 0)
		header := make([]string, len(v.columns))
		for i, key := range v.columns {
			header[i] = v.columnLabel(key)
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for _, rec := range shown {
			cells := make([]string, len(v.columns))
			for i, key := range v.columns {
				cells[i] = v.cell(rec, key)
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		_ = w.Flush()
		b.WriteString("\n<pre>" + html.EscapeString(table.String()) + "</pre>")
		if len(rows) > len(shown) {
			fmt.Fprintf(&b, "Mostrando %d de %d. Use el filtro para acotar.", len(shown), len(rows))
		} else {
			fmt.Fprintf(&b, "%d registro(s).", len(rows))
		}
	}

	spec := keyboards.ListSpec{
		Screen:   v.Name(),
		Sort:     q.Sort,
		Filtered: q.FilterText != "",
	}
	for _, f := range v.s.Schema().Fields() {
		spec.Sortable = append(spec.Sortable, keyboards.Column{Key: f.Key, Label: f.Label})
	}
	for i, rec := range rows {
		if i == maxRowButtons {
			break
		}
		spec.Rows = append(spec.Rows, keyboards.RowRef{
			Key:   strconv.FormatInt(v.s.KeyOf(rec), 10),
			Label: v.rowLabel(rec),
		})
	}
	return b.String(), keyboards.List(spec)
}

func (v *screenView[T, F]) RenderRow(key string) (string, *telebot.ReplyMarkup, error) {
	k, err := parseKey(key)
	if err != nil {
		return "", nil, err
	}
	rec, ok := v.s.Get(k)
	if !ok {
		return "", nil, screen.ErrNotFound
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(v.rowLabel(rec)))
	for _, f := range v.s.Schema().Fields() {
		fmt.Fprintf(&b, "%s: %s\n", html.EscapeString(f.Label), html.EscapeString(v.cell(rec, f.Key)))
	}
	return b.String(), keyboards.RowMenu(v.Name(), key), nil
}

func (v *screenView[T, F]) FilterColumns() []keyboards.Column {
	var cols []keyboards.Column
	for _, f := range v.s.Schema().Fields() {
		cols = append(cols, keyboards.Column{Key: f.Key, Label: f.Label})
	}
	return cols
}

func (v *screenView[T, F]) ToggleSort(field string) error { return v.s.ToggleSort(field) }

func (v *screenView[T, F]) SetFilterField(field string) error { return v.s.SetFilterField(field) }

func (v *screenView[T, F]) SetFilterText(text string) { v.s.SetFilterText(text) }

func (v *screenView[T, F]) Query() listview.Query { return v.s.Query() }

func (v *screenView[T, F]) SetQuery(q listview.Query) error { return v.s.SetQuery(q) }

func (v *screenView[T, F]) OpenCreate() { v.s.OpenCreate() }

func (v *screenView[T, F]) OpenEdit(key string) error {
	k, err := parseKey(key)
	if err != nil {
		return err
	}
	return v.s.OpenEdit(k)
}

func (v *screenView[T, F]) FormField(field string) (domain.FormField, bool) {
	for _, f := range v.formFields {
		if f.Key == field {
			return f, true
		}
	}
	return domain.FormField{}, false
}

func (v *screenView[T, F]) SetField(field, value string) error { return v.s.SetField(field, value) }

// FieldLocked reports whether field is the key of the record being edited.
func (v *screenView[T, F]) FieldLocked(field string) bool {
	_, mode := v.s.Draft()
	return mode == listview.Editing && field == v.keyField
}

func (v *screenView[T, F]) FormOpen() bool {
	_, mode := v.s.Draft()
	return mode != listview.Closed
}

func (v *screenView[T, F]) CloseForm() { v.s.CloseModal() }

func (v *screenView[T, F]) RenderForm(notice string) (string, *telebot.ReplyMarkup) {
	draft, mode := v.s.Draft()
	st := v.s.State()

	var b strings.Builder
	if mode == listview.Editing {
		fmt.Fprintf(&b, "<b>Editar %s</b> (%d)", html.EscapeString(v.singular), st.Editing)
	} else {
		fmt.Fprintf(&b, "<b>Nuevo %s</b>", html.EscapeString(v.singular))
	}
	if notice != "" {
		b.WriteString("\n" + html.EscapeString(notice))
	}
	if st.Err != nil {
		b.WriteString("\n⚠️ " + html.EscapeString(domain.UserMessage(st.Err)))
	}
	if v.hint != nil {
		if h := v.hint(draft); h != "" {
			b.WriteString("\n" + html.EscapeString(h))
		}
	}
	b.WriteString("\nPulse un campo para cambiarlo.")

	buttons := make([]keyboards.FormButton, 0, len(v.formFields))
	for _, f := range v.formFields {
		label := f.Label
		if f.Required {
			label += "*"
		}
		buttons = append(buttons, keyboards.FormButton{
			Key:    f.Key,
			Label:  label,
			Value:  v.draftValue(draft, f.Key),
			Locked: v.FieldLocked(f.Key),
		})
	}
	return b.String(), keyboards.Form(v.Name(), buttons)
}

func (v *screenView[T, F]) Submit(ctx context.Context) error {
	_, err := v.s.Submit(ctx)
	return err
}

func (v *screenView[T, F]) Delete(ctx context.Context, key string) error {
	k, err := parseKey(key)
	if err != nil {
		return err
	}
	return v.s.Delete(ctx, k)
}
