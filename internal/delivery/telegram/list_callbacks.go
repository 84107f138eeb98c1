package telegram

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/telebot.v3"

	"gestion-bot/internal/app/screen"
	"gestion-bot/internal/delivery/telegram/keyboards"
	"gestion-bot/internal/delivery/telegram/middleware"
	"gestion-bot/internal/delivery/telegram/router"
	"gestion-bot/internal/domain"
	"gestion-bot/pkg/listview"
)

const maxPositionNames = 15

type viewHandler func(c telebot.Context, ch *chat, v view, arg string) error

// onView resolves the screen named at the start of the payload.
func (h *Handler) onView(fn viewHandler) router.HandlerFunc {
	return func(c telebot.Context, payload string) error {
		ch := h.chatFor(c.Chat().ID)
		name, arg := splitScreen(payload)
		v, ok := ch.views[name]
		if !ok {
			return middleware.EditOrSend(c, "Pantalla desconocida.", keyboards.Dashboard())
		}
		return fn(c, ch, v, arg)
	}
}

func (h *Handler) showList(c telebot.Context, v view, notice string) error {
	body, markup := v.Render(notice)
	return middleware.EditOrSend(c, body, markup, telebot.ModeHTML)
}

func (h *Handler) showForm(c telebot.Context, v view, notice string) error {
	body, markup := v.RenderForm(notice)
	return middleware.EditOrSend(c, body, markup, telebot.ModeHTML)
}

func (h *Handler) registerListCallbacks(r *router.CallbackRouter) {
	r.Register("sort", h.onView(func(c telebot.Context, ch *chat, v view, field string) error {
		if err := v.ToggleSort(field); err != nil {
			return h.showList(c, v, "Campo de orden desconocido.")
		}
		h.saveView(ch.id, v)
		return h.showList(c, v, "")
	}))

	r.Register("reload", h.onView(func(c telebot.Context, ch *chat, v view, _ string) error {
		ch.switchTo(v.Name())
		if err := v.Load(h.Ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return h.showList(c, v, "No se pudo cargar la lista.")
		}
		return h.showList(c, v, "Lista actualizada.")
	}))

	r.Register("back", h.onView(func(c telebot.Context, ch *chat, v view, _ string) error {
		ch.setAwait(awaitNone, "", "")
		return h.showList(c, v, "")
	}))

	r.Register("row", h.onView(func(c telebot.Context, ch *chat, v view, key string) error {
		body, markup, err := v.RenderRow(key)
		if err != nil {
			return h.showList(c, v, "El registro ya no está en la lista.")
		}
		return middleware.EditOrSend(c, body, markup, telebot.ModeHTML)
	}))

	r.Register("flt", h.onView(func(c telebot.Context, ch *chat, v view, _ string) error {
		return middleware.EditOrSend(c, "Seleccione el campo por el que desea filtrar.",
			keyboards.FilterFields(v.Name(), v.FilterColumns(), v.Query().FilterField))
	}))

	r.Register("flt_field", h.onView(func(c telebot.Context, ch *chat, v view, field string) error {
		if err := v.SetFilterField(field); err != nil {
			return h.showList(c, v, "Campo de filtro desconocido.")
		}
		h.saveView(ch.id, v)
		ch.setAwait(awaitFilter, v.Name(), field)
		label := field
		for _, col := range v.FilterColumns() {
			if col.Key == field {
				label = col.Label
			}
		}
		return middleware.EditOrSend(c, "Escriba el texto a buscar en «"+label+"».")
	}))

	r.Register("flt_clear", h.onView(func(c telebot.Context, ch *chat, v view, _ string) error {
		ch.setAwait(awaitNone, "", "")
		v.SetFilterText("")
		h.saveView(ch.id, v)
		return h.showList(c, v, "Filtro eliminado.")
	}))

	r.Register("new", h.onView(func(c telebot.Context, ch *chat, v view, _ string) error {
		h.preparePositions(ch, v)
		v.OpenCreate()
		return h.showForm(c, v, "")
	}))

	r.Register("edit", h.onView(func(c telebot.Context, ch *chat, v view, key string) error {
		h.preparePositions(ch, v)
		if err := v.OpenEdit(key); err != nil {
			return h.showList(c, v, "El registro ya no está en la lista.")
		}
		return h.showForm(c, v, "")
	}))

	r.Register("frm_field", h.onView(func(c telebot.Context, ch *chat, v view, field string) error {
		if !v.FormOpen() {
			return h.showList(c, v, "El formulario ya no está abierto.")
		}
		f, ok := v.FormField(field)
		if !ok {
			return h.showForm(c, v, "Campo desconocido.")
		}
		if v.FieldLocked(field) {
			return h.showForm(c, v, fieldError(screen.ErrKeyLocked))
		}
		ch.setAwait(awaitField, v.Name(), field)
		if f.Kind == domain.FieldDate {
			if err := c.Send("Escriba «" + f.Label + "» como AAAA-MM-DD o elija en el calendario. Envíe - para dejarlo vacío."); err != nil {
				return err
			}
			return h.Calendar.ShowCalendar(c, v.Name()+"."+field, h.now())
		}
		prompt := "Escriba «" + f.Label + "»."
		if !f.Required {
			prompt += " Envíe - para dejarlo vacío."
		}
		if v.Name() == screen.EmployeesName && field == "cargo" {
			if names := ch.positionNames(); len(names) > 0 {
				if len(names) > maxPositionNames {
					names = names[:maxPositionNames]
				}
				prompt += "\nCargos registrados: " + strings.Join(names, ", ")
			}
		}
		return c.Send(prompt)
	}))

	r.Register("frm_save", h.onView(func(c telebot.Context, ch *chat, v view, _ string) error {
		ch.setAwait(awaitNone, "", "")
		err := v.Submit(h.Ctx)
		switch {
		case err == nil:
			return h.showList(c, v, "✅ Guardado.")
		case errors.Is(err, screen.ErrBusy):
			return h.showForm(c, v, "Espere: hay una operación en curso.")
		case errors.Is(err, listview.ErrModalClosed):
			return h.showList(c, v, "El formulario ya no está abierto.")
		case errors.Is(err, context.Canceled):
			return nil
		}
		return h.showForm(c, v, "")
	}))

	r.Register("frm_cancel", h.onView(func(c telebot.Context, ch *chat, v view, _ string) error {
		ch.setAwait(awaitNone, "", "")
		v.CloseForm()
		return h.showList(c, v, "")
	}))

	r.Register("del", h.onView(func(c telebot.Context, ch *chat, v view, key string) error {
		body, _, err := v.RenderRow(key)
		if err != nil {
			return h.showList(c, v, "El registro ya no está en la lista.")
		}
		return middleware.EditOrSend(c, "¿Eliminar este registro?\n\n"+body, keyboards.ConfirmDelete(v.Name(), key), telebot.ModeHTML)
	}))

	r.Register("del_yes", h.onView(func(c telebot.Context, ch *chat, v view, key string) error {
		err := v.Delete(h.Ctx, key)
		switch {
		case err == nil:
			return h.showList(c, v, "🗑 Eliminado.")
		case errors.Is(err, screen.ErrBusy):
			return h.showList(c, v, "Espere: hay una operación en curso.")
		case errors.Is(err, screen.ErrNotFound):
			return h.showList(c, v, "El registro ya no está en la lista.")
		case errors.Is(err, context.Canceled):
			return nil
		}
		return h.showList(c, v, "")
	}))

	r.Register("del_no", h.onView(func(c telebot.Context, ch *chat, v view, _ string) error {
		return h.showList(c, v, "")
	}))
}

// preparePositions loads positions once so the employee form can suggest
// known cargo names.
func (h *Handler) preparePositions(ch *chat, v view) {
	if v.Name() != screen.EmployeesName || ch.positions.State().Loaded {
		return
	}
	if err := ch.positions.Load(h.Ctx); err != nil {
		h.Log.WithError(err).WithField("chat", ch.id).Debug("[positions] preload failed")
	}
}
