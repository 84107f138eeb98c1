package telegram

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/telebot.v3"

	"gestion-bot/internal/app/screen"
	"gestion-bot/internal/app/service"
	"gestion-bot/internal/delivery/telegram/flows"
	"gestion-bot/internal/delivery/telegram/keyboards"
	"gestion-bot/internal/delivery/telegram/middleware"
	"gestion-bot/internal/delivery/telegram/router"
	"gestion-bot/internal/domain"
	"gestion-bot/pkg/calendar"
	"gestion-bot/pkg/listview"
	"gestion-bot/pkg/metrics"
)

const loginPrompt = "Inicie sesión enviando su usuario y contraseña separados por un espacio."

type Credentials struct {
	User     string
	Password string
}

type Handler struct {
	Bot       *telebot.Bot
	Ctx       context.Context
	Log       logrus.FieldLogger
	Lang      language.Tag
	Auth      Credentials
	Sessions  domain.SessionRepo
	Employees *service.EmployeeService
	Positions *service.PositionService
	Payments  *flows.Payments
	Calendar  *calendar.CalendarController
	Now       func() time.Time

	mu    sync.Mutex
	chats map[int64]*chat
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) Register() {
	h.chats = make(map[int64]*chat)
	if h.Calendar == nil {
		h.Calendar = &calendar.CalendarController{}
	}
	h.Calendar.OnDate = h.onDate

	auth := middleware.RequireAuth(h, loginPrompt)

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/reset", h.handleReset, auth)
	h.Bot.Handle(telebot.OnText, h.handleText)

	r := router.New(h.Log)
	r.CalDelegate = h.Calendar.Handle
	h.registerListCallbacks(r)
	flows.RegisterPayments(r, h.Payments)
	r.Attach(h.Bot, auth)
}

func (h *Handler) handleStart(c telebot.Context) error {
	metrics.IncBotUpdate("start")
	ch := h.chatFor(c.Chat().ID)
	if !ch.isLoggedIn() {
		return c.Send("Bienvenido a Gestión Administrativa.\n"+loginPrompt, telebot.RemoveKeyboard)
	}
	return c.Send("Bienvenido de nuevo. Seleccione una opción.", keyboards.Dashboard())
}

// handleReset logs the chat out and forgets its saved views.
func (h *Handler) handleReset(c telebot.Context) error {
	ch := h.chatFor(c.Chat().ID)
	ch.leaveAll()
	if h.Sessions != nil {
		if err := h.Sessions.DeleteSession(h.Ctx, ch.id); err != nil {
			h.Log.WithError(err).WithField("chat", ch.id).Warn("[session] reset failed")
		}
	}
	h.mu.Lock()
	delete(h.chats, ch.id)
	h.mu.Unlock()
	return c.Send("Preferencias borradas. "+loginPrompt, telebot.RemoveKeyboard)
}

func (h *Handler) handleText(c telebot.Context) error {
	metrics.IncBotUpdate("text")
	ch := h.chatFor(c.Chat().ID)
	text := strings.TrimSpace(c.Text())

	if !ch.isLoggedIn() {
		return h.tryLogin(c, ch, text)
	}

	switch text {
	case keyboards.BtnEmployees.Text:
		return h.showScreen(c, ch, screen.EmployeesName)
	case keyboards.BtnPositions.Text:
		return h.showScreen(c, ch, screen.PositionsName)
	case keyboards.BtnPayments.Text:
		ch.switchTo("pagos")
		return h.Payments.ShowMenu(c)
	case keyboards.BtnLogout.Text:
		return h.logout(c, ch)
	}

	kind, screenName, field := ch.takeAwait()
	v, ok := ch.views[screenName]
	switch {
	case kind == awaitFilter && ok:
		v.SetFilterText(text)
		h.saveView(ch.id, v)
		body, markup := v.Render("")
		return c.Send(body, markup, telebot.ModeHTML)
	case kind == awaitField && ok:
		return h.applyField(c, ch, v, field, text)
	}
	return c.Send("Use el menú para navegar.", keyboards.Dashboard())
}

func (h *Handler) tryLogin(c telebot.Context, ch *chat, text string) error {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return c.Send(loginPrompt)
	}
	// the message carries a password
	_ = c.Delete()

	userOK := subtle.ConstantTimeCompare([]byte(parts[0]), []byte(h.Auth.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(parts[1]), []byte(h.Auth.Password)) == 1
	if !userOK || !passOK {
		h.Log.WithField("chat", ch.id).Warn("[auth] invalid credentials")
		return c.Send("Credenciales incorrectas. " + loginPrompt)
	}

	ch.mu.Lock()
	ch.loggedIn = true
	ch.username = parts[0]
	ch.mu.Unlock()
	h.saveSession(ch)
	h.Log.WithFields(logrus.Fields{"chat": ch.id, "user": parts[0]}).Info("[auth] login")
	return c.Send("Sesión iniciada. Seleccione una opción.", keyboards.Dashboard())
}

func (h *Handler) logout(c telebot.Context, ch *chat) error {
	ch.leaveAll()
	ch.mu.Lock()
	ch.loggedIn = false
	ch.mu.Unlock()
	h.saveSession(ch)
	h.Log.WithField("chat", ch.id).Info("[auth] logout")
	return c.Send("Sesión cerrada.", telebot.RemoveKeyboard)
}

func (h *Handler) showScreen(c telebot.Context, ch *chat, name string) error {
	v := ch.views[name]
	ch.switchTo(name)
	notice := ""
	if err := v.Load(h.Ctx); err != nil && !errors.Is(err, context.Canceled) {
		notice = "No se pudo cargar la lista."
	}
	body, markup := v.Render(notice)
	return c.Send(body, markup, telebot.ModeHTML)
}

func (h *Handler) applyField(c telebot.Context, ch *chat, v view, field, text string) error {
	if text == "-" {
		text = ""
	}
	notice := ""
	if err := v.SetField(field, text); err != nil {
		notice = fieldError(err)
	}
	body, markup := v.RenderForm(notice)
	return c.Send(body, markup, telebot.ModeHTML)
}

func (h *Handler) onDate(c telebot.Context, tag string, date time.Time) error {
	ch := h.chatFor(c.Chat().ID)
	screenName, field, _ := strings.Cut(tag, ".")
	v, ok := ch.views[screenName]
	if !ok || !v.FormOpen() {
		return middleware.EditOrSend(c, "El formulario ya no está abierto.")
	}
	ch.setAwait(awaitNone, "", "")
	notice := ""
	if err := v.SetField(field, date.Format(time.DateOnly)); err != nil {
		notice = fieldError(err)
	}
	body, markup := v.RenderForm(notice)
	return middleware.EditOrSend(c, body, markup, telebot.ModeHTML)
}

func fieldError(err error) string {
	switch {
	case errors.Is(err, screen.ErrKeyLocked):
		return "La clave de un registro existente no se puede modificar."
	case errors.Is(err, listview.ErrModalClosed):
		return "El formulario ya no está abierto."
	case errors.Is(err, domain.ErrUnknownFormField):
		return "Campo desconocido."
	}
	return domain.UserMessage(err)
}
