package router

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"gestion-bot/pkg/metrics"
)

type HandlerFunc func(c telebot.Context, payload string) error

// CallbackRouter dispatches inline button callbacks by their unique key.
// Keys with the cal_ prefix go to CalDelegate.
type CallbackRouter struct {
	handlers    map[string]HandlerFunc
	CalDelegate func(c telebot.Context, key, payload string) error
	Log         logrus.FieldLogger
}

func New(log logrus.FieldLogger) *CallbackRouter {
	return &CallbackRouter{handlers: make(map[string]HandlerFunc), Log: log}
}

func (r *CallbackRouter) Register(key string, h HandlerFunc) {
	r.handlers[key] = h
}

// ParseData splits raw callback data into its unique key and payload.
func ParseData(raw string) (key, payload string) {
	raw = strings.TrimPrefix(raw, "\f")
	key = raw
	if i := strings.IndexByte(raw, '|'); i >= 0 {
		key = raw[:i]
		payload = raw[i+1:]
	}
	return key, payload
}

func (r *CallbackRouter) Attach(bot *telebot.Bot, mw ...telebot.MiddlewareFunc) {
	bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		_, err := r.Dispatch(c)
		return err
	}, mw...)
}

// Dispatch reports whether a handler took the callback.
func (r *CallbackRouter) Dispatch(c telebot.Context) (bool, error) {
	key, payload := ParseData(c.Data())
	r.Log.WithFields(logrus.Fields{"chat": c.Chat().ID, "key": key}).Debug("[callback]")
	metrics.IncBotUpdate("callback")
	_ = c.Respond()

	if strings.HasPrefix(key, "cal_") {
		if r.CalDelegate != nil {
			return true, r.CalDelegate(c, key, payload)
		}
		return true, nil
	}
	if h, ok := r.handlers[key]; ok {
		return true, h(c, payload)
	}
	r.Log.WithField("key", key).Warn("[callback] unhandled")
	return false, nil
}
