package middleware

import (
	"gopkg.in/telebot.v3"
)

type Authenticator interface {
	IsLoggedIn(chatID int64) bool
}

// RequireAuth lets updates through only for chats with an open session.
func RequireAuth(auth Authenticator, denied string) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Chat() == nil || !auth.IsLoggedIn(c.Chat().ID) {
				if c.Callback() != nil {
					_ = c.Respond(&telebot.CallbackResponse{Text: denied})
					return nil
				}
				return c.Send(denied)
			}
			return next(c)
		}
	}
}
