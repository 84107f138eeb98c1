package middleware

import (
	"strings"

	"gopkg.in/telebot.v3"
)

// EditOrSend edits the message behind a callback and falls back to a new
// message when there is nothing to edit or Telegram refuses the edit.
func EditOrSend(c telebot.Context, text string, opts ...interface{}) error {
	if c.Callback() != nil {
		err := c.Edit(text, opts...)
		if err == nil {
			return nil
		}
		if strings.Contains(err.Error(), "not modified") {
			return nil
		}
	}
	return c.Send(text, opts...)
}
