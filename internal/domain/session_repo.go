package domain

import "context"

// SessionRepo persists per-chat console state between restarts.
type SessionRepo interface {
	GetSession(ctx context.Context, chatID int64) (Session, error)
	SaveSession(ctx context.Context, s Session) error
	DeleteSession(ctx context.Context, chatID int64) error
	GetView(ctx context.Context, chatID int64, screen string) (View, bool, error)
	SaveView(ctx context.Context, chatID int64, v View) error
}

type Session struct {
	ChatID   int64
	Username string
	LoggedIn bool
}

// View is the filter and sort state a chat last used on one screen.
type View struct {
	Screen      string
	FilterField string
	FilterText  string
	Sort        string
}
