package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"gestion-bot/internal/domain"
)

type SqliteSessionRepo struct {
	db *sql.DB
}

func NewSqliteSessionRepo(db *sql.DB) *SqliteSessionRepo {
	return &SqliteSessionRepo{db: db}
}

// GetSession returns a logged-out session for chats never seen before.
func (r *SqliteSessionRepo) GetSession(ctx context.Context, chatID int64) (domain.Session, error) {
	s := domain.Session{ChatID: chatID}
	err := r.db.QueryRowContext(ctx,
		`SELECT username, logged_in FROM sessions WHERE chat_id = ?`, chatID,
	).Scan(&s.Username, &s.LoggedIn)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, errors.Wrapf(err, "get session %d", chatID)
	}
	return s, nil
}

func (r *SqliteSessionRepo) SaveSession(ctx context.Context, s domain.Session) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET username = ?, logged_in = ?, updated_at = ? WHERE chat_id = ?`,
		s.Username, s.LoggedIn, time.Now().UTC().Format(time.RFC3339), s.ChatID)
	if err != nil {
		return errors.Wrapf(err, "save session %d", s.ChatID)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO sessions (chat_id, username, logged_in, updated_at) VALUES (?, ?, ?, ?)`,
			s.ChatID, s.Username, s.LoggedIn, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return errors.Wrapf(err, "insert session %d", s.ChatID)
		}
	}
	return nil
}

// DeleteSession forgets the chat along with its saved views.
func (r *SqliteSessionRepo) DeleteSession(ctx context.Context, chatID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback() //nolint:errcheck
	if _, err := tx.ExecContext(ctx, `DELETE FROM views WHERE chat_id = ?`, chatID); err != nil {
		return errors.Wrapf(err, "delete views %d", chatID)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE chat_id = ?`, chatID); err != nil {
		return errors.Wrapf(err, "delete session %d", chatID)
	}
	return errors.Wrap(tx.Commit(), "commit")
}

func (r *SqliteSessionRepo) GetView(ctx context.Context, chatID int64, screen string) (domain.View, bool, error) {
	v := domain.View{Screen: screen}
	err := r.db.QueryRowContext(ctx,
		`SELECT filter_field, filter_text, sort FROM views WHERE chat_id = ? AND screen = ?`, chatID, screen,
	).Scan(&v.FilterField, &v.FilterText, &v.Sort)
	if errors.Is(err, sql.ErrNoRows) {
		return v, false, nil
	}
	if err != nil {
		return v, false, errors.Wrapf(err, "get view %d/%s", chatID, screen)
	}
	return v, true, nil
}

func (r *SqliteSessionRepo) SaveView(ctx context.Context, chatID int64, v domain.View) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO views (chat_id, screen, filter_field, filter_text, sort) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(chat_id, screen) DO UPDATE SET
		   filter_field = excluded.filter_field,
		   filter_text = excluded.filter_text,
		   sort = excluded.sort`,
		chatID, v.Screen, v.FilterField, v.FilterText, v.Sort)
	return errors.Wrapf(err, "save view %d/%s", chatID, v.Screen)
}
