package sqlite

import (
	"database/sql"

	"github.com/pkg/errors"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
    chat_id INTEGER PRIMARY KEY,
    username TEXT NOT NULL DEFAULT '',
    logged_in BOOLEAN NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL
);
`

const createViewsTable = `
CREATE TABLE IF NOT EXISTS views (
    chat_id INTEGER NOT NULL,
    screen TEXT NOT NULL,
    filter_field TEXT NOT NULL DEFAULT '',
    filter_text TEXT NOT NULL DEFAULT '',
    sort TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (chat_id, screen)
);
`

const createPaymentRunsTable = `
CREATE TABLE IF NOT EXISTS payment_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id INTEGER NOT NULL,
    action TEXT NOT NULL,
    month TEXT NOT NULL,
    lines INTEGER NOT NULL,
    total TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	for _, stmt := range []string{createSessionsTable, createViewsTable, createPaymentRunsTable} {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "migrate")
		}
	}
	return nil
}
