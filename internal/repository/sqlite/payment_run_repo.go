package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"gestion-bot/internal/domain"
)

type SqlitePaymentRunRepo struct {
	db *sql.DB
}

func NewSqlitePaymentRunRepo(db *sql.DB) *SqlitePaymentRunRepo {
	return &SqlitePaymentRunRepo{db: db}
}

func (r *SqlitePaymentRunRepo) AddRun(ctx context.Context, run domain.PaymentRun) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payment_runs (chat_id, action, month, lines, total, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ChatID,
		string(run.Action),
		run.Month.Format("2006-01"),
		run.Lines,
		run.Total.String(),
		run.CreatedAt.UTC().Format(time.RFC3339),
	)
	return errors.Wrap(err, "add payment run")
}

// RecentRuns returns the newest runs of a chat first.
func (r *SqlitePaymentRunRepo) RecentRuns(ctx context.Context, chatID int64, limit int) ([]domain.PaymentRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, action, month, lines, total, created_at FROM payment_runs
		 WHERE chat_id = ? ORDER BY id DESC LIMIT ?`,
		chatID, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "recent payment runs")
	}
	defer rows.Close()

	var runs []domain.PaymentRun
	for rows.Next() {
		run := domain.PaymentRun{ChatID: chatID}
		var action, month, total, created string
		if err := rows.Scan(&run.ID, &action, &month, &run.Lines, &total, &created); err != nil {
			return nil, errors.Wrap(err, "scan payment run")
		}
		run.Action = domain.PaymentAction(action)
		if run.Month, err = time.Parse("2006-01", month); err != nil {
			return nil, errors.Wrap(err, "payment run month")
		}
		if run.Total, err = decimal.NewFromString(total); err != nil {
			return nil, errors.Wrap(err, "payment run total")
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, errors.Wrap(err, "payment run created_at")
		}
		runs = append(runs, run)
	}
	return runs, errors.Wrap(rows.Err(), "payment runs")
}
