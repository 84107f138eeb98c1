package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gestion-bot/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
	return db
}

func TestSessionRepo_UnknownChatIsLoggedOut(t *testing.T) {
	repo := NewSqliteSessionRepo(openTestDB(t))

	s, err := repo.GetSession(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, domain.Session{ChatID: 42}, s)
}

func TestSessionRepo_SaveAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteSessionRepo(openTestDB(t))

	require.NoError(t, repo.SaveSession(ctx, domain.Session{ChatID: 1, Username: "admin", LoggedIn: true}))
	s, err := repo.GetSession(ctx, 1)
	require.NoError(t, err)
	require.True(t, s.LoggedIn)
	require.Equal(t, "admin", s.Username)

	require.NoError(t, repo.SaveSession(ctx, domain.Session{ChatID: 1, Username: "admin", LoggedIn: false}))
	s, err = repo.GetSession(ctx, 1)
	require.NoError(t, err)
	require.False(t, s.LoggedIn)
}

func TestSessionRepo_ViewsUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteSessionRepo(openTestDB(t))

	_, ok, err := repo.GetView(ctx, 1, "cargos")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.SaveView(ctx, 1, domain.View{Screen: "cargos", FilterField: "nombre", FilterText: "an", Sort: "nivel:asc"}))
	require.NoError(t, repo.SaveView(ctx, 1, domain.View{Screen: "cargos", Sort: "sueldo_base:desc"}))

	v, ok, err := repo.GetView(ctx, 1, "cargos")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.View{Screen: "cargos", Sort: "sueldo_base:desc"}, v)

	require.NoError(t, repo.SaveSession(ctx, domain.Session{ChatID: 1, LoggedIn: true}))
	require.NoError(t, repo.DeleteSession(ctx, 1))
	_, ok, err = repo.GetView(ctx, 1, "cargos")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPaymentRunRepo_RecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSqlitePaymentRunRepo(openTestDB(t))
	month := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	for i, action := range []domain.PaymentAction{domain.CreditByEmployee, domain.DebitByPosition} {
		require.NoError(t, repo.AddRun(ctx, domain.PaymentRun{
			ChatID:    7,
			Action:    action,
			Month:     month,
			Lines:     i + 1,
			Total:     decimal.RequireFromString("-1500.25"),
			CreatedAt: time.Now(),
		}))
	}
	require.NoError(t, repo.AddRun(ctx, domain.PaymentRun{ChatID: 8, Action: domain.CreditByPosition, Month: month, CreatedAt: time.Now()}))

	runs, err := repo.RecentRuns(ctx, 7, 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, domain.DebitByPosition, runs[0].Action)
	require.Equal(t, month, runs[0].Month)
	require.True(t, decimal.RequireFromString("-1500.25").Equal(runs[0].Total))
}
