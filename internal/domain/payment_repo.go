package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentAction string

const (
	CreditByEmployee PaymentAction = "credito_empleado"
	CreditByPosition PaymentAction = "credito_cargo"
	DebitByEmployee  PaymentAction = "debito_empleado"
	DebitByPosition  PaymentAction = "debito_cargo"
)

var PaymentActions = []PaymentAction{CreditByEmployee, CreditByPosition, DebitByEmployee, DebitByPosition}

func (a PaymentAction) Valid() bool {
	switch a {
	case CreditByEmployee, CreditByPosition, DebitByEmployee, DebitByPosition:
		return true
	}
	return false
}

func (a PaymentAction) Label() string {
	switch a {
	case CreditByEmployee:
		return "Crédito por empleado"
	case CreditByPosition:
		return "Crédito por cargo"
	case DebitByEmployee:
		return "Débito por empleado"
	case DebitByPosition:
		return "Débito por cargo"
	}
	return string(a)
}

func (a PaymentAction) IsDebit() bool {
	return a == DebitByEmployee || a == DebitByPosition
}

func (a PaymentAction) ByPosition() bool {
	return a == CreditByPosition || a == DebitByPosition
}

type PaymentLine struct {
	Label  string
	Count  int
	Amount decimal.Decimal
}

// PaymentPreview is what a payment action would move for one month.
// Nothing is sent anywhere.
type PaymentPreview struct {
	Action  PaymentAction
	Month   time.Time
	Lines   []PaymentLine
	Total   decimal.Decimal
	Skipped []string
}

// PaymentRun is the log entry kept for every preview shown.
type PaymentRun struct {
	ID        int64
	ChatID    int64
	Action    PaymentAction
	Month     time.Time
	Lines     int
	Total     decimal.Decimal
	CreatedAt time.Time
}

type PaymentRunRepo interface {
	AddRun(ctx context.Context, run PaymentRun) error
	RecentRuns(ctx context.Context, chatID int64, limit int) ([]PaymentRun, error)
}
