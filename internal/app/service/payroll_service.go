package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"

	"gestion-bot/internal/domain"
)

// PayrollService computes payment previews from the current employees and
// positions. No payment endpoint exists, so a preview is only logged.
type PayrollService struct {
	Employees domain.EmployeeRepo
	Positions domain.PositionRepo
	Runs      domain.PaymentRunRepo
	Async     *AsyncService
	Log       logrus.FieldLogger
	Now       func() time.Time
}

func (s *PayrollService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *PayrollService) Preview(ctx context.Context, chatID int64, action domain.PaymentAction, month time.Time) (domain.PaymentPreview, error) {
	if !action.Valid() {
		return domain.PaymentPreview{}, domain.ValidationError("pagos", "Acción de pago desconocida.")
	}
	employees, err := runAsync(ctx, s.Async, s.Employees.GetAllEmployees)
	if err != nil {
		return domain.PaymentPreview{}, err
	}
	positions, err := runAsync(ctx, s.Async, s.Positions.GetAllPositions)
	if err != nil {
		return domain.PaymentPreview{}, err
	}

	p := BuildPreview(action, month, employees, positions)

	if s.Runs != nil {
		run := domain.PaymentRun{
			ChatID:    chatID,
			Action:    action,
			Month:     p.Month,
			Lines:     len(p.Lines),
			Total:     p.Total,
			CreatedAt: s.now(),
		}
		if err := s.Runs.AddRun(ctx, run); err != nil {
			s.Log.WithError(err).Warn("[payroll] could not log run")
		}
	}
	s.Log.WithFields(logrus.Fields{
		"chat":   chatID,
		"action": action,
		"month":  p.Month.Format("2006-01"),
		"total":  p.Total.StringFixed(2),
	}).Info("[payroll] preview")
	return p, nil
}

func (s *PayrollService) Recent(ctx context.Context, chatID int64, limit int) ([]domain.PaymentRun, error) {
	if s.Runs == nil {
		return nil, nil
	}
	runs, err := s.Runs.RecentRuns(ctx, chatID, limit)
	return runs, errors.Wrap(err, "recent payment runs")
}

// BuildPreview pays each employee the base salary of their position, or each
// position its salary times headcount. Employees hired after the month ends
// are left out; debits are negative.
func BuildPreview(action domain.PaymentAction, month time.Time, employees []domain.Employee, positions []domain.Position) domain.PaymentPreview {
	month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := month.AddDate(0, 1, 0)
	p := domain.PaymentPreview{Action: action, Month: month, Total: decimal.Zero}

	fold := cases.Fold()
	salaries := make(map[string]decimal.Decimal, len(positions))
	for _, pos := range positions {
		salaries[fold.String(pos.Name)] = pos.BaseSalary
	}

	headcount := make(map[string]int, len(positions))
	for _, e := range employees {
		if !e.HireDate.IsZero() && !e.HireDate.Before(monthEnd) {
			continue
		}
		name := fold.String(e.Position)
		salary, ok := salaries[name]
		if !ok {
			p.Skipped = append(p.Skipped, e.Name)
			continue
		}
		headcount[name]++
		if !action.ByPosition() {
			p.Lines = append(p.Lines, domain.PaymentLine{Label: e.Name, Count: 1, Amount: salary})
		}
	}
	if action.ByPosition() {
		for _, pos := range positions {
			n := headcount[fold.String(pos.Name)]
			p.Lines = append(p.Lines, domain.PaymentLine{
				Label:  pos.Name,
				Count:  n,
				Amount: pos.BaseSalary.Mul(decimal.NewFromInt(int64(n))),
			})
		}
	}

	for i := range p.Lines {
		if action.IsDebit() {
			p.Lines[i].Amount = p.Lines[i].Amount.Neg()
		}
		p.Total = p.Total.Add(p.Lines[i].Amount)
	}
	return p
}
