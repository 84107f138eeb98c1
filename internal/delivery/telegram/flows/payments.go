package flows

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"gestion-bot/internal/app/service"
	"gestion-bot/internal/delivery/telegram/keyboards"
	"gestion-bot/internal/delivery/telegram/middleware"
	"gestion-bot/internal/delivery/telegram/router"
	"gestion-bot/internal/domain"
	"gestion-bot/pkg/calendar"
)

const historyLimit = 5

type Payments struct {
	Payroll *service.PayrollService
	Ctx     context.Context
	Log     logrus.FieldLogger
}

func (p *Payments) ShowMenu(c telebot.Context) error {
	title, markup := keyboards.PaymentsMenu()
	return middleware.EditOrSend(c, title, markup)
}

func RegisterPayments(r *router.CallbackRouter, p *Payments) {
	r.Register("pay_menu", func(c telebot.Context, payload string) error {
		return p.ShowMenu(c)
	})

	r.Register("pay_act", func(c telebot.Context, payload string) error {
		if !domain.PaymentAction(payload).Valid() {
			return p.ShowMenu(c)
		}
		title, markup := keyboards.BuildMonthKeyboard(payload, time.Now().Year())
		return middleware.EditOrSend(c, domain.PaymentAction(payload).Label()+"\n"+title, markup)
	})

	r.Register("pay_year", func(c telebot.Context, payload string) error {
		action, yearStr, _ := strings.Cut(payload, "|")
		year, err := strconv.Atoi(yearStr)
		if err != nil || !domain.PaymentAction(action).Valid() {
			return p.ShowMenu(c)
		}
		title, markup := keyboards.BuildMonthKeyboard(action, year)
		return middleware.EditOrSend(c, domain.PaymentAction(action).Label()+"\n"+title, markup)
	})

	r.Register("pay_month", func(c telebot.Context, payload string) error {
		action, monthStr, _ := strings.Cut(payload, "|")
		month, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return p.ShowMenu(c)
		}
		preview, err := p.Payroll.Preview(p.Ctx, c.Chat().ID, domain.PaymentAction(action), month)
		if err != nil {
			return middleware.EditOrSend(c, domain.UserMessage(err), keyboards.BackToPayments())
		}
		return middleware.EditOrSend(c, RenderPreview(preview), keyboards.BackToPayments(), telebot.ModeHTML)
	})

	r.Register("pay_hist", func(c telebot.Context, payload string) error {
		runs, err := p.Payroll.Recent(p.Ctx, c.Chat().ID, historyLimit)
		if err != nil {
			p.Log.WithError(err).Warn("[payments] history")
			return middleware.EditOrSend(c, "No se pudo leer el historial.", keyboards.BackToPayments())
		}
		return middleware.EditOrSend(c, RenderHistory(runs), keyboards.BackToPayments(), telebot.ModeHTML)
	})
}

func monthTitle(t time.Time) string {
	return calendar.MonthName(t.Month()) + " " + strconv.Itoa(t.Year())
}

// RenderPreview formats a preview as an HTML message.
func RenderPreview(p domain.PaymentPreview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> · %s\n", html.EscapeString(p.Action.Label()), monthTitle(p.Month))
	b.WriteString("<i>Vista previa: no se envía ningún pago.</i>\n")
	if len(p.Lines) == 0 {
		b.WriteString("\nNo hay montos para este mes.")
		return b.String()
	}

	var table strings.Builder
	w := tabwriter.NewWriter(&table, 0, 0, 1, ' ', tabwriter.AlignRight)
	if p.Action.ByPosition() {
		fmt.Fprintln(w, "Cargo\tCant.\tMonto\t")
		for _, l := range p.Lines {
			fmt.Fprintf(w, "%s\t%d\t%s\t\n", l.Label, l.Count, l.Amount.StringFixed(2))
		}
	} else {
		fmt.Fprintln(w, "Empleado\tMonto\t")
		for _, l := range p.Lines {
			fmt.Fprintf(w, "%s\t%s\t\n", l.Label, l.Amount.StringFixed(2))
		}
	}
	_ = w.Flush()

	b.WriteString("<pre>")
	b.WriteString(html.EscapeString(table.String()))
	b.WriteString("</pre>")
	fmt.Fprintf(&b, "Total: <b>%s</b>", p.Total.StringFixed(2))
	if len(p.Skipped) > 0 {
		fmt.Fprintf(&b, "\nSin cargo reconocido: %s", html.EscapeString(strings.Join(p.Skipped, ", ")))
	}
	return b.String()
}

func RenderHistory(runs []domain.PaymentRun) string {
	if len(runs) == 0 {
		return "Aún no se han generado vistas previas."
	}
	var b strings.Builder
	b.WriteString("<b>Últimas vistas previas</b>\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "%s · %s · %s (%d líneas)\n",
			r.CreatedAt.Local().Format("02/01 15:04"),
			html.EscapeString(r.Action.Label()),
			monthTitle(r.Month),
			r.Lines,
		)
		fmt.Fprintf(&b, "   Total %s\n", r.Total.StringFixed(2))
	}
	return b.String()
}
