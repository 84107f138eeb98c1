package keyboards

import (
	"gopkg.in/telebot.v3"

	"gestion-bot/internal/domain"
)

func PaymentsMenu() (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	for i := 0; i < len(domain.PaymentActions); i += 2 {
		a, b := domain.PaymentActions[i], domain.PaymentActions[i+1]
		rows = append(rows, markup.Row(
			markup.Data(a.Label(), "pay_act", string(a)),
			markup.Data(b.Label(), "pay_act", string(b)),
		))
	}
	rows = append(rows, markup.Row(markup.Data("🕘 Historial", "pay_hist")))
	markup.Inline(rows...)
	return "Pagos: seleccione una operación.", markup
}

func BackToPayments() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("⬅ Volver", "pay_menu")))
	return markup
}
