package keyboards

import "gopkg.in/telebot.v3"

var (
	BtnEmployees = telebot.Btn{Text: "👥 Empleados"}
	BtnPositions = telebot.Btn{Text: "💼 Cargos"}
	BtnPayments  = telebot.Btn{Text: "💳 Pagos"}
	BtnLogout    = telebot.Btn{Text: "🚪 Salir"}
)

func Dashboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(BtnEmployees.Text), markup.Text(BtnPositions.Text)),
		markup.Row(markup.Text(BtnPayments.Text), markup.Text(BtnLogout.Text)),
	)
	return markup
}
