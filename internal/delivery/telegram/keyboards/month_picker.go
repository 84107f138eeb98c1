package keyboards

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"

	"gestion-bot/pkg/calendar"
)

// BuildMonthKeyboard lets the user pick the month a payment action applies to.
func BuildMonthKeyboard(action string, year int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	rows := []telebot.Row{}
	for i := 0; i < 12; i += 3 {
		row := telebot.Row{}
		for m := i + 1; m <= i+3; m++ {
			label := calendar.MonthName(time.Month(m))[:3]
			row = append(row, markup.Data(label, "pay_month", action, fmt.Sprintf("%04d-%02d", year, m)))
		}
		rows = append(rows, row)
	}

	prev := markup.Data("← "+strconv.Itoa(year-1), "pay_year", action, strconv.Itoa(year-1))
	next := markup.Data(strconv.Itoa(year+1)+" →", "pay_year", action, strconv.Itoa(year+1))
	rows = append(rows, markup.Row(prev, next))
	rows = append(rows, markup.Row(markup.Data("⬅ Volver", "pay_menu")))

	markup.Inline(rows...)
	return fmt.Sprintf("Seleccione el mes: %d", year), markup
}
