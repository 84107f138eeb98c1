// Package calendar renders an inline month calendar and decodes its callbacks.
// Every button carries a caller-chosen tag so several pickers can be open in
// different chats without sharing a callback.
package calendar

import (
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

const (
	DayUnique = "cal_day"
	NavUnique = "cal_nav"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return monthNames[m-1]
}

// CalendarController shows calendars and hands picked dates to OnDate.
type CalendarController struct {
	OnDate func(c telebot.Context, tag string, date time.Time) error
}

func (cc *CalendarController) ShowCalendar(c telebot.Context, tag string, around time.Time) error {
	title, markup := Build(tag, around.Year(), around.Month())
	if c.Callback() != nil {
		if err := c.Edit(title, markup); err == nil {
			return nil
		}
	}
	return c.Send(title, markup)
}

// Handle processes a cal_* callback; unique is the callback key and payload
// what follows it.
func (cc *CalendarController) Handle(c telebot.Context, unique, payload string) error {
	ev, ok := Parse(unique, payload)
	if !ok {
		return c.Send("Fecha inválida.")
	}
	if ev.Day {
		if cc.OnDate == nil {
			return nil
		}
		return cc.OnDate(c, ev.Tag, ev.Date)
	}
	return cc.ShowCalendar(c, ev.Tag, ev.Date)
}

// Build returns the title and keyboard for one month.
func Build(tag string, year int, month time.Month) (string, *telebot.ReplyMarkup) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	markup := &telebot.ReplyMarkup{}

	var rows []telebot.Row
	week := telebot.Row{}
	for d := 1; d <= daysInMonth(first); d++ {
		day := first.AddDate(0, 0, d-1)
		week = append(week, markup.Data(strconv.Itoa(d), DayUnique, tag, day.Format(time.DateOnly)))
		if len(week) == 7 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	if len(week) > 0 {
		rows = append(rows, week)
	}
	nav := func(label string, t time.Time) telebot.Btn {
		return markup.Data(label, NavUnique, tag, t.Format("2006-01"))
	}
	rows = append(rows, telebot.Row{
		nav("«", first.AddDate(-1, 0, 0)),
		nav("<", first.AddDate(0, -1, 0)),
		nav(">", first.AddDate(0, 1, 0)),
		nav("»", first.AddDate(1, 0, 0)),
	})
	markup.Inline(rows...)
	return "Seleccione una fecha: " + MonthName(month) + " " + strconv.Itoa(year), markup
}

// Event is a decoded calendar callback. For navigation Date is the first
// day of the month to show.
type Event struct {
	Day  bool
	Tag  string
	Date time.Time
}

func Parse(unique, payload string) (Event, bool) {
	parts := strings.Split(payload, "|")
	if len(parts) != 2 || parts[0] == "" {
		return Event{}, false
	}
	switch unique {
	case DayUnique:
		d, err := time.Parse(time.DateOnly, parts[1])
		if err != nil {
			return Event{}, false
		}
		return Event{Day: true, Tag: parts[0], Date: d}, true
	case NavUnique:
		m, err := time.Parse("2006-01", parts[1])
		if err != nil {
			return Event{}, false
		}
		return Event{Tag: parts[0], Date: m}, true
	}
	return Event{}, false
}

func daysInMonth(first time.Time) int {
	return first.AddDate(0, 1, -1).Day()
}
