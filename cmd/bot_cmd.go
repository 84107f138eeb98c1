package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/telebot.v3"

	"gestion-bot/internal/app/service"
	"gestion-bot/internal/delivery/telegram"
	"gestion-bot/internal/delivery/telegram/flows"
	"gestion-bot/internal/repository/rest"
	"gestion-bot/internal/repository/sqlite"
	"gestion-bot/pkg/calendar"
	"gestion-bot/pkg/metrics"
)

func newBotCmd(load func() (*deps, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Inicia el bot de Telegram",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := load()
			if err != nil {
				return err
			}
			defer d.Close()
			if err := d.cfg.RequireToken(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBot(ctx, d)
		},
	}
}

func runBot(ctx context.Context, d *deps) error {
	log := d.log
	log.Info("Iniciando Gestión Bot...")

	db, err := d.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  d.cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			log.WithError(err).Error("[bot] handler failed")
		},
	})
	if err != nil {
		return errors.Wrap(err, "start bot")
	}

	payroll := &service.PayrollService{
		Employees: rest.NewRestEmployeeRepo(d.client),
		Positions: rest.NewRestPositionRepo(d.client),
		Runs:      sqlite.NewSqlitePaymentRunRepo(db),
		Async:     d.async,
		Log:       log,
	}
	handler := &telegram.Handler{
		Bot:       bot,
		Ctx:       ctx,
		Log:       log,
		Lang:      d.cfg.Language(),
		Auth:      telegram.Credentials{User: d.cfg.AdminUser, Password: d.cfg.AdminPassword},
		Sessions:  sqlite.NewSqliteSessionRepo(db),
		Employees: d.employees,
		Positions: d.positions,
		Payments:  &flows.Payments{Payroll: payroll, Ctx: ctx, Log: log},
		Calendar:  &calendar.CalendarController{},
	}
	handler.Register()

	if d.cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, d.cfg.MetricsAddr, log); err != nil {
				log.WithError(err).Error("[metrics] stopped")
			}
		}()
	}

	go func() {
		<-ctx.Done()
		bot.Stop()
	}()
	log.Info("Bot en marcha")
	bot.Start()
	log.Info("Bot detenido")
	return nil
}
