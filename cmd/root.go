package main

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gestion-bot/config"
	"gestion-bot/internal/app/service"
	"gestion-bot/internal/repository/rest"
	"gestion-bot/internal/repository/sqlite"
	"gestion-bot/pkg/workerpool"

	_ "github.com/mattn/go-sqlite3"
)

func newRootCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:          "gestion-bot",
		Short:        "Consola de gestión administrativa: empleados, cargos y pagos",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Archivo .env a cargar si existe")

	load := func() (*deps, error) { return newDeps(envFile) }
	cmd.AddCommand(newBotCmd(load))
	cmd.AddCommand(newEmployeesCmd(load))
	cmd.AddCommand(newPositionsCmd(load))
	return cmd
}

// deps is what every command shares: config, logger, the worker pool and
// the services built over the REST API.
type deps struct {
	cfg       *config.Config
	log       *logrus.Logger
	pool      *workerpool.WorkerPool
	async     *service.AsyncService
	client    *rest.Client
	employees *service.EmployeeService
	positions *service.PositionService
}

func newDeps(envFile string) (*deps, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger()
	pool := workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	async := service.NewAsyncService(pool)
	client := rest.NewClient(cfg.APIBaseURL, cfg.APITimeout, log)
	return &deps{
		cfg:       cfg,
		log:       log,
		pool:      pool,
		async:     async,
		client:    client,
		employees: service.NewEmployeeService(rest.NewRestEmployeeRepo(client), async, log),
		positions: service.NewPositionService(rest.NewRestPositionRepo(client), async, log),
	}, nil
}

func (d *deps) Close() {
	d.pool.Close()
}

func (d *deps) openDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", d.cfg.DBPath)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", d.cfg.DBPath)
	}
	if err := sqlite.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
