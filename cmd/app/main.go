package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jrbibin/Project-Management/internal/adapters/db/sqlstore"
	httpadapter "github.com/jrbibin/Project-Management/internal/adapters/http"
	rpcadapter "github.com/jrbibin/Project-Management/internal/adapters/rpcjson"
	"github.com/jrbibin/Project-Management/internal/application"
	"github.com/jrbibin/Project-Management/internal/config"
	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "etra",
		Usage: "VFX production tracking server and CLI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "transport", Usage: "client transport: uds or http (overrides saved config)"},
			&cli.StringFlag{Name: "server", Usage: "HTTP base URL (overrides saved config)"},
			&cli.StringFlag{Name: "socket", Usage: "JSON-RPC unix socket (overrides saved config)"},
		},
		Commands: []*cli.Command{
			serverCommand(),
			configCommand(),
			departmentsCommand(),
			projectsCommand(),
			sequencesCommand(),
			packagesCommand(),
			shotsCommand(),
			tasksCommand(),
			versionsCommand(),
			internalVersionsCommand(),
			usersCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run HTTP and JSON-RPC server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "etra.yaml", Usage: "YAML config file; missing file means env only"},
			&cli.StringFlag{Name: "addr", Usage: "HTTP listen address"},
			&cli.StringFlag{Name: "db-driver", Usage: "sqlite or postgres"},
			&cli.StringFlag{Name: "db-dsn", Usage: "database path or DSN"},
			&cli.StringFlag{Name: "rpc-socket", Usage: "JSON-RPC unix socket path"},
			&cli.BoolFlag{Name: "no-rpc", Usage: "disable the JSON-RPC socket"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if v := c.String("addr"); v != "" {
				cfg.HTTP.Address = v
			}
			if v := c.String("db-driver"); v != "" {
				cfg.Database.Driver = v
			}
			if v := c.String("db-dsn"); v != "" {
				cfg.Database.DSN = v
			}
			if v := c.String("rpc-socket"); v != "" {
				cfg.RPC.Socket = v
			}
			if c.Bool("no-rpc") {
				cfg.RPC.Enabled = false
			}

			log := newLogger(cfg.LogLevel)
			if err := runServer(ctx, cfg, log); err != nil {
				log.Error("server failed", "error", err)
				return err
			}
			return nil
		},
	}
}

func runServer(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := sqlstore.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	service := application.NewProductionService(sqlstore.NewProductionRepository(db))
	if cfg.Database.InitDepartments {
		created, err := service.InitDefaultDepartments(ctx)
		if err != nil {
			return fmt.Errorf("init departments: %w", err)
		}
		log.Info("default departments ensured", "created", created)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpadapter.NewRouter(service, log),
		ReadHeaderTimeout: cfg.HTTP.Timeout,
	}

	if cfg.RPC.Enabled {
		rpcSrv, err := rpcadapter.Start(cfg.RPC.Socket, service, log)
		if err != nil {
			return fmt.Errorf("start json-rpc: %w", err)
		}
		defer func() { _ = rpcSrv.Close() }()
		log.Info("json-rpc listening", "socket", cfg.RPC.Socket)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", srv.Addr, "driver", cfg.Database.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
