package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"postboard/app/config"
	"postboard/app/database"
	"postboard/app/middleware"
	"postboard/app/repositories"
	"postboard/app/routes"
	"postboard/app/server"
	"postboard/app/services"
)

func serveCmd(defaults config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the posts API",
		Description: `Opens the database, applies pending migrations unless
--auto-migrate=false is given, and serves the HTTP API until interrupted.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "Address to listen on",
				EnvVars: []string{"POSTBOARD_ADDR"},
				Value:   defaults.Addr,
			},
			databaseURLFlag(defaults),
			&cli.BoolFlag{
				Name:    "auto-migrate",
				Usage:   "Apply migrations on startup",
				EnvVars: []string{"POSTBOARD_AUTO_MIGRATE"},
				Value:   defaults.AutoMigrate,
			},
			&cli.DurationFlag{
				Name:    "shutdown-timeout",
				Usage:   "How long to wait for in-flight requests on shutdown",
				EnvVars: []string{"POSTBOARD_SHUTDOWN_TIMEOUT"},
				Value:   defaults.ShutdownTimeout,
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg := config.Config{
				Addr:            ctx.String("addr"),
				DatabaseURL:     ctx.String("database-url"),
				AutoMigrate:     ctx.Bool("auto-migrate"),
				ShutdownTimeout: ctx.Duration("shutdown-timeout"),
				LogLevel:        ctx.String("log-level"),
				LogFormat:       ctx.String("log-format"),
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.Open(sigCtx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.WithError(err).Warn("Failed to close database")
				}
			}()

			if cfg.AutoMigrate {
				if err := db.Migrate(sigCtx); err != nil {
					return err
				}
			}

			postRepo, err := repositories.NewPostRepository(db)
			if err != nil {
				return fmt.Errorf("create post repository: %w", err)
			}
			handler := routes.SetupRoutes(db, services.NewPostService(postRepo), middleware.NewMetrics())

			log.WithFields(log.Fields{
				"addr":   cfg.Addr,
				"driver": db.Driver,
			}).Info("Starting postboard")
			return server.New(cfg.Addr, handler, cfg.ShutdownTimeout).Run(sigCtx)
		},
	}
}
