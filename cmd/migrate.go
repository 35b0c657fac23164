package cmd

import (
	"github.com/urfave/cli/v2"

	"postboard/app/config"
	"postboard/app/database"
)

func migrateCmd(defaults config.Config) *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Usage:       "Run database migrations",
		Description: `Runs database migrations on the configured database. Will create the database if it does not exist.`,
		Flags: []cli.Flag{
			databaseURLFlag(defaults),
		},
		Action: func(ctx *cli.Context) error {
			db, err := database.Open(ctx.Context, ctx.String("database-url"))
			if err != nil {
				return err
			}
			defer db.Close()

			return db.Migrate(ctx.Context)
		},
	}
}
