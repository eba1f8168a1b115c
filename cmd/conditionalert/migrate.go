package main

import (
	"conditionalert/pkg/infrastructure/mysql"
	"context"
	"github.com/urfave/cli/v2"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "applies database migrations",
		Action: func(c *cli.Context) error {
			cnf, err := parseEnv()
			if err != nil {
				return err
			}
			setupLogger(cnf)

			db, err := connectDB(context.Background(), cnf)
			if err != nil {
				return err
			}
			defer db.Close()

			return mysql.Migrate(db)
		},
	}
}
