package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"os"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to load .env")
	}

	app := &cli.App{
		Name:  appID,
		Usage: "sends an SMS alert when a watched condition is reported",
		Commands: []*cli.Command{
			serviceCommand(),
			migrateCommand(),
			triggerCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("conditionalert failed")
	}
}
