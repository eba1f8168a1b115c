package main

import (
	"conditionalert/pkg/domain/model"
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"io"
	"os"
)

func triggerCommand() *cli.Command {
	return &cli.Command{
		Name:      "trigger",
		Usage:     "handles a single change event read from a file or stdin",
		ArgsUsage: "[event.json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "log the message instead of sending it",
			},
		},
		Action: func(c *cli.Context) error {
			cnf, err := parseEnv()
			if err != nil {
				return err
			}
			setupLogger(cnf)

			event, err := readChangeEvent(c.Args().First())
			if err != nil {
				return err
			}

			db, err := connectDB(c.Context, cnf)
			if err != nil {
				return err
			}
			defer db.Close()

			sender, err := newSMSSender(cnf, c.Bool("dry-run"))
			if err != nil {
				return err
			}
			handler := newAlertHandler(cnf, db, sender)
			return handler.Handle(c.Context, event)
		},
	}
}

func readChangeEvent(path string) (model.ChangeEvent, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return model.ChangeEvent{}, errors.Wrap(err, "failed to open change event")
		}
		defer f.Close()
		r = f
	}

	var event model.ChangeEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return model.ChangeEvent{}, errors.Wrap(err, "failed to decode change event")
	}
	return event, nil
}
