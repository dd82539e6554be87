package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/delegate/cmd/app/commands"
	"github.com/allisson/delegate/internal/app"
	"github.com/allisson/delegate/internal/config"
)

func getObjectCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "register-object",
			Usage: "Register a new object address with a delegation record and credential",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				registrationUseCase, err := container.RegistrationUseCase()
				if err != nil {
					return err
				}

				return commands.RunRegisterObject(
					ctx,
					registrationUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "deregister-object",
			Usage: "Remove an object's delegation record and revoke its credential",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "address",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Object address to deregister",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				registrationUseCase, err := container.RegistrationUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeregisterObject(
					ctx,
					registrationUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("address"),
				)
			},
		},
	}
}
