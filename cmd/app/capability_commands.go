package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/delegate/cmd/app/commands"
	"github.com/allisson/delegate/internal/app"
	"github.com/allisson/delegate/internal/config"
)

func getCapabilityCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "mint-capability",
			Usage: "Mint a signer capability for a registered object address",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "address",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Object address to mint the capability for",
				},
				&cli.StringFlag{
					Name:    "label",
					Aliases: []string{"l"},
					Value:   "",
					Usage:   "Optional label stored with the capability",
				},
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

				capabilityUseCase, err := container.CapabilityUseCase()
				if err != nil {
					return err
				}

				return commands.RunMintCapability(
					ctx,
					capabilityUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("address"),
					cmd.String("label"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "derive-signer",
			Usage: "Redeem a capability token for its signer authority",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Capability token to redeem",
				},
				&cli.StringFlag{
					Name:    "payload",
					Aliases: []string{"p"},
					Value:   "",
					Usage:   "Optional base64-encoded payload to sign",
				},
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

				capabilityUseCase, err := container.CapabilityUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeriveSigner(
					ctx,
					capabilityUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.String("payload"),
					cmd.String("format"),
				)
			},
		},
	}
}
