package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/paradoxis/flask-unsign/internal/config"
)

const version = "1.2.1"

// userCfg carries the optional config-file defaults; flags override
// its values and it overrides the built-in defaults.
var userCfg = &config.Config{}

// Execute runs the flask-unsign command-line application.
func Execute(args []string) error {
	if cfg, err := config.Load(); err == nil {
		userCfg = cfg
	} else {
		fmt.Printf("flask-unsign: ignoring malformed config file: %s\n", err)
	}

	app := cli.App{
		Name:         "Flask-Unsign",
		HelpName:     "flask-unsign",
		Usage:        "Decode, sign and brute-force Flask session cookies.",
		Version:      version,
		UsageText:    "flask-unsign <command> [arguments...]",
		Description:  DESCRIPTION,
		OnUsageError: usageErrorCallback,
		Commands: []cli.Command{
			{
				Name:                   "decode",
				Aliases:                []string{"d"},
				Usage:                  "decode a session cookie without the secret key",
				Description:            DecodeDescription,
				Action:                 decode,
				Flags:                  decodeFlags,
				OnUsageError:           usageErrorCallback,
				UseShortOptionHandling: true,
			},
			{
				Name:                   "sign",
				Aliases:                []string{"s"},
				Usage:                  "forge a session cookie with a known secret key",
				Description:            SignDescription,
				Action:                 sign,
				Flags:                  signFlags,
				OnUsageError:           usageErrorCallback,
				UseShortOptionHandling: true,
			},
			{
				Name:                   "unsign",
				Aliases:                []string{"u"},
				Usage:                  "brute-force the secret key behind a session cookie",
				Description:            UnsignDescription,
				Action:                 unsign,
				Flags:                  unsignFlags,
				OnUsageError:           usageErrorCallback,
				UseShortOptionHandling: true,
			},
			{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "prints the installed version of flask-unsign",
				Action: func(ctx *cli.Context) error {
					fmt.Printf("flask-unsign %s\n", version)
					return nil
				},
			},
		},
		HideVersion: true,
	}
	return app.Run(args)
}
