package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "print the version",
	}

	return &cli.App{
		Name:                 "syncctl",
		Usage:                "Operate a running crm-deal-sync instance",
		Version:              orNA(buildVersion),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "sync engine HTTP address",
				Value:   "localhost:8080",
				EnvVars: []string{"SYNCCTL_SERVER"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "operator bearer token",
				EnvVars: []string{"SYNCCTL_TOKEN"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "request timeout",
				Value:   30 * time.Second,
				EnvVars: []string{"SYNCCTL_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log requests to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				return logger.SetLevel("debug")
			}
			return logger.SetLevel("warn")
		},
		Commands: commands(),
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "version",
			Usage: "Print detailed version information",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "Version:    %s\n", orNA(buildVersion))
				fmt.Fprintf(c.App.Writer, "Git commit: %s\n", orNA(buildCommit))
				fmt.Fprintf(c.App.Writer, "Built:      %s\n", orNA(buildDate))
				return nil
			},
		},
		{
			Name:   "full",
			Usage:  "Start a full sync of every remote deal",
			Action: startFullSync,
		},
		{
			Name:   "incremental",
			Usage:  "Start an incremental sync from the last watermark",
			Action: startIncrementalSync,
		},
		{
			Name:   "push",
			Usage:  "Push pending local changes to the CRM",
			Action: pushLocalChanges,
		},
		{
			Name:      "status",
			Usage:     "Show a sync session",
			ArgsUsage: "<session-id>",
			Action:    showSessionStatus,
		},
		{
			Name:      "cancel",
			Usage:     "Cancel a running sync session",
			ArgsUsage: "<session-id>",
			Action:    cancelSession,
		},
		{
			Name:      "bulk-status",
			Usage:     "Show the progress of a bulk operation",
			ArgsUsage: "<session-id>",
			Action:    showBulkStatus,
		},
		{
			Name:  "conflicts",
			Usage: "List records in conflict",
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "limit", Value: 100},
				&cli.Uint64Flag{Name: "offset"},
			},
			Action: listConflicts,
		},
		{
			Name:      "resolve",
			Usage:     "Resolve a conflicted record",
			ArgsUsage: "<remote-id> <use_local|use_remote>",
			Action:    resolveConflict,
		},
		{
			Name:   "health",
			Usage:  "Show the engine health report",
			Action: showHealth,
		},
		{
			Name:  "save-token",
			Usage: "Store a CRM OAuth credential on the server",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "account", Usage: "CRM account identity; taken from the token when empty"},
				&cli.StringFlag{Name: "access-token", Required: true, EnvVars: []string{"CRM_ACCESS_TOKEN"}},
				&cli.StringFlag{Name: "refresh-token", Required: true, EnvVars: []string{"CRM_REFRESH_TOKEN"}},
				&cli.Int64Flag{Name: "expires-in", Usage: "access token lifetime in seconds"},
				&cli.StringSliceFlag{Name: "scope"},
			},
			Action: saveToken,
		},
		{
			Name:  "token",
			Usage: "Operator token helpers",
			Subcommands: []*cli.Command{
				{
					Name:  "issue",
					Usage: "Sign an operator bearer token locally",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "operator", Required: true},
						&cli.StringFlag{Name: "sign-key", Required: true, EnvVars: []string{"APP_API_TOKEN_SIGN_KEY"}},
						&cli.StringFlag{Name: "issuer", Value: config.DefaultAPITokenIssuer, EnvVars: []string{"APP_API_TOKEN_ISSUER"}},
						&cli.DurationFlag{Name: "duration", Value: 24 * time.Hour},
					},
					Action: issueToken,
				},
			},
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
