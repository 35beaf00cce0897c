package main

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/crm-deal-sync/internal/client"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// newOperatorClient is replaced in tests.
var newOperatorClient = func(c *cli.Context) (client.OperatorAPI, error) {
	return client.NewClient(client.Config{
		Address: c.String("server"),
		Token:   c.String("token"),
		Timeout: c.Duration("timeout"),
	}, logger.NewConsoleLogger("syncctl"))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return cli.Exit(fmt.Sprintf("usage: %s %s %s", c.App.Name, c.Command.Name, c.Command.ArgsUsage), 2)
	}
	return nil
}

func printStarted(c *cli.Context, sessionID string, err error) error {
	if err != nil {
		return err
	}
	if sessionID == "" {
		fmt.Fprintln(c.App.Writer, "nothing to do")
		return nil
	}
	fmt.Fprintf(c.App.Writer, "session %s started\n", sessionID)
	return nil
}

func startFullSync(c *cli.Context) error {
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}
	id, err := api.StartFullSync(c.Context)
	return printStarted(c, id, err)
}

func startIncrementalSync(c *cli.Context) error {
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}
	id, err := api.StartIncrementalSync(c.Context)
	return printStarted(c, id, err)
}

func pushLocalChanges(c *cli.Context) error {
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}
	id, err := api.PushLocalChanges(c.Context)
	return printStarted(c, id, err)
}

func showSessionStatus(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}

	session, err := api.SessionStatus(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, session)
}

func cancelSession(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}

	if err = api.CancelSession(c.Context, c.Args().First()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "cancellation of %s requested\n", c.Args().First())
	return nil
}

func showBulkStatus(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}

	status, err := api.BulkStatus(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, status)
}

func listConflicts(c *cli.Context) error {
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}

	conflicts, err := api.ListConflicts(c.Context, c.Uint64("limit"), c.Uint64("offset"))
	if err != nil {
		return err
	}
	if len(conflicts) == 0 {
		fmt.Fprintln(c.App.Writer, "no conflicts")
		return nil
	}
	return printJSON(c.App.Writer, conflicts)
}

func resolveConflict(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}

	strategy := models.OverrideStrategy(c.Args().Get(1))
	if strategy != models.OverrideUseLocal && strategy != models.OverrideUseRemote {
		return cli.Exit(fmt.Sprintf("unknown strategy %q: want use_local or use_remote", strategy), 2)
	}

	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}

	status, err := api.ResolveConflict(c.Context, c.Args().First(), models.ConflictOverride{Strategy: strategy})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s is now %s\n", status.RemoteRecordID, status.SyncStatus)
	return nil
}

func showHealth(c *cli.Context) error {
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}

	report, err := api.Health(c.Context)
	if err != nil {
		return err
	}
	if err = printJSON(c.App.Writer, report); err != nil {
		return err
	}
	if report.Status == models.Unhealthy {
		return cli.Exit("", 1)
	}
	return nil
}

func saveToken(c *cli.Context) error {
	api, err := newOperatorClient(c)
	if err != nil {
		return err
	}

	account, err := api.SaveToken(c.Context, c.String("account"), models.TokenPayload{
		AccessToken:  c.String("access-token"),
		RefreshToken: c.String("refresh-token"),
		ExpiresIn:    c.Int64("expires-in"),
		Scopes:       c.StringSlice("scope"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "credential saved for account %s\n", account)
	return nil
}

func issueToken(c *cli.Context) error {
	token, err := utils.GenerateJWTToken(c.String("issuer"), c.String("operator"), c.Duration("duration"), c.String("sign-key"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, token.SignedString)
	fmt.Fprintf(c.App.ErrWriter, "expires at %s\n", time.Now().Add(c.Duration("duration")).Format(time.RFC3339))
	return nil
}
