package migrate

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ba6/gatekeeper/internal/infrastructure/database"
	"github.com/ba6/gatekeeper/internal/infrastructure/migration"
	"github.com/ba6/gatekeeper/internal/interfaces/cli/bootstrap"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Create the gates and space tables and report whether the Stripe Sync Engine tables are reachable.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Create or update the owned tables",
			RunE:  runUp,
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show which tables exist",
			RunE:  runStatus,
		},
	)

	return cmd
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running migrations", "environment", env)
	return migration.NewManager(cfg.Billing.Schema, log.Named("migration")).Migrate(database.Get())
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer database.Close()

	statuses := migration.NewManager(cfg.Billing.Schema, log.Named("migration")).Status(database.Get())
	return printStatus(cmd.OutOrStdout(), statuses)
}

func printStatus(out io.Writer, statuses []migration.TableStatus) error {
	if out == nil {
		out = os.Stdout
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tOWNER\tEXISTS")
	for _, s := range statuses {
		owner := "gatekeeper"
		if s.ReadOnly {
			owner = "stripe-sync"
		}
		fmt.Fprintf(w, "%s\t%s\t%t\n", s.Name, owner, s.Exists)
	}
	return w.Flush()
}
