// Package cli implements homebasectl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/neomorfeo/homebase/internal/adapter/fsm"
	"github.com/neomorfeo/homebase/internal/adapter/sqlite"
	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

// operator is the identity homebasectl acts under. It sees everything and
// writes nothing through the workflow.
var operator = domain.NewActor("homebasectl", domain.RoleAdmin, domain.RoleHousingOffice)

// env is the state shared by the subcommands of one invocation.
type env struct {
	dbPath string
	store  *sqlite.Store
	wf     *app.Workflow
}

func (e *env) open(context.Context) error {
	store, err := sqlite.New(e.dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", e.dbPath, err)
	}
	e.store = store
	e.wf = app.NewWorkflow(app.Deps{
		Properties:      store.Properties(),
		Listings:        store.Listings(),
		Publisher:       discardPublisher{},
		PropertyMachine: fsm.NewPropertyMachine(),
		ListingMachine:  fsm.NewListingMachine(),
	})
	return nil
}

func (e *env) close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// discardPublisher drops events; homebasectl never mutates entities.
type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, domain.WorkflowEvent) error { return nil }

// NewRootCmd builds the homebasectl command tree.
func NewRootCmd(version string) *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:     "homebasectl",
		Short:   "Operator tool for the homebase database",
		Version: version,
		Long: `homebasectl inspects the homebase SQLite database: properties awaiting
review, listings, Housing Office queue counts and the audit trail.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
			return e.open(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return e.close()
		},
	}

	dbDefault := os.Getenv("DATABASE_PATH")
	if dbDefault == "" {
		dbDefault = "homebase.db"
	}
	root.PersistentFlags().StringVar(&e.dbPath, "db", dbDefault, "Path to the SQLite database")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")

	root.AddCommand(migrateCmd(e))
	root.AddCommand(propertyCmd(e))
	root.AddCommand(listingCmd(e))
	root.AddCommand(statsCmd(e))
	root.AddCommand(auditCmd(e))

	return root
}

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long:  "Opening the database applies every pending migration; this command only does that.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is up to date\n", color.GreenString("✓"), e.dbPath)
			return nil
		},
	}
}

func statsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the Housing Office queue counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard := app.NewDashboard(e.store.Properties(), e.store.Listings(), time.Second)
			s, err := dashboard.Stats(cmd.Context(), operator)
			if err != nil {
				return fmt.Errorf("failed to count: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Properties pending review: %s\n", highlight(s.PendingProperties))
			fmt.Fprintf(out, "Active properties:         %d\n", s.ActiveProperties)
			fmt.Fprintf(out, "Listings awaiting review:  %s\n", highlight(s.ListingsAwaitingReview))
			fmt.Fprintf(out, "Published listings:        %d\n", s.PublishedListings)
			return nil
		},
	}
}

func highlight(n int) string {
	if n == 0 {
		return "0"
	}
	return color.New(color.FgYellow, color.Bold).Sprint(n)
}
