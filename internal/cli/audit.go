package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

func auditCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Read the workflow audit trail",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entity, _ := cmd.Flags().GetString("entity")
			entityID, _ := cmd.Flags().GetString("id")
			actor, _ := cmd.Flags().GetString("actor")
			limit, _ := cmd.Flags().GetInt("limit")

			entries, err := app.NewAuditTrail(e.store.Audit()).List(cmd.Context(), operator, domain.AuditFilter{
				Entity:   domain.EntityKind(entity),
				EntityID: entityID,
				ActorID:  actor,
				Limit:    limit,
			})
			if err != nil {
				return fmt.Errorf("failed to read audit trail: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No audit entries found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tENTITY\tEVENT\tFROM\tTO\tACTOR\tCOMMENTS")
			for _, en := range entries {
				fmt.Fprintf(w, "%s\t%s/%s\t%s\t%s\t%s\t%s\t%s\n",
					formatTime(en.OccurredAt),
					en.Entity,
					en.EntityID,
					en.Event,
					orDash(en.From),
					orDash(en.To),
					en.ActorID,
					en.Comments,
				)
			}
			return w.Flush()
		},
	}
	list.Flags().String("entity", "", "Filter by entity kind (property|listing|lease)")
	list.Flags().String("id", "", "Filter by entity ID")
	list.Flags().String("actor", "", "Filter by actor ID")
	list.Flags().Int("limit", 50, "Max results")

	cmd.AddCommand(list)
	return cmd
}
