package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neomorfeo/homebase/internal/domain"
)

func listingCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Inspect listings",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List listings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			property, _ := cmd.Flags().GetString("property")
			limit, _ := cmd.Flags().GetInt("limit")

			filter := domain.ListingFilter{PropertyID: property, Limit: limit}
			if status != "" {
				s := domain.ListingStatus(status)
				if !s.Valid() {
					return fmt.Errorf("unknown status %q", status)
				}
				filter.Status = &s
			}

			listings, err := e.wf.ListListings(cmd.Context(), operator, filter)
			if err != nil {
				return fmt.Errorf("failed to list listings: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(listings) == 0 {
				fmt.Fprintln(out, "No listings found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROPERTY\tSTATUS\tRENT\tPUBLISHED")
			for _, l := range listings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					l.ID,
					l.PropertyID,
					statusLabel(string(l.Status)),
					l.Terms.MonthlyRent,
					formatTimePtr(l.PublishedAt),
				)
			}
			return w.Flush()
		},
	}
	list.Flags().String("status", "", "Filter by status")
	list.Flags().String("property", "", "Filter by property ID")
	list.Flags().Int("limit", 50, "Max results")

	cmd.AddCommand(list)
	return cmd
}
