package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neomorfeo/homebase/internal/domain"
)

func propertyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Inspect properties",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			landlord, _ := cmd.Flags().GetString("landlord")
			city, _ := cmd.Flags().GetString("city")
			limit, _ := cmd.Flags().GetInt("limit")

			filter := domain.PropertyFilter{LandlordID: landlord, City: city, Limit: limit}
			if status != "" {
				s := domain.PropertyStatus(status)
				if !s.Valid() {
					return fmt.Errorf("unknown status %q", status)
				}
				filter.Status = &s
			}

			properties, err := e.wf.ListProperties(cmd.Context(), operator, filter)
			if err != nil {
				return fmt.Errorf("failed to list properties: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(properties) == 0 {
				fmt.Fprintln(out, "No properties found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLANDLORD\tCITY\tSTATUS\tUPDATED")
			for _, p := range properties {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID,
					p.LandlordID,
					p.Attributes.City,
					statusLabel(string(p.Status)),
					formatTime(p.UpdatedAt),
				)
			}
			return w.Flush()
		},
	}
	list.Flags().String("status", "", "Filter by status (draft|pending_review|approved|rejected)")
	list.Flags().String("landlord", "", "Filter by landlord ID")
	list.Flags().String("city", "", "Filter by city")
	list.Flags().Int("limit", 50, "Max results")

	show := &cobra.Command{
		Use:   "show [property-id]",
		Short: "Show property details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.wf.GetProperty(cmd.Context(), operator, args[0])
			if err != nil {
				return fmt.Errorf("property %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			a := p.Attributes
			fmt.Fprintf(out, "Property: %s\n", p.ID)
			fmt.Fprintf(out, "Status: %s\n", statusLabel(string(p.Status)))
			fmt.Fprintf(out, "Landlord: %s\n", p.LandlordID)
			fmt.Fprintf(out, "Address: %s %s, %s %s (%s) %s\n",
				a.StreetName, a.HouseNumber, a.PostalCode, a.City, a.Province, a.Country)
			fmt.Fprintf(out, "Bedrooms: %d  Bathrooms: %d+%d\n", a.Bedrooms, a.FullBathrooms, a.HalfBathrooms)
			fmt.Fprintf(out, "Reviewer: %s\n", orDash(p.Review.ReviewerID))
			fmt.Fprintf(out, "Reviewed: %s\n", formatTimePtr(p.Review.ReviewedAt))
			if p.Review.Comments != "" {
				fmt.Fprintf(out, "Comments: %s\n", p.Review.Comments)
			}
			fmt.Fprintf(out, "Version: %d\n", p.Version)
			fmt.Fprintf(out, "Created: %s\n", formatTime(p.CreatedAt))

			listing, err := e.wf.ListListings(cmd.Context(), operator, domain.ListingFilter{PropertyID: p.ID, Limit: 1})
			if err != nil {
				return fmt.Errorf("listing of property %s: %w", p.ID, err)
			}
			if len(listing) == 1 {
				fmt.Fprintf(out, "Listing: %s (%s)\n", listing[0].ID, statusLabel(string(listing[0].Status)))
			}
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
