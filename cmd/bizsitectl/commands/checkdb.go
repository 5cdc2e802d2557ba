package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/repo"
)

func newCheckDBCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Check connectivity and print business and analytics counts",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			businesses := repo.NewBusinessRepo(pool)
			events := repo.NewAnalyticsRepo(pool)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STATUS\tBUSINESSES")
			one := domain.PaginationParams{Page: 1, Limit: 1}
			for _, status := range []domain.BusinessStatus{domain.StatusPending, domain.StatusApproved, domain.StatusRejected} {
				_, total, err := businesses.ListByStatus(ctx, status, one)
				if err != nil {
					return fmt.Errorf("count %s businesses: %w", status, err)
				}
				fmt.Fprintf(tw, "%s\t%d\n", status, total)
			}

			counts, err := events.CountByBusiness(ctx)
			if err != nil {
				return fmt.Errorf("count analytics events: %w", err)
			}
			var totalEvents int64
			for _, n := range counts {
				totalEvents += n
			}
			fmt.Fprintf(tw, "\nanalytics events\t%d\n", totalEvents)
			fmt.Fprintf(tw, "businesses with events\t%d\n", len(counts))
			return tw.Flush()
		}),
	}
}
