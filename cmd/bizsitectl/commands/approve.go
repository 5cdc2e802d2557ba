package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/bizsite/internal/repo"
	"github.com/pkordes/bizsite/internal/service"
)

func newApproveAllCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "approve-all",
		Short: "Approve every pending business",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			approved, err := service.NewBusinessService(repo.NewBusinessRepo(pool)).ApproveAllPending(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, b := range approved {
				fmt.Fprintf(out, "approved %s (%s)\n", b.Slug, b.BusinessName)
			}
			fmt.Fprintf(out, "%d business(es) approved\n", len(approved))
			return nil
		}),
	}
}
