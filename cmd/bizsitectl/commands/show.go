package commands

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/repo"
)

func newShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Print the business registered under a slug, whatever its status",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := e.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			label := strings.ToLower(strings.TrimSpace(args[0]))
			b, err := repo.NewBusinessRepo(pool).GetBySlug(ctx, label)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no business with slug %q", label)
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "id\t%s\n", b.ID)
			fmt.Fprintf(tw, "name\t%s\n", b.BusinessName)
			fmt.Fprintf(tw, "slug\t%s\n", b.Slug)
			fmt.Fprintf(tw, "status\t%s\n", b.Status)
			fmt.Fprintf(tw, "owner\t%s\n", b.OwnerEmail)
			fmt.Fprintf(tw, "category\t%s\n", orDash(b.Category))
			fmt.Fprintf(tw, "host\t%s.%s\n", b.Slug, e.v.GetString("root-domain"))
			fmt.Fprintf(tw, "created\t%s\n", b.CreatedAt.Format("2006-01-02 15:04"))
			return tw.Flush()
		}),
	}
}
