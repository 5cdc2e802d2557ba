package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/bizsite/migrations"
)

func newMigrateCommand(e *env) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, e, func(p *goose.Provider) error {
					results, err := p.Up(cmd.Context())
					if err != nil {
						return fmt.Errorf("migrate up: %w", err)
					}
					printResults(cmd, results)
					return nil
				})
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, e, func(p *goose.Provider) error {
					result, err := p.Down(cmd.Context())
					if err != nil {
						return fmt.Errorf("migrate down: %w", err)
					}
					printResults(cmd, []*goose.MigrationResult{result})
					return nil
				})
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show which migrations are applied",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, e, func(p *goose.Provider) error {
					statuses, err := p.Status(cmd.Context())
					if err != nil {
						return fmt.Errorf("migrate status: %w", err)
					}
					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tSOURCE")
					for _, s := range statuses {
						applied := "-"
						if !s.AppliedAt.IsZero() {
							applied = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
					}
					return tw.Flush()
				})
			}),
		},
	)
	return migrate
}

func withProvider(cmd *cobra.Command, e *env, fn func(p *goose.Provider) error) error {
	db, err := e.sqlDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := migrations.NewProvider(db)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	return fn(p)
}

func printResults(cmd *cobra.Command, results []*goose.MigrationResult) {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "no migrations to run")
		return
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s %d %s (%s)\n", r.Direction, r.Source.Version, r.Source.Path, r.Duration)
	}
}
