// Package commands implements the bizsitectl subcommands.
package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/bizsite/internal/logging"
)

// env reads flags first, then environment variables: --database-url or
// DATABASE_URL, --root-domain or ROOT_DOMAIN, and so on.
type env struct {
	v *viper.Viper
}

func newEnv() *env {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	v.SetDefault("root-domain", "localhost")
	v.SetDefault("reserved-subdomains", "www,api")
	return &env{v: v}
}

func (e *env) databaseURL() (string, error) {
	dsn := e.v.GetString("database-url")
	if dsn == "" {
		return "", errors.New("DATABASE_URL is not set (use --database-url or the environment)")
	}
	return dsn, nil
}

func (e *env) pool(ctx context.Context) (*pgxpool.Pool, error) {
	dsn, err := e.databaseURL()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func (e *env) sqlDB(ctx context.Context) (*sql.DB, error) {
	dsn, err := e.databaseURL()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewRootCommand assembles the bizsitectl command tree.
func NewRootCommand() *cobra.Command {
	e := newEnv()

	root := &cobra.Command{
		Use:           "bizsitectl",
		Short:         "Operator CLI for the business site builder",
		Long:          `bizsitectl runs database migrations, inspects and approves businesses, and exercises the slug and subdomain rules from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("read .env: %w", err)
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), e.v.GetString("log-level"), e.v.GetString("log-format")))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("database-url", "", "Postgres connection string (default $DATABASE_URL)")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("log-format", "text", "json or text")
	for _, name := range []string{"database-url", "log-level", "log-format"} {
		_ = e.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newMigrateCommand(e),
		newCheckDBCommand(e),
		newApproveAllCommand(e),
		newShowCommand(e),
		newSlugCommand(),
		newResolveCommand(e),
	)
	return root
}

// run wraps a RunE body so errors are logged once with the command name.
func run(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			slog.Error("command failed", "command", cmd.CommandPath(), "error", err)
			return err
		}
		return nil
	}
}
