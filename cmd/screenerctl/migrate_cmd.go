package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/myfriendben/screener/internal/config"
	"github.com/myfriendben/screener/migrations"
)

type migrateOutput struct {
	Direction string   `json:"direction"`
	Applied   []string `json:"applied"`
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the screens schema",
	}

	run := func(direction string, step func(p *goose.Provider, cmd *cobra.Command) ([]*goose.MigrationResult, error)) *cobra.Command {
		return &cobra.Command{
			Use:   direction,
			Short: "Migrate " + direction,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				db, err := sql.Open("pgx", cfg.DatabaseURL)
				if err != nil {
					return fmt.Errorf("open database: %w", err)
				}
				defer db.Close()

				provider, err := migrations.NewProvider(db)
				if err != nil {
					return err
				}
				results, err := step(provider, cmd)
				if err != nil {
					return err
				}

				out := migrateOutput{Direction: direction, Applied: []string{}}
				for _, r := range results {
					out.Applied = append(out.Applied, r.Source.Path)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			},
		}
	}

	cmd.AddCommand(run("up", func(p *goose.Provider, cmd *cobra.Command) ([]*goose.MigrationResult, error) {
		return p.Up(cmd.Context())
	}))
	cmd.AddCommand(run("down", func(p *goose.Provider, cmd *cobra.Command) ([]*goose.MigrationResult, error) {
		r, err := p.Down(cmd.Context())
		if err != nil {
			return nil, err
		}
		return []*goose.MigrationResult{r}, nil
	}))
	return cmd
}
