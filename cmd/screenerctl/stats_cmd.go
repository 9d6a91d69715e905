package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/myfriendben/screener/internal/config"
	"github.com/myfriendben/screener/internal/repo"
	"github.com/myfriendben/screener/internal/service"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count stored screens per white label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tables, err := config.LoadTables(cfg.WhiteLabelsFile)
			if err != nil {
				return err
			}
			pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := service.NewScreenService(repo.NewScreenRepo(pool), tables.Registry())
			counts, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), counts)
		},
	}
}
