package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/myfriendben/screener/internal/config"
)

func newRootCmd() *cobra.Command {
	var tablesFile string

	cmd := &cobra.Command{
		Use:          "screenerctl",
		Short:        "Screener gateway operator tools",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&tablesFile, "tables", os.Getenv("WHITE_LABELS_FILE"),
		"Routing-table YAML (default: embedded tables)")

	loadTables := func() (config.Tables, error) {
		return config.LoadTables(tablesFile)
	}

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newWhiteLabelsCmd(loadTables))
	cmd.AddCommand(newResolveCmd(loadTables))
	cmd.AddCommand(newStatsCmd())
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
