package main

import (
	"github.com/spf13/cobra"

	"github.com/myfriendben/screener/internal/config"
	"github.com/myfriendben/screener/internal/domain"
)

type whiteLabelsOutput struct {
	WhiteLabels     []domain.WhiteLabel `json:"white_labels"`
	CustomDomains   map[string]string   `json:"custom_domains"`
	LegacyReferrers map[string]string   `json:"legacy_referrers"`
	PartnerPaths    map[string]string   `json:"partner_paths"`
	LandingPages    map[string]string   `json:"landing_pages"`
}

func newWhiteLabelsCmd(load func() (config.Tables, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "white-labels",
		Short: "Print the validated white-label registry and routing tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := load()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), whiteLabelsOutput{
				WhiteLabels:     tables.Registry().All(),
				CustomDomains:   tables.CustomDomains,
				LegacyReferrers: tables.LegacyReferrers,
				PartnerPaths:    tables.PartnerPaths,
				LandingPages:    tables.LandingPages,
			})
		},
	}
}
