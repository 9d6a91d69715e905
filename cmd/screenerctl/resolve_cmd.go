package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/myfriendben/screener/internal/config"
	"github.com/myfriendben/screener/internal/routing"
)

type resolveOutput struct {
	Host     string `json:"host"`
	Path     string `json:"path"`
	Redirect bool   `json:"redirect"`
	Location string `json:"location,omitempty"`
}

func newResolveCmd(load func() (config.Tables, error)) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <host> <path>",
		Short:   "Show where the custom-domain rule sends a URL",
		Example: "  screenerctl resolve coloradoenergysavings.org '/some-path?lang=es#section'",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := load()
			if err != nil {
				return err
			}
			host, raw := args[0], args[1]
			path, search, hash := splitURL(raw)

			resolver := routing.NewDomainResolver(tables.CustomDomains, tables.Registry())
			target, ok := resolver.ResolveRedirect(host, path, search, hash)
			return writeJSON(cmd.OutOrStdout(), resolveOutput{
				Host:     host,
				Path:     raw,
				Redirect: ok,
				Location: target,
			})
		},
	}
}

// splitURL breaks a path into path, "?query" and "#fragment", each keeping
// its leading delimiter.
func splitURL(raw string) (path, search, hash string) {
	path = raw
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path, hash = path[:i], path[i:]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, search = path[:i], path[i:]
	}
	if path == "" {
		path = "/"
	}
	return path, search, hash
}
