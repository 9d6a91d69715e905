package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/myfriendben/screener/internal/domain"
)

//go:embed whitelabels.yaml
var defaultTables []byte

// Tables is the static routing configuration: the white-label registry and
// every table that maps something (a hostname, a referrer code, a path) onto
// a white label. It is read once at start-up.
type Tables struct {
	WhiteLabels     []domain.WhiteLabel `yaml:"white_labels"`
	CustomDomains   map[string]string   `yaml:"custom_domains"`
	LegacyReferrers map[string]string   `yaml:"legacy_referrers"`
	PartnerPaths    map[string]string   `yaml:"partner_paths"`
	LandingPages    map[string]string   `yaml:"landing_pages"`
	Locales         []string            `yaml:"locales"`
}

// Registry builds the white-label registry described by t.
func (t Tables) Registry() *domain.Registry {
	return domain.NewRegistry(t.WhiteLabels)
}

// LoadTables reads routing tables from path, or the embedded defaults when
// path is empty. Every table entry must name a registered white label.
func LoadTables(path string) (Tables, error) {
	raw := defaultTables
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Tables{}, fmt.Errorf("config.LoadTables: %w", err)
		}
		raw = b
	}
	return ParseTables(raw)
}

// ParseTables decodes and validates a routing-table document.
func ParseTables(raw []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tables{}, fmt.Errorf("config.ParseTables: %w", err)
	}
	if len(t.WhiteLabels) == 0 {
		return Tables{}, fmt.Errorf("config.ParseTables: no white labels defined")
	}

	var problems []string
	if len(t.CustomDomains) > 0 {
		// Request hosts are matched lowercased.
		hosts := make(map[string]string, len(t.CustomDomains))
		for _, host := range sortedKeys(t.CustomDomains) {
			lower := strings.ToLower(host)
			if _, dup := hosts[lower]; dup {
				problems = append(problems, fmt.Sprintf("custom_domains[%s]: duplicate host", host))
			}
			hosts[lower] = t.CustomDomains[host]
		}
		t.CustomDomains = hosts
	}

	reg := t.Registry()
	check := func(table string, m map[string]string) {
		for _, k := range sortedKeys(m) {
			if !reg.IsValid(m[k]) {
				problems = append(problems, fmt.Sprintf("%s[%s]: unknown white label %q", table, k, m[k]))
			}
		}
	}
	check("custom_domains", t.CustomDomains)
	check("legacy_referrers", t.LegacyReferrers)
	check("partner_paths", t.PartnerPaths)
	check("landing_pages", t.LandingPages)

	for host := range t.CustomDomains {
		if strings.HasPrefix(host, "www.") {
			problems = append(problems, fmt.Sprintf("custom_domains[%s]: list hosts without www.", host))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return Tables{}, fmt.Errorf("config.ParseTables: %s", strings.Join(problems, "; "))
	}
	return t, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
