// Package config loads proxy configuration from a config file and
// CMS_PROXY_* environment variables, with sane defaults for everything that
// has one.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/carebridge/cms-proxy/pkg/normalize"
	"github.com/carebridge/cms-proxy/pkg/snapshot"
)

// Config is the full proxy configuration.
type Config struct {
	// APIToken authenticates against the CMS API. Required for any
	// operation that talks upstream.
	APIToken string

	// APIHost is the CMS API base URL.
	APIHost string

	// SiteID identifies the CMS site. Informational; collection IDs are
	// what the fetch paths actually use.
	SiteID string

	CoverageEntriesCollection string
	CoverageStatesCollection  string
	LegalDocsCollection       string
	LanguagesCollection       string

	// WebhookSecret guards POST /api/cms/webhook. Empty disables auth.
	WebhookSecret string

	// AllowedDomains is the host allowlist for browser-facing requests.
	// Empty allows everything.
	AllowedDomains []string

	// CachePath is the snapshot file location.
	CachePath string

	// LegalDocsPolicy selects the legal-docs projection generation.
	LegalDocsPolicy normalize.LegalDocPolicy

	// Port is the HTTP listen port.
	Port int

	LogLevel  string
	LogPretty bool
}

// SetDefaults registers every default on v. Call before binding flags so
// explicit values win.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_host", "https://api.webflow.com")
	v.SetDefault("cache_path", snapshot.DefaultPath)
	v.SetDefault("legal_docs_policy", string(normalize.PolicyDropEmpty))
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
}

// Load materializes a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	policy, err := normalize.ParsePolicy(v.GetString("legal_docs_policy"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIToken:                  v.GetString("api_token"),
		APIHost:                   v.GetString("api_host"),
		SiteID:                    v.GetString("site_id"),
		CoverageEntriesCollection: v.GetString("coverage_entries_collection_id"),
		CoverageStatesCollection:  v.GetString("coverage_states_collection_id"),
		LegalDocsCollection:       v.GetString("legal_docs_collection_id"),
		LanguagesCollection:       v.GetString("languages_collection_id"),
		WebhookSecret:             v.GetString("webhook_secret"),
		AllowedDomains:            splitList(v.GetString("allowed_domains")),
		CachePath:                 v.GetString("cache_path"),
		LegalDocsPolicy:           policy,
		Port:                      v.GetInt("port"),
		LogLevel:                  v.GetString("log_level"),
		LogPretty:                 v.GetBool("log_pretty"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("api_token is required")
	}
	if c.CoverageEntriesCollection == "" || c.CoverageStatesCollection == "" {
		return fmt.Errorf("coverage_entries_collection_id and coverage_states_collection_id are required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty segments.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
