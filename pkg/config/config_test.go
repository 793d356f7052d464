package config

import (
	"reflect"
	"testing"

	"github.com/spf13/viper"

	"github.com/carebridge/cms-proxy/pkg/normalize"
)

func testViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.Set("api_token", "tok-123")
	v.Set("coverage_entries_collection_id", "col-entries")
	v.Set("coverage_states_collection_id", "col-states")
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(testViper())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.APIHost != "https://api.webflow.com" {
		t.Errorf("APIHost = %q", cfg.APIHost)
	}
	if cfg.CachePath != ".cache/cms-data.json" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
	if cfg.LegalDocsPolicy != normalize.PolicyDropEmpty {
		t.Errorf("LegalDocsPolicy = %q", cfg.LegalDocsPolicy)
	}
	if cfg.Port != 8080 || cfg.LogLevel != "info" || cfg.LogPretty {
		t.Errorf("defaults = port %d, level %q, pretty %v", cfg.Port, cfg.LogLevel, cfg.LogPretty)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*viper.Viper)
	}{
		{"missing token", func(v *viper.Viper) { v.Set("api_token", "") }},
		{"missing entries collection", func(v *viper.Viper) { v.Set("coverage_entries_collection_id", "") }},
		{"missing states collection", func(v *viper.Viper) { v.Set("coverage_states_collection_id", "") }},
		{"bad port", func(v *viper.Viper) { v.Set("port", 0) }},
		{"bad policy", func(v *viper.Viper) { v.Set("legal_docs_policy", "sometimes") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testViper()
			tt.mutate(v)
			if _, err := Load(v); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadAllowedDomains(t *testing.T) {
	v := testViper()
	v.Set("allowed_domains", "carebridge.example, www.carebridge.example ,")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"carebridge.example", "www.carebridge.example"}
	if !reflect.DeepEqual(cfg.AllowedDomains, want) {
		t.Errorf("AllowedDomains = %v, want %v", cfg.AllowedDomains, want)
	}
}

func TestLoadPolicySelection(t *testing.T) {
	v := testViper()
	v.Set("legal_docs_policy", "include-empty")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LegalDocsPolicy != normalize.PolicyIncludeEmpty {
		t.Errorf("LegalDocsPolicy = %q", cfg.LegalDocsPolicy)
	}
}
