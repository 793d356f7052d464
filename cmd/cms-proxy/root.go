package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carebridge/cms-proxy/pkg/config"
	"github.com/carebridge/cms-proxy/pkg/logging"
	"github.com/carebridge/cms-proxy/pkg/normalize"
	"github.com/carebridge/cms-proxy/pkg/refmap"
	"github.com/carebridge/cms-proxy/pkg/service"
	"github.com/carebridge/cms-proxy/pkg/snapshot"
	"github.com/carebridge/cms-proxy/pkg/webflow"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "cms-proxy",
	Short: "Caching proxy and field-normalization layer for the CMS content API",
	Long: `cms-proxy sits between consumers and the CMS content API. It resolves
opaque option IDs into semantic labels, persists a denormalized snapshot of
the coverage collections, and serves search and legal-document routes that
never expose raw CMS field layouts.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cms-proxy.yaml)")
}

func initConfig() {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".cms-proxy")
	}

	v.SetEnvPrefix("CMS_PROXY")
	v.AutomaticEnv()

	// A missing config file is fine; env vars and defaults carry the rest.
	_ = v.ReadInConfig()
}

// loadConfig materializes and validates the configuration, and applies the
// global logging setup.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})
	return cfg, nil
}

// buildService wires the upstream client, reference maps, and snapshot
// store into a service.
func buildService(cfg *config.Config) (*service.Service, error) {
	clientCfg := webflow.DefaultConfig(cfg.APIToken)
	clientCfg.BaseURL = cfg.APIHost

	client, err := webflow.New(clientCfg)
	if err != nil {
		return nil, err
	}

	svc := service.New(
		client,
		normalize.NewEngine(refmap.Defaults()),
		snapshot.NewStore(cfg.CachePath),
		service.Config{
			Collections: service.Collections{
				CoverageEntries: cfg.CoverageEntriesCollection,
				CoverageStates:  cfg.CoverageStatesCollection,
				LegalDocs:       cfg.LegalDocsCollection,
				Languages:       cfg.LanguagesCollection,
			},
			WebhookSecret:  cfg.WebhookSecret,
			LegalDocPolicy: cfg.LegalDocsPolicy,
		},
	)
	return svc, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
