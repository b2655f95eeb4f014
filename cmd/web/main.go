package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rcm-tools/denial-atlas/pkg/logging"
	"github.com/rcm-tools/denial-atlas/pkg/server"
	"github.com/rcm-tools/denial-atlas/pkg/services/config"
	"github.com/rcm-tools/denial-atlas/pkg/services/denials"
	"github.com/rcm-tools/denial-atlas/pkg/services/fetch"
)

var (
	credentialsPath string
	profile         string
	settingsPath    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the denial-atlas web server",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.denialsrc", usr.HomeDir)

	rootCmd.Flags().StringVarP(&credentialsPath, "credentials", "c", defaultPath,
		"Path to the credentials profile file (default is $HOME/.denialsrc)")
	rootCmd.Flags().StringVar(&profile, "profile", "default", "Credentials profile to use")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to an optional settings YAML file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logger := logging.Setup(settings.LogFormat)

	creds := config.ResolveCredentials(credentialsPath, profile)

	var fetcher fetch.Fetcher
	if creds.Configured() {
		fetcher, err = fetch.NewRemote(fetch.RemoteConfig{
			BaseURL: creds.APIBase,
			APIKey:  creds.APIKey,
			Limit:   settings.FetchLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to create remote fetcher: %w", err)
		}
		logger.Info().Str("profile", creds.Profile).Str("api_base", creds.APIBase).
			Msg("using remote payments API")
	} else {
		fetcher = fetch.NewSyntheticFixture()
		logger.Warn().Msg("no API key configured, serving synthetic demo data")
	}

	controller := denials.NewController(
		fetch.NewCached(fetcher, settings.CacheTTL),
		denials.AnalyzerSettings{
			TopN:         settings.TopN,
			RateBaseline: settings.RateBaseline,
		},
	)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: settings.ListenAddr,
		Dependencies: server.Dependencies{
			Denials: controller,
		},
	})

	return webAPI.Start()
}
