package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/runtime/terminal/export"
	"github.com/rcm-tools/denial-atlas/pkg/services/config"
	"github.com/rcm-tools/denial-atlas/pkg/services/denials"
	"github.com/rcm-tools/denial-atlas/pkg/services/fetch"
)

const dateLayout = "2006-01-02"

type commonFlags struct {
	credentialsPath string
	profile         string
	settingsPath    string
	startDate       string
	endDate         string
	payer           string
}

func (cf *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cf.credentialsPath, "credentials", defaultCredentialsPath(),
		"Path to the credentials profile file")
	cmd.Flags().StringVar(&cf.profile, "profile", "default", "Credentials profile to use")
	cmd.Flags().StringVar(&cf.settingsPath, "settings", "", "Path to an optional settings YAML file")
	cmd.Flags().StringVar(&cf.startDate, "start", "", "Start date (YYYY-MM-DD, default 30 days ago)")
	cmd.Flags().StringVar(&cf.endDate, "end", "", "End date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&cf.payer, "payer", "", "Optional payer name substring filter")
}

// params resolves the filter tuple from flags, defaulting to the trailing
// 30 days ending today.
func (cf *commonFlags) params() (domain.FilterParams, error) {
	now := time.Now().UTC()
	params := domain.FilterParams{
		StartDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -30),
		EndDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Payer:     cf.payer,
	}

	var err error
	if cf.startDate != "" {
		params.StartDate, err = time.Parse(dateLayout, cf.startDate)
		if err != nil {
			return domain.FilterParams{}, fmt.Errorf("invalid --start date %q: %w", cf.startDate, err)
		}
	}
	if cf.endDate != "" {
		params.EndDate, err = time.Parse(dateLayout, cf.endDate)
		if err != nil {
			return domain.FilterParams{}, fmt.Errorf("invalid --end date %q: %w", cf.endDate, err)
		}
	}
	return params, nil
}

// controller wires the fetcher stack for the resolved configuration: remote
// API when a credential is present, synthetic fixture otherwise, always
// behind the TTL cache.
func (cf *commonFlags) controller() (*denials.Controller, config.Credentials, error) {
	settings, err := config.LoadSettings(cf.settingsPath)
	if err != nil {
		return nil, config.Credentials{}, err
	}

	creds := config.ResolveCredentials(cf.credentialsPath, cf.profile)

	source := fetch.SourceSynthetic
	if creds.Configured() {
		source = fetch.SourceRemoteAPI
	}

	fetcher, err := fetch.NewRegistry().Create(source, fetch.RemoteConfig{
		BaseURL: creds.APIBase,
		APIKey:  creds.APIKey,
		Limit:   settings.FetchLimit,
	})
	if err != nil {
		return nil, config.Credentials{}, fmt.Errorf("failed to create %s fetcher: %w", source, err)
	}

	ctrl := denials.NewController(fetch.NewCached(fetcher, settings.CacheTTL), denials.AnalyzerSettings{
		TopN:         settings.TopN,
		RateBaseline: settings.RateBaseline,
	})
	return ctrl, creds, nil
}

const demoModeNotice = `You're seeing demo data. To connect a real account:
  1. Get an API key from your billing platform support
  2. Add it to ~/.denialsrc under [default] as api_key = <your key>
     (or set the DENIALS_API_KEY environment variable)`

// AnalyzeCmd renders the denial metrics, trend and detail table.
type AnalyzeCmd struct {
	flags    commonFlags
	reporter *export.Reporter
}

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze claim denials over a date range",
		RunE:  ac.run,
	}
	ac.flags.register(cmd)
	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	params, err := ac.flags.params()
	if err != nil {
		return err
	}

	ctrl, creds, err := ac.flags.controller()
	if err != nil {
		return err
	}

	result, err := ctrl.Analyze(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to analyze denials: %w", err)
	}

	if err := ac.reporter.Handle(result); err != nil {
		return err
	}

	if !creds.Configured() {
		fmt.Fprintln(cmd.OutOrStdout(), demoModeNotice)
	}
	return nil
}
