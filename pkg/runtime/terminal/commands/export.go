package commands

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"

	csvexport "github.com/rcm-tools/denial-atlas/pkg/export"
)

func defaultCredentialsPath() string {
	usr, err := user.Current()
	if err != nil {
		return ".denialsrc"
	}
	return fmt.Sprintf("%s/.denialsrc", usr.HomeDir)
}

// ExportCmd writes the normalized denial records to a CSV file.
type ExportCmd struct {
	flags commonFlags
	out   string
}

func NewExportCmd() *cobra.Command {
	ec := &ExportCmd{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export claim denials to CSV",
		RunE:  ec.run,
	}
	ec.flags.register(cmd)
	cmd.Flags().StringVarP(&ec.out, "out", "o", "denials.csv", "Output CSV file path")
	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	params, err := ec.flags.params()
	if err != nil {
		return err
	}

	ctrl, _, err := ec.flags.controller()
	if err != nil {
		return err
	}

	result, err := ctrl.Analyze(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to analyze denials: %w", err)
	}
	if result.HasErrors() {
		for _, d := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, d.Message)
		}
		return fmt.Errorf("upstream fetch failed, nothing to export")
	}

	f, err := os.Create(ec.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", ec.out, err)
	}
	defer func() { _ = f.Close() }()

	if err := csvexport.WriteCSV(f, result.Snapshot.Records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", result.Snapshot.TotalCount, ec.out)
	return nil
}
