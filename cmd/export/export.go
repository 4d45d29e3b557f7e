// Package export implements spreadsheet export from the command line.
package export

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/export"
)

// Command creates the export command, which writes the stored comments to a
// spreadsheet file.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		format     string
		output     string
		clearAfter bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored comments to a spreadsheet",
		Long:  "Render every stored comment to an xlsx or csv file, optionally clearing the store afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(settings, format, output, clearAfter)
		},
	}

	cmd.Flags().StringVar(&format, "format", "xlsx", "Export format: xlsx or csv")
	cmd.Flags().StringVar(&output, "output", "", "Output file path (defaults to the configured filename)")
	cmd.Flags().BoolVar(&clearAfter, "clear", false, "Clear the comment store after a successful export")

	return cmd
}

func runExport(settings *conf.Settings, format, output string, clearAfter bool) error {
	parsedFormat, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	ds := datastore.New(settings)
	if err := ds.Open(); err != nil {
		return err
	}
	defer ds.Close() //nolint:errcheck

	svc := export.NewService(ds, settings, nil)
	result, err := svc.Export(parsedFormat, clearAfter)
	if err != nil {
		return err
	}

	if output == "" {
		output = result.Filename
	}
	if err := os.WriteFile(output, result.Data, 0o644); err != nil {
		return err
	}

	fmt.Printf("Exported comments to %s\n", output)
	if result.ClearErr != nil {
		return fmt.Errorf("export written but store not cleared: %w", result.ClearErr)
	}
	return nil
}
