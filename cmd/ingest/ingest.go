// Package ingest implements bulk dataset ingestion.
package ingest

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/econsult/commentnet-go/internal/analysis"
	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/sentiment"
)

// Command creates the ingest command, which classifies and stores every row
// of a CSV dataset in one transaction.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Bulk-ingest a CSV dataset",
		Long:  "Classify every comment in a CSV file and store the whole batch atomically.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, settings)
		},
	}

	cmd.Flags().StringVar(&settings.Ingest.CSVPath, "file", viper.GetString("ingest.csvpath"), "Path to the CSV dataset")

	return cmd
}

func runIngest(cmd *cobra.Command, settings *conf.Settings) error {
	ds := datastore.New(settings)
	if err := ds.Open(); err != nil {
		return err
	}
	defer ds.Close() //nolint:errcheck

	model := sentiment.NewInferenceClient(sentiment.InferenceConfig{
		Endpoint: settings.Model.Endpoint,
		APIKey:   settings.Model.APIKey,
		Timeout:  time.Duration(settings.Model.Timeout) * time.Second,
	}, nil)
	defer model.Close()

	svc := analysis.NewService(ds, sentiment.NewClassifier(model), nil)
	count, err := svc.IngestCSV(cmd.Context(), settings.Ingest.CSVPath)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d comments from %s\n", count, settings.Ingest.CSVPath)
	return nil
}
