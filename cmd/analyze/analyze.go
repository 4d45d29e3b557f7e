// Package analyze implements one-shot classification of a single comment.
package analyze

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/econsult/commentnet-go/internal/analysis"
	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/sentiment"
)

// Command creates the analyze command, which classifies a comment given on
// the command line and prints the result. With --save the comment is also
// stored.
func Command(settings *conf.Settings) *cobra.Command {
	var save bool
	var author string

	cmd := &cobra.Command{
		Use:   "analyze [comment text]",
		Short: "Classify a single comment",
		Long:  "Run a comment through the sentiment model and the intent rules and print both labels.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, settings, strings.Join(args, " "), author, save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store the classified comment in the database")
	cmd.Flags().StringVar(&author, "author", "", "Author to record with --save")

	return cmd
}

func runAnalyze(cmd *cobra.Command, settings *conf.Settings, text, author string, save bool) error {
	model := sentiment.NewInferenceClient(sentiment.InferenceConfig{
		Endpoint: settings.Model.Endpoint,
		APIKey:   settings.Model.APIKey,
		Timeout:  time.Duration(settings.Model.Timeout) * time.Second,
	}, nil)
	defer model.Close()
	classifier := sentiment.NewClassifier(model)

	var ds datastore.Interface
	if save {
		ds = datastore.New(settings)
		if err := ds.Open(); err != nil {
			return err
		}
		defer ds.Close() //nolint:errcheck
	}

	svc := analysis.NewService(ds, classifier, nil)
	ctx := cmd.Context()

	if save {
		comment, stats, err := svc.IngestComment(ctx, text, author)
		if err != nil {
			return err
		}
		fmt.Printf("Sentiment: %s\nIntent: %s\nStored as id %d, %d comments total\n",
			comment.Sentiment, comment.Intent, comment.ID, stats.Total)
		return nil
	}

	result, err := svc.Analyze(ctx, text)
	if err != nil {
		return err
	}
	fmt.Printf("Sentiment: %s (%s)\nIntent: %s\n",
		result.Sentiment.Label, result.Sentiment.DisplayScore(), result.Intent)
	return nil
}
