// Package cmd assembles the command line interface.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/econsult/commentnet-go/cmd/analyze"
	"github.com/econsult/commentnet-go/cmd/clear"
	"github.com/econsult/commentnet-go/cmd/export"
	"github.com/econsult/commentnet-go/cmd/ingest"
	"github.com/econsult/commentnet-go/cmd/serve"
	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/logging"
)

// RootCommand creates and returns the root command with all subcommands
// attached.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commentnet-go",
		Short: "CommentNET-Go CLI",
		Long:  "Classify e-commerce feedback comments by sentiment and intent, store them, and serve dashboards.",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		serve.Command(settings),
		analyze.Command(settings),
		ingest.Command(settings),
		export.Command(settings),
		clear.Command(settings),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if settings.Debug {
			logging.SetLevel(logging.LevelTrace)
		}
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags defines flags shared by every subcommand.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Model.Endpoint, "endpoint", viper.GetString("model.endpoint"), "URL of the sentiment model endpoint")
	rootCmd.PersistentFlags().StringVar(&settings.Output.SQLite.Path, "db", viper.GetString("output.sqlite.path"), "Path to the SQLite database")
}
