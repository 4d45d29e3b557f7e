// Package clear implements wiping the comment store.
package clear

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/datastore"
)

// Command creates the clear command, which deletes every stored comment.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(settings)
		},
	}
}

func runClear(settings *conf.Settings) error {
	ds := datastore.New(settings)
	if err := ds.Open(); err != nil {
		return err
	}
	defer ds.Close() //nolint:errcheck

	if err := ds.DeleteAll(); err != nil {
		return err
	}

	fmt.Println("Comment store cleared")
	return nil
}
