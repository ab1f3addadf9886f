package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch new articles from the configured feeds",
	Long: `Fetch every configured feed, skip articles already stored, and index
the rest.

Examples:
  ragnews refresh`,
	RunE: runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()

	added, err := app.engine.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if added == 0 {
		fmt.Println("No new articles.")
		return nil
	}
	fmt.Printf("Added %d new articles.\n", added)
	return nil
}
