package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()

	stats, err := app.engine.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	fmt.Println("RAG-News Status")
	fmt.Println("===============")
	fmt.Printf("Backend:   %s\n", stats.Backend)
	fmt.Printf("Documents: %d\n", stats.DocumentCount)
	fmt.Printf("Embedder:  %s\n", app.cfg.Embedder)
	fmt.Printf("Model:     %s\n", app.cfg.ChatModel)
	fmt.Println("\nFeeds:")
	for _, f := range app.cfg.Feeds {
		fmt.Printf("  %-10s %s\n", f.Name, f.URL)
	}
	return nil
}
