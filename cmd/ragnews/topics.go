package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the main topics in recently indexed news",
	RunE:  runTopics,
}

func runTopics(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()

	for _, topic := range app.engine.Topics(ctx) {
		fmt.Printf("• %s\n", topic)
	}
	return nil
}
