package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all indexed articles",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		fmt.Print("Delete all indexed articles? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()

	if err := app.engine.Clear(ctx); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	fmt.Println("All articles deleted.")
	return nil
}
