package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text]",
	Short: "Summarize a block of text",
	Long: `Summarize the given text. Pass "-" to read from stdin.

Examples:
  ragnews summarize "long article text..."
  cat article.txt | ragnews summarize -`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if text == "" {
		return fmt.Errorf("nothing to summarize")
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()

	fmt.Println(app.engine.Summarize(ctx, text))
	return nil
}
