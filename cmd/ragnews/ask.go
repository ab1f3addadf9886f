package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askK    int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about recent UK news",
	Long: `Retrieve the most relevant indexed articles and generate an answer
grounded in them.

Examples:
  ragnews ask "What is happening with NHS waiting lists?"
  ragnews ask "energy price cap" -k 5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askK, "top-k", "k", 0, "number of articles to retrieve (default 3)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()

	result := app.engine.Query(ctx, args[0], askK)

	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(result.Response)

	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, src := range result.Sources {
			fmt.Printf("%d. %s (%s)\n   %s\n", i+1, src.Title, src.Source, src.URL)
		}
	}
	return nil
}
