package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitishbaidya/RAG-News/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the web server exposing the pipeline as a JSON API.

Examples:
  ragnews serve
  ragnews serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from SERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	addr := serveAddr
	if addr == "" {
		addr = app.cfg.ServerAddr
	}

	fmt.Printf("Starting server at http://localhost%s\n", addr)
	server := web.NewServer(app.engine, app.log)
	return server.Run(addr)
}
