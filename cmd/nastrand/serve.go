package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var serveFlags struct {
	addr     string
	logLevel string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP server exposing one live ensemble for interactive stepping",
	Long: `Starts an HTTP server mirroring the teacher's one-environment-at-a-time
server: POST /schema loads an energy model and initial complexes, POST
/complex inserts one more, POST /tick dispatches a single step, GET
/complexes lists the live ensemble, GET /metrics exposes Prometheus
counters, and GET /ws upgrades to a trajectory-streaming websocket.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", ":8080", "HTTP listen address")
	f.StringVar(&serveFlags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := NewLogger(serveFlags.logLevel)
	srv := NewServer(logger)
	defer srv.Close()

	mux := http.NewServeMux()
	srv.routes(mux)

	logger.Infof("nastrand server listening on %s", serveFlags.addr)
	if err := http.ListenAndServe(serveFlags.addr, mux); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
