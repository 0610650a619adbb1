package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"doc_auditor/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP audit service",
	Long: `Serves the audit operations over HTTP: synchronous audits of pre-parsed
sections plus an asynchronous upload flow for raw manuscript files.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	auditor, closeStore, err := buildAuditor(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	addr := serveAddr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	srv := server.New(auditor, "")
	log.Printf("audit service listening on %s", addr)
	return srv.Start(addr)
}
