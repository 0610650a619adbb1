package main

import (
	"fmt"
	"log"
	"time"

	"doc_auditor/internal/audit"
	"doc_auditor/internal/config"
	"doc_auditor/internal/oracle"
	"doc_auditor/internal/refs"
	"doc_auditor/internal/refstore"
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildAuditor wires the optional collaborators once. A missing credential
// or store path selects the null adapters; audits still run.
func buildAuditor(cfg config.Config) (*audit.Auditor, func(), error) {
	var client oracle.Client = oracle.Disabled{}
	if cfg.Oracle.APIKey != "" {
		client = oracle.NewDashScope(
			cfg.Oracle.APIKey,
			cfg.Oracle.Model,
			oracle.WithEndpoint(cfg.Oracle.Endpoint),
			oracle.WithTimeout(time.Duration(cfg.Oracle.TimeoutSeconds)*time.Second),
		)
	}

	var store refs.Store = refs.NullStore{}
	closeStore := func() {}
	if cfg.Store.Path != "" {
		s, err := refstore.Open(cfg.Store.Path)
		if err != nil {
			// a broken store degrades to structural checks, same as absence
			log.Printf("reference store unavailable (%v), continuing without it", err)
		} else {
			store = s
			closeStore = func() { _ = s.Close() }
		}
	}

	auditor := audit.New(audit.Options{
		Client:        client,
		Store:         store,
		WindowSize:    cfg.Audit.WindowSize,
		Workers:       cfg.Audit.Workers,
		Weights:       &cfg.Audit.Weights,
		MaxChunkRunes: cfg.Audit.MaxChunkRunes,
	})
	return auditor, closeStore, nil
}
