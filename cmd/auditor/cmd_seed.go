package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"doc_auditor/internal/refs"
	"doc_auditor/internal/refstore"
	"doc_auditor/internal/workspace"
)

var seedCmd = &cobra.Command{
	Use:   "seed <records.json>",
	Short: "Load bibliographic records into the reference store",
	Long: `Reads a JSON array of records ({"title","authors","year","journal"})
and inserts them into the configured sqlite reference store. With no store
configured the workspace default location is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storePath := cfg.Store.Path
	if storePath == "" {
		base, err := workspace.EnsureDefault()
		if err != nil {
			return err
		}
		storePath = workspace.StorePath(base)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read records file: %w", err)
	}
	var records []struct {
		Title   string `json:"title"`
		Authors string `json:"authors"`
		Year    string `json:"year"`
		Journal string `json:"journal"`
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("parse records file: %w", err)
	}

	store, err := refstore.Open(storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	for _, r := range records {
		if err := store.Add(ctx, refs.Record{
			Title:   r.Title,
			Authors: r.Authors,
			Year:    r.Year,
			Journal: r.Journal,
		}); err != nil {
			return err
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("store at %s now holds %d records\n", storePath, count)
	return nil
}
