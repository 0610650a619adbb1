package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var refsCmd = &cobra.Command{
	Use:   "refs <citations-file>",
	Short: "Verify citation authenticity, one citation per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runRefs,
}

func runRefs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	auditor, closeStore, err := buildAuditor(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open citations file: %w", err)
	}
	defer f.Close()

	var citations []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			citations = append(citations, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read citations file: %w", err)
	}

	results := auditor.VerifyReferences(cmd.Context(), citations)
	raw, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	fmt.Println(string(raw))
	return nil
}
