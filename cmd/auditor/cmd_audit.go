package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"doc_auditor/internal/audit"
	"doc_auditor/internal/document"
	"doc_auditor/internal/ingest"
	"doc_auditor/internal/workspace"
)

var (
	auditSemanticsOnly bool
	auditSaveReport    bool
)

var auditCmd = &cobra.Command{
	Use:   "audit <manuscript>",
	Short: "Audit a manuscript file and print the report as JSON",
	Long: `Audits a manuscript (.pdf, .docx, .txt, .md, or a pre-parsed .json
document with sections and references) and prints the issue list plus the
weighted impact score.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditSemanticsOnly, "semantics-only", false, "skip the consistency and reference stages")
	auditCmd.Flags().BoolVar(&auditSaveReport, "save", false, "also save the report under the workspace reports directory")
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	auditor, closeStore, err := buildAuditor(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var result audit.Result
	if auditSemanticsOnly {
		result = auditor.AnalyzeSemantics(ctx, doc.Sections)
	} else {
		result = auditor.AuditRules(ctx, *doc)
	}

	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Println(string(raw))

	if auditSaveReport {
		base, err := workspace.EnsureDefault()
		if err != nil {
			return err
		}
		path, err := workspace.SaveReport(base, doc.Title, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report saved to %s\n", path)
	}
	return nil
}

// loadDocument accepts either a raw manuscript or a pre-parsed JSON document.
func loadDocument(path string) (*document.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		var doc document.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse document json: %w", err)
		}
		if doc.Title == "" {
			doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return &doc, nil
	}
	return ingest.ParseDocument(path)
}
