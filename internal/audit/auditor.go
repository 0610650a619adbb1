package audit

import (
	"context"

	"doc_auditor/internal/consistency"
	"doc_auditor/internal/document"
	"doc_auditor/internal/issue"
	"doc_auditor/internal/oracle"
	"doc_auditor/internal/refs"
	"doc_auditor/internal/rules"
	"doc_auditor/internal/semantic"
	"doc_auditor/internal/window"
)

// Options selects the collaborators once, when the auditor is built. Absent
// capabilities get null adapters: audits run rule-only / structural-only.
// A nil Weights means the defaults; a pointed-to zero table is honored.
type Options struct {
	Client        oracle.Client
	Store         refs.Store
	Tables        rules.Tables
	WindowSize    int
	Workers       int
	Weights       *Weights
	MaxChunkRunes int
}

// Result is the terminal artifact of one audit or analysis pass.
type Result struct {
	Issues           []issue.Issue      `json:"issues"`
	ImpactScore      float64            `json:"impact_score"`
	AlignmentScore   float64            `json:"alignment_score"`
	ProcessedWindows int                `json:"processed_windows,omitempty"`
	References       []refs.CheckResult `json:"references,omitempty"`
}

// Auditor is the entry point the service layer calls. Stateless between
// runs: all per-run state lives in a Tracker owned by that run.
type Auditor struct {
	client     oracle.Client
	detector   *semantic.Detector
	verifier   *refs.Verifier
	windowSize int
	workers    int
	weights    Weights
}

func New(opts Options) *Auditor {
	client := opts.Client
	if client == nil {
		client = oracle.Disabled{}
	}
	tables := opts.Tables
	if len(tables.Corrections) == 0 && len(tables.Colloquialisms) == 0 {
		tables = rules.DefaultTables()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	weights := DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}

	detector := semantic.NewDetector(
		rules.NewDetector(tables),
		semantic.NewLLMDetector(client, opts.MaxChunkRunes),
	)

	return &Auditor{
		client:     client,
		detector:   detector,
		verifier:   refs.NewVerifier(opts.Store, client, workers),
		windowSize: opts.WindowSize,
		workers:    workers,
		weights:    weights,
	}
}

// AuditRules runs the full pipeline: windowed traversal with consistency
// tracking, then reference verification, then aggregation. Issues keep the
// fixed order: per-section detector issues, consistency issues, alignment
// issues, issues from references judged invalid.
func (a *Auditor) AuditRules(ctx context.Context, doc document.Document) Result {
	tracker := consistency.NewTracker(a.client)
	scheduler := window.NewScheduler(a.detector, a.windowSize, a.workers)
	run := scheduler.Run(ctx, doc.Sections, tracker)

	issues := run.Issues
	var refResults []refs.CheckResult
	if len(doc.References) > 0 {
		citations := make([]string, 0, len(doc.References))
		for _, r := range doc.References {
			citations = append(citations, r.RawText)
		}
		refResults = a.verifier.CheckAll(ctx, citations)
		for _, res := range refResults {
			if res.IsValid {
				continue
			}
			issues = append(issues, res.Issues...)
		}
	}

	return Result{
		Issues:           issues,
		ImpactScore:      ImpactScore(issues, a.weights),
		AlignmentScore:   run.AlignmentScore,
		ProcessedWindows: run.State.ProcessedWindows,
		References:       refResults,
	}
}

// AnalyzeSemantics runs only the per-section detectors, without the
// consistency or reference stages.
func (a *Auditor) AnalyzeSemantics(ctx context.Context, sections []document.Section) Result {
	issues := window.DetectSections(ctx, a.detector, sections, a.workers)
	return Result{
		Issues:      issues,
		ImpactScore: ImpactScore(issues, a.weights),
	}
}

// VerifyReferences exposes the reference stage on its own for the CLI.
func (a *Auditor) VerifyReferences(ctx context.Context, citations []string) []refs.CheckResult {
	return a.verifier.CheckAll(ctx, citations)
}
