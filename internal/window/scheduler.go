package window

import (
	"context"

	"golang.org/x/sync/errgroup"

	"doc_auditor/internal/consistency"
	"doc_auditor/internal/document"
	"doc_auditor/internal/issue"
)

// DefaultWindowSize matches the upstream gateway's default.
const DefaultWindowSize = 3

// SectionDetector runs the per-section detectors over one section's text.
// Implementations must be safe for concurrent use across sections.
type SectionDetector interface {
	Detect(ctx context.Context, text string) []issue.Issue
}

// State is the scheduler's loop-control record. CurrentIndex never decreases
// and grows by at most WindowSize per step.
type State struct {
	CurrentIndex     int
	TotalSections    int
	WindowSize       int
	ProcessedWindows int
}

type phase int

const (
	phaseProcessWindow phase = iota
	phaseUpdateState
	phaseCheckConsistency
	phaseDone
)

// Scheduler walks a document's sections in contiguous, non-overlapping
// windows, runs the per-section detectors over each window, feeds the
// consistency tracker, and triggers the final alignment check exactly once.
type Scheduler struct {
	detector   SectionDetector
	windowSize int
	workers    int
}

func NewScheduler(detector SectionDetector, windowSize, workers int) *Scheduler {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if workers <= 0 {
		workers = 4
	}
	return &Scheduler{detector: detector, windowSize: windowSize, workers: workers}
}

// Result carries the issues of one traversal in aggregation order: detector
// issues in section order, then consistency issues, then alignment issues.
type Result struct {
	Issues         []issue.Issue
	AlignmentScore float64
	State          State
}

// Run drives the state machine:
//
//	PROCESS_WINDOW -> UPDATE_STATE -> CHECK_CONSISTENCY -> {PROCESS_WINDOW | DONE}
//
// Every section is visited exactly once; the last window may be shorter than
// the window size. The tracker belongs exclusively to this run.
func (s *Scheduler) Run(ctx context.Context, sections []document.Section, tracker *consistency.Tracker) Result {
	st := State{
		TotalSections: len(sections),
		WindowSize:    s.windowSize,
	}

	var detectorIssues []issue.Issue
	var consistencyIssues []issue.Issue
	var windowStart int

	current := phaseProcessWindow
	for current != phaseDone {
		switch current {
		case phaseProcessWindow:
			windowStart = st.CurrentIndex
			end := min(st.CurrentIndex+st.WindowSize, st.TotalSections)
			detectorIssues = append(detectorIssues, s.processWindow(ctx, sections[windowStart:end])...)
			st.CurrentIndex = end
			current = phaseUpdateState

		case phaseUpdateState:
			consistencyIssues = append(consistencyIssues, tracker.ObserveSections(sections[windowStart:st.CurrentIndex])...)
			st.ProcessedWindows++
			current = phaseCheckConsistency

		case phaseCheckConsistency:
			tracker.CaptureNarrative(sections[:st.CurrentIndex])
			if st.CurrentIndex < st.TotalSections && ctx.Err() == nil {
				current = phaseProcessWindow
			} else {
				current = phaseDone
			}
		}
	}

	alignIssues, alignScore := tracker.Finalize(ctx)

	issues := make([]issue.Issue, 0, len(detectorIssues)+len(consistencyIssues)+len(alignIssues))
	issues = append(issues, detectorIssues...)
	issues = append(issues, consistencyIssues...)
	issues = append(issues, alignIssues...)

	return Result{Issues: issues, AlignmentScore: alignScore, State: st}
}

func (s *Scheduler) processWindow(ctx context.Context, sections []document.Section) []issue.Issue {
	return DetectSections(ctx, s.detector, sections, s.workers)
}

// DetectSections runs the detector over each section with bounded concurrency
// and joins results in section order. Every resulting issue is stamped with
// its section's id.
func DetectSections(ctx context.Context, detector SectionDetector, sections []document.Section, workers int) []issue.Issue {
	if len(sections) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 4
	}
	slots := make([][]issue.Issue, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sec := range sections {
		i, sec := i, sec
		g.Go(func() error {
			found := detector.Detect(gctx, sec.Text)
			for j := range found {
				found[j].SectionID = sec.SectionID
			}
			slots[i] = found
			return nil
		})
	}
	_ = g.Wait() // detectors never return errors

	var out []issue.Issue
	for _, found := range slots {
		out = append(out, found...)
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
