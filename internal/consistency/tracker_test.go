package consistency

import (
	"context"
	"testing"

	"doc_auditor/internal/document"
	"doc_auditor/internal/issue"
)

type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) Generate(_ context.Context, _ string) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) Enabled() bool { return true }

func sec(id int, secType, text string) document.Section {
	return document.Section{SectionID: id, Type: secType, Text: text, Level: 1}
}

func TestObserveSectionsUndefinedAcronym(t *testing.T) {
	tr := NewTracker(nil)
	got := tr.ObserveSections([]document.Section{
		sec(2, "body", "We evaluate the approach with a CNN baseline."),
	})
	if len(got) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(got), got)
	}
	if got[0].Code != issue.CodeUndefinedAbbreviation {
		t.Errorf("code = %q, want %q", got[0].Code, issue.CodeUndefinedAbbreviation)
	}
	if got[0].Severity != issue.SeverityHigh {
		t.Errorf("severity = %v, want high", got[0].Severity)
	}
	if got[0].SectionID != 2 {
		t.Errorf("section id = %d, want 2", got[0].SectionID)
	}

	// only the first sighting is reported
	again := tr.ObserveSections([]document.Section{
		sec(3, "body", "The CNN converges quickly."),
	})
	for _, iss := range again {
		if iss.Code == issue.CodeUndefinedAbbreviation {
			t.Fatalf("acronym flagged twice: %+v", iss)
		}
	}
}

func TestObserveSectionsVariantSurfaceForms(t *testing.T) {
	tr := NewTracker(nil)
	first := tr.ObserveSections([]document.Section{
		sec(1, "introduction", "本文的 检测方法 在第二节给出。"),
	})
	if len(first) != 0 {
		t.Fatalf("unexpected issues in first window: %+v", first)
	}

	// the misspelled form reaches its second section, so it is compared
	// against the established table
	got := tr.ObserveSections([]document.Section{
		sec(2, "body", "该 检则方法 依赖规则表。"),
		sec(3, "body", "该 检则方法 同样适用于英文文本。"),
	})
	var variants []issue.Issue
	for _, iss := range got {
		if iss.Code == issue.CodeTermInconsistency {
			variants = append(variants, iss)
		}
	}
	if len(variants) != 1 {
		t.Fatalf("got %d variant issues, want 1: %+v", len(variants), got)
	}
	if variants[0].OriginalSnippet != "检测方法" {
		t.Errorf("variant snippet = %q, want 检测方法", variants[0].OriginalSnippet)
	}
	if variants[0].Severity != issue.SeverityMedium {
		t.Errorf("severity = %v, want medium", variants[0].Severity)
	}

	// same pair must not be reported again in a later window
	later := tr.ObserveSections([]document.Section{
		sec(4, "body", "最后再次使用 检则方法 验证。"),
	})
	for _, iss := range later {
		if iss.Code == issue.CodeTermInconsistency {
			t.Fatalf("variant pair reported twice: %+v", iss)
		}
	}
}

func TestObserveSectionsCaseDifferenceIsOneTerm(t *testing.T) {
	tr := NewTracker(nil)
	tr.ObserveSections([]document.Section{
		sec(1, "body", "The subnetwork converges quickly."),
	})
	got := tr.ObserveSections([]document.Section{
		sec(2, "body", "The Subnetwork remains stable."),
	})
	for _, iss := range got {
		if iss.Code == issue.CodeTermInconsistency {
			t.Fatalf("cased resighting flagged as a variant: %+v", iss)
		}
	}
	usage := tr.TermUsage()
	ids, ok := usage["subnetwork"]
	if !ok {
		t.Fatalf("first-seen surface form not kept, usage = %v", usage)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("section ids = %v, want [1 2]", ids)
	}
}

func TestObserveSectionsSingleSectionNoVariantCheck(t *testing.T) {
	tr := NewTracker(nil)
	got := tr.ObserveSections([]document.Section{
		sec(1, "body", "对比 检测方法 与 检则方法 的差异。"),
	})
	for _, iss := range got {
		if iss.Code == issue.CodeTermInconsistency {
			t.Fatalf("terms confined to one section flagged as variants: %+v", iss)
		}
	}
}

func TestTermUsage(t *testing.T) {
	tr := NewTracker(nil)
	tr.ObserveSections([]document.Section{
		sec(1, "body", "我们训练 卷积神经网络 作为基线。"),
		sec(3, "body", "卷积神经网络在测试集上表现稳定。"),
	})
	usage := tr.TermUsage()
	ids, ok := usage["卷积神经网络"]
	if !ok {
		t.Fatalf("term not recorded, usage = %v", usage)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("section ids = %v, want [1 3]", ids)
	}
}

func TestCaptureNarrativeLastMatchWins(t *testing.T) {
	tr := NewTracker(nil)
	tr.CaptureNarrative([]document.Section{
		sec(1, "abstract", "first abstract"),
		sec(2, "body", "body text"),
		sec(3, "abstract", "second abstract"),
		sec(4, "conclusion", "closing text"),
	})
	if tr.Summary() != "second abstract" {
		t.Errorf("summary = %q, want the later abstract", tr.Summary())
	}
	if tr.Conclusion() != "closing text" {
		t.Errorf("conclusion = %q", tr.Conclusion())
	}
}
