package semantic

import "testing"

func TestSplitSentencesShortText(t *testing.T) {
	got := SplitSentences("一句话。", 100)
	if len(got) != 1 || got[0] != "一句话。" {
		t.Fatalf("SplitSentences = %v, want the text unchanged", got)
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	if got := SplitSentences("", 100); got != nil {
		t.Fatalf("SplitSentences(\"\") = %v, want nil", got)
	}
}

func TestSplitSentencesPacksWholeSentences(t *testing.T) {
	text := "短句一。短句二。短句三。"
	got := SplitSentences(text, 8)
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(got), got)
	}
	if got[0] != "短句一。短句二。" {
		t.Errorf("first chunk = %q", got[0])
	}
	if got[1] != "短句三。" {
		t.Errorf("second chunk = %q", got[1])
	}
}

func TestSplitSentencesOversizedSentence(t *testing.T) {
	text := "这是一个非常长的句子完全没有任何标点符号所以无法再分。短句。"
	got := SplitSentences(text, 5)
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(got), got)
	}
	if got[0] != "这是一个非常长的句子完全没有任何标点符号所以无法再分。" {
		t.Errorf("oversized sentence not kept whole: %q", got[0])
	}
}

func TestSplitSentencesTrailingFragment(t *testing.T) {
	got := SplitSentences("完整句子。残余片段", 6)
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(got), got)
	}
	if got[1] != "残余片段" {
		t.Errorf("trailing fragment = %q", got[1])
	}
}
