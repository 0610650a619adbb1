package consistency

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractTermsOrderAndDedup(t *testing.T) {
	got := extractTerms("The HTTP layer feeds the 排序算法 and the HTTP layer again, via a subnetwork.")
	want := []string{"HTTP", "排序算法", "subnetwork"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extractTerms mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTermsNone(t *testing.T) {
	if got := extractTerms("plain prose with nothing technical"); len(got) != 0 {
		t.Fatalf("extractTerms = %v, want none", got)
	}
}

func TestIsAcronym(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"ML", true},
		{"HTTP", true},
		{"A", false},
		{"TOOLS", false},
		{"Http", false},
		{"ML2", false},
	}
	for _, c := range cases {
		if got := isAcronym(c.in); got != c.want {
			t.Errorf("isAcronym(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsAbbreviationOf(t *testing.T) {
	cases := []struct {
		abbr, full string
		want       bool
	}{
		{"CNN", "convolutional neural network", true},
		{"CNN", "Convolutional-Neural-Network", true},
		{"CNN", "neural network", false},
		{"CNN", "central nervous network system", false},
		{"M", "machine learning", true},
		{"Z", "machine learning", false},
		{"AB", "", false},
	}
	for _, c := range cases {
		if got := isAbbreviationOf(c.abbr, c.full); got != c.want {
			t.Errorf("isAbbreviationOf(%q, %q) = %v, want %v", c.abbr, c.full, got, c.want)
		}
	}
}

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"检测方法", "检则方法", 1},
		{"same", "same", 0},
	}
	for _, c := range cases {
		if got := editDistance(c.a, c.b); got != c.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
