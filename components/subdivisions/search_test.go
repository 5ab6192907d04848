package subdivisions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var sample = []Option{
	{Value: "NB", Label: "New Brunswick"},
	{Value: "NL", Label: "Newfoundland and Labrador"},
	{Value: "NS", Label: "Nova Scotia"},
	{Value: "ON", Label: "Ontario"},
	{Value: "NU", Label: "Nunavut"},
}

func TestSearch_RanksLabelPrefixThenCodeThenContains(t *testing.T) {
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	got := Search(sample, "n", 10, opts)
	want := []Option{sample[0], sample[1], sample[2], sample[4], sample[3]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}

	got = Search(sample, "on", 10, opts)
	want = []Option{sample[3]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}

	got = Search(sample, "scot", 10, opts)
	if len(got) != 1 || got[0].Value != "NS" {
		t.Fatalf("unexpected results: %#v", got)
	}
}

func TestSearch_EmptyQueryModes(t *testing.T) {
	if got := Search(sample, "", 0, NewOptions(WithEmptySearchMode(EmptySearchNone))); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	got := Search(sample, "  ", 0, NewOptions(WithDefaultLimit(2)))
	if len(got) != 2 {
		t.Fatalf("expected default limit to apply, got %#v", got)
	}
}

func TestSearch_NegativeLimit(t *testing.T) {
	if got := Search(sample, "n", -1, NewOptions()); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
}
