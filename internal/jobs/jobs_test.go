package jobs

import "testing"

func TestGetAndTitle(t *testing.T) {
	j, ok := Get("1")
	if !ok || j.Title != "Frontend Engineer" {
		t.Fatalf("unexpected job for id 1: %+v ok=%v", j, ok)
	}

	if _, ok := Get("999"); ok {
		t.Fatalf("expected miss for unknown id")
	}
	if got := Title("999"); got != "Unknown Position" {
		t.Fatalf("expected placeholder title got %q", got)
	}
}

func TestListCopiesCatalog(t *testing.T) {
	out := List()
	if len(out) != 4 {
		t.Fatalf("expected 4 jobs got %d", len(out))
	}

	out[0].Title = "mutated"
	if again := List(); again[0].Title == "mutated" {
		t.Fatalf("List must not expose the backing catalog")
	}
}
