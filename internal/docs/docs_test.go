package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("expected embedded topics")
	}
	for _, want := range []string{"quickstart", "palette", "permissions", "git"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing topic %q in %v", want, topics)
		}
	}
}

func TestGet(t *testing.T) {
	body, ok := Get("  Palette ")
	if !ok {
		t.Fatal("expected palette topic")
	}
	if !strings.Contains(body, "ctrl+k") {
		t.Fatalf("unexpected palette body:\n%s", body)
	}
	if _, ok := Get("nope"); ok {
		t.Fatal("expected miss for unknown topic")
	}
	if _, ok := Get(""); ok {
		t.Fatal("expected miss for empty topic")
	}
}
