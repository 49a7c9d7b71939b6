package docs

import (
	"strings"
	"testing"
)

func TestTopicsIncludeHelpPage(t *testing.T) {
	topics := map[string]bool{}
	for _, tp := range Topics() {
		topics[tp] = true
	}
	for _, want := range append([]string{"config"}, HelpPageTopics...) {
		if !topics[want] {
			t.Fatalf("missing topic %q in %v", want, Topics())
		}
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Autosave ")
	if !ok || !strings.Contains(body, "fishInventory.autosave.enabled") {
		t.Fatalf("unexpected autosave body (ok=%v): %q", ok, body)
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected unknown topic")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("expected empty topic to fail")
	}
}

func TestJoinSkipsUnknown(t *testing.T) {
	got := Join("keys", "nope", "autosave")
	if !strings.HasPrefix(got, "# Keys") || !strings.Contains(got, "# Autosave") {
		t.Fatalf("unexpected join: %q", got)
	}
}
