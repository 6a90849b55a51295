package docs

import (
	"strings"
	"testing"
)

func TestTopics_ListsEmbeddedFiles(t *testing.T) {
	topics := Topics()
	names := map[string]string{}
	for _, tp := range topics {
		names[tp.Name] = tp.Summary
	}
	for _, want := range []string{"gestures", "decks", "config"} {
		if names[want] == "" {
			t.Fatalf("missing topic %q in %+v", want, topics)
		}
	}
	if strings.HasPrefix(names["decks"], "#") {
		t.Fatalf("summary should not keep the heading marker: %q", names["decks"])
	}
}

func TestGet(t *testing.T) {
	md, ok := Get(" Gestures ")
	if !ok || !strings.Contains(md, "springs back") {
		t.Fatalf("expected gestures topic, got ok=%v", ok)
	}
	for _, bad := range []string{"", "nope", "../docs"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be missing", bad)
		}
	}
}
