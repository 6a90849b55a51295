// Package docs holds the built-in help topics shown by `swipedeck docs`.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is a help topic with its one-line summary, taken from the first
// heading of its file.
type Topic struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

func Topics() []Topic {
	paths, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []Topic{}
	}
	sort.Strings(paths)
	out := make([]Topic, 0, len(paths))
	for _, p := range paths {
		name := strings.TrimSuffix(path.Base(p), ".md")
		body, _ := contentFS.ReadFile(p)
		out = append(out, Topic{Name: name, Summary: summary(string(body))})
	}
	return out
}

// Get returns the markdown for topic; names are case-insensitive.
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || strings.ContainsAny(topic, `/\`) {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + topic + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}

func summary(md string) string {
	for _, line := range strings.Split(md, "\n") {
		if t := strings.TrimSpace(strings.TrimLeft(line, "#")); t != "" {
			return t
		}
	}
	return ""
}
