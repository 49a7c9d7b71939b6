// Package docs embeds the markdown help topics shown on the TUI help page and
// by `fishinv docs`.
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

// HelpPageTopics are shown, in order, on the TUI help page.
var HelpPageTopics = []string{"keys", "inventory", "autosave"}

func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []string{}
	}
	var topics []string
	for _, p := range entries {
		base := path.Base(p)
		topic := strings.TrimSuffix(base, path.Ext(base))
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Join concatenates the named topics, skipping unknown ones.
func Join(topics ...string) string {
	var parts []string
	for _, t := range topics {
		if body, ok := Get(t); ok {
			parts = append(parts, strings.TrimSpace(body))
		}
	}
	return strings.Join(parts, "\n\n---\n\n")
}
