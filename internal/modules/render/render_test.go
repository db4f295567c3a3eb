package render

import (
	"strings"
	"testing"

	"github.com/rahmasleam/NexusMenaV2/internal/models"
)

func TestMarkdown(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "   \n ", nil},
		{"heading", "# Hello", []string{"<h1", "Hello"}},
		{"list", "- one\n- two", []string{"<ul>", "<li>one</li>"}},
		{"link", "[Nexus](https://nexusmena.example)", []string{`<a href="https://nexusmena.example"`}},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Markdown(tc.in)
			if tc.want == nil {
				if got != "" {
					t.Fatalf("expected empty output, got %q", got)
				}
				return
			}
			for _, fragment := range tc.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("output missing %q:\n%s", fragment, got)
				}
			}
		})
	}
}

func TestDocumentEscapesTitle(t *testing.T) {
	doc := Document(`<script>alert(1)</script>`, "<p>body</p>")
	if strings.Contains(doc, "<script>alert") {
		t.Fatal("title not escaped")
	}
	if !strings.Contains(doc, "<p>body</p>") {
		t.Fatal("body fragment dropped")
	}
}

func TestDocumentDefaultTitle(t *testing.T) {
	doc := Document("  ", "")
	if !strings.Contains(doc, "<title>NexusMena</title>") {
		t.Fatal("missing default title")
	}
}

func TestItemMarkdown(t *testing.T) {
	item := models.ContentItem{
		Title:         "Fintech funding roundup",
		Description:   "Egyptian fintechs raised new rounds.",
		Source:        "TechCrunch",
		URL:           "https://example.com/a",
		SummaryPoints: []string{"Round sizes up", "New entrants"},
	}

	md := itemMarkdown(item)
	for _, fragment := range []string{
		"Egyptian fintechs raised new rounds.",
		"## Highlights",
		"- Round sizes up",
		"[TechCrunch](https://example.com/a)",
	} {
		if !strings.Contains(md, fragment) {
			t.Errorf("markdown missing %q:\n%s", fragment, md)
		}
	}
}
