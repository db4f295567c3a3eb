package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummaryPromptIncludesTextVerbatim(t *testing.T) {
	text := "Egypt's fintech sector raised $500M in Q3."

	en := buildSummaryPrompt("en", text)
	assert.Contains(t, en, text)
	assert.Contains(t, en, "3 concise bullet points")

	ar := buildSummaryPrompt("ar", text)
	assert.Contains(t, ar, text)
	assert.Contains(t, ar, "باللغة العربية")
}

func TestBuildTranslatePrompt(t *testing.T) {
	got := buildTranslatePrompt("ar", "hello world")
	assert.Contains(t, got, "Arabic")
	assert.Contains(t, got, "hello world")

	got = buildTranslatePrompt("en", "مرحبا")
	assert.Contains(t, got, "English")
}

func TestBuildPodcastPromptCarriesSchemaAndURL(t *testing.T) {
	url := "https://example.com/podcast/42"
	got := buildPodcastPrompt(url)

	for _, want := range []string{url, `"podcastName"`, `"metrics"`, "Depth of Information", "raw JSON"} {
		assert.Contains(t, got, want)
	}
}

func TestBuildDiscoveryPrompt(t *testing.T) {
	got := buildDiscoveryPrompt("https://youtube.com/@somechannel")
	for _, want := range []string{"https://youtube.com/@somechannel", `"specificUrl"`, "LATEST SPECIFIC VIDEO/EPISODE"} {
		assert.Contains(t, got, want)
	}
}

func TestBuildReviewPrompt(t *testing.T) {
	got := buildReviewPrompt("My Startup", "We do things.", "startup")
	for _, want := range []string{"My Startup", "We do things.", `"improvedTitle"`} {
		assert.Contains(t, got, want)
	}
}

func TestBuildChatTurn(t *testing.T) {
	assert.Equal(t, "what is RAG?", buildChatTurn("what is RAG?", ""), "no-context turn passes through")

	got := buildChatTurn("what is this page about?", "Market dashboard, EGX 30 up 1.2%")
	assert.True(t, strings.HasPrefix(got, "[Context from current page: Market dashboard"), got)
	assert.Contains(t, got, "User Question: what is this page about?")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))

	long := strings.Repeat("نص", 50) // rune count, not bytes
	got := truncateText(long, 10)
	assert.Len(t, []rune(got), 13, "10 runes plus ellipsis")
	assert.True(t, strings.HasSuffix(got, "..."), got)
}
