package models

import "time"

// PodcastMetric is one scored dimension of a podcast review.
type PodcastMetric struct {
	Name    string `json:"name"`
	Finding string `json:"finding"`
}

// PodcastAnalysis is the structured verdict produced for a podcast.
type PodcastAnalysis struct {
	PodcastName    string          `json:"podcastName"`
	EpisodeTitle   string          `json:"episodeTitle"`
	Score          float64         `json:"score"`
	Summary        string          `json:"summary"`
	Metrics        []PodcastMetric `json:"metrics"`
	Recommendation string          `json:"recommendation"`
}

// SavedAnalysis is a podcast report pinned to an account.
type SavedAnalysis struct {
	ID       string          `json:"id"`
	URL      string          `json:"url"`
	Analysis PodcastAnalysis `json:"analysis"`
	SavedAt  time.Time       `json:"savedAt"`
}

// SourceDiscovery is the structured result of scanning a publisher URL
// for its latest (or a specific) piece of content.
type SourceDiscovery struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Source        string   `json:"source"`
	SpecificURL   string   `json:"specificUrl"`
	Date          string   `json:"date"`
	Category      string   `json:"category"`
	Duration      string   `json:"duration,omitempty"`
	SummaryPoints []string `json:"summaryPoints,omitempty"`
	YoutubeURL    string   `json:"youtubeUrl,omitempty"`
	SpotifyURL    string   `json:"spotifyUrl,omitempty"`
}

// ContentReview is editorial feedback for a draft item.
type ContentReview struct {
	ImprovedTitle       string `json:"improvedTitle"`
	ImprovedDescription string `json:"improvedDescription"`
	Feedback            string `json:"feedback"`
}
