package ai

import (
	"fmt"
	"strings"

	"github.com/rahmasleam/NexusMenaV2/internal/models"
)

// Fallback values. Every operation resolves failures to one of these
// instead of surfacing an error to its caller.
const (
	fallbackSummaryNoKey = "AI Service Unavailable (Missing Key)"
	fallbackSummaryEmpty = "Could not generate summary."
	fallbackSummaryError = "Error generating summary."

	fallbackMarketNoKey = "AI Analysis Unavailable"
	fallbackMarketEmpty = "No insights available."
	fallbackMarketError = "Could not analyze market data."

	fallbackArticleNoKey = "AI Service Unavailable"
	fallbackArticleEmpty = "Could not retrieve article content."
	fallbackArticleError = "Error extracting article content."

	fallbackChatNoKey = "I'm sorry, I cannot connect to the AI service right now. Please check your API key."
	fallbackChatError = "I encountered an error processing your request."
)

// fallbackPodcastAnalysis is returned whenever a structured analysis
// cannot be produced.
func fallbackPodcastAnalysis() models.PodcastAnalysis {
	return models.PodcastAnalysis{
		PodcastName:    "Analysis Failed",
		EpisodeTitle:   "Error",
		Score:          0,
		Summary:        "Could not generate structured analysis.",
		Metrics:        []models.PodcastMetric{},
		Recommendation: "Please try again.",
	}
}

// validatePodcastAnalysis checks the parsed contract. Metrics are
// optional by default; requireMetrics pins the stricter reading.
func validatePodcastAnalysis(a *models.PodcastAnalysis, requireMetrics bool) error {
	if strings.TrimSpace(a.PodcastName) == "" {
		return fmt.Errorf("ai: podcast analysis missing podcastName")
	}
	if strings.TrimSpace(a.Summary) == "" {
		return fmt.Errorf("ai: podcast analysis missing summary")
	}
	if a.Score < 0 || a.Score > 10 {
		return fmt.Errorf("ai: podcast analysis score %v out of range", a.Score)
	}
	if requireMetrics && len(a.Metrics) == 0 {
		return fmt.Errorf("ai: podcast analysis missing metrics")
	}
	return nil
}

func validateSourceDiscovery(d *models.SourceDiscovery) error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("ai: discovery missing title")
	}
	if strings.TrimSpace(d.SpecificURL) == "" {
		return fmt.Errorf("ai: discovery missing specificUrl")
	}
	return nil
}

func validateContentReview(r *models.ContentReview) error {
	if strings.TrimSpace(r.ImprovedTitle) == "" && strings.TrimSpace(r.ImprovedDescription) == "" {
		return fmt.Errorf("ai: review carries no improvements")
	}
	return nil
}

// request DTOs

type summaryRequest struct {
	Text string `json:"text" binding:"required"`
	Lang string `json:"lang"`
}

type translateRequest struct {
	Text       string `json:"text" binding:"required"`
	TargetLang string `json:"targetLang" binding:"required"`
}

type speechRequest struct {
	Text string `json:"text" binding:"required"`
}

type urlRequest struct {
	URL string `json:"url" binding:"required"`
}

type reviewRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message" binding:"required"`
	Context   string `json:"context"`
}

type chatResponse struct {
	SessionID string               `json:"sessionId"`
	Reply     models.ChatMessage   `json:"reply"`
	History   []models.ChatMessage `json:"history"`
}
