package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rahmasleam/NexusMenaV2/internal/config"
	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, credential string, handler http.HandlerFunc) (*Service, *int64) {
	t.Helper()

	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.AIConfig{
		Endpoint:       srv.URL,
		Model:          "gemini-2.5-flash",
		SpeechModel:    "gemini-2.5-flash-preview-tts",
		SpeechVoice:    "Kore",
		TimeoutSeconds: 5,
	}
	return NewService(cfg, credential, nil), &calls
}

func textResponse(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				}},
			},
		})
	}
}

func failResponse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	}
}

func TestMissingCredentialNeverReachesNetwork(t *testing.T) {
	svc, calls := newTestService(t, "", textResponse("should never be seen"))
	ctx := context.Background()

	assert.Equal(t, fallbackSummaryNoKey, svc.Summarize(ctx, "some text", "en"))
	assert.Equal(t, "original", svc.Translate(ctx, "original", "ar"))
	assert.Equal(t, fallbackMarketNoKey, svc.AnalyzeMarket(ctx, "BTC 64200"))
	assert.Empty(t, svc.GenerateSpeech(ctx, "hello"))
	assert.Equal(t, fallbackPodcastAnalysis(), svc.AnalyzePodcast(ctx, "https://example.com/pod"))
	assert.Nil(t, svc.FetchLatestFromSource(ctx, "https://example.com"))
	assert.Equal(t, fallbackArticleNoKey, svc.GetArticleContent(ctx, "https://example.com/a"))
	assert.Nil(t, svc.ReviewContent(ctx, "t", "d", "c"))

	_, reply, err := svc.Chat(ctx, "", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, fallbackChatNoKey, reply.Content)

	assert.False(t, svc.Available())
	assert.Zero(t, atomic.LoadInt64(calls), "no HTTP call may happen without a credential")
}

func TestTransportErrorFallbacks(t *testing.T) {
	svc, _ := newTestService(t, "test-key", failResponse())
	ctx := context.Background()

	assert.Equal(t, fallbackSummaryError, svc.Summarize(ctx, "text", "en"))
	assert.Equal(t, "as-was", svc.Translate(ctx, "as-was", "en"))
	assert.Equal(t, fallbackMarketError, svc.AnalyzeMarket(ctx, "snapshot"))
	assert.Empty(t, svc.GenerateSpeech(ctx, "hi"))
	assert.Equal(t, fallbackPodcastAnalysis(), svc.AnalyzePodcast(ctx, "https://x"))
	assert.Nil(t, svc.FetchLatestFromSource(ctx, "https://x"))
	assert.Equal(t, fallbackArticleError, svc.GetArticleContent(ctx, "https://x"))
	assert.Nil(t, svc.ReviewContent(ctx, "t", "d", "c"))

	_, reply, err := svc.Chat(ctx, "", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, fallbackChatError, reply.Content)
}

func TestSummarizeSuccess(t *testing.T) {
	svc, _ := newTestService(t, "test-key", textResponse("- point one\n- point two\n- point three"))
	got := svc.Summarize(context.Background(), "long article", "en")
	assert.Equal(t, "- point one\n- point two\n- point three", got)
}

func TestCredentialTravelsInHeaderOnly(t *testing.T) {
	var gotHeader, gotURL string
	svc, _ := newTestService(t, "sk-secret-42", func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("x-goog-api-key")
		gotURL = r.URL.String()
		textResponse("ok")(w, r)
	})

	svc.Summarize(context.Background(), "text", "en")
	assert.Equal(t, "sk-secret-42", gotHeader)
	assert.NotContains(t, gotURL, "sk-secret-42")
}

func TestAnalyzePodcastParsesFencedJSON(t *testing.T) {
	payload := "```json\n{\"podcastName\":\"Tech Pod\",\"episodeTitle\":\"Ep 7\",\"score\":8.5,\"summary\":\"Solid overview.\",\"metrics\":[{\"name\":\"Clarity\",\"finding\":\"Clear.\"}],\"recommendation\":\"Listen.\"}\n```"
	svc, _ := newTestService(t, "test-key", textResponse(payload))

	got := svc.AnalyzePodcast(context.Background(), "https://example.com/pod")
	assert.Equal(t, "Tech Pod", got.PodcastName)
	assert.Equal(t, 8.5, got.Score)
	require.Len(t, got.Metrics, 1)
	assert.Equal(t, "Clarity", got.Metrics[0].Name)
}

func TestAnalyzePodcastMetricsOptional(t *testing.T) {
	// Metrics absent entirely: accepted with an empty slice.
	payload := `{"podcastName":"Tech Pod","episodeTitle":"Ep 7","score":7,"summary":"Fine.","recommendation":"Skim."}`
	svc, _ := newTestService(t, "test-key", textResponse(payload))

	got := svc.AnalyzePodcast(context.Background(), "https://example.com/pod")
	assert.Equal(t, "Tech Pod", got.PodcastName)
	assert.NotNil(t, got.Metrics)
	assert.Empty(t, got.Metrics)

	// The strict reading rejects the same value.
	assert.Error(t, validatePodcastAnalysis(&got, true))
	assert.NoError(t, validatePodcastAnalysis(&got, false))
}

func TestAnalyzePodcastMalformedFallsBack(t *testing.T) {
	svc, _ := newTestService(t, "test-key", textResponse("I cannot access that URL, sorry."))
	got := svc.AnalyzePodcast(context.Background(), "https://example.com/pod")
	assert.Equal(t, fallbackPodcastAnalysis(), got)
}

func TestFetchLatestFromSourceContract(t *testing.T) {
	payload := `{"title":"New AI Video","description":"d","source":"YT","specificUrl":"https://youtube.com/watch?v=abc","date":"2025-01-15","category":"latest","summaryPoints":["a","b"]}`
	svc, _ := newTestService(t, "test-key", textResponse(payload))

	got := svc.FetchLatestFromSource(context.Background(), "https://youtube.com/@chan")
	require.NotNil(t, got)
	assert.Equal(t, "https://youtube.com/watch?v=abc", got.SpecificURL)

	// Missing specificUrl violates the contract.
	svc2, _ := newTestService(t, "test-key", textResponse(`{"title":"x","description":"d"}`))
	assert.Nil(t, svc2.FetchLatestFromSource(context.Background(), "https://youtube.com/@chan"))
}

func TestReviewContentSuccess(t *testing.T) {
	payload := `{"improvedTitle":"Better Title","improvedDescription":"Sharper copy.","feedback":"Tightened wording."}`
	svc, _ := newTestService(t, "test-key", textResponse(payload))

	got := svc.ReviewContent(context.Background(), "ok title", "meh", "startup")
	require.NotNil(t, got)
	assert.Equal(t, "Better Title", got.ImprovedTitle)
}

func TestGenerateSpeechExtractsInlineAudio(t *testing.T) {
	svc, _ := newTestService(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		var req geminiGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, []string{"AUDIO"}, req.GenerationConfig.ResponseModalities)
		require.NotNil(t, req.GenerationConfig.SpeechConfig)
		assert.Equal(t, "Kore", req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/L16;rate=24000","data":"AAAA"}}]}}]}`))
	})

	got := svc.GenerateSpeech(context.Background(), "say this")
	assert.Equal(t, "AAAA", got)
}

func TestChatForwardsBoundedHistoryAndContext(t *testing.T) {
	var captured geminiGenerateRequest
	svc, _ := newTestService(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		textResponse("the answer")(w, r)
	})
	ctx := context.Background()

	conv, _, err := svc.Chat(ctx, "", "question 0", "")
	require.NoError(t, err)
	for i := 1; i < 15; i++ {
		_, _, err = svc.Chat(ctx, conv.id, "question "+string(rune('0'+i%10)), "")
		require.NoError(t, err)
	}

	// 15 completed pairs on record; the 16th turn must forward only the
	// newest 10 messages plus the new user turn.
	_, reply, err := svc.Chat(ctx, conv.id, "latest question", "EGX 30 snapshot")
	require.NoError(t, err)
	assert.Equal(t, "the answer", reply.Content)
	assert.Equal(t, models.RoleModel, reply.Role)

	require.Len(t, captured.Contents, historyWindow+1)
	last := captured.Contents[len(captured.Contents)-1]
	assert.Equal(t, "user", last.Role)
	assert.Contains(t, last.Parts[0].Text, "[Context from current page: EGX 30 snapshot]")
	assert.Contains(t, last.Parts[0].Text, "User Question: latest question")

	require.NotNil(t, captured.SystemInstruction)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "NexusMena AI")

	// Full transcript still retained server-side.
	assert.Len(t, svc.History(conv.id), 32)
}

func TestChatRejectsBlankInputLocally(t *testing.T) {
	svc, calls := newTestService(t, "test-key", textResponse("never"))

	_, _, err := svc.Chat(context.Background(), "", "   \t\n", "")
	assert.ErrorIs(t, err, ErrBlankMessage)
	assert.Zero(t, atomic.LoadInt64(calls))
}

func TestSingleAttemptPerInvocation(t *testing.T) {
	svc, calls := newTestService(t, "test-key", failResponse())
	svc.Summarize(context.Background(), "text", "en")
	assert.Equal(t, int64(1), atomic.LoadInt64(calls), "no retry on failure")
}
