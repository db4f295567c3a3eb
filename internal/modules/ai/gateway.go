package ai

import (
	"context"

	"github.com/rahmasleam/NexusMenaV2/internal/config"
	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"go.uber.org/zap"
)

const promptRuneLimit = 12000

// Service is the gateway between the portal and the generative API.
// Every operation is fail-soft: transport errors, missing credentials
// and malformed model output all resolve to documented fallback values
// inside this package.
type Service struct {
	inv         *invoker
	model       string
	speechModel string
	sessions    *sessionStore
	logger      *zap.Logger
}

// NewService wires the gateway. The credential is passed in exactly
// once at startup and kept private; it never appears in prompts, logs
// or serialized state.
func NewService(cfg config.AIConfig, credential string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inv:         newInvoker(cfg.Endpoint, credential, cfg.SpeechVoice, cfg.AITimeout()),
		model:       cfg.Model,
		speechModel: cfg.SpeechModel,
		sessions:    newSessionStore(),
		logger:      logger.Named("ai"),
	}
}

// Available reports whether the gateway holds a credential.
func (s *Service) Available() bool { return s.inv.hasCredential() }

// Summarize condenses text into bullet points in the requested language.
func (s *Service) Summarize(ctx context.Context, text, lang string) string {
	if !s.inv.hasCredential() {
		return fallbackSummaryNoKey
	}

	prompt := buildSummaryPrompt(lang, truncateText(text, promptRuneLimit))
	res, err := s.inv.invoke(ctx, invokeRequest{Model: s.model, Contents: userContents(prompt)})
	if err != nil {
		s.logger.Warn("summary failed", zap.Error(err))
		return fallbackSummaryError
	}
	if out := normalizeText(res.Text); out != "" {
		return out
	}
	return fallbackSummaryEmpty
}

// Translate renders text in the target language. On any failure the
// original text is returned unchanged.
func (s *Service) Translate(ctx context.Context, text, targetLang string) string {
	if !s.inv.hasCredential() {
		return text
	}

	prompt := buildTranslatePrompt(targetLang, truncateText(text, promptRuneLimit))
	res, err := s.inv.invoke(ctx, invokeRequest{Model: s.model, Contents: userContents(prompt)})
	if err != nil {
		s.logger.Warn("translation failed", zap.Error(err))
		return text
	}
	if out := normalizeText(res.Text); out != "" {
		return out
	}
	return text
}

// AnalyzeMarket produces a short narrative insight for a market snapshot.
func (s *Service) AnalyzeMarket(ctx context.Context, dataContext string) string {
	if !s.inv.hasCredential() {
		return fallbackMarketNoKey
	}

	prompt := buildMarketPrompt(truncateText(dataContext, promptRuneLimit))
	res, err := s.inv.invoke(ctx, invokeRequest{Model: s.model, Contents: userContents(prompt)})
	if err != nil {
		s.logger.Warn("market analysis failed", zap.Error(err))
		return fallbackMarketError
	}
	if out := normalizeText(res.Text); out != "" {
		return out
	}
	return fallbackMarketEmpty
}

// GenerateSpeech synthesizes text into raw PCM16 audio, base64 encoded.
// An empty string means speech is unavailable.
func (s *Service) GenerateSpeech(ctx context.Context, text string) string {
	if !s.inv.hasCredential() {
		return ""
	}

	res, err := s.inv.invoke(ctx, invokeRequest{
		Model:         s.speechModel,
		Contents:      []geminiContent{{Parts: []geminiPart{{Text: text}}}},
		AudioResponse: true,
	})
	if err != nil {
		s.logger.Warn("speech synthesis failed", zap.Error(err))
		return ""
	}
	return res.AudioBase64
}

// AnalyzePodcast runs a structured review of a podcast URL, grounded by
// web search. Any failure yields the placeholder analysis.
func (s *Service) AnalyzePodcast(ctx context.Context, url string) models.PodcastAnalysis {
	if !s.inv.hasCredential() {
		return fallbackPodcastAnalysis()
	}

	res, err := s.inv.invoke(ctx, invokeRequest{
		Model:     s.model,
		Contents:  userContents(buildPodcastPrompt(url)),
		UseSearch: true,
	})
	if err != nil {
		s.logger.Warn("podcast analysis failed", zap.Error(err))
		return fallbackPodcastAnalysis()
	}

	var analysis models.PodcastAnalysis
	if err := unmarshalLoose(res.Text, &analysis); err != nil {
		s.logger.Warn("podcast analysis unparseable", zap.Error(err))
		return fallbackPodcastAnalysis()
	}
	if err := validatePodcastAnalysis(&analysis, false); err != nil {
		s.logger.Warn("podcast analysis violates contract", zap.Error(err))
		return fallbackPodcastAnalysis()
	}
	if analysis.Metrics == nil {
		analysis.Metrics = []models.PodcastMetric{}
	}
	return analysis
}

// FetchLatestFromSource resolves a publisher URL to its latest concrete
// item, using web search for collection URLs. Nil means no result.
func (s *Service) FetchLatestFromSource(ctx context.Context, url string) *models.SourceDiscovery {
	if !s.inv.hasCredential() {
		return nil
	}

	res, err := s.inv.invoke(ctx, invokeRequest{
		Model:     s.model,
		Contents:  userContents(buildDiscoveryPrompt(url)),
		UseSearch: true,
	})
	if err != nil {
		s.logger.Warn("source discovery failed", zap.Error(err))
		return nil
	}

	var discovery models.SourceDiscovery
	if err := unmarshalLoose(res.Text, &discovery); err != nil {
		s.logger.Warn("source discovery unparseable", zap.Error(err))
		return nil
	}
	if err := validateSourceDiscovery(&discovery); err != nil {
		s.logger.Warn("source discovery violates contract", zap.Error(err))
		return nil
	}
	return &discovery
}

// GetArticleContent extracts an article as Markdown.
func (s *Service) GetArticleContent(ctx context.Context, url string) string {
	if !s.inv.hasCredential() {
		return fallbackArticleNoKey
	}

	res, err := s.inv.invoke(ctx, invokeRequest{
		Model:     s.model,
		Contents:  userContents(buildArticlePrompt(url)),
		UseSearch: true,
	})
	if err != nil {
		s.logger.Warn("article extraction failed", zap.Error(err))
		return fallbackArticleError
	}
	if out := normalizeText(res.Text); out != "" {
		return out
	}
	return fallbackArticleEmpty
}

// ReviewContent asks for editorial improvements on a draft submission.
// Nil means the review is unavailable.
func (s *Service) ReviewContent(ctx context.Context, title, description, category string) *models.ContentReview {
	if !s.inv.hasCredential() {
		return nil
	}

	res, err := s.inv.invoke(ctx, invokeRequest{
		Model:        s.model,
		Contents:     userContents(buildReviewPrompt(title, description, category)),
		JSONResponse: true,
	})
	if err != nil {
		s.logger.Warn("content review failed", zap.Error(err))
		return nil
	}

	var review models.ContentReview
	if err := unmarshalLoose(res.Text, &review); err != nil {
		s.logger.Warn("content review unparseable", zap.Error(err))
		return nil
	}
	if err := validateContentReview(&review); err != nil {
		s.logger.Warn("content review violates contract", zap.Error(err))
		return nil
	}
	return &review
}

// Chat runs one turn of an assistant conversation. The transcript is
// kept server-side; only the last few turns are forwarded upstream.
// Blank messages are rejected before any network activity.
func (s *Service) Chat(ctx context.Context, sessionID, message, contextData string) (*conversation, models.ChatMessage, error) {
	if err := validateChatInput(message); err != nil {
		return nil, models.ChatMessage{}, err
	}

	conv := s.sessions.open(sessionID)
	priorHistory := s.sessions.history(conv)
	s.sessions.append(conv, models.RoleUser, message)

	reply := s.chatReply(ctx, priorHistory, message, contextData)
	replyMsg := s.sessions.append(conv, models.RoleModel, reply)
	return conv, replyMsg, nil
}

func (s *Service) chatReply(ctx context.Context, history []models.ChatMessage, message, contextData string) string {
	if !s.inv.hasCredential() {
		return fallbackChatNoKey
	}

	contents := windowContents(history)
	contents = append(contents, geminiContent{
		Role:  string(models.RoleUser),
		Parts: []geminiPart{{Text: buildChatTurn(message, contextData)}},
	})

	res, err := s.inv.invoke(ctx, invokeRequest{
		Model:             s.model,
		Contents:          contents,
		SystemInstruction: chatSystemInstruction,
	})
	if err != nil {
		s.logger.Warn("chat turn failed", zap.Error(err))
		return fallbackChatError
	}
	if out := normalizeText(res.Text); out != "" {
		return out
	}
	return fallbackChatError
}

// History returns the full transcript of a session, nil if unknown.
func (s *Service) History(sessionID string) []models.ChatMessage {
	s.sessions.mu.Lock()
	conv, ok := s.sessions.convs[sessionID]
	s.sessions.mu.Unlock()
	if !ok {
		return nil
	}
	return s.sessions.history(conv)
}
