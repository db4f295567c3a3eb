package ai

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/audio"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	g := rg.Group("/ai")

	g.GET("/status", h.getStatus)
	g.POST("/summarize", h.summarize)
	g.POST("/translate", h.translate)
	g.POST("/speech", h.generateSpeech)
	g.POST("/podcast-analysis", h.analyzePodcast)
	g.POST("/article-content", h.getArticleContent)
	g.POST("/chat", h.chat)
	g.GET("/chat/:sessionId", h.getChatHistory)

	admin := g.Group("", adminMW...)
	admin.POST("/smart-fetch", h.fetchLatestFromSource)
	admin.POST("/review", h.reviewContent)
}

// GET /ai/status
func (h *Handler) getStatus(c *gin.Context) {
	response.OK(c, gin.H{"available": h.svc.Available()})
}

// POST /ai/summarize
func (h *Handler) summarize(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Lang == "" {
		req.Lang = "en"
	}
	response.OK(c, gin.H{"summary": h.svc.Summarize(c.Request.Context(), req.Text, req.Lang)})
}

// POST /ai/translate
func (h *Handler) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"text": h.svc.Translate(c.Request.Context(), req.Text, req.TargetLang)})
}

// POST /ai/speech
func (h *Handler) generateSpeech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b64 := h.svc.GenerateSpeech(c.Request.Context(), req.Text)
	if b64 == "" {
		response.UnprocessableEntity(c, "speech synthesis unavailable")
		return
	}
	wav, err := audio.WAVFromBase64PCM(b64, audio.DefaultSampleRate)
	if err != nil {
		response.UnprocessableEntity(c, "speech synthesis unavailable")
		return
	}
	c.Data(200, "audio/wav", wav)
}

// POST /ai/podcast-analysis
func (h *Handler) analyzePodcast(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, h.svc.AnalyzePodcast(c.Request.Context(), req.URL))
}

// POST /ai/smart-fetch
func (h *Handler) fetchLatestFromSource(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	discovery := h.svc.FetchLatestFromSource(c.Request.Context(), req.URL)
	if discovery == nil {
		response.UnprocessableEntity(c, "could not extract content from source")
		return
	}
	response.OK(c, discovery)
}

// POST /ai/article-content
func (h *Handler) getArticleContent(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"markdown": h.svc.GetArticleContent(c.Request.Context(), req.URL)})
}

// POST /ai/review
func (h *Handler) reviewContent(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review := h.svc.ReviewContent(c.Request.Context(), req.Title, req.Description, req.Category)
	if review == nil {
		response.UnprocessableEntity(c, "editorial review unavailable")
		return
	}
	response.OK(c, review)
}

// POST /ai/chat
func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conv, reply, err := h.svc.Chat(c.Request.Context(), req.SessionID, req.Message, req.Context)
	if err != nil {
		if errors.Is(err, ErrBlankMessage) {
			response.BadRequest(c, "message must not be blank")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, chatResponse{
		SessionID: conv.id,
		Reply:     reply,
		History:   h.svc.History(conv.id),
	})
}

// GET /ai/chat/:sessionId
func (h *Handler) getChatHistory(c *gin.Context) {
	history := h.svc.History(c.Param("sessionId"))
	if history == nil {
		response.NotFoundMsg(c, "conversation not found")
		return
	}
	response.OK(c, history)
}
