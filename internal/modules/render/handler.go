package render

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/rahmasleam/NexusMenaV2/internal/modules/ai"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/response"
	"github.com/rahmasleam/NexusMenaV2/internal/store"
)

type Handler struct {
	store *store.ContentStore
	aiSvc *ai.Service
}

func NewHandler(st *store.ContentStore, aiSvc *ai.Service) *Handler {
	return &Handler{store: st, aiSvc: aiSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	g := rg.Group("/render")
	g.GET("/:collection/:id", h.renderItem)
	g.POST("/article", h.renderArticle)
	g.POST("/preview", append(adminMW, h.previewMarkdown)...)
}

// GET /render/:collection/:id — reader view for a stored item
func (h *Handler) renderItem(c *gin.Context) {
	collection := models.Collection(c.Param("collection"))
	if !collection.Valid() {
		response.NotFoundMsg(c, "unknown collection")
		return
	}

	item, err := h.store.Get(collection, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	body := Markdown(itemMarkdown(item))
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, Document(item.Title, body))
}

type articleRequest struct {
	URL string `json:"url" binding:"required"`
}

// POST /render/article — extract an external article and render it
func (h *Handler) renderArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	content := h.aiSvc.GetArticleContent(c.Request.Context(), req.URL)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, Document(req.URL, Markdown(content)))
}

type previewRequest struct {
	Markdown string `json:"markdown" binding:"required"`
	Title    string `json:"title"`
}

// POST /render/preview — admin preview of arbitrary markdown
func (h *Handler) previewMarkdown(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, Document(req.Title, Markdown(req.Markdown)))
}

// itemMarkdown assembles the markdown body for a stored item from its
// description and summary points.
func itemMarkdown(item models.ContentItem) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(item.Description))
	if item.DescriptionAr != "" {
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(item.DescriptionAr))
	}
	if len(item.SummaryPoints) > 0 {
		b.WriteString("\n\n## Highlights\n")
		for _, point := range item.SummaryPoints {
			b.WriteString("\n- ")
			b.WriteString(point)
		}
	}
	if item.URL != "" {
		b.WriteString("\n\n[")
		b.WriteString(item.Source)
		b.WriteString("](")
		b.WriteString(item.URL)
		b.WriteString(")")
	}
	return b.String()
}
