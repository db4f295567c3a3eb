package market

import (
	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/market")
	g.GET("", h.getBoard)
	g.GET("/insight", h.getInsight)
}

// GET /market
func (h *Handler) getBoard(c *gin.Context) {
	quotes, updatedAt := h.svc.Snapshot()
	response.OK(c, gin.H{
		"metrics":   quotes,
		"updatedAt": updatedAt,
	})
}

// GET /market/insight
func (h *Handler) getInsight(c *gin.Context) {
	response.OK(c, gin.H{"insight": h.svc.Insight(c.Request.Context())})
}
