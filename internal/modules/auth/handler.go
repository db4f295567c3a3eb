package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/middleware"
	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/password-reset", h.requestPasswordReset)

	me := g.Group("", authMW)
	me.POST("/logout", h.logout)
	me.GET("/me", h.me)
	me.GET("/sessions", h.sessions)
	me.DELETE("/sessions/:id", h.revokeSession)
	me.GET("/favorites", h.favorites)
	me.PUT("/favorites/:collection/:id", h.toggleFavorite)
	me.GET("/chats", h.savedChats)
	me.POST("/chats", h.saveChat)
	me.DELETE("/chats/:id", h.deleteChat)
	me.GET("/analyses", h.savedAnalyses)
	me.POST("/analyses", h.saveAnalysis)
	me.DELETE("/analyses/:id", h.deleteAnalysis)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

// POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.svc.Register(req.Email, req.Password, req.Name, c.ClientIP(), c.Request.UserAgent())
	switch {
	case errors.Is(err, ErrEmailTaken):
		response.Conflict(c, "email already registered")
		return
	case errors.Is(err, ErrInvalidCredentials):
		response.BadRequest(c, "email and a password of at least 8 characters are required")
		return
	case err != nil:
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"user": user, "token": token})
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.svc.Login(req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, gin.H{"user": user, "token": token})
}

// POST /auth/logout
func (h *Handler) logout(c *gin.Context) {
	h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	response.NoContent(c)
}

// POST /auth/password-reset
func (h *Handler) requestPasswordReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.svc.RequestPasswordReset(req.Email)
	// Same answer whether or not the account exists.
	response.OK(c, gin.H{"message": "if the account exists, a reset link has been issued"})
}

// GET /auth/me
func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, user)
}

// GET /auth/sessions
func (h *Handler) sessions(c *gin.Context) {
	response.OK(c, h.svc.Sessions(middleware.CurrentUserID(c)))
}

// DELETE /auth/sessions/:id
func (h *Handler) revokeSession(c *gin.Context) {
	if err := h.svc.RevokeSession(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.NotFoundMsg(c, "session not found")
		return
	}
	response.NoContent(c)
}

// GET /auth/favorites
func (h *Handler) favorites(c *gin.Context) {
	favs, err := h.svc.Favorites(middleware.CurrentUserID(c))
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, favs)
}

type saveChatRequest struct {
	Title    string               `json:"title"`
	Messages []models.ChatMessage `json:"messages" binding:"required"`
}

type saveAnalysisRequest struct {
	URL      string                 `json:"url"`
	Analysis models.PodcastAnalysis `json:"analysis" binding:"required"`
}

// GET /auth/chats
func (h *Handler) savedChats(c *gin.Context) {
	chats, err := h.svc.SavedChats(middleware.CurrentUserID(c))
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, chats)
}

// POST /auth/chats
func (h *Handler) saveChat(c *gin.Context) {
	var req saveChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	chat, err := h.svc.SaveChat(middleware.CurrentUserID(c), req.Title, req.Messages)
	if err != nil {
		response.BadRequest(c, "transcript must not be empty")
		return
	}
	response.Created(c, chat)
}

// DELETE /auth/chats/:id
func (h *Handler) deleteChat(c *gin.Context) {
	if err := h.svc.DeleteChat(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.NotFoundMsg(c, "saved chat not found")
		return
	}
	response.NoContent(c)
}

// GET /auth/analyses
func (h *Handler) savedAnalyses(c *gin.Context) {
	analyses, err := h.svc.SavedAnalyses(middleware.CurrentUserID(c))
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, analyses)
}

// POST /auth/analyses
func (h *Handler) saveAnalysis(c *gin.Context) {
	var req saveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	saved, err := h.svc.SaveAnalysis(middleware.CurrentUserID(c), req.URL, req.Analysis)
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.Created(c, saved)
}

// DELETE /auth/analyses/:id
func (h *Handler) deleteAnalysis(c *gin.Context) {
	if err := h.svc.DeleteAnalysis(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.NotFoundMsg(c, "saved analysis not found")
		return
	}
	response.NoContent(c)
}

// PUT /auth/favorites/:collection/:id
func (h *Handler) toggleFavorite(c *gin.Context) {
	collection := models.Collection(c.Param("collection"))
	if !collection.Valid() {
		response.NotFoundMsg(c, "unknown collection")
		return
	}

	saved, err := h.svc.ToggleFavorite(middleware.CurrentUserID(c), collection, c.Param("id"))
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, gin.H{"saved": saved})
}
