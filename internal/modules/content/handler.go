package content

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/pagination"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/response"
	"github.com/rahmasleam/NexusMenaV2/internal/store"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	g := rg.Group("/content")

	g.GET("/:collection", h.list)
	g.GET("/:collection/:id", h.get)
	g.POST("/:collection/:id/summarize", h.summarize)
	g.POST("/:collection/:id/translate", h.translate)

	admin := g.Group("", adminMW...)
	admin.POST("/:collection", h.create)
	admin.PUT("/:collection/:id", h.update)
	admin.DELETE("/:collection/:id", h.remove)
	admin.POST("/:collection/import", h.importFromSource)
}

func collectionParam(c *gin.Context) (models.Collection, bool) {
	collection := models.Collection(c.Param("collection"))
	if !collection.Valid() {
		response.NotFoundMsg(c, "unknown collection")
		return "", false
	}
	return collection, true
}

// GET /content/:collection?region=&category=&q=&page=&size=
func (h *Handler) list(c *gin.Context) {
	collection, ok := collectionParam(c)
	if !ok {
		return
	}

	items, err := h.svc.List(collection, Filter{
		Region:   c.Query("region"),
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	page, meta := pagination.Paginate(items, pagination.FromContext(c))
	response.Paged(c, page, meta)
}

// GET /content/:collection/:id
func (h *Handler) get(c *gin.Context) {
	collection, ok := collectionParam(c)
	if !ok {
		return
	}

	item, err := h.svc.Get(collection, c.Param("id"))
	if err != nil {
		handleStoreErr(c, err)
		return
	}
	response.OK(c, item)
}

// POST /content/:collection
func (h *Handler) create(c *gin.Context) {
	collection, ok := collectionParam(c)
	if !ok {
		return
	}

	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.svc.Create(collection, req.toItem(""))
	if err != nil {
		handleStoreErr(c, err)
		return
	}
	response.Created(c, created)
}

// PUT /content/:collection/:id
func (h *Handler) update(c *gin.Context) {
	collection, ok := collectionParam(c)
	if !ok {
		return
	}

	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item := req.toItem(c.Param("id"))
	if err := h.svc.Update(collection, item); err != nil {
		handleStoreErr(c, err)
		return
	}
	response.OK(c, item)
}

// DELETE /content/:collection/:id
func (h *Handler) remove(c *gin.Context) {
	collection, ok := collectionParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(collection, c.Param("id")); err != nil {
		handleStoreErr(c, err)
		return
	}
	response.NoContent(c)
}

// POST /content/:collection/import
func (h *Handler) importFromSource(c *gin.Context) {
	collection, ok := collectionParam(c)
	if !ok {
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.ImportFromSource(c.Request.Context(), collection, req.URL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.UnprocessableEntity(c, "could not extract content from source")
		return
	}
	response.Created(c, item)
}

// POST /content/:collection/:id/summarize
func (h *Handler) summarize(c *gin.Context) {
	collection, ok := collectionParam(c)
	if !ok {
		return
	}

	var req summarizeRequest
	_ = c.ShouldBindJSON(&req)
	if req.Lang == "" {
		req.Lang = "en"
	}

	summary, err := h.svc.Summarize(c.Request.Context(), collection, c.Param("id"), req.Lang)
	if err != nil {
		handleStoreErr(c, err)
		return
	}
	response.OK(c, gin.H{"summary": summary})
}

// POST /content/:collection/:id/translate
func (h *Handler) translate(c *gin.Context) {
	collection, ok := collectionParam(c)
	if !ok {
		return
	}

	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	text, err := h.svc.Translate(c.Request.Context(), collection, c.Param("id"), req.TargetLang)
	if err != nil {
		handleStoreErr(c, err)
		return
	}
	response.OK(c, gin.H{"text": text})
}

func handleStoreErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c)
	case errors.Is(err, store.ErrUnknownCollection):
		response.NotFoundMsg(c, "unknown collection")
	default:
		response.InternalError(c, err)
	}
}

func (r upsertRequest) toItem(id string) models.ContentItem {
	region := models.Region(r.Region)
	if region == "" {
		region = models.RegionGlobal
	}
	return models.ContentItem{
		ID:            id,
		Title:         r.Title,
		TitleAr:       r.TitleAr,
		Description:   r.Description,
		DescriptionAr: r.DescriptionAr,
		Source:        r.Source,
		URL:           r.URL,
		Date:          r.Date,
		Region:        region,
		ImageURL:      r.ImageURL,
		Category:      r.Category,
		Location:      r.Location,
		LocationAr:    r.LocationAr,
		Duration:      r.Duration,
		Frequency:     r.Frequency,
		PartnerType:   r.PartnerType,
		ResourceType:  r.ResourceType,
		SummaryPoints: r.SummaryPoints,
		YoutubeURL:    r.YoutubeURL,
		SpotifyURL:    r.SpotifyURL,
	}
}
