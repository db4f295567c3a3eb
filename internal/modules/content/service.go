package content

import (
	"context"
	"strings"

	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/rahmasleam/NexusMenaV2/internal/modules/ai"
	"github.com/rahmasleam/NexusMenaV2/internal/store"
	"go.uber.org/zap"
)

// Broadcaster pushes content-change events to connected clients.
type Broadcaster interface {
	BroadcastPublic(event string, payload interface{})
}

// Service serves the portal content collections.
type Service struct {
	store  *store.ContentStore
	aiSvc  *ai.Service
	hub    Broadcaster
	logger *zap.Logger
}

func NewService(st *store.ContentStore, aiSvc *ai.Service, hub Broadcaster, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, aiSvc: aiSvc, hub: hub, logger: logger.Named("content")}
}

// List returns a filtered collection listing, newest first.
func (s *Service) List(collection models.Collection, f Filter) ([]models.ContentItem, error) {
	items, err := s.store.List(collection)
	if err != nil {
		return nil, err
	}

	region := strings.TrimSpace(f.Region)
	category := strings.TrimSpace(f.Category)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := items[:0:0]
	for _, item := range items {
		if region != "" && !strings.EqualFold(string(item.Region), region) {
			continue
		}
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func matchesQuery(item models.ContentItem, q string) bool {
	for _, field := range []string{item.Title, item.TitleAr, item.Description, item.DescriptionAr, item.Source} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (s *Service) Get(collection models.Collection, id string) (models.ContentItem, error) {
	return s.store.Get(collection, id)
}

func (s *Service) Create(collection models.Collection, item models.ContentItem) (models.ContentItem, error) {
	created, err := s.store.Add(collection, item)
	if err != nil {
		return models.ContentItem{}, err
	}
	s.notify("content_created", collection, created.ID)
	return created, nil
}

func (s *Service) Update(collection models.Collection, item models.ContentItem) error {
	if err := s.store.Update(collection, item); err != nil {
		return err
	}
	s.notify("content_updated", collection, item.ID)
	return nil
}

func (s *Service) Delete(collection models.Collection, id string) error {
	if err := s.store.Delete(collection, id); err != nil {
		return err
	}
	s.notify("content_deleted", collection, id)
	return nil
}

// ImportFromSource resolves a publisher URL through the AI gateway and
// files the discovered item into the collection. Nil result means the
// source could not be read.
func (s *Service) ImportFromSource(ctx context.Context, collection models.Collection, url string) (*models.ContentItem, error) {
	discovery := s.aiSvc.FetchLatestFromSource(ctx, url)
	if discovery == nil {
		return nil, nil
	}

	item := models.ContentItem{
		Title:         discovery.Title,
		Description:   discovery.Description,
		Source:        discovery.Source,
		URL:           discovery.SpecificURL,
		Date:          discovery.Date,
		Region:        models.RegionGlobal,
		Category:      discovery.Category,
		Duration:      discovery.Duration,
		SummaryPoints: discovery.SummaryPoints,
		YoutubeURL:    discovery.YoutubeURL,
		SpotifyURL:    discovery.SpotifyURL,
	}
	created, err := s.Create(collection, item)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Summarize produces AI bullet points for one item.
func (s *Service) Summarize(ctx context.Context, collection models.Collection, id, lang string) (string, error) {
	item, err := s.store.Get(collection, id)
	if err != nil {
		return "", err
	}
	return s.aiSvc.Summarize(ctx, item.Title+"\n\n"+item.Description, lang), nil
}

// Translate renders an item's description in the target language.
func (s *Service) Translate(ctx context.Context, collection models.Collection, id, targetLang string) (string, error) {
	item, err := s.store.Get(collection, id)
	if err != nil {
		return "", err
	}
	return s.aiSvc.Translate(ctx, item.Description, targetLang), nil
}

func (s *Service) notify(event string, collection models.Collection, id string) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastPublic(event, map[string]interface{}{
		"collection": collection,
		"id":         id,
	})
}
