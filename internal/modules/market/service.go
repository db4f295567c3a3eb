package market

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/rahmasleam/NexusMenaV2/internal/modules/ai"
	"go.uber.org/zap"
)

// Broadcaster pushes market refreshes to connected clients.
type Broadcaster interface {
	BroadcastPublic(event string, payload interface{})
}

// Service keeps the live market board. Quotes are simulated: each
// refresh nudges values within tight bounds, the way the portal's
// ticker has always worked.
type Service struct {
	mu        sync.RWMutex
	quotes    []models.MarketMetric
	updatedAt time.Time

	aiSvc  *ai.Service
	hub    Broadcaster
	logger *zap.Logger
}

func NewService(aiSvc *ai.Service, hub Broadcaster, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		quotes:    seedQuotes(),
		updatedAt: time.Now(),
		aiSvc:     aiSvc,
		hub:       hub,
		logger:    logger.Named("market"),
	}
}

func seedQuotes() []models.MarketMetric {
	return []models.MarketMetric{
		{Name: "EGX 30", Value: 28500.45, Change: 1.2, Trend: models.TrendUp, Currency: "pts", Type: models.MetricIndex},
		{Name: "NASDAQ", Value: 16340.20, Change: 0.8, Trend: models.TrendUp, Currency: "USD", Type: models.MetricIndex},
		{Name: "S&P 500", Value: 5200.10, Change: 0.3, Trend: models.TrendUp, Currency: "USD", Type: models.MetricIndex},
		{Name: "Tadawul", Value: 12500.00, Change: -0.2, Trend: models.TrendDown, Currency: "SAR", Type: models.MetricIndex},
		{Name: "Bitcoin", Value: 64200.00, Change: -1.5, Trend: models.TrendDown, Currency: "USD", Type: models.MetricCrypto},
		{Name: "Ethereum", Value: 3200.50, Change: 0.5, Trend: models.TrendUp, Currency: "USD", Type: models.MetricCrypto},
		{Name: "Solana", Value: 145.20, Change: 2.1, Trend: models.TrendUp, Currency: "USD", Type: models.MetricCrypto},
		{Name: "USD/EGP", Value: 47.85, Change: -0.1, Trend: models.TrendNeutral, Currency: "EGP", Type: models.MetricCurrency},
		{Name: "EUR/EGP", Value: 51.20, Change: 0.2, Trend: models.TrendUp, Currency: "EGP", Type: models.MetricCurrency},
		{Name: "SAR/EGP", Value: 12.75, Change: 0.0, Trend: models.TrendNeutral, Currency: "EGP", Type: models.MetricCurrency},
	}
}

// Snapshot returns a copy of the current board.
func (s *Service) Snapshot() ([]models.MarketMetric, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MarketMetric, len(s.quotes))
	copy(out, s.quotes)
	return out, s.updatedAt
}

// Refresh nudges every quote: value moves at most ±0.1%, change drifts
// at most ±0.05 points, trend follows the sign of the drift.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	for i := range s.quotes {
		q := &s.quotes[i]
		q.Value *= 1 + (rand.Float64()*0.002 - 0.001)
		q.Change += rand.Float64()*0.1 - 0.05
		switch {
		case q.Change > 0.005:
			q.Trend = models.TrendUp
		case q.Change < -0.005:
			q.Trend = models.TrendDown
		default:
			q.Trend = models.TrendNeutral
		}
	}
	s.updatedAt = time.Now()
	snapshot := make([]models.MarketMetric, len(s.quotes))
	copy(snapshot, s.quotes)
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.BroadcastPublic("market_refresh", snapshot)
	}
	return nil
}

// contextString renders the board for the analyst prompt.
func (s *Service) contextString() string {
	quotes, at := s.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Snapshot taken %s\n", at.UTC().Format(time.RFC3339))
	for _, q := range quotes {
		fmt.Fprintf(&b, "%s (%s): %.2f %s, change %+.2f%%, trend %s\n",
			q.Name, q.Type, q.Value, q.Currency, q.Change, q.Trend)
	}
	return b.String()
}

// Insight asks the AI gateway for a short narrative on the current board.
func (s *Service) Insight(ctx context.Context) string {
	return s.aiSvc.AnalyzeMarket(ctx, s.contextString())
}
