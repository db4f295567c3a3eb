package models

// MetricType classifies a market board entry.
type MetricType string

const (
	MetricIndex     MetricType = "Index"
	MetricCrypto    MetricType = "Crypto"
	MetricCurrency  MetricType = "Currency"
	MetricCommodity MetricType = "Commodity"
)

// Trend is the direction of the latest move.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// MarketMetric is one row of the live market board.
type MarketMetric struct {
	Name     string     `json:"name"`
	Value    float64    `json:"value"`
	Change   float64    `json:"change"`
	Trend    Trend      `json:"trend"`
	Currency string     `json:"currency,omitempty"`
	Type     MetricType `json:"type"`
}
