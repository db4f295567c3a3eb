package models

// Region buckets every content item for the portal filters.
type Region string

const (
	RegionEgypt  Region = "Egypt"
	RegionMENA   Region = "MENA"
	RegionGlobal Region = "Global"
)

// Collection identifies one of the portal content collections.
type Collection string

const (
	CollectionNews        Collection = "news"
	CollectionStartups    Collection = "startups"
	CollectionEvents      Collection = "events"
	CollectionPodcasts    Collection = "podcasts"
	CollectionNewsletters Collection = "newsletters"
	CollectionPartners    Collection = "partners"
	CollectionResources   Collection = "resources"
)

// Collections lists every collection in display order.
var Collections = []Collection{
	CollectionNews,
	CollectionStartups,
	CollectionEvents,
	CollectionPodcasts,
	CollectionNewsletters,
	CollectionPartners,
	CollectionResources,
}

// Valid reports whether c names a known collection.
func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

// ContentItem is the common shape shared by every collection entry.
// Arabic fields are optional and fall back to the English ones client-side.
type ContentItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TitleAr       string `json:"titleAr,omitempty"`
	Description   string `json:"description"`
	DescriptionAr string `json:"descriptionAr,omitempty"`
	Source        string `json:"source"`
	URL           string `json:"url"`
	Date          string `json:"date"`
	Region        Region `json:"region"`
	ImageURL      string `json:"imageUrl,omitempty"`

	// Collection-specific extras. Only the fields relevant to the
	// item's collection are populated.
	Category      string   `json:"category,omitempty"`
	Location      string   `json:"location,omitempty"`
	LocationAr    string   `json:"locationAr,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	Frequency     string   `json:"frequency,omitempty"`
	PartnerType   string   `json:"partnerType,omitempty"`
	ResourceType  string   `json:"resourceType,omitempty"`
	SummaryPoints []string `json:"summaryPoints,omitempty"`
	YoutubeURL    string   `json:"youtubeUrl,omitempty"`
	SpotifyURL    string   `json:"spotifyUrl,omitempty"`
}
