package content

// Filter narrows a collection listing.
type Filter struct {
	Region   string
	Category string
	Query    string
}

type upsertRequest struct {
	Title         string   `json:"title" binding:"required"`
	TitleAr       string   `json:"titleAr"`
	Description   string   `json:"description"`
	DescriptionAr string   `json:"descriptionAr"`
	Source        string   `json:"source"`
	URL           string   `json:"url"`
	Date          string   `json:"date"`
	Region        string   `json:"region"`
	ImageURL      string   `json:"imageUrl"`
	Category      string   `json:"category"`
	Location      string   `json:"location"`
	LocationAr    string   `json:"locationAr"`
	Duration      string   `json:"duration"`
	Frequency     string   `json:"frequency"`
	PartnerType   string   `json:"partnerType"`
	ResourceType  string   `json:"resourceType"`
	SummaryPoints []string `json:"summaryPoints"`
	YoutubeURL    string   `json:"youtubeUrl"`
	SpotifyURL    string   `json:"spotifyUrl"`
}

type importRequest struct {
	URL string `json:"url" binding:"required"`
}

type summarizeRequest struct {
	Lang string `json:"lang"`
}

type translateRequest struct {
	TargetLang string `json:"targetLang" binding:"required"`
}
