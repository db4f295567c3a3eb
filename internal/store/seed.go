package store

import (
	"time"

	"github.com/rahmasleam/NexusMenaV2/internal/models"
)

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

// seed loads the launch content set.
func (s *ContentStore) seed() {
	news := []models.ContentItem{
		{
			ID:          "n1",
			Title:       "Egypt's digital exports reach $6.2 billion in 2024",
			TitleAr:     "الصادرات الرقمية المصرية تصل إلى 6.2 مليار دولار في 2024",
			Description: "ITIDA reports record growth in outsourcing and digital services exports, driven by global demand for Egyptian tech talent.",
			Source:      "ITIDA",
			URL:         "https://itida.gov.eg/English/Pages/default.aspx",
			Date:        daysAgo(1),
			Region:      models.RegionEgypt,
			Category:    "latest",
		},
		{
			ID:          "n2",
			Title:       "Global funding slows but AI startups see 40% increase",
			Description: "Venture funding cooled overall in Q3, yet AI-focused startups bucked the trend with a 40% jump in deal value.",
			Source:      "Crunchbase",
			URL:         "https://news.crunchbase.com",
			Date:        daysAgo(2),
			Region:      models.RegionGlobal,
			Category:    "latest",
		},
		{
			ID:          "n3",
			Title:       "The Rabbit R1 Review: AI in a Box",
			Description: "A hands-on look at the pocket AI companion and what it signals for post-smartphone interfaces.",
			Source:      "The Verge",
			URL:         "https://www.theverge.com",
			Date:        daysAgo(3),
			Region:      models.RegionGlobal,
			Category:    "latest",
		},
	}

	startups := []models.ContentItem{
		{
			ID:          "s1",
			Title:       "Daily News Egypt: Gov't launches new $50M fund for Fintech",
			Description: "A new government-backed fund targets early-stage fintech startups across Egypt.",
			Source:      "Daily News Egypt",
			URL:         "https://dailynewsegypt.com",
			Date:        daysAgo(1),
			Region:      models.RegionEgypt,
			Category:    "startup",
		},
		{
			ID:          "s2",
			Title:       "Saudi Arabia's Tamer Group acquires Mumzworld",
			Description: "Consolidation continues in MENA e-commerce as Tamer Group takes a majority stake in Mumzworld.",
			Source:      "Wamda",
			URL:         "https://www.wamda.com",
			Date:        daysAgo(4),
			Region:      models.RegionMENA,
			Category:    "startup",
		},
		{
			ID:          "s3",
			Title:       "Egyptian fashion e-commerce platform \"La Reina\" raises pre-Series A",
			Description: "The circular-fashion marketplace closes a new round to expand into Gulf markets.",
			Source:      "Enterprise",
			URL:         "https://enterprise.press",
			Date:        daysAgo(6),
			Region:      models.RegionEgypt,
			Category:    "startup",
		},
	}

	events := []models.ContentItem{
		{
			ID:          "e1",
			Title:       "RiseUp Summit 2024",
			TitleAr:     "قمة رايز أب 2024",
			Description: "The region's largest entrepreneurship summit returns to the Grand Egyptian Museum.",
			Source:      "RiseUp",
			URL:         "https://riseupsummit.com",
			Date:        daysAgo(-20),
			Region:      models.RegionEgypt,
			Location:    "Cairo, Egypt",
			LocationAr:  "القاهرة، مصر",
			Category:    "events",
		},
		{
			ID:          "e2",
			Title:       "Web Summit Lisbon",
			Description: "Where the tech world meets. 70,000+ attendees from 160 countries.",
			Source:      "Web Summit",
			URL:         "https://websummit.com",
			Date:        daysAgo(-45),
			Region:      models.RegionGlobal,
			Location:    "Lisbon, Portugal",
			Category:    "events",
		},
		{
			ID:          "e3",
			Title:       "AI Hackathon MENA",
			Description: "48 hours of building with LLMs, agents and regional datasets.",
			Source:      "Google Developer Groups",
			URL:         "https://gdg.community.dev",
			Date:        daysAgo(-10),
			Region:      models.RegionMENA,
			Location:    "Dubai, UAE",
			Category:    "events",
		},
	}

	podcasts := []models.ContentItem{
		{
			ID:            "p1",
			Title:         "7aki Business - حكي بيزنس",
			Description:   "Conversations with founders and operators shaping Egypt's startup scene.",
			Source:        "7aki Business",
			URL:           "https://www.youtube.com/watch?v=example1",
			Date:          daysAgo(7),
			Region:        models.RegionEgypt,
			Duration:      "55 min",
			Category:      "podcasts",
			YoutubeURL:    "https://www.youtube.com/watch?v=example1",
			SummaryPoints: []string{"Interview with Careem Co-founder", "Fintech regulations in Egypt"},
		},
		{
			ID:          "p2",
			Title:       "This Week in Startups",
			Description: "Jason Calacanis covers the week's startup and tech news.",
			Source:      "TWiS",
			URL:         "https://www.youtube.com/c/thisweekin",
			Date:        daysAgo(2),
			Region:      models.RegionGlobal,
			Duration:    "70 min",
			Category:    "podcasts",
			YoutubeURL:  "https://www.youtube.com/c/thisweekin",
		},
		{
			ID:          "p3",
			Title:       "The Diary Of A CEO",
			Description: "Long-form conversations on business, health and performance.",
			Source:      "Steven Bartlett",
			URL:         "https://www.youtube.com/@TheDiaryOfACEO",
			Date:        daysAgo(6),
			Region:      models.RegionGlobal,
			Duration:    "80 min",
			Category:    "podcasts",
			YoutubeURL:  "https://www.youtube.com/@TheDiaryOfACEO",
		},
	}

	newsletters := []models.ContentItem{
		{
			ID:          "nl1",
			Title:       "Enterprise: Egypt's startup scene defies global downturn",
			Description: "The essential daily briefing on Egyptian business, economy and tech.",
			Source:      "Enterprise",
			URL:         "https://enterprise.press",
			Date:        daysAgo(1),
			Region:      models.RegionEgypt,
			Frequency:   "Daily",
		},
		{
			ID:          "nl2",
			Title:       "CB Insights: State of Deep Tech 2025",
			Description: "Data-driven insights on emerging technology markets and venture activity.",
			Source:      "CB Insights",
			URL:         "https://www.cbinsights.com",
			Date:        daysAgo(3),
			Region:      models.RegionGlobal,
			Frequency:   "Weekly",
		},
	}

	partners := []models.ContentItem{
		{
			ID:          "pt1",
			Title:       "ITIDA",
			Description: "Information Technology Industry Development Agency",
			Source:      "ITIDA",
			URL:         "https://itida.gov.eg",
			Date:        daysAgo(30),
			Region:      models.RegionEgypt,
			PartnerType: "Egypt",
		},
		{
			ID:          "pt2",
			Title:       "Flat6Labs",
			Description: "MENA's leading seed and early stage venture capital firm.",
			Source:      "Flat6Labs",
			URL:         "https://flat6labs.com",
			Date:        daysAgo(30),
			Region:      models.RegionEgypt,
			PartnerType: "Egypt",
		},
		{
			ID:          "pt3",
			Title:       "Plug and Play",
			Description: "The ultimate innovation platform, connecting startups to corporations.",
			Source:      "Plug and Play",
			URL:         "https://plugandplaytechcenter.com",
			Date:        daysAgo(30),
			Region:      models.RegionGlobal,
			PartnerType: "Global",
		},
	}

	resources := []models.ContentItem{
		{
			ID:           "r1",
			Title:        "PitchBook Report: Q3 2025 VC Valuations Stabilize",
			Description:  "Quarterly deep dive into venture valuations across stages.",
			Source:       "PitchBook",
			URL:          "https://pitchbook.com",
			Date:         daysAgo(5),
			Region:       models.RegionGlobal,
			ResourceType: "Report",
		},
		{
			ID:           "r2",
			Title:        "Startup Funding November 2025: Key Highlights, Trends & Insights",
			Description:  "Monthly roundup of regional funding rounds and who led them.",
			Source:       "MAGNiTT",
			URL:          "https://magnitt.com",
			Date:         daysAgo(8),
			Region:       models.RegionMENA,
			ResourceType: "Report",
		},
	}

	s.mu.Lock()
	s.items[models.CollectionNews] = news
	s.items[models.CollectionStartups] = startups
	s.items[models.CollectionEvents] = events
	s.items[models.CollectionPodcasts] = podcasts
	s.items[models.CollectionNewsletters] = newsletters
	s.items[models.CollectionPartners] = partners
	s.items[models.CollectionResources] = resources
	s.mu.Unlock()
}
