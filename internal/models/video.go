package models

import "time"

// Video is one video pulled from the provider. The derived fields at the
// bottom stay nil/zero until the ranking pipeline annotates the item;
// annotation sets all of them together for every surviving item.
type Video struct {
	VideoID      string     `json:"videoId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelID    string     `json:"channelId"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  time.Time  `json:"publishedAt"`
	DurationSec  int        `json:"durationSec"`
	ViewCount    int64      `json:"viewCount"`
	LikeCount    *int64     `json:"likeCount,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Thumbnails   Thumbnails `json:"thumbnails"`

	// Derived by the pipeline, not the provider.
	ChannelSubscriberCount *int64   `json:"channelSubscriberCount"`
	ViewsPerHour           float64  `json:"viewsPerHour"`
	ViewToSubRatio         *float64 `json:"viewToSubRatio"`
}

type Thumbnails struct {
	Default string `json:"default,omitempty"`
	High    string `json:"high,omitempty"`
}

// Search modes. ModeChannel is accepted but contributes zero items; the
// provider-side channel search was never implemented upstream and the
// pass-through is kept on purpose.
const (
	ModeKeyword = "keyword"
	ModeChannel = "channel"
	ModeMixed   = "mixed"
)

// SearchRequest is one user query. Optional numeric thresholds are
// pointers: absence means "no filter", not zero.
type SearchRequest struct {
	Mode     string   `json:"mode"`
	Channels []string `json:"channels,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Days     int      `json:"days,omitempty"`
	Region   string   `json:"region,omitempty"`
	Lang     string   `json:"lang,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Order    string   `json:"order,omitempty"`

	PerChannelLimit   int      `json:"perChannelLimit,omitempty"`
	MinViews          *int64   `json:"minViews,omitempty"`
	MaxSubscribers    *int64   `json:"maxSubscribers,omitempty"`
	MinViewsPerHour   *float64 `json:"minViewsPerHour,omitempty"`
	MinViewToSubRatio *float64 `json:"minViewToSubRatio,omitempty"`
}

// SearchOptions is one provider search call, already resolved against the
// configured defaults.
type SearchOptions struct {
	Query          string
	ChannelID      string
	PublishedAfter time.Time
	RegionCode     string
	Language       string
	Duration       string
	Order          string
	MaxResults     int64
}

type SearchResponse struct {
	Items []*Video `json:"items"`
}

type VideoKeywordsResponse struct {
	VideoID       string   `json:"videoId"`
	Title         string   `json:"title"`
	Core          []string `json:"core"`
	SuggestedTags []string `json:"suggestedTags"`
}

type InspireRequest struct {
	Seed   string `json:"seed"`
	Region string `json:"region,omitempty"`
	Lang   string `json:"lang,omitempty"`
	Days   int    `json:"days,omitempty"`
}

type InspireResponse struct {
	Core          []string `json:"core"`
	Longtail      []string `json:"longtail"`
	SuggestedTags []string `json:"suggestedTags"`
}
