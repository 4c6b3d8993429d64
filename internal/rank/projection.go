package rank

import (
	"sort"
	"strings"
	"time"

	"ytscout/internal/models"
)

// SortKey names a result-table column.
type SortKey string

const (
	SortHotScore       SortKey = "hotScore"
	SortTitle          SortKey = "title"
	SortChannelTitle   SortKey = "channelTitle"
	SortViewCount      SortKey = "viewCount"
	SortSubscribers    SortKey = "channelSubscriberCount"
	SortViewsPerHour   SortKey = "viewsPerHour"
	SortViewToSubRatio SortKey = "viewToSubRatio"
	SortPublishedAt    SortKey = "publishedAt"
	SortDurationSec    SortKey = "durationSec"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Project returns a new ordering of items for display without touching the
// input slice. An empty key or direction yields the original order. Hot
// score is recomputed here from the annotated fields; it is never stored.
// Ties keep the input order.
func Project(items []*models.Video, key SortKey, dir SortDir, now time.Time) []*models.Video {
	out := make([]*models.Video, len(items))
	copy(out, items)

	if key == "" || dir == "" {
		return out
	}

	mul := 1.0
	if dir == SortDesc {
		mul = -1
	}

	sort.SliceStable(out, func(i, j int) bool {
		return compareBy(out[i], out[j], key, now)*mul < 0
	})

	return out
}

func compareBy(a, b *models.Video, key SortKey, now time.Time) float64 {
	switch key {
	case SortTitle:
		return float64(strings.Compare(a.Title, b.Title))
	case SortChannelTitle:
		return float64(strings.Compare(a.ChannelTitle, b.ChannelTitle))
	case SortHotScore:
		return HotScore(a, now) - HotScore(b, now)
	case SortViewCount:
		return float64(a.ViewCount - b.ViewCount)
	case SortSubscribers:
		return float64(subsOrZero(a) - subsOrZero(b))
	case SortViewsPerHour:
		return a.ViewsPerHour - b.ViewsPerHour
	case SortViewToSubRatio:
		return ratioOrZero(a) - ratioOrZero(b)
	case SortPublishedAt:
		return float64(a.PublishedAt.Unix() - b.PublishedAt.Unix())
	case SortDurationSec:
		return float64(a.DurationSec - b.DurationSec)
	default:
		return 0
	}
}
