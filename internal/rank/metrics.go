// Package rank turns raw provider search results into a scored, filtered
// and ordered list.
package rank

import (
	"math"
	"time"

	"ytscout/internal/models"
)

// minAgeHours floors video age at one minute so views-per-hour stays
// finite for just-published videos.
const minAgeHours = 1.0 / 60

// AgeHours returns the video age in hours, floored at one minute.
func AgeHours(publishedAt, now time.Time) float64 {
	hours := now.Sub(publishedAt).Hours()
	return math.Max(minAgeHours, hours)
}

// ViewsPerHour is viewCount/ageHours rounded half-up to 2 decimals.
func ViewsPerHour(viewCount int64, ageHours float64) float64 {
	return round2(float64(viewCount) / ageHours)
}

// ViewToSubRatio is viewCount/subscriberCount, or nil when the subscriber
// count is unknown or zero. Nil means the ratio is undefined, not that the
// channel converts infinitely well.
func ViewToSubRatio(viewCount int64, subscribers *int64) *float64 {
	if subscribers == nil || *subscribers <= 0 {
		return nil
	}
	ratio := float64(viewCount) / float64(*subscribers)
	return &ratio
}

// Hot score weights. Fixed constants; results are only comparable across
// runs if these never change.
const (
	hotViewsWeight    = 1.0
	hotVelocityWeight = 2.0
	hotRatioWeight    = 0.6
	hotRecencyWeight  = 0.4
	hotRatioClampMax  = 10.0
)

// HotScore blends absolute popularity, velocity, audience efficiency and
// recency into a single display score. It is recomputed on demand and
// never stored on the item.
func HotScore(v *models.Video, now time.Time) float64 {
	ageHours := AgeHours(v.PublishedAt, now)

	vph := v.ViewsPerHour
	if vph == 0 {
		vph = float64(v.ViewCount) / ageHours
	}

	var ratio float64
	switch {
	case v.ViewToSubRatio != nil:
		ratio = *v.ViewToSubRatio
	case v.ChannelSubscriberCount != nil && *v.ChannelSubscriberCount > 0:
		ratio = float64(v.ViewCount) / float64(*v.ChannelSubscriberCount)
	}
	ratio = math.Max(0, math.Min(hotRatioClampMax, ratio))

	recency := 1 / (1 + ageHours/24)

	return hotViewsWeight*math.Log10(float64(v.ViewCount)+1) +
		hotVelocityWeight*math.Log10(vph+1) +
		hotRatioWeight*(ratio/hotRatioClampMax) +
		hotRecencyWeight*recency
}

// Annotate sets every derived field on every item in place. After it
// returns, no item is ever partially annotated.
func Annotate(items []*models.Video, subscribers map[string]int64, now time.Time) {
	for _, v := range items {
		if count, ok := subscribers[v.ChannelID]; ok {
			c := count
			v.ChannelSubscriberCount = &c
		} else {
			v.ChannelSubscriberCount = nil
		}

		v.ViewsPerHour = ViewsPerHour(v.ViewCount, AgeHours(v.PublishedAt, now))
		v.ViewToSubRatio = ViewToSubRatio(v.ViewCount, v.ChannelSubscriberCount)
	}
}

// round2 rounds half-up on the scaled integer, matching the reference
// tool's Math.round(x*100)/100 for the non-negative values seen here.
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
