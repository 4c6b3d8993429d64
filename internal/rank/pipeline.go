package rank

import (
	"context"
	"log"
	"sort"
	"time"

	"ytscout/internal/config"
	"ytscout/internal/models"
)

const (
	// maxKeywords bounds the fan-out: each keyword is one provider search.
	maxKeywords = 20
	// finalCap truncates the ranked result.
	finalCap = 200

	defaultDays            = 7
	defaultPerChannelLimit = 10
	defaultDuration        = "any"
	defaultOrder           = "relevance"

	fallbackRegion = "KR"
	fallbackLang   = "ko"
)

// Provider supplies raw search hits and channel subscriber counts. Calls
// run sequentially; any failure aborts the whole run.
type Provider interface {
	SearchVideos(ctx context.Context, opts models.SearchOptions) ([]*models.Video, error)
	ChannelSubscriberCounts(ctx context.Context, ids []string) (map[string]int64, error)
}

// Pipeline is stateless across runs; the only shared inputs are the
// provider and the configured locale defaults, both read-only.
type Pipeline struct {
	provider Provider
	defaults config.DefaultsConfig
	now      func() time.Time
}

func New(provider Provider, defaults config.DefaultsConfig) *Pipeline {
	return &Pipeline{
		provider: provider,
		defaults: defaults,
		now:      time.Now,
	}
}

// Run executes the fixed stage order: fan-out fetch, view floor,
// subscriber lookup, metric annotation, secondary filters, sort,
// per-channel cap, final cap. Partial results are never returned.
func (p *Pipeline) Run(ctx context.Context, req *models.SearchRequest) ([]*models.Video, error) {
	now := p.now()

	days := req.Days
	if days <= 0 {
		days = defaultDays
	}
	perChannel := req.PerChannelLimit
	if perChannel <= 0 {
		perChannel = defaultPerChannelLimit
	}

	opts := models.SearchOptions{
		PublishedAfter: now.AddDate(0, 0, -days),
		RegionCode:     resolve(req.Region, p.defaults.Region, fallbackRegion),
		Language:       resolve(req.Lang, p.defaults.Lang, fallbackLang),
		Duration:       resolve(req.Duration, "", defaultDuration),
		Order:          resolve(req.Order, "", defaultOrder),
	}

	pool, err := p.fetchPool(ctx, req, opts)
	if err != nil {
		return nil, err
	}

	if req.MinViews != nil {
		floor := *req.MinViews
		pool = filter(pool, func(v *models.Video) bool { return v.ViewCount >= floor })
	}

	subscribers := map[string]int64{}
	if len(pool) > 0 {
		channelIDs := make([]string, 0, len(pool))
		for _, v := range pool {
			channelIDs = append(channelIDs, v.ChannelID)
		}
		subscribers, err = p.provider.ChannelSubscriberCounts(ctx, channelIDs)
		if err != nil {
			return nil, err
		}
	}

	Annotate(pool, subscribers, now)

	if req.MaxSubscribers != nil {
		limit := *req.MaxSubscribers
		// Unknown subscriber counts pass an upper-bound filter.
		pool = filter(pool, func(v *models.Video) bool { return subsOrZero(v) <= limit })
	}
	if req.MinViewsPerHour != nil {
		floor := *req.MinViewsPerHour
		pool = filter(pool, func(v *models.Video) bool { return v.ViewsPerHour >= floor })
	}
	if req.MinViewToSubRatio != nil {
		floor := *req.MinViewToSubRatio
		// An undefined ratio counts as 0, so it fails any positive floor.
		pool = filter(pool, func(v *models.Video) bool { return ratioOrZero(v) >= floor })
	}

	sortPool(pool, req)

	pool = capPerChannel(pool, perChannel)

	if len(pool) > finalCap {
		pool = pool[:finalCap]
	}
	return pool, nil
}

// fetchPool issues one provider search per keyword and concatenates the
// results. Duplicates across keywords are kept. Channel mode contributes
// nothing: the provider-side channel search was never implemented upstream
// and the pass-through is preserved rather than guessed at.
func (p *Pipeline) fetchPool(ctx context.Context, req *models.SearchRequest, opts models.SearchOptions) ([]*models.Video, error) {
	var pool []*models.Video

	if req.Mode == models.ModeKeyword || req.Mode == models.ModeMixed {
		kws := req.Keywords
		if len(kws) > maxKeywords {
			kws = kws[:maxKeywords]
		}
		for _, keyword := range kws {
			kwOpts := opts
			kwOpts.Query = keyword
			items, err := p.provider.SearchVideos(ctx, kwOpts)
			if err != nil {
				return nil, err
			}
			pool = append(pool, items...)
		}
		log.Printf("Fetched %d raw items for %d keywords", len(pool), len(kws))
	}

	return pool, nil
}

// sortPool applies exactly one stable descending sort. The key is chosen
// by threshold presence alone (a zero threshold still selects its key):
// views-per-hour first, then view-to-sub ratio, else view count.
func sortPool(pool []*models.Video, req *models.SearchRequest) {
	switch {
	case req.MinViewsPerHour != nil:
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].ViewsPerHour > pool[j].ViewsPerHour })
	case req.MinViewToSubRatio != nil:
		sort.SliceStable(pool, func(i, j int) bool { return ratioOrZero(pool[i]) > ratioOrZero(pool[j]) })
	default:
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].ViewCount > pool[j].ViewCount })
	}
}

// capPerChannel walks the sorted pool in order and keeps at most limit
// items per channel, preserving relative order.
func capPerChannel(pool []*models.Video, limit int) []*models.Video {
	kept := make([]*models.Video, 0, len(pool))
	perChannel := make(map[string]int)
	for _, v := range pool {
		if perChannel[v.ChannelID] >= limit {
			continue
		}
		perChannel[v.ChannelID]++
		kept = append(kept, v)
	}
	return kept
}

func filter(pool []*models.Video, keep func(*models.Video) bool) []*models.Video {
	out := pool[:0]
	for _, v := range pool {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func subsOrZero(v *models.Video) int64 {
	if v.ChannelSubscriberCount == nil {
		return 0
	}
	return *v.ChannelSubscriberCount
}

func ratioOrZero(v *models.Video) float64 {
	if v.ViewToSubRatio == nil {
		return 0
	}
	return *v.ViewToSubRatio
}

// resolve applies override precedence: explicit request value, configured
// default, hardcoded fallback.
func resolve(value, configured, fallback string) string {
	if value != "" {
		return value
	}
	if configured != "" {
		return configured
	}
	return fallback
}
