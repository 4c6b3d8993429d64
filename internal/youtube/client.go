// Package youtube wraps the YouTube Data API v3 behind the small provider
// surface the ranking pipeline needs: keyword search, batched video
// details, batched channel subscriber counts and a single-video lookup.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ytscout/internal/apperr"
	"ytscout/internal/config"
	"ytscout/internal/models"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// batchSize is the maximum number of ids the videos.list and channels.list
// endpoints accept per call.
const batchSize = 50

// searchPageSize is the single page of raw hits fetched per query; there is
// no pagination beyond it.
const searchPageSize = 50

type Client struct {
	service *youtube.Service
}

func NewClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// SearchVideos runs one search.list call and resolves the hits into full
// video details. At most one page (50 raw hits) is fetched.
func (c *Client) SearchVideos(ctx context.Context, opts models.SearchOptions) ([]*models.Video, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 || maxResults > searchPageSize {
		maxResults = searchPageSize
	}

	call := c.service.Search.List([]string{"snippet"}).
		Context(ctx).
		Type("video").
		MaxResults(maxResults)

	if opts.Query != "" {
		call = call.Q(opts.Query)
	}
	if opts.ChannelID != "" {
		call = call.ChannelId(opts.ChannelID)
	}
	if !opts.PublishedAfter.IsZero() {
		call = call.PublishedAfter(opts.PublishedAfter.UTC().Format(time.RFC3339))
	}
	if opts.RegionCode != "" {
		call = call.RegionCode(opts.RegionCode)
	}
	if opts.Language != "" {
		call = call.RelevanceLanguage(opts.Language)
	}
	if opts.Duration != "" {
		call = call.VideoDuration(opts.Duration)
	}
	if opts.Order != "" {
		call = call.Order(opts.Order)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, classify("search", err)
	}

	var ids []string
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return c.VideoDetails(ctx, ids)
}

// VideoDetails resolves video ids into full items, querying in batches of
// at most 50 ids.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]*models.Video, error) {
	var videos []*models.Video

	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Context(ctx).
			Id(strings.Join(ids[i:end], ",")).
			Do()
		if err != nil {
			return nil, classify("videos.list", err)
		}

		for _, item := range resp.Items {
			videos = append(videos, videoFromItem(item))
		}
	}

	return videos, nil
}

// VideoByID returns a single video, or nil when the provider has no entity
// for the id.
func (c *Client) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Context(ctx).
		Id(id).
		Do()
	if err != nil {
		return nil, classify("videos.list", err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	return videoFromItem(resp.Items[0]), nil
}

// ChannelSubscriberCounts maps channel ids to subscriber counts, querying
// in batches of at most 50 ids. Unknown channels and channels with hidden
// subscriber counts are simply absent from the result.
func (c *Client) ChannelSubscriberCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	unique := dedupe(ids)
	counts := make(map[string]int64, len(unique))

	for i := 0; i < len(unique); i += batchSize {
		end := i + batchSize
		if end > len(unique) {
			end = len(unique)
		}

		resp, err := c.service.Channels.List([]string{"statistics"}).
			Context(ctx).
			Id(strings.Join(unique[i:end], ",")).
			Do()
		if err != nil {
			return nil, classify("channels.list", err)
		}

		for _, channel := range resp.Items {
			if channel.Statistics == nil || channel.Statistics.HiddenSubscriberCount {
				continue
			}
			counts[channel.Id] = int64(channel.Statistics.SubscriberCount)
		}
	}

	if len(counts) < len(unique) {
		log.Printf("Subscriber counts resolved for %d/%d channels", len(counts), len(unique))
	}

	return counts, nil
}

func videoFromItem(item *youtube.Video) *models.Video {
	video := &models.Video{
		VideoID: item.Id,
	}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.ChannelID = item.Snippet.ChannelId
		video.ChannelTitle = item.Snippet.ChannelTitle
		video.Tags = item.Snippet.Tags

		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		}
		if thumbs := item.Snippet.Thumbnails; thumbs != nil {
			if thumbs.Default != nil {
				video.Thumbnails.Default = thumbs.Default.Url
			}
			if thumbs.High != nil {
				video.Thumbnails.High = thumbs.High.Url
			}
		}
	}

	if item.ContentDetails != nil {
		video.DurationSec = parseDurationSeconds(item.ContentDetails.Duration)
	}

	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		// The API omits likeCount when ratings are hidden; the zero value
		// is indistinguishable from that, so only a positive count is kept.
		if item.Statistics.LikeCount > 0 {
			likes := int64(item.Statistics.LikeCount)
			video.LikeCount = &likes
		}
	}

	return video
}

var durationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseDurationSeconds converts an ISO 8601 period of the form PT#H#M#S
// (any component optional, e.g. "PT1M30S", "PT45S") to total seconds.
func parseDurationSeconds(duration string) int {
	if duration == "" {
		return 0
	}

	matches := durationRe.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	var totalSeconds int

	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			totalSeconds += hours * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			totalSeconds += minutes * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.Atoi(matches[3]); err == nil {
			totalSeconds += seconds
		}
	}

	return totalSeconds
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var unique []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// classify maps a google-api-go-client error onto the failure taxonomy:
// non-success upstream statuses keep their status and body text, decode
// failures become malformed-response errors.
func classify(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		body := strings.TrimSpace(gerr.Body)
		if body == "" {
			body = gerr.Message
		}
		return apperr.Wrap(apperr.KindUpstream, err, "%s failed: %d :: %s", op, gerr.Code, body)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return apperr.Wrap(apperr.KindMalformed, err, "%s returned unparseable payload", op)
	}

	return fmt.Errorf("%s failed: %w", op, err)
}
