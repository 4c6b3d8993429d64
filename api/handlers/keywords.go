package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ytscout/internal/keywords"
	"ytscout/internal/models"
)

// inspireSampleCap is how many of the search results feed the extractor.
const inspireSampleCap = 50

// inspireCoreCap trims the merged keyword list for the inspire response.
const inspireCoreCap = 30

// HandleVideoKeywords serves GET /api/keywords/from-video?videoId=...
func (h *Handler) HandleVideoKeywords(c *gin.Context) {
	videoID := c.Query("videoId")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "videoId required"})
		return
	}

	video, err := h.provider.VideoByID(c.Request.Context(), videoID)
	if err != nil {
		log.Printf("Video lookup failed for %s: %v", videoID, err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if video == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	result := keywords.Extract(keywords.Input{
		Title:       video.Title,
		Description: video.Description,
		Tags:        video.Tags,
	}, keywords.DefaultTopN)

	c.JSON(http.StatusOK, models.VideoKeywordsResponse{
		VideoID:       video.VideoID,
		Title:         video.Title,
		Core:          result.Core,
		SuggestedTags: result.SuggestedTags,
	})
}

// HandleInspire serves POST /api/inspire: searches the seed by view count,
// extracts keywords from the top results and expands them into long-tail
// variants.
func (h *Handler) HandleInspire(c *gin.Context) {
	var req models.InspireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	region := req.Region
	if region == "" {
		region = h.defaults.Region
	}
	lang := req.Lang
	if lang == "" {
		lang = h.defaults.Lang
	}
	days := req.Days
	if days <= 0 {
		days = 7
	}

	items, err := h.provider.SearchVideos(c.Request.Context(), models.SearchOptions{
		Query:          req.Seed,
		PublishedAfter: time.Now().AddDate(0, 0, -days),
		RegionCode:     region,
		Language:       lang,
		Order:          "viewCount",
	})
	if err != nil {
		log.Printf("Inspire search failed: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if len(items) > inspireSampleCap {
		items = items[:inspireSampleCap]
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.Title+"\n"+it.Description)
	}

	result := keywords.Extract(keywords.Input{Description: strings.Join(lines, "\n")}, keywords.DefaultTopN)

	core := result.Core
	if len(core) > inspireCoreCap {
		core = core[:inspireCoreCap]
	}

	c.JSON(http.StatusOK, models.InspireResponse{
		Core:          core,
		Longtail:      keywords.Longtail(result.Core),
		SuggestedTags: result.SuggestedTags,
	})
}
