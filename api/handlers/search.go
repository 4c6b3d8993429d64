// Package handlers wires the ranking pipeline, keyword extractor and CSV
// export to the HTTP surface. Everything here is thin glue: bind, validate,
// call in, map the error kind to a status code.
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ytscout/internal/apperr"
	"ytscout/internal/config"
	"ytscout/internal/export"
	"ytscout/internal/models"
)

// Ranker runs one search request through the full pipeline.
type Ranker interface {
	Run(ctx context.Context, req *models.SearchRequest) ([]*models.Video, error)
}

// VideoProvider is the slice of the provider the keyword endpoints need.
type VideoProvider interface {
	SearchVideos(ctx context.Context, opts models.SearchOptions) ([]*models.Video, error)
	VideoByID(ctx context.Context, id string) (*models.Video, error)
}

type Handler struct {
	pipeline Ranker
	provider VideoProvider
	defaults config.DefaultsConfig
}

func New(pipeline Ranker, provider VideoProvider, defaults config.DefaultsConfig) *Handler {
	return &Handler{
		pipeline: pipeline,
		provider: provider,
		defaults: defaults,
	}
}

// HandleSearch serves POST /api/search.
func (h *Handler) HandleSearch(c *gin.Context) {
	req, ok := h.bindSearchRequest(c)
	if !ok {
		return
	}

	startTime := time.Now()

	items, err := h.pipeline.Run(c.Request.Context(), req)
	if err != nil {
		log.Printf("Search failed: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []*models.Video{}
	}

	log.Printf("Search completed in %.2fs, %d items", time.Since(startTime).Seconds(), len(items))
	c.JSON(http.StatusOK, models.SearchResponse{Items: items})
}

// HandleExport serves POST /api/export: the same pipeline run, rendered as
// a CSV download instead of JSON.
func (h *Handler) HandleExport(c *gin.Context) {
	req, ok := h.bindSearchRequest(c)
	if !ok {
		return
	}

	items, err := h.pipeline.Run(c.Request.Context(), req)
	if err != nil {
		log.Printf("Export failed: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.BuildCSV(items))
}

func (h *Handler) bindSearchRequest(c *gin.Context) (*models.SearchRequest, bool) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return nil, false
	}

	switch req.Mode {
	case models.ModeKeyword, models.ModeChannel, models.ModeMixed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be one of keyword, channel, mixed"})
		return nil, false
	}

	return &req, true
}

// statusFor maps the failure taxonomy to HTTP statuses: bad request 400,
// not found 404, upstream and malformed-payload failures 502, anything
// unclassified 500.
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUpstream, apperr.KindMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
