package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"newsprism/app/feed"
	"newsprism/app/sources"
)

func NewHandler(collector CollectorInterface, checker HealthCheckerInterface,
	snapshot *feed.Snapshot, config *sources.Config,
	defaultHours int, snapshotAge time.Duration, version string) *Handler {
	return &Handler{
		collector:    collector,
		checker:      checker,
		snapshot:     snapshot,
		config:       config,
		defaultHours: defaultHours,
		snapshotAge:  snapshotAge,
		version:      version,
	}
}

// GetArticles serves the collected, deduplicated, keyword-filtered digest.
// Requests with default parameters are answered from the background
// snapshot when it is fresh enough; everything else collects live.
func (h *Handler) GetArticles(c *gin.Context) {
	hours, err := strconv.Atoi(c.DefaultQuery("hours", strconv.Itoa(h.defaultHours)))
	if err != nil || hours < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a non-negative integer"})
		return
	}

	exclude := parseExcludeParam(c.Query("exclude"))

	result := h.cachedResult(hours, exclude)
	if result == nil {
		result, err = h.collector.Collect(c.Request.Context(), hours, exclude)
		if err != nil {
			slog.Error("Collection failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "collection failed"})
			return
		}
	}

	excluded := exclude
	if len(excluded) == 0 {
		excluded = h.config.ExcludeKeywords
	}
	if len(excluded) == 0 {
		excluded = feed.DefaultExcludedKeywords
	}

	c.JSON(http.StatusOK, articlesResponse{
		Articles:         sortedByDate(result.Articles),
		Count:            len(result.Articles),
		ExcludedKeywords: excluded,
		Provenance:       result.Provenance,
	})
}

func (h *Handler) cachedResult(hours int, exclude []string) *feed.Result {
	if hours != h.defaultHours || len(exclude) > 0 {
		return nil
	}
	if !h.snapshot.Fresh(h.snapshotAge) {
		return nil
	}
	return h.snapshot.Result()
}

// GetHealth is the lightweight liveness endpoint.
func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"sources":   len(h.config.Sources),
	}

	if result := h.snapshot.Result(); result != nil {
		health["last_refresh"] = result.FetchedAt.Format(time.RFC3339)
		health["articles"] = len(result.Articles)
	}

	c.JSON(http.StatusOK, health)
}

// APIFeedHealth probes every configured source and reports per-source
// reachability.
func (h *Handler) APIFeedHealth(c *gin.Context) {
	report := h.checker.CheckAll(c.Request.Context())
	h.snapshot.SetHealth(report)
	c.JSON(http.StatusOK, report)
}

// APIListSources lists the configured sources.
func (h *Handler) APIListSources(c *gin.Context) {
	list := make([]sourceInfo, 0, len(h.config.Sources))
	for _, src := range h.config.Sources {
		list = append(list, sourceInfo{
			Name:     src.Name,
			Endpoint: src.URL,
			Kind:     string(src.Kind),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": list,
		"total":   len(list),
	})
}

// APITestSource performs one probe of a single named source.
func (h *Handler) APITestSource(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing source name parameter"})
		return
	}

	result, err := h.checker.TestSource(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, feed.ErrUnknownSource) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
			return
		}
		slog.Error("Source test failed", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Source test failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseExcludeParam(raw string) []string {
	if raw == "" {
		return nil
	}
	keywords := make([]string, 0, 4)
	for _, keyword := range strings.Split(raw, ",") {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

// sortedByDate returns a copy ordered newest first for display.
func sortedByDate(articles []feed.Article) []feed.Article {
	sorted := make([]feed.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})
	return sorted
}
