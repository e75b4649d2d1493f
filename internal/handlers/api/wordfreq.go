// Package api contains the JSON handlers of the query surface.
package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"wikifreq/internal/aggregate"
	"wikifreq/internal/config"
	"wikifreq/internal/metrics"
	"wikifreq/internal/models"
	"wikifreq/internal/textstats"
	"wikifreq/internal/validation"
)

// FrequencyProvider is the pipeline entry point the handler depends on.
type FrequencyProvider interface {
	Frequencies(ctx context.Context, category string, opts aggregate.Options) (map[string]int, error)
}

// WordFreqHandler serves ranked word-frequency views for a category.
type WordFreqHandler struct {
	agg FrequencyProvider
	cfg *config.Config
}

// NewWordFreqHandler creates the handler.
func NewWordFreqHandler(agg FrequencyProvider, cfg *config.Config) *WordFreqHandler {
	return &WordFreqHandler{agg: agg, cfg: cfg}
}

// Get handles GET /api/wordfreq. Parameters: category (required), refresh,
// sleep (seconds between fetch batches), top, metric (count|freq), min_count.
func (h *WordFreqHandler) Get(c fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	if !validation.ValidateCategory(category) {
		return h.fail(c, fiber.StatusBadRequest, "category is required")
	}

	refresh, err := parseBool(c.Query("refresh", "false"))
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "refresh must be a boolean")
	}

	// An explicit sleep param wins over the configured politeness delay.
	delay := h.cfg.PolitenessDelay
	if sleepParam := c.Query("sleep"); sleepParam != "" {
		sleepSeconds, err := strconv.ParseFloat(sleepParam, 64)
		if err != nil || sleepSeconds < 0 {
			return h.fail(c, fiber.StatusBadRequest, "sleep must be a non-negative number of seconds")
		}
		delay = time.Duration(sleepSeconds * float64(time.Second))
	}

	topN, err := strconv.Atoi(c.Query("top", strconv.Itoa(h.cfg.DefaultTopN)))
	if err != nil || topN < 0 {
		return h.fail(c, fiber.StatusBadRequest, "top must be a non-negative integer")
	}

	minCount, err := strconv.Atoi(c.Query("min_count", "1"))
	if err != nil || minCount < 1 {
		return h.fail(c, fiber.StatusBadRequest, "min_count must be a positive integer")
	}

	metric, ok := textstats.ParseMetric(c.Query("metric"))
	if !ok {
		return h.fail(c, fiber.StatusBadRequest, "metric must be count or freq")
	}

	counts, err := h.agg.Frequencies(c.Context(), category, aggregate.Options{
		Refresh: refresh,
		Delay:   delay,
	})
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "failed to compute word frequencies")
	}
	if len(counts) == 0 {
		return h.fail(c, fiber.StatusNotFound, "no pages or no words found for category")
	}

	rows := textstats.BuildView(counts, textstats.ViewParams{
		MinCount: minCount,
		TopN:     topN,
		Metric:   metric,
	})

	items := make([]models.WordItem, len(rows))
	for i, row := range rows {
		items[i] = models.WordItem{Text: row.Word, Value: row.Value}
	}

	metrics.RecordAPIRequest("wordfreq", strconv.Itoa(fiber.StatusOK))
	return jsonSuccess(c, models.WordFreqResponse{
		Category:   category,
		Metric:     string(metric),
		TotalWords: textstats.TotalWords(counts),
		Items:      items,
	})
}

func (h *WordFreqHandler) fail(c fiber.Ctx, status int, message string) error {
	metrics.RecordAPIRequest("wordfreq", strconv.Itoa(status))
	return jsonError(c, status, message)
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

// Every handler in this package answers in the same envelope: {"status":
// "ok", "data": ...} on success, {"status": "error", "error": ...} otherwise.

func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"status": "ok", "data": data})
}

func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "error": message})
}
