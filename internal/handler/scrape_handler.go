package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
	"github.com/john9012002/DoAnChuyenNganh/internal/scraper"
	"github.com/john9012002/DoAnChuyenNganh/internal/store"
	"github.com/john9012002/DoAnChuyenNganh/pkg/logger"
	"github.com/john9012002/DoAnChuyenNganh/prometheus"
)

// ScrapeHandler triggers the external scraper and bulk-inserts its output.
type ScrapeHandler struct {
	Runner   scraper.Runner
	Listings store.ListingStore
}

func NewScrapeHandler(runner scraper.Runner, listings store.ListingStore) *ScrapeHandler {
	return &ScrapeHandler{Runner: runner, Listings: listings}
}

// Scrape runs the scraper synchronously; the request blocks for the whole
// subprocess. Every row of the output is inserted as a new record, so
// repeated calls with unchanged scraper output accumulate duplicates.
// Overlapping scrape requests are not mutually excluded.
func (h *ScrapeHandler) Scrape(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Starting scrape run")

	start := time.Now()
	batch, err := h.Runner.Run(c.Request().Context())
	if err != nil {
		log.Error("Scraper run failed", zap.Error(err))
		prometheus.RecordScrape("failure", time.Since(start))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to scrape data", err)
	}
	prometheus.RecordScrape("success", time.Since(start))

	listings := make([]model.Listing, 0, len(batch))
	for _, attrs := range batch {
		listings = append(listings, model.Listing{Attributes: attrs})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.Listings.InsertMany(c.Request().Context(), listings); err != nil {
		log.Error("Failed to store scraped listings", zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to scrape data", err)
	}

	log.Info("Scrape run finished",
		zap.Int("records", len(listings)),
		zap.Duration("elapsed", time.Since(start)))
	return message(c, http.StatusOK, "Data scraped and saved")
}
