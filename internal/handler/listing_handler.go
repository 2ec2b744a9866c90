package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/john9012002/DoAnChuyenNganh/internal/store"
	"github.com/john9012002/DoAnChuyenNganh/pkg/logger"
	"github.com/john9012002/DoAnChuyenNganh/prometheus"
)

const defaultListLimit = 50

// ListingHandler serves the public read endpoints.
type ListingHandler struct {
	Listings store.ListingStore
}

func NewListingHandler(listings store.ListingStore) *ListingHandler {
	return &ListingHandler{Listings: listings}
}

// ListListings returns up to ?limit= records (default 50) in store-native
// order. The pagination envelope reports the returned count as total.
func (h *ListingHandler) ListListings(c echo.Context) error {
	log := logger.FromContext(c)

	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		} else {
			log.Warn("Invalid limit parameter", zap.String("value", raw))
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	listings, err := h.Listings.List(c.Request().Context(), limit)
	if err != nil {
		log.Error("Failed to fetch listings", zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to fetch listings", err)
	}

	log.Info("Listings fetched", zap.Int("count", len(listings)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    listings,
		"pagination": echo.Map{
			"page":       1,
			"limit":      limit,
			"total":      len(listings),
			"totalPages": 1,
		},
	})
}

// GetListing returns a single listing wrapped in a one-element array so the
// response shape matches the list endpoint.
func (h *ListingHandler) GetListing(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	listing, err := h.Listings.Get(c.Request().Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			log.Warn("Listing not found", zap.String("listing_id", id))
			return fail(c, http.StatusNotFound, "Listing not found")
		}
		log.Error("Failed to fetch listing", zap.String("listing_id", id), zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to fetch listing", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    []interface{}{listing},
	})
}
