package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
	"github.com/john9012002/DoAnChuyenNganh/internal/store"
	"github.com/john9012002/DoAnChuyenNganh/pkg/logger"
	"github.com/john9012002/DoAnChuyenNganh/prometheus"
)

// SubscribeHandler records area/property-type interests on a user account.
// Subscriptions are stored verbatim; nothing matches them against listings.
type SubscribeHandler struct {
	Users store.UserStore
}

func NewSubscribeHandler(users store.UserStore) *SubscribeHandler {
	return &SubscribeHandler{Users: users}
}

func (h *SubscribeHandler) Subscribe(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Email string `json:"email"`
		Area  string `json:"area"`
		Type  string `json:"type"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse subscribe request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Area == "" || req.Type == "" {
		return fail(c, http.StatusBadRequest, "All fields are required")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	err := h.Users.AppendSubscription(c.Request().Context(), req.Email,
		model.Subscription{Area: req.Area, Type: req.Type})
	if err != nil {
		if err == store.ErrNotFound {
			log.Warn("Subscribe for unknown email", zap.String("email", req.Email))
			return fail(c, http.StatusNotFound, "User not found")
		}
		log.Error("Failed to save subscription", zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to subscribe", err)
	}

	log.Info("Subscription saved",
		zap.String("email", req.Email),
		zap.String("area", req.Area),
		zap.String("type", req.Type))
	return message(c, http.StatusOK, "Subscription saved")
}
