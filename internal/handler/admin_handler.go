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

// AdminHandler serves the admin-only user and listing CRUD. Every route is
// mounted behind the RequireAdmin middleware.
type AdminHandler struct {
	Users    store.UserStore
	Listings store.ListingStore
}

func NewAdminHandler(users store.UserStore, listings store.ListingStore) *AdminHandler {
	return &AdminHandler{Users: users, Listings: listings}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to fetch users", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    users,
	})
}

// UpdateUser applies a partial update of email, name and role. The role
// value is written as supplied; it is not checked against the role enum.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user update", zap.String("user_id", id), zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	fields := map[string]interface{}{}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Role != "" {
		fields["role"] = req.Role
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.Users.Update(c.Request().Context(), id, fields); err != nil {
		log.Error("Failed to update user", zap.String("user_id", id), zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to update user", err)
	}

	log.Info("User updated", zap.String("user_id", id))
	return message(c, http.StatusOK, "User updated successfully")
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to delete user", err)
	}

	log.Info("User deleted", zap.String("user_id", id))
	return message(c, http.StatusOK, "User deleted successfully")
}

func (h *AdminHandler) ListListings(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	listings, err := h.Listings.List(c.Request().Context(), defaultListLimit)
	if err != nil {
		log.Error("Failed to list listings", zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to fetch listings", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    listings,
	})
}

// CreateListing stores a manually entered listing. Any flat field set is
// accepted; a fresh identifier is assigned by the store.
func (h *AdminHandler) CreateListing(c echo.Context) error {
	log := logger.FromContext(c)

	var listing model.Listing
	if err := c.Bind(&listing); err != nil {
		log.Error("Failed to parse listing", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	listing.ID = ""

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.Listings.Create(c.Request().Context(), &listing); err != nil {
		log.Error("Failed to create listing", zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to create listing", err)
	}

	log.Info("Listing created", zap.String("listing_id", listing.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    []interface{}{listing},
	})
}

// UpdateListing replaces the attribute set of the listing. An unknown id
// matches zero records and still reports success.
func (h *AdminHandler) UpdateListing(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var listing model.Listing
	if err := c.Bind(&listing); err != nil {
		log.Error("Failed to parse listing update", zap.String("listing_id", id), zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.Listings.Update(c.Request().Context(), id, listing.Attributes); err != nil {
		log.Error("Failed to update listing", zap.String("listing_id", id), zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to update listing", err)
	}

	log.Info("Listing updated", zap.String("listing_id", id))
	return message(c, http.StatusOK, "Listing updated successfully")
}

// DeleteListing removes the listing. An unknown id matches zero records and
// still reports success.
func (h *AdminHandler) DeleteListing(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.Listings.Delete(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to delete listing", err)
	}

	log.Info("Listing deleted", zap.String("listing_id", id))
	return message(c, http.StatusOK, "Listing deleted successfully")
}
