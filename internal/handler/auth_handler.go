package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
	"github.com/john9012002/DoAnChuyenNganh/internal/store"
	"github.com/john9012002/DoAnChuyenNganh/pkg/jwtutil"
	"github.com/john9012002/DoAnChuyenNganh/pkg/logger"
	"github.com/john9012002/DoAnChuyenNganh/prometheus"
)

// bcryptCost is the fixed work factor for password hashes.
const bcryptCost = 10

// AuthHandler serves registration and login.
type AuthHandler struct {
	Users store.UserStore
	JWT   *jwtutil.JWTUtil
}

func NewAuthHandler(users store.UserStore, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{Users: users, JWT: jwt}
}

// Register creates a new user with a hashed password. Role defaults to
// "user" unless the request supplies one.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		prometheus.RecordAuthError("incomplete_registration")
		return fail(c, http.StatusBadRequest, "All fields are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return failWithDetails(c, http.StatusInternalServerError, "Failed to register", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := model.User{
		Email:         req.Email,
		Password:      string(hashedPassword),
		Name:          req.Name,
		Role:          role,
		Subscriptions: model.Subscriptions{},
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.Users.Create(c.Request().Context(), &user); err != nil {
		if err == store.ErrConflict {
			log.Warn("Email already registered", zap.String("email", req.Email))
			prometheus.RecordAuthError("email_already_exists")
			return fail(c, http.StatusBadRequest, "Email already registered")
		}
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return failWithDetails(c, http.StatusInternalServerError, "Failed to register", err)
	}

	log.Info("User registered", zap.String("email", user.Email), zap.String("role", user.Role))
	return message(c, http.StatusCreated, "User registered successfully")
}

// Login verifies credentials and issues a signed token embedding the user's
// email and role. The failure message does not distinguish an unknown email
// from a wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return fail(c, http.StatusBadRequest, "Email and password are required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if err == store.ErrNotFound {
			log.Warn("Login for unknown email", zap.String("email", req.Email))
			prometheus.RecordAuthError("user_not_found")
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		}
		log.Error("Failed to look up user", zap.Error(err))
		return failWithDetails(c, http.StatusInternalServerError, "Failed to login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.JWT.GenerateToken(user.Email, user.Name, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return failWithDetails(c, http.StatusInternalServerError, "Failed to login", err)
	}

	log.Info("User logged in", zap.String("email", user.Email), zap.String("role", user.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"user":    user.PublicView(),
		"token":   token,
	})
}
