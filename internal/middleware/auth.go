package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
	"github.com/john9012002/DoAnChuyenNganh/pkg/jwtutil"
	"github.com/john9012002/DoAnChuyenNganh/pkg/logger"
	"github.com/john9012002/DoAnChuyenNganh/prometheus"
)

// ClaimsKey is the context key the verified principal is stored under.
const ClaimsKey = "user"

// RequireAdmin validates the bearer token and rejects any principal whose
// role is not admin: 401 for a missing or invalid token, 403 for a valid
// token with the wrong role.
func RequireAdmin(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "Missing authorization token",
				})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "Invalid authorization format, expected Bearer token",
				})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "Invalid or expired token",
				})
			}

			if claims.Role != model.RoleAdmin {
				log.Warn("Admin access denied",
					zap.String("email", claims.Email),
					zap.String("role", claims.Role))
				prometheus.RecordAuthError("forbidden")
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   "Admin access required",
				})
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
