package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john9012002/DoAnChuyenNganh/internal/middleware"
	"github.com/john9012002/DoAnChuyenNganh/pkg/config"
	"github.com/john9012002/DoAnChuyenNganh/pkg/jwtutil"
)

func testJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func newAuthApp(users *fakeUserStore) *echo.Echo {
	e := echo.New()
	h := NewAuthHandler(users, testJWT())
	e.POST("/api/register", h.Register)
	e.POST("/api/login", h.Login)
	return e
}

func TestRegisterThenLogin(t *testing.T) {
	users := newFakeUserStore()
	e := newAuthApp(users)

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"email":"a@x.com","password":"p","name":"A"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])

	rec = doJSON(e, http.MethodPost, "/api/login",
		`{"email":"a@x.com","password":"p"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok, "login response must carry a user object")
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "A", user["name"])
	assert.Equal(t, "user", user["role"], "role must default to user")
	assert.NotContains(t, user, "password")

	// The embedded role must match the stored role.
	claims, err := testJWT().ValidateToken(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRegisterMissingFields(t *testing.T) {
	e := newAuthApp(newFakeUserStore())

	for _, body := range []string{
		`{"password":"p","name":"A"}`,
		`{"email":"a@x.com","name":"A"}`,
		`{"email":"a@x.com","password":"p"}`,
	} {
		rec := doJSON(e, http.MethodPost, "/api/register", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		resp := decodeBody(t, rec)
		assert.Equal(t, false, resp["success"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	e := newAuthApp(users)

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"email":"a@x.com","password":"p","name":"A"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/register",
		`{"email":"a@x.com","password":"other","name":"B"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Email already registered", body["error"])

	// The existing record must be untouched: the original password still works.
	rec = doJSON(e, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"p"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, users.users, 1)
	assert.Equal(t, "A", users.users[0].Name)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	e := newAuthApp(newFakeUserStore())

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"email":"a@x.com","password":"p","name":"A"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := doJSON(e, http.MethodPost, "/api/login",
		`{"email":"a@x.com","password":"wrong"}`, "")
	unknownEmail := doJSON(e, http.MethodPost, "/api/login",
		`{"email":"nobody@x.com","password":"p"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String(),
		"wrong password and unknown email must produce identical responses")
}

func TestRegisterWithExplicitRole(t *testing.T) {
	users := newFakeUserStore()
	e := newAuthApp(users)

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"email":"root@x.com","password":"p","name":"Root","role":"admin"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, users.users, 1)
	assert.Equal(t, "admin", users.users[0].Role)
}

// Register, log in as a plain user, then hit an admin route: 403.
func TestUserTokenRejectedOnAdminRoute(t *testing.T) {
	users := newFakeUserStore()
	jwt := testJWT()

	e := echo.New()
	auth := NewAuthHandler(users, jwt)
	admin := NewAdminHandler(users, newFakeListingStore())
	e.POST("/api/register", auth.Register)
	e.POST("/api/login", auth.Login)
	g := e.Group("/api/admin", middleware.RequireAdmin(jwt))
	g.GET("/users", admin.ListUsers)

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"email":"a@x.com","password":"p","name":"A"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"p"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["token"].(string)

	rec = doJSON(e, http.MethodGet, "/api/admin/users", "", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
