package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/app/repositories"
	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
	"github.com/berkeley-decal/decal-portal/internal/pkg/identity"
)

type fakeVerifier struct {
	caller *identity.Identity
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.caller, nil
}

type fakeProfileStore struct {
	profiles map[string]*models.Profile
	err      error
}

func (f *fakeProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	profile, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	return profile, nil
}

func adminRouter(t *testing.T, verifier identity.Verifier, profiles ProfileStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(verifier, profiles)
	router := gin.New()
	router.GET("/admin", m.RequireAuth(), m.RequireAdmin(), func(c *gin.Context) {
		_, hasProfile := c.Get(ContextProfile)
		c.JSON(http.StatusOK, gin.H{"profile": hasProfile})
	})
	return router
}

func getAdmin(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := adminRouter(t, &fakeVerifier{}, &fakeProfileStore{})

	rec := getAdmin(router, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization header missing", decodeError(t, rec)["details"])
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router := adminRouter(t, &fakeVerifier{}, &fakeProfileStore{})

	rec := getAdmin(router, "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token format", decodeError(t, rec)["details"])
}

func TestRequireAuthExpiredToken(t *testing.T) {
	verifier := &fakeVerifier{err: apperrors.ErrTokenExpired}
	router := adminRouter(t, verifier, &fakeProfileStore{})

	rec := getAdmin(router, "Bearer expired-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has expired", decodeError(t, rec)["details"])
}

func TestRequireAdminAllowsReadAllPermission(t *testing.T) {
	verifier := &fakeVerifier{caller: &identity.Identity{ID: "user-1", Email: "mod@berkeley.edu"}}
	profiles := &fakeProfileStore{profiles: map[string]*models.Profile{
		"user-1": {ID: "user-1", Permissions: []string{models.PermissionReadAll}},
	}}
	router := adminRouter(t, verifier, profiles)

	rec := getAdmin(router, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"profile":true`)
}

func TestRequireAdminDeniesWithoutPermission(t *testing.T) {
	verifier := &fakeVerifier{caller: &identity.Identity{ID: "user-1", Email: "student@berkeley.edu"}}
	profiles := &fakeProfileStore{profiles: map[string]*models.Profile{
		"user-1": {ID: "user-1", Permissions: []string{"SubmitCourse"}},
	}}
	router := adminRouter(t, verifier, profiles)

	rec := getAdmin(router, "Bearer good-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", decodeError(t, rec)["details"])
}

func TestRequireAdminDeniesMissingProfile(t *testing.T) {
	verifier := &fakeVerifier{caller: &identity.Identity{ID: "user-1", Email: "student@berkeley.edu"}}
	router := adminRouter(t, verifier, &fakeProfileStore{})

	rec := getAdmin(router, "Bearer good-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", decodeError(t, rec)["details"])
}

func TestRequireAdminDeniesOnLookupFailure(t *testing.T) {
	verifier := &fakeVerifier{caller: &identity.Identity{ID: "user-1", Email: "mod@berkeley.edu"}}
	profiles := &fakeProfileStore{err: errors.New("connection refused")}
	router := adminRouter(t, verifier, profiles)

	rec := getAdmin(router, "Bearer good-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Permission denied", body["error"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
