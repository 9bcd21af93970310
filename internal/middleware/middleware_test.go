package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festive-births-svc/internal/models"
	"festive-births-svc/internal/repository"
	"festive-births-svc/internal/token"
	"festive-births-svc/pkg/logger"
)

type stubAuthenticator struct {
	users map[string]*models.User
}

func (s stubAuthenticator) Authenticate(_ context.Context, raw string) (*models.User, *token.Claims, error) {
	u, ok := s.users[raw]
	if !ok {
		return nil, nil, token.ErrInvalidToken
	}
	return u, &token.Claims{Username: u.Username}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(store repository.PresenceStore) *gin.Engine {
	log := logger.NewNop()
	facility := "Butterworth Hospital"
	auth := stubAuthenticator{users: map[string]*models.User{
		"capturer": {ID: 3, Username: "12345678", Roles: []models.Role{{Name: models.RoleUser}},
			Profile: &models.Profile{PersalNumber: "12345678", District: "Amathole DM", Facility: &facility}},
		"orphan":   {ID: 6, Username: "44444444", Roles: []models.Role{{Name: models.RoleUser}}},
		"province": {ID: 4, Username: "22222222", Roles: []models.Role{{Name: models.RoleProvinceUser}}},
		"fresh":    {ID: 5, Username: "33333333", MustChangePassword: true, Roles: []models.Role{{Name: models.RoleUser}}},
		"root":     {ID: 1, Username: "root", IsSuperuser: true},
	}}

	r := gin.New()
	r.Use(ErrorHandler(log))
	r.NoRoute(NoRouteHandler())

	api := r.Group("/api", Authenticate(auth, log), RequirePasswordChanged("/api/me"), TrackLastSeen(store, log))
	api.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/deliveries", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.POST("/deliveries", RequireModify(), func(c *gin.Context) { c.Status(http.StatusCreated) })
	api.GET("/users/export", RequireSuperuser(), func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r := newRouter(repository.NewMemoryPresenceStore())

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/deliveries", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/deliveries", "forged").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/deliveries", "capturer").Code)
}

func TestCapabilityGuards(t *testing.T) {
	r := newRouter(repository.NewMemoryPresenceStore())

	tests := []struct {
		name   string
		method string
		path   string
		bearer string
		want   int
	}{
		{"capturer may create", http.MethodPost, "/api/deliveries", "capturer", http.StatusCreated},
		{"province user is read only", http.MethodPost, "/api/deliveries", "province", http.StatusForbidden},
		{"account without profile may not create", http.MethodPost, "/api/deliveries", "orphan", http.StatusForbidden},
		{"export needs superuser", http.MethodGet, "/api/users/export", "capturer", http.StatusForbidden},
		{"superuser exports", http.MethodGet, "/api/users/export", "root", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(r, tt.method, tt.path, tt.bearer).Code)
		})
	}
}

func TestRequirePasswordChanged(t *testing.T) {
	r := newRouter(repository.NewMemoryPresenceStore())

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/deliveries", "fresh").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/me", "fresh").Code)
}

func TestTrackLastSeen_SkipsSuperusers(t *testing.T) {
	store := repository.NewMemoryPresenceStore()
	r := newRouter(store)

	do(r, http.MethodGet, "/api/deliveries", "capturer")
	do(r, http.MethodGet, "/api/deliveries", "root")

	seen, err := store.LastSeen(context.Background(), []uint{1, 3})
	require.NoError(t, err)
	assert.Contains(t, seen, uint(3))
	assert.NotContains(t, seen, uint(1))
	assert.WithinDuration(t, time.Now(), seen[3], time.Minute)
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	r := newRouter(repository.NewMemoryPresenceStore())

	w := do(r, http.MethodGet, "/api/panic", "root")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestNoRoute(t *testing.T) {
	r := newRouter(repository.NewMemoryPresenceStore())
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/nowhere", "").Code)
}
