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
	"go.uber.org/zap"

	"github.com/pusdatin/simontok/internal/auth/jwt"
	"github.com/pusdatin/simontok/internal/common/cnst"
	"github.com/pusdatin/simontok/internal/common/config"
	"github.com/pusdatin/simontok/internal/session"
)

func newJWT(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewService(config.JWTConfig{
		SecretKey: "test-secret-key-of-at-least-32-chars!",
		Duration:  time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func testEngine(jwtSvc *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(jwtSvc))
	return r
}

func sessionCookie(t *testing.T, svc *jwt.Service, role int, office string) *http.Cookie {
	t.Helper()
	token, err := svc.GenerateToken("U0001", "Budi", role, office, "sid-1")
	require.NoError(t, err)
	return &http.Cookie{Name: cnst.SessionCookie, Value: token}
}

func TestAuthSetsAccount(t *testing.T) {
	svc := newJWT(t)
	r := testEngine(svc)
	r.GET("/whoami", func(c *gin.Context) {
		acct := GetAccount(c)
		require.NotNil(t, acct)
		c.String(http.StatusOK, acct.UserID)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(sessionCookie(t, svc, session.RoleRegular, "TKY"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "U0001", w.Body.String())
}

func TestAuthIgnoresBadToken(t *testing.T) {
	svc := newJWT(t)
	r := testEngine(svc)
	r.GET("/whoami", func(c *gin.Context) {
		assert.Nil(t, GetAccount(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cnst.SessionCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	svc := newJWT(t)
	r := testEngine(svc)
	r.GET("/private", RequireLogin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAdmin(t *testing.T) {
	svc := newJWT(t)
	store := session.NewMemoryStore(zap.NewNop())
	r := testEngine(svc)
	r.GET("/admin", RequireAdmin(store), func(c *gin.Context) { c.Status(http.StatusOK) })

	// A regular account is bounced to the dashboard with a flash queued.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(sessionCookie(t, svc, session.RoleRegular, "TKY"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	flashes, err := store.PopFlashes(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Len(t, flashes, 1)
	assert.Equal(t, session.FlashError, flashes[0].Level)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(sessionCookie(t, svc, session.RoleAdmin, "PJB"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCentral(t *testing.T) {
	svc := newJWT(t)
	store := session.NewMemoryStore(zap.NewNop())
	r := testEngine(svc)
	r.GET("/central", RequireCentral("PJB", store), func(c *gin.Context) { c.Status(http.StatusOK) })

	// Regular account at another office is bounced to the dashboard.
	req := httptest.NewRequest(http.MethodGet, "/central", nil)
	req.AddCookie(sessionCookie(t, svc, session.RoleRegular, "TKY"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	// Regular account at the central office passes.
	req = httptest.NewRequest(http.MethodGet, "/central", nil)
	req.AddCookie(sessionCookie(t, svc, session.RoleRegular, "PJB"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Administrators pass regardless of office.
	req = httptest.NewRequest(http.MethodGet, "/central", nil)
	req.AddCookie(sessionCookie(t, svc, session.RoleAdmin, ""))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHonorsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
