package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"launchquote/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminTokenAuth(t *testing.T) {
	router := gin.New()
	router.GET("/admin", AdminTokenAuth("s3cret", logger.Test(t)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer s3cret"}).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/admin", map[string]string{"Authorization": "bearer s3cret"}).Code)

	w := serve(router, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_MISSING")

	w = serve(router, http.MethodGet, "/admin", map[string]string{"Authorization": "Token s3cret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminTokenAuth_NotConfigured(t *testing.T) {
	router := gin.New()
	router.GET("/admin", AdminTokenAuth("", logger.Test(t)), func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	w := serve(router, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer anything"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAllowMethods(t *testing.T) {
	router := gin.New()
	router.Any("/submit", AllowMethods(http.MethodPost), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/submit", nil).Code)

	w := serve(router, http.MethodGet, "/submit", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "POST", w.Header().Get("Allow"))
	assert.Contains(t, w.Body.String(), "Method GET Not Allowed")

	assert.Equal(t, http.StatusMethodNotAllowed, serve(router, http.MethodPut, "/submit", nil).Code)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://launch.weblitzstack.com"}))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, http.MethodOptions, "/x", map[string]string{"Origin": "https://launch.weblitzstack.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://launch.weblitzstack.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, http.MethodPost, "/x", map[string]string{"Origin": "https://evil.test"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, requestID(c)) })

	w := serve(router, http.MethodGet, "/x", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = serve(router, http.MethodGet, "/x", nil)
	assert.Len(t, w.Body.String(), 36)
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.ErrorLevel)

	router := gin.New()
	router.Use(RequestID(), ErrorLogger(lggr))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := serve(router, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")

	entries := logs.FilterMessage("Request error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "panic", entries[0].ContextMap()["type"])
	assert.Equal(t, "kaboom", entries[0].ContextMap()["error"])
}

func TestErrorLogger_LogsServerErrors(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.ErrorLevel)

	router := gin.New()
	router.Use(ErrorLogger(lggr))
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(router, http.MethodGet, "/ok", nil)
	assert.Zero(t, logs.Len())

	serve(router, http.MethodGet, "/fail", nil)
	assert.Equal(t, 1, logs.FilterMessage("Request error").Len())
}
