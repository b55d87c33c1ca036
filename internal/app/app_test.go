package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchquote/internal/config"
	"launchquote/internal/domain/lead"
	"launchquote/internal/domain/wizard"
	"launchquote/internal/pkg/logger"
)

const testAdminToken = "integration-admin-token"

func setupApp(t *testing.T) (*App, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:           "test",
		DatabaseURL:      ":memory:",
		MailFrom:         "WeblitzStack <noreply@example.com>",
		AdminEmail:       "admin@example.com",
		AdminName:        "Admin",
		AdminToken:       testAdminToken,
		SiteURL:          "https://launch.example.com",
		WizardSessionTTL: time.Hour,
	}
	a, err := New(cfg, logger.Test(t))
	require.NoError(t, err)
	require.NoError(t, a.Migrate())
	t.Cleanup(func() { _ = a.Close() })

	return a, a.Router()
}

func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	_, router := setupApp(t)

	resp := performRequest(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
}

func TestHealth_DatabaseClosed(t *testing.T) {
	a, router := setupApp(t)
	require.NoError(t, a.Close())

	resp := performRequest(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, catalog.Tiers, 4)

	_, err = LoadCatalog("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestRoutesAreMounted(t *testing.T) {
	_, router := setupApp(t)

	assert.Equal(t, http.StatusOK, performRequest(router, http.MethodGet, "/api/pricing", nil, "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, performRequest(router, http.MethodGet, "/api/submit", nil, "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, performRequest(router, http.MethodGet, "/api/send-confirmation", nil, "").Code)
	assert.Equal(t, http.StatusCreated, performRequest(router, http.MethodPost, "/api/wizard/sessions", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, performRequest(router, http.MethodGet, "/api/admin/leads", nil, "").Code)
	assert.Equal(t, http.StatusOK, performRequest(router, http.MethodGet, "/api/admin/leads", nil, testAdminToken).Code)
}

func TestSendConfirmation_ConsoleMailer(t *testing.T) {
	_, router := setupApp(t)

	resp := performRequest(router, http.MethodPost, "/api/send-confirmation", map[string]any{
		"fullName":     "Juan Dela Cruz",
		"email":        "juan@x.com",
		"finalPackage": map[string]any{"tier": "standard"},
	}, "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true,"message":"Emails sent successfully."}`, resp.Body.String())
}

// The wizard flow records a lead through the gateway and the console mailer.
func TestWizardAvailNow_RecordsLead(t *testing.T) {
	_, router := setupApp(t)

	resp := performRequest(router, http.MethodPost, "/api/wizard/sessions", nil, "")
	require.Equal(t, http.StatusCreated, resp.Code)
	var created struct {
		Data wizard.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	base := "/api/wizard/sessions/" + created.Data.SessionID

	resp = performRequest(router, http.MethodPatch, base+"/fields", map[string]any{
		"fullName":      "Juan Dela Cruz",
		"email":         "juan@x.com",
		"contactNumber": "09171234567",
		"tier":          "plus",
		"isRush":        true,
	}, "")
	require.Equal(t, http.StatusOK, resp.Code)
	resp = performRequest(router, http.MethodPost, base+"/addons/gallery", map[string]any{"selected": true}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	for i := 0; i < 8; i++ {
		resp = performRequest(router, http.MethodPost, base+"/actions/next", nil, "")
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}
	resp = performRequest(router, http.MethodPost, base+"/actions/avail", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var done struct {
		Data wizard.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &done))
	require.NotNil(t, done.Data.Submission)
	assert.Equal(t, "completed", done.Data.Submission.Status)
	require.NotEmpty(t, done.Data.Submission.LeadID)

	resp = performRequest(router, http.MethodGet, "/api/admin/leads/"+done.Data.Submission.LeadID, nil, testAdminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	var got struct {
		Data lead.Lead `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "plus", got.Data.Tier)
	assert.Equal(t, int64(24500), got.Data.TotalCost)
	assert.Equal(t, []string{"gallery"}, got.Data.AddOns)
	assert.Equal(t, lead.SourceAvailNow, got.Data.Source)
}
