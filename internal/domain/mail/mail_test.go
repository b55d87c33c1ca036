package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/pkg/logger"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *MockMailer) sent() []Message {
	var out []Message
	for _, call := range m.Calls {
		if call.Method == "Send" {
			out = append(out, call.Arguments.Get(1).(Message))
		}
	}
	return out
}

var testSettings = Settings{
	From:       "WeblitzStack <noreply.inquiries@weblitzstack.com>",
	AdminEmail: "josiah@weblitzstack.com",
	AdminName:  "Josiah",
	SiteURL:    "https://launch.weblitzstack.com",
}

func newTestService(t *testing.T, mailer Mailer) *Service {
	return NewService(mailer, pricing.NewCalculator(pricing.DefaultCatalog()), testSettings, logger.Test(t))
}

func setupRouter(t *testing.T, mailer Mailer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api"), NewHandler(newTestService(t, mailer)))
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func confirmationBody() map[string]any {
	return map[string]any{
		"fullName": "Juan Dela Cruz",
		"email":    "juan@x.com",
		"finalPackage": map[string]any{
			"tier":         map[string]any{"id": "pro", "name": "Pro Tier"},
			"addOns":       []any{map[string]any{"id": "logo", "price": 1}, "gallery"},
			"billingCycle": "annual",
			"isRush":       true,
			"totalCost":    1,
		},
		"referralCode":     "JUANDELACRUZ5OFF",
		"consultationTime": "2025-03-10T02:00:00Z",
	}
}

func TestSendConfirmation_Success(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return("msg-1", nil)
	router := setupRouter(t, mailer)

	resp := performRequest(router, http.MethodPost, "/api/send-confirmation", confirmationBody())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"ok":true,"message":"Emails sent successfully."}`, resp.Body.String())

	sent := mailer.sent()
	require.Len(t, sent, 2)

	admin := sent[0]
	assert.Equal(t, []string{"josiah@weblitzstack.com"}, admin.To)
	assert.Equal(t, "🚨 New Lead: Juan Dela Cruz", admin.Subject)
	assert.Contains(t, admin.HTML, "You Have a New Lead!")
	assert.Contains(t, admin.HTML, "Lead from: Juan Dela Cruz")
	assert.Contains(t, admin.Text, "New Lead: Juan Dela Cruz\n\nHi Josiah,")

	client := sent[1]
	assert.Equal(t, []string{"juan@x.com"}, client.To)
	assert.Equal(t, testSettings.From, client.From)
	assert.Equal(t, "🎈 Your Website Quote & Consultation Details", client.Subject)
	assert.Contains(t, client.HTML, "Consultation Booked!")
	assert.Contains(t, client.HTML, "March 10, 2025 at 10:00 AM (PHT)")
	// prices come from the catalog, not from the request
	assert.Contains(t, client.HTML, "₱73,500")
	assert.Contains(t, client.Text, "Total Due: ₱73,500")
}

func TestSendConfirmation_MissingFullName(t *testing.T) {
	mailer := new(MockMailer)
	router := setupRouter(t, mailer)

	body := confirmationBody()
	delete(body, "fullName")
	resp := performRequest(router, http.MethodPost, "/api/send-confirmation", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Missing required form data.")
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendConfirmation_MissingPackage(t *testing.T) {
	mailer := new(MockMailer)
	router := setupRouter(t, mailer)

	body := confirmationBody()
	delete(body, "finalPackage")
	resp := performRequest(router, http.MethodPost, "/api/send-confirmation", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendConfirmation_UnknownTier(t *testing.T) {
	mailer := new(MockMailer)
	router := setupRouter(t, mailer)

	body := confirmationBody()
	body["finalPackage"] = map[string]any{"tier": "platinum"}
	resp := performRequest(router, http.MethodPost, "/api/send-confirmation", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "UNKNOWN_TIER")
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendConfirmation_ProviderFailure(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))
	router := setupRouter(t, mailer)

	resp := performRequest(router, http.MethodPost, "/api/send-confirmation", confirmationBody())

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "rate limited")
	// admin failure skips the client email
	assert.Len(t, mailer.sent(), 1)
}

func TestSendConfirmation_MethodNotAllowed(t *testing.T) {
	router := setupRouter(t, new(MockMailer))

	resp := performRequest(router, http.MethodGet, "/api/send-confirmation", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
	assert.Equal(t, "POST", resp.Header().Get("Allow"))
}

func TestService_SendConfirmation_QuoteHeadingWithoutConsultation(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return("msg", nil)
	svc := newTestService(t, mailer)

	pkg, err := svc.Price("Ana Reyes", &PackageRef{Tier: "standard"})
	require.NoError(t, err)

	require.NoError(t, svc.SendConfirmation(context.Background(), Confirmation{
		FullName: "Ana Reyes",
		Email:    "ana@x.com",
		Package:  pkg,
	}))

	client := mailer.sent()[1]
	assert.Contains(t, client.HTML, "Your Quote is Ready!")
	assert.NotContains(t, client.HTML, "Booking Schedule")
	// falls back to the package's referral code
	assert.Contains(t, client.Text, "Your Referral Code: ANAREYES5OFF")
}

func TestService_SendConfirmation_RequiresFields(t *testing.T) {
	mailer := new(MockMailer)
	svc := newTestService(t, mailer)

	err := svc.SendConfirmation(context.Background(), Confirmation{FullName: "Ana", Email: "ana@x.com"})
	assert.ErrorIs(t, err, ErrMissingFields)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendQuote_Legacy(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return("msg", nil)
	router := setupRouter(t, mailer)

	resp := performRequest(router, http.MethodPost, "/api/email", map[string]any{
		"email":        "juan@x.com",
		"fullName":     "Juan <b>",
		"quoteSummary": "Standard Tier\nTotal ₱5,000",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"sent"}`, resp.Body.String())

	msg := mailer.sent()[0]
	assert.Equal(t, "Your Website Quote from WeblitzStack", msg.Subject)
	assert.Contains(t, msg.HTML, "<strong>Hi Juan &lt;b&gt;</strong>")
	assert.Contains(t, msg.HTML, "Standard Tier<br/>Total ₱5,000")
}

func TestSendQuote_SummaryFromPackage(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return("msg", nil)
	svc := newTestService(t, mailer)

	err := svc.SendQuote(context.Background(), &QuoteEmailRequest{
		Email:        "juan@x.com",
		FullName:     "Juan",
		FinalPackage: &PackageRef{Tier: "standard", AddOns: pricing.AddOnRefs{"logo"}},
	})
	require.NoError(t, err)
	assert.Contains(t, mailer.sent()[0].Text, "Total Due: ₱7,000")
}

func TestSendQuote_RequiresSummaryOrPackage(t *testing.T) {
	mailer := new(MockMailer)
	router := setupRouter(t, mailer)

	resp := performRequest(router, http.MethodPost, "/api/email", map[string]any{
		"email":        "juan@x.com",
		"fullName":     "Juan",
		"quoteSummary": "   ",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"MISSING_FIELDS"`)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestConsoleMailer(t *testing.T) {
	id, err := NewConsoleMailer(logger.Test(t)).Send(context.Background(), Message{To: []string{"a@b.co"}, Subject: "hi"})
	require.NoError(t, err)
	assert.Contains(t, id, "console-")
}

func TestConfirmationRequest_DecodesConsultationTime(t *testing.T) {
	var req ConfirmationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"consultationTime":"2025-03-10T10:00:00+08:00"}`), &req))
	require.NotNil(t, req.ConsultationTime)
	assert.True(t, req.ConsultationTime.Equal(time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)))
}
