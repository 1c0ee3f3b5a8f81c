package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helios/internal/cms"
	"helios/internal/state"
	"helios/internal/stream"
	"helios/internal/webhook"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeNotifier struct {
	calls int
	last  webhook.Payload
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, p webhook.Payload) error {
	f.calls++
	f.last = p
	return f.err
}

type fakeStream struct {
	events []stream.Event
}

func (f *fakeStream) Publish(ctx context.Context, subject string, event stream.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStream) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeStream) Close() error                          { return nil }

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestHealth(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "helios", body["service"])
}

func TestCreateInquiry_Success(t *testing.T) {
	notifier := &fakeNotifier{}
	events := &fakeStream{}
	appState := state.New()
	appState.Notifier = notifier
	appState.Stream = events
	router := SetupRoutes(appState)

	payload := webhook.Payload{
		Name:        "Ada Lovelace",
		Email:       "ada@example.com",
		Company:     "Lovelace Ltd",
		InquiryType: "Clusters",
		ClusterDetails: &webhook.ClusterDetails{
			Types:       "Training",
			GPUCountMin: 64,
			GPUCountMax: 256,
		},
	}

	w, body := doRequest(t, router, http.MethodPost, "/v1/inquiries", payload)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "ada@example.com", notifier.last.Email)

	require.Len(t, events.events, 2)
	assert.Equal(t, stream.EventInquiryReceived, events.events[0].Type)
	assert.Equal(t, stream.EventInquiryForwarded, events.events[1].Type)
}

func TestCreateInquiry_MissingEmail(t *testing.T) {
	notifier := &fakeNotifier{}
	events := &fakeStream{}
	appState := state.New()
	appState.Notifier = notifier
	appState.Stream = events
	router := SetupRoutes(appState)

	w, body := doRequest(t, router, http.MethodPost, "/v1/inquiries", webhook.Payload{
		Name:        "Ada",
		InquiryType: "Press",
	})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Email is required.", body["error"])
	assert.Zero(t, notifier.calls)

	require.Len(t, events.events, 1)
	assert.Equal(t, stream.EventInquiryRejected, events.events[0].Type)
	assert.Equal(t, "Email is required.", events.events[0].Reason)
}

func TestCreateInquiry_InvalidEmail(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodPost, "/v1/inquiries", webhook.Payload{
		Name:  "Ada",
		Email: "not an email",
	})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Please enter a valid email address.", body["error"])
}

func TestCreateInquiry_GPUCountBounds(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodPost, "/v1/inquiries", webhook.Payload{
		Name:        "Ada",
		Email:       "ada@example.com",
		InquiryType: "Baremetal",
		GPUDetails:  &webhook.GPUDetails{Model: "H100 SXM", Count: 20001},
	})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "GPU count must be between 1 and 20000.", body["error"])
}

func TestCreateInquiry_NotifierFailureStillSucceeds(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("slack down")}
	events := &fakeStream{}
	appState := state.New()
	appState.Notifier = notifier
	appState.Stream = events
	router := SetupRoutes(appState)

	w, body := doRequest(t, router, http.MethodPost, "/v1/inquiries", webhook.Payload{
		Name:        "Ada",
		Email:       "ada@example.com",
		InquiryType: "Others",
	})
	require.Equal(t, 200, w.Code)
	assert.Equal(t, true, body["success"])

	// received only, never forwarded
	require.Len(t, events.events, 1)
	assert.Equal(t, stream.EventInquiryReceived, events.events[0].Type)
}

func TestGetQuote(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/v1/pricing/quote?gpu=h100-sxm&quantity=2&hours=730&tier=1-month", nil)
	require.Equal(t, 200, w.Code)

	quote := body["quote"].(map[string]interface{})
	assert.InDelta(t, 3285.00, quote["baseCost"], 1e-6)
	assert.InDelta(t, 328.50, quote["discountAmount"], 1e-6)
	assert.InDelta(t, 2956.50, quote["totalCost"], 1e-6)
	assert.InDelta(t, 2.025, quote["effectiveRate"], 1e-6)

	reservation := body["reservation"].(map[string]interface{})
	assert.InDelta(t, 1, reservation["months"], 1e-9)
	assert.InDelta(t, 2956.50, reservation["totalCost"], 1e-6)
}

func TestGetQuote_ClampsInput(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/v1/pricing/quote?gpu=l40s&quantity=50000&hours=10000", nil)
	require.Equal(t, 200, w.Code)
	assert.InDelta(t, 20000, body["quantity"], 1e-9)
	assert.InDelta(t, 730, body["hours"], 1e-9)
}

func TestGetQuote_UnknownGPU(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/v1/pricing/quote?gpu=tpu-v5", nil)
	require.Equal(t, 404, w.Code)
	assert.Equal(t, "unknown GPU model", body["error"])
}

func TestGetUsageEstimate(t *testing.T) {
	cmsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": [
			{"id": "whisper-v3", "name": "Whisper V3", "category": "voice", "pricePerSecond": 0.0001, "estimationUnit": "voice-mins"}
		]}`))
	}))
	defer cmsServer.Close()

	appState := state.New()
	appState.CMS = cms.New(cmsServer.URL, "production", "2024-01-01")
	router := SetupRoutes(appState)

	w, body := doRequest(t, router, http.MethodGet, "/v1/pricing/usage?model=whisper-v3&quantity=120", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "120 voice minutes/month", body["estimation"])
	assert.InDelta(t, 0.0001*120*60, body["cost"], 1e-9)
}

func TestGetUsageEstimate_CMSNotConfigured(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/v1/pricing/usage?model=whisper-v3&quantity=120", nil)
	require.Equal(t, 503, w.Code)
	assert.Equal(t, "CMS not configured", body["error"])
}

func TestListGPUs_SortedAscending(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/v1/catalog/gpus?sort=asc&tier=3-months", nil)
	require.Equal(t, 200, w.Code)

	gpus := body["gpus"].([]interface{})
	require.NotEmpty(t, gpus)

	first := gpus[0].(map[string]interface{})
	last := gpus[len(gpus)-1].(map[string]interface{})
	assert.Equal(t, "l40s", first["id"])
	assert.Equal(t, "h100-nvl", last["id"])

	// 15% off the on-demand rate at the annual tier
	assert.InDelta(t, 0.87*0.85, first["effectivePrice"], 1e-9)
}

func TestListGPUs_InvalidSort(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/v1/catalog/gpus?sort=sideways", nil)
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "sort must be asc or desc", body["error"])
}

func TestListTiers(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/v1/catalog/tiers", nil)
	require.Equal(t, 200, w.Code)
	tiers := body["tiers"].([]interface{})
	assert.Len(t, tiers, 4)
}

func TestGetComparison(t *testing.T) {
	router := SetupRoutes(state.New())

	w, body := doRequest(t, router, http.MethodGet, "/v1/catalog/comparison", nil)
	require.Equal(t, 200, w.Code)

	rows := body["comparison"].([]interface{})
	require.Len(t, rows, 5)

	for _, raw := range rows {
		row := raw.(map[string]interface{})
		if row["gpu"] != "A100" {
			continue
		}
		lowest := row["lowestCompetitor"].(map[string]interface{})
		assert.Equal(t, "Lambda", lowest["name"])
		assert.InDelta(t, 1.29, lowest["price"], 1e-9)
	}
}
