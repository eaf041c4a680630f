// internal/httpapi/handlers_test.go
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/directory"
	"mergington-activities/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "mergington-activities",
			Version:     "test",
			Environment: "test",
		},
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8000,
		},
		Static: config.StaticConfig{
			Dir:   t.TempDir(),
			Route: "/static",
		},
		Logging: config.LoggingConfig{
			Level:  "debug",
			Format: "console",
		},
	}
}

func newTestAPI(t *testing.T, seed map[string]models.Activity) (*API, *config.Config) {
	if seed == nil {
		seed = directory.DefaultSeed()
	}
	cfg := newTestConfig(t)
	store := directory.New(seed, logger.NewTestLogger(t))
	return NewAPI(cfg, store, nil, logger.NewTestLogger(t)), cfg
}

func seedWith(name string, max int, participants ...string) map[string]models.Activity {
	if participants == nil {
		participants = []string{}
	}
	return map[string]models.Activity{
		name: {
			Description:     "Test activity",
			Schedule:        "Mondays, 3:00 PM - 4:00 PM",
			MaxParticipants: max,
			Participants:    participants,
		},
	}
}

func doRequest(router http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func decodeActivities(t *testing.T, rec *httptest.ResponseRecorder) map[string]models.Activity {
	t.Helper()
	var body map[string]models.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ==========================
// Root & Static Tests
// ==========================

func TestRouter_RootRedirectsToStaticIndex(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	rec := doRequest(api.Router(), http.MethodGet, "/")

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/static/index.html", rec.Header().Get("Location"))
}

func TestRouter_ServesStaticFiles(t *testing.T) {
	api, cfg := newTestAPI(t, nil)
	content := "<html><body>Mergington High School</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Static.Dir, "index.html"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Static.Dir, "app.js"), []byte("console.log(1);"), 0o644))

	router := api.Router()

	// The root redirect's target must serve the page, not bounce through the
	// file server's "./" canonicalization.
	rec := doRequest(router, http.MethodGet, "/static/index.html")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), "Mergington High School")

	rec = doRequest(router, http.MethodGet, "/static/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")
}

func TestRouter_UnknownRouteReturns404(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	rec := doRequest(api.Router(), http.MethodGet, "/no-such-route")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ==========================
// Activities Listing Tests
// ==========================

func TestRouter_ListActivities(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	rec := doRequest(api.Router(), http.MethodGet, "/activities")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	activities := decodeActivities(t, rec)
	require.Len(t, activities, 9)

	chess, ok := activities["Chess Club"]
	require.True(t, ok)
	assert.Equal(t, "Learn strategies and compete in chess tournaments", chess.Description)
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", chess.Schedule)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)
}

func TestRouter_ListReflectsSignups(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	router := api.Router()

	rec := doRequest(router, http.MethodPost, "/activities/Chess%20Club/signup?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	activities := decodeActivities(t, rec)
	assert.Equal(t, []string{
		"michael@mergington.edu",
		"daniel@mergington.edu",
		"newstudent@mergington.edu",
	}, activities["Chess Club"].Participants)
}

// ==========================
// Signup Tests
// ==========================

func TestRouter_Signup(t *testing.T) {
	tests := []struct {
		name         string
		seed         map[string]models.Activity
		target       string
		expectedCode int
		expectedBody func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:         "success with percent-encoded name",
			seed:         nil,
			target:       "/activities/Chess%20Club/signup?email=newstudent@mergington.edu",
			expectedCode: http.StatusOK,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "newstudent@mergington.edu signed up for Chess Club", decodeMessage(t, rec))
			},
		},
		{
			name:         "success with plus-encoded name",
			seed:         nil,
			target:       "/activities/Chess+Club/signup?email=plusstudent@mergington.edu",
			expectedCode: http.StatusOK,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "plusstudent@mergington.edu signed up for Chess Club", decodeMessage(t, rec))
			},
		},
		{
			name:         "unknown activity",
			seed:         nil,
			target:       "/activities/Knitting%20Circle/signup?email=someone@mergington.edu",
			expectedCode: http.StatusNotFound,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Activity not found", decodeDetail(t, rec))
			},
		},
		{
			name:         "duplicate signup",
			seed:         nil,
			target:       "/activities/Chess%20Club/signup?email=michael@mergington.edu",
			expectedCode: http.StatusBadRequest,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "michael@mergington.edu already signed up for Chess Club", decodeDetail(t, rec))
			},
		},
		{
			name:         "missing email",
			seed:         nil,
			target:       "/activities/Chess%20Club/signup",
			expectedCode: http.StatusBadRequest,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "email is required", decodeDetail(t, rec))
			},
		},
		{
			name:         "empty email",
			seed:         nil,
			target:       "/activities/Chess%20Club/signup?email=",
			expectedCode: http.StatusBadRequest,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "email is required", decodeDetail(t, rec))
			},
		},
		{
			name:         "activity at capacity",
			seed:         seedWith("Book Club", 2, "a@mergington.edu", "b@mergington.edu"),
			target:       "/activities/Book%20Club/signup?email=c@mergington.edu",
			expectedCode: http.StatusBadRequest,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Activity is full", decodeDetail(t, rec))
			},
		},
		{
			name:         "duplicate reported before capacity",
			seed:         seedWith("Book Club", 2, "a@mergington.edu", "b@mergington.edu"),
			target:       "/activities/Book%20Club/signup?email=a@mergington.edu",
			expectedCode: http.StatusBadRequest,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "a@mergington.edu already signed up for Book Club", decodeDetail(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestAPI(t, tt.seed)
			rec := doRequest(api.Router(), http.MethodPost, tt.target)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			tt.expectedBody(t, rec)
		})
	}
}

func TestRouter_PlusEncodedSignupLeavesFailureCountersAlone(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	notFound := metrics.SignupsTotal.WithLabelValues("unknown", "not_found")
	before := testutil.ToFloat64(notFound)

	rec := doRequest(api.Router(), http.MethodPost, "/activities/Chess+Club/signup?email=counted@mergington.edu")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before, testutil.ToFloat64(notFound),
		"successful plus-encoded signup must not count a not_found miss")
}

func TestRouter_SignupRequiresPost(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	rec := doRequest(api.Router(), http.MethodGet, "/activities/Chess%20Club/signup?email=x@mergington.edu")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ==========================
// Unregister Tests
// ==========================

func TestRouter_Unregister(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		expectedCode int
		expectedBody func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:         "success",
			target:       "/activities/Chess%20Club/unregister?email=michael@mergington.edu",
			expectedCode: http.StatusOK,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "michael@mergington.edu unregistered from Chess Club", decodeMessage(t, rec))
			},
		},
		{
			name:         "success with plus-encoded name",
			target:       "/activities/Chess+Club/unregister?email=daniel@mergington.edu",
			expectedCode: http.StatusOK,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "daniel@mergington.edu unregistered from Chess Club", decodeMessage(t, rec))
			},
		},
		{
			name:         "not signed up",
			target:       "/activities/Chess%20Club/unregister?email=zoe@mergington.edu",
			expectedCode: http.StatusBadRequest,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "zoe@mergington.edu is not signed up for Chess Club", decodeDetail(t, rec))
			},
		},
		{
			name:         "unknown activity",
			target:       "/activities/Knitting%20Circle/unregister?email=michael@mergington.edu",
			expectedCode: http.StatusNotFound,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Activity not found", decodeDetail(t, rec))
			},
		},
		{
			name:         "missing email",
			target:       "/activities/Chess%20Club/unregister",
			expectedCode: http.StatusBadRequest,
			expectedBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "email is required", decodeDetail(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestAPI(t, nil)
			rec := doRequest(api.Router(), http.MethodPost, tt.target)

			assert.Equal(t, tt.expectedCode, rec.Code)
			tt.expectedBody(t, rec)
		})
	}
}

func TestRouter_UnregisterFreesSeat(t *testing.T) {
	api, _ := newTestAPI(t, seedWith("Book Club", 2, "a@mergington.edu", "b@mergington.edu"))
	router := api.Router()

	rec := doRequest(router, http.MethodPost, "/activities/Book%20Club/signup?email=c@mergington.edu")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Activity is full", decodeDetail(t, rec))

	rec = doRequest(router, http.MethodPost, "/activities/Book%20Club/unregister?email=a@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/activities/Book%20Club/signup?email=c@mergington.edu")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c@mergington.edu signed up for Book Club", decodeMessage(t, rec))
}

// ==========================
// Operational Endpoint Tests
// ==========================

func TestRouter_Health(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	rec := doRequest(api.Router(), http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.NotEmpty(t, body.Time)
}

func TestRouter_Ready(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	rec := doRequest(api.Router(), http.MethodGet, "/ready")

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	rec := doRequest(api.Router(), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// ==========================
// Middleware Tests
// ==========================

func TestMiddleware_RequestIDAssigned(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	rec := doRequest(api.Router(), http.MethodGet, "/health")

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_RequestIDPropagated(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied-id")
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied-id", rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_RecovererReturnsDetailBody(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	handler := api.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := doRequest(handler, http.MethodGet, "/anything")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeDetail(t, rec))
}

func TestMiddleware_RecovererRethrowsAbortHandler(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	handler := api.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	// net/http relies on this sentinel propagating to drop the connection.
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkRouter_ListActivities(b *testing.B) {
	store := directory.New(directory.DefaultSeed(), logger.NewNoOpLogger())
	cfg := &config.Config{
		Static:  config.StaticConfig{Dir: b.TempDir(), Route: "/static"},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}
	router := NewAPI(cfg, store, nil, logger.NewNoOpLogger()).Router()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/activities", nil)
		router.ServeHTTP(rec, req)
	}
}

func BenchmarkRouter_SignupUnregister(b *testing.B) {
	store := directory.New(directory.DefaultSeed(), logger.NewNoOpLogger())
	cfg := &config.Config{
		Static:  config.StaticConfig{Dir: b.TempDir(), Route: "/static"},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}
	router := NewAPI(cfg, store, nil, logger.NewNoOpLogger()).Router()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		email := fmt.Sprintf("bench%d@mergington.edu", i)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/activities/Gym%20Class/signup?email="+email, nil)
		router.ServeHTTP(rec, req)

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/activities/Gym%20Class/unregister?email="+email, nil)
		router.ServeHTTP(rec, req)
	}
}
