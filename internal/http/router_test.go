package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"travelplanner/internal/config"
	"travelplanner/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testEnv() config.Env {
	return config.Env{UpstreamTimeout: 5 * time.Second}
}

func tripRouter(env config.Env, url string) *gin.Engine {
	webhooks := config.WebhookTable{
		config.TripWebhookKey: {Key: config.TripWebhookKey, URL: url, FailureMessage: config.FailureMessage(config.TripWebhookKey)},
	}
	return NewRouter(env, services.New(env, webhooks, nil, nil))
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("body is not JSON (%q): %v", w.Body.String(), err)
	}
	return out
}

func countingUpstream(t *testing.T, status int, body string, seen *string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if seen != nil {
			b, _ := io.ReadAll(r.Body)
			*seen = r.Header.Get("Content-Type") + " " + string(b)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestPreflightAnswersWithoutConfiguration(t *testing.T) {
	r := tripRouter(testEnv(), "")
	for _, path := range []string{"/api/webhooks/trip", "/api/geocode", "/nowhere"} {
		w := do(r, http.MethodOptions, path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Fatalf("%s: expected empty body, got %q", path, w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("%s: missing CORS origin header", path)
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "x-client-info") {
			t.Fatalf("%s: unexpected allow headers %q", path, w.Header().Get("Access-Control-Allow-Headers"))
		}
	}
}

func TestWrongMethodIs405(t *testing.T) {
	r := tripRouter(testEnv(), "")
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := do(r, method, "/api/webhooks/trip", "")
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected 405, got %d", method, w.Code)
		}
		if got := decode(t, w)["error"]; got != "Method not allowed" {
			t.Fatalf("%s: unexpected error %v", method, got)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("%s: CORS header missing on error", method)
		}
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	w := do(tripRouter(testEnv(), ""), http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound || decode(t, w)["error"] != "Not found" {
		t.Fatalf("expected 404 Not found, got %d %s", w.Code, w.Body.String())
	}
}

func TestRelayUnconfiguredMakesNoCalls(t *testing.T) {
	_, calls := countingUpstream(t, http.StatusOK, `{}`, nil)
	w := do(tripRouter(testEnv(), ""), http.MethodPost, "/api/webhooks/trip", `{"x":1}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "Server configuration error" {
		t.Fatalf("unexpected error %v", got)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Fatalf("expected no upstream calls")
	}
}

func TestRelayForwardsAndMergesSuccess(t *testing.T) {
	var seen string
	srv, calls := countingUpstream(t, http.StatusOK, `{"id":"abc"}`, &seen)
	r := tripRouter(testEnv(), srv.URL)

	for _, path := range []string{"/api/webhooks/trip", "/api/trip-webhook"} {
		w := do(r, http.MethodPost, path, `{"destination":"Lisbon"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d %s", path, w.Code, w.Body.String())
		}
		body := decode(t, w)
		if body["success"] != true || body["id"] != "abc" || len(body) != 2 {
			t.Fatalf("%s: unexpected body %v", path, body)
		}
		if seen != `application/json {"destination":"Lisbon"}` {
			t.Fatalf("%s: upstream saw %q", path, seen)
		}
	}
	if atomic.LoadInt32(calls) != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", *calls)
	}
}

func TestRelayUpstreamFailurePassesThrough(t *testing.T) {
	srv, _ := countingUpstream(t, http.StatusServiceUnavailable, "unavailable", nil)
	w := do(tripRouter(testEnv(), srv.URL), http.MethodPost, "/api/webhooks/trip", `{"x":1}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	body := decode(t, w)
	if body["error"] != "Failed to process trip data" || body["details"] != "unavailable" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRelayRejectsInvalidJSON(t *testing.T) {
	srv, calls := countingUpstream(t, http.StatusOK, `{}`, nil)
	w := do(tripRouter(testEnv(), srv.URL), http.MethodPost, "/api/webhooks/trip", `{"x":`)
	if w.Code != http.StatusBadRequest || decode(t, w)["error"] != "Invalid JSON body" {
		t.Fatalf("expected 400 Invalid JSON body, got %d %s", w.Code, w.Body.String())
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Fatalf("invalid body was forwarded")
	}
}

func TestAdaptersWithoutCredentialsAre500(t *testing.T) {
	r := tripRouter(testEnv(), "")
	cases := map[string]string{
		"/api/geocode":          `{"location":"Paris"}`,
		"/api/images/search":    `{"query":"beach"}`,
		"/api/ai/itinerary":     `{"destination":"Rome"}`,
		"/api/recaptcha/verify": `{"token":"t"}`,
		"/api/push/send":        `{"user_ids":["u1"],"title":"Hi","message":"Trip updated"}`,
	}
	for path, body := range cases {
		w := do(r, http.MethodPost, path, body)
		if w.Code != http.StatusInternalServerError || decode(t, w)["error"] != "Server configuration error" {
			t.Fatalf("%s: expected configuration error, got %d %s", path, w.Code, w.Body.String())
		}
	}
}

func TestGeocodeMissingLocationIs400(t *testing.T) {
	env := testEnv()
	env.MapboxToken = "tok"
	w := do(tripRouter(env, ""), http.MethodPost, "/api/geocode", `{"location":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", w.Code, w.Body.String())
	}
}

func TestGeocodeEndpoint(t *testing.T) {
	srv, _ := countingUpstream(t, http.StatusOK,
		`{"features":[{"center":[2.3522,48.8566],"place_name":"Paris, France"}]}`, nil)
	env := testEnv()
	env.MapboxToken = "tok"
	env.MapboxBaseURL = srv.URL

	w := do(tripRouter(env, ""), http.MethodPost, "/api/geocode", `{"location":"Paris"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["success"] != true || body["latitude"] != 48.8566 || body["longitude"] != 2.3522 || body["place_name"] != "Paris, France" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestHealthAndIntegrations(t *testing.T) {
	env := testEnv()
	env.OpenAIAPIKey = "sk-test"
	r := tripRouter(env, "https://hooks.example.com/trip")

	if w := do(r, http.MethodGet, "/api/health", ""); w.Code != http.StatusOK || decode(t, w)["status"] != "ok" {
		t.Fatalf("health failed: %d %s", w.Code, w.Body.String())
	}

	w := do(r, http.MethodGet, "/api/integrations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "sk-test") || strings.Contains(w.Body.String(), "hooks.example.com") {
		t.Fatalf("integrations leaked a secret: %s", w.Body.String())
	}
	body := decode(t, w)
	integrations := body["integrations"].(map[string]any)
	if integrations["openai"] != true || integrations["mapbox"] != false {
		t.Fatalf("unexpected integrations %v", integrations)
	}
	hooks := body["webhooks"].([]any)
	if len(hooks) != 1 || hooks[0] != "trip" {
		t.Fatalf("unexpected webhooks %v", hooks)
	}
}

func TestEmailSyncSecondaryFailureReportsWarning(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE profiles SET email").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE newsletter_subscribers SET email").WillReturnError(errors.New("timeout"))
	mock.ExpectExec("UPDATE trip_collaborators SET email").WillReturnResult(sqlmock.NewResult(0, 1))

	env := testEnv()
	r := NewRouter(env, services.New(env, config.WebhookTable{}, nil, db))
	w := do(r, http.MethodPost, "/api/users/email-sync", `{"user_id":"u1","email":"a@b.co"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	warnings, _ := body["warnings"].([]any)
	if body["success"] != true || len(warnings) != 1 || !strings.HasPrefix(warnings[0].(string), "newsletter_subscribers.email") {
		t.Fatalf("unexpected body %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmailSyncWithoutDatabaseIs500(t *testing.T) {
	w := do(tripRouter(testEnv(), ""), http.MethodPost, "/api/users/email-sync", `{"user_id":"u1","email":"a@b.co"}`)
	if w.Code != http.StatusInternalServerError || decode(t, w)["error"] != "Server configuration error" {
		t.Fatalf("expected configuration error, got %d %s", w.Code, w.Body.String())
	}
}

func signedToken(t *testing.T, secret, sub, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":          sub,
		"exp":          time.Now().Add(time.Hour).Unix(),
		"app_metadata": map[string]any{"role": role},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestRoleUpdateRequiresAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.ExpectExec("UPDATE profiles SET role").WillReturnResult(sqlmock.NewResult(0, 1))

	env := testEnv()
	env.JWTSecret = "secret"
	r := NewRouter(env, services.New(env, config.WebhookTable{}, nil, db))

	send := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/users/role", strings.NewReader(`{"user_id":"u2","role":"editor"}`))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := send(signedToken(t, "secret", "u1", "user")); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", w.Code)
	}
	w := send(signedToken(t, "secret", "u1", "admin"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d %s", w.Code, w.Body.String())
	}
	if body := decode(t, w); body["role"] != "editor" || body["user_id"] != "u2" {
		t.Fatalf("unexpected body %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmailSyncRejectsOtherUser(t *testing.T) {
	env := testEnv()
	env.JWTSecret = "secret"
	r := NewRouter(env, services.New(env, config.WebhookTable{}, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/users/email-sync", strings.NewReader(`{"user_id":"u2","email":"a@b.co"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "secret", "u1", "user"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d %s", w.Code, w.Body.String())
	}
}
