package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/thislife/planner/internal/auth"
	"github.com/thislife/planner/internal/store/sqlite"
)

const testAccessCode = "Alpha#12345"

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	return NewRouter(s, auth.NewSharedCode(testAccessCode))
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string, code string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if code != "" {
		req.Header.Set(auth.Header, code)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStateRequiresAccessCode(t *testing.T) {
	router := newTestRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := doJSON(t, router, method, "/api/state", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without code: status=%d", method, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] != "Unauthorized" {
			t.Fatalf("%s body = %q", method, rec.Body.String())
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/state", "", "wrong-code")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("mismatched code: status=%d", rec.Code)
	}
}

func TestStateAcceptsWhitespacePaddedCode(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/state", "", "  "+testAccessCode+" ")
	if rec.Code != http.StatusOK {
		t.Fatalf("padded code: status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestStateEmptyStore(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/state", "", testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var body struct {
		State     map[string]string `json:"state"`
		UpdatedAt *string           `json:"updatedAt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.State == nil || len(body.State) != 0 {
		t.Fatalf("state = %v, want empty object", body.State)
	}
	if body.UpdatedAt != nil {
		t.Fatalf("updatedAt = %v, want null", *body.UpdatedAt)
	}
	// The raw body must carry an explicit null, not omit the field.
	if !strings.Contains(rec.Body.String(), `"updatedAt":null`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestStateRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	put := doJSON(t, router, http.MethodPut, "/api/state",
		`{"state":{"thislife-ideas":"[]","thislife-settings":"{}"}}`, testAccessCode)
	if put.Code != http.StatusOK {
		t.Fatalf("put status=%d body=%s", put.Code, put.Body.String())
	}
	var ok map[string]bool
	if err := json.Unmarshal(put.Body.Bytes(), &ok); err != nil || !ok["ok"] {
		t.Fatalf("put body = %s", put.Body.String())
	}

	get := doJSON(t, router, http.MethodGet, "/api/state", "", testAccessCode)
	var body struct {
		State     map[string]string `json:"state"`
		UpdatedAt *string           `json:"updatedAt"`
	}
	if err := json.Unmarshal(get.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.State["thislife-ideas"] != "[]" || body.UpdatedAt == nil {
		t.Fatalf("get body = %s", get.Body.String())
	}
}

func TestStateMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/state", "", testAccessCode)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, PUT" {
		t.Fatalf("Allow = %q", allow)
	}
}

func TestHealthIsOpen(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health status=%d", rec.Code)
	}
}

func TestHealthReflectsBoundMonitor(t *testing.T) {
	router := newTestRouter(t)
	defer BindServiceHealth(func() bool { return true })

	BindServiceHealth(func() bool { return false })
	rec := doJSON(t, router, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded health status=%d, want 503", rec.Code)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Status != "unhealthy" {
		t.Fatalf("degraded health body = %s", rec.Body.String())
	}

	BindServiceHealth(func() bool { return true })
	rec = doJSON(t, router, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("recovered health status=%d, want 200", rec.Code)
	}
}
