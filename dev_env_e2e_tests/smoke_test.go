//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// doJSON sends a JSON request with the access code header against the live
// service.
func doJSON(t *testing.T, method, url string, payload interface{}) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-access-code", accessCode())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

// Snapshot push then pull through the public API of a running stack.
func TestDevEnv_SnapshotRoundtrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	base := env("PLANNER_API", "http://localhost:8080")
	if err := ping(base + "/api/health"); err != nil {
		t.Skipf("service %s unreachable: %v", base, err)
	}
	waitForHealthy(t, base, 10*time.Second)

	marker := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	put := doJSON(t, http.MethodPut, base+"/api/state", map[string]interface{}{
		"state": map[string]interface{}{"thislife-e2e-marker": marker},
	})
	var ok struct {
		OK bool `json:"ok"`
	}
	mustJSON(t, put, &ok)
	if !ok.OK {
		t.Fatalf("snapshot PUT not acknowledged")
	}

	get := doJSON(t, http.MethodGet, base+"/api/state", nil)
	var snap struct {
		State     map[string]interface{} `json:"state"`
		UpdatedAt *time.Time             `json:"updatedAt"`
	}
	mustJSON(t, get, &snap)
	if snap.State["thislife-e2e-marker"] != marker {
		t.Fatalf("expected marker %q in snapshot, got %v", marker, snap.State["thislife-e2e-marker"])
	}
	if snap.UpdatedAt == nil {
		t.Fatalf("expected non-null updatedAt after PUT")
	}
}

// Idea create/list/delete through the public API.
func TestDevEnv_IdeaLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	base := env("PLANNER_API", "http://localhost:8080")
	if err := ping(base + "/api/health"); err != nil {
		t.Skipf("service %s unreachable: %v", base, err)
	}

	text := fmt.Sprintf("E2E idea %d", time.Now().UnixNano())
	created := doJSON(t, http.MethodPost, base+"/api/ideas", map[string]string{"text": text})
	var idea struct {
		ID string `json:"id"`
	}
	mustJSON(t, created, &idea)
	if idea.ID == "" {
		t.Fatalf("created idea has no id")
	}

	list := doJSON(t, http.MethodGet, base+"/api/ideas", nil)
	var listed struct {
		Ideas []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"ideas"`
		Count int `json:"count"`
	}
	mustJSON(t, list, &listed)
	found := false
	for _, it := range listed.Ideas {
		if it.ID == idea.ID && it.Text == text {
			found = true
		}
	}
	if !found {
		t.Fatalf("created idea %s not returned by list", idea.ID)
	}

	del := doJSON(t, http.MethodDelete, base+"/api/ideas/"+idea.ID, nil)
	_ = del.Body.Close()
	if del.StatusCode != http.StatusNoContent && del.StatusCode != http.StatusOK {
		t.Fatalf("delete idea: http %d", del.StatusCode)
	}
}

// Wrong access code must be rejected with the canonical error body.
func TestDevEnv_RejectsWrongAccessCode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	base := env("PLANNER_API", "http://localhost:8080")
	if err := ping(base + "/api/health"); err != nil {
		t.Skipf("service %s unreachable: %v", base, err)
	}

	req, err := http.NewRequest(http.MethodGet, base+"/api/state", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("x-access-code", "wrong-code")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/state: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "Unauthorized" {
		t.Fatalf("expected error %q, got %q", "Unauthorized", body.Error)
	}
}
