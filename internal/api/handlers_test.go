package api

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestIdeasCRUD(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/ideas", `{"text":"candle shop","category":"E-commerce"}`, testAccessCode)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rec.Code, rec.Body.String())
	}
	var idea struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &idea); err != nil || idea.ID == "" {
		t.Fatalf("create body = %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/ideas", `{"category":"no text"}`, testAccessCode)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create without text: status=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/ideas/"+idea.ID, `{"text":"scented candle shop"}`, testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/ideas", "", testAccessCode)
	var list struct {
		Ideas []struct {
			Text string `json:"text"`
		} `json:"ideas"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("list decode: %v", err)
	}
	if list.Count != 1 || list.Ideas[0].Text != "scented candle shop" {
		t.Fatalf("list body = %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/ideas/"+idea.ID, "", testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status=%d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/ideas/"+idea.ID, "", testAccessCode)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat delete status=%d", rec.Code)
	}
}

func TestBrandLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/brands/pipeline", `{"name":"Forge"}`, testAccessCode)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create pipeline: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var brand struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &brand); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/brands/pipeline/"+brand.ID+"/promote", "", testAccessCode)
	if rec.Code != http.StatusCreated {
		t.Fatalf("promote: status=%d body=%s", rec.Code, rec.Body.String())
	}

	// Singleton slot occupied: a second pipeline brand cannot be promoted.
	rec = doJSON(t, router, http.MethodPost, "/api/brands/pipeline", `{"name":"Second"}`, testAccessCode)
	var second struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &second)
	rec = doJSON(t, router, http.MethodPost, "/api/brands/pipeline/"+second.ID+"/promote", "", testAccessCode)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second promote: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/brands/current/logs", `{"text":"first supplier call"}`, testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("daily log: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/brands/current/automate", "", testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("automate: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var live struct {
		ID     string `json:"id"`
		Phase  int    `json:"phase"`
		Source string `json:"source"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &live); err != nil {
		t.Fatalf("decode live: %v", err)
	}
	if live.Phase != 3 || live.Source != "current_brand_transition" {
		t.Fatalf("live = %+v", live)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/brands/current", "", testAccessCode)
	var cur struct {
		Brand *json.RawMessage `json:"brand"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cur); err != nil {
		t.Fatalf("decode current: %v", err)
	}
	if cur.Brand != nil && string(*cur.Brand) != "null" {
		t.Fatalf("current after automate = %s", rec.Body.String())
	}

	// Explicit zero revenue is accepted; missing amount is not.
	rec = doJSON(t, router, http.MethodPost, "/api/brands/live/"+live.ID+"/revenue", `{"date":"2026-03-02","amount":0}`, testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("zero revenue: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/api/brands/live/"+live.ID+"/revenue", `{"date":"2026-03-03"}`, testAccessCode)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing amount: status=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/brands/live/"+live.ID+"/close", `{"reason":"automated_closed"}`, testAccessCode)
	if rec.Code != http.StatusCreated {
		t.Fatalf("close: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/brands/archive", "", testAccessCode)
	var archive struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &archive); err != nil || archive.Count != 1 {
		t.Fatalf("archive body = %s", rec.Body.String())
	}
}

func TestPipelineOrderStaysUniqueAfterDelete(t *testing.T) {
	router := newTestRouter(t)

	ids := map[string]string{}
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		rec := doJSON(t, router, http.MethodPost, "/api/brands/pipeline", `{"name":"`+name+`"}`, testAccessCode)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: status=%d body=%s", name, rec.Code, rec.Body.String())
		}
		var brand struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &brand); err != nil {
			t.Fatalf("create %s body = %s", name, rec.Body.String())
		}
		ids[name] = brand.ID
	}

	rec := doJSON(t, router, http.MethodDelete, "/api/brands/pipeline/"+ids["Alpha"], "", testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/brands/pipeline", `{"name":"Delta"}`, testAccessCode)
	var delta struct {
		ID    string `json:"id"`
		Order int    `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &delta); err != nil {
		t.Fatalf("create Delta body = %s", rec.Body.String())
	}
	if delta.Order != 3 {
		t.Fatalf("Delta order = %d, want 3 (one past the highest surviving order)", delta.Order)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/brands/pipeline/"+delta.ID+"/reorder", `{"direction":"up"}`, testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/brands/pipeline", "", testAccessCode)
	var list struct {
		Brands []struct {
			Name  string `json:"name"`
			Order int    `json:"order"`
		} `json:"brands"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("list body = %s", rec.Body.String())
	}
	if len(list.Brands) != 3 {
		t.Fatalf("pipeline length = %d, want 3", len(list.Brands))
	}
	wantNames := []string{"Beta", "Delta", "Gamma"}
	seen := map[int]bool{}
	for i, b := range list.Brands {
		if b.Name != wantNames[i] {
			t.Fatalf("position %d = %s (order %d), want %s", i, b.Name, b.Order, wantNames[i])
		}
		if seen[b.Order] {
			t.Fatalf("duplicate order %d in pipeline", b.Order)
		}
		seen[b.Order] = true
	}
}

func TestPlanningAbsentKeyIsNull(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/planning/monthly/2026-03", "", testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var body struct {
		Plan *json.RawMessage `json:"plan"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Plan != nil && string(*body.Plan) != "null" {
		t.Fatalf("plan = %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, "/api/planning/monthly/2026-03", `{"goals":["launch"],"notes":"go"}`, testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodGet, "/api/planning/monthly/2026-03", "", testAccessCode)
	var saved struct {
		Plan struct {
			Goals []string `json:"goals"`
		} `json:"plan"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil || len(saved.Plan.Goals) != 1 {
		t.Fatalf("saved body = %s", rec.Body.String())
	}
}

func TestTimetableRangeValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/logs/timetable",
		`{"date":"2026-03-05","taskId":"w1","status":"complete","zone":"WORKING"}`, testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/logs/timetable?from=2026-03-01&to=2026-03-07", "", testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("range status=%d", rec.Code)
	}
	var body struct {
		Logs map[string]map[string]struct {
			Status string `json:"status"`
		} `json:"logs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Logs["2026-03-05"]["w1"].Status != "complete" {
		t.Fatalf("range body = %s", rec.Body.String())
	}

	// Inverted range is valid and empty.
	rec = doJSON(t, router, http.MethodGet, "/api/logs/timetable?from=2026-03-07&to=2026-03-01", "", testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("inverted range status=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/logs/timetable?from=bogus&to=2026-03-01", "", testAccessCode)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bogus range status=%d", rec.Code)
	}
}

func TestSettingsDefaults(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/settings", "", testAccessCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var body struct {
		Settings struct {
			DreamVersionDescription string `json:"dreamVersionDescription"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Settings.DreamVersionDescription == "" {
		t.Fatalf("settings body = %s", rec.Body.String())
	}
}
