package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thislife/planner/internal/model"
)

const testCode = "Alpha#12345"

func newTestClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithAccessCode(testCode),
		WithLocalStorePath(t.TempDir()),
		WithDebounce(30 * time.Millisecond),
	}, opts...)
	c, err := New(serverURL, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// snapshotServer implements just enough of the state endpoint for sync tests.
type snapshotServer struct {
	mu        atomic.Int64
	lastState map[string]string
}

func (s *snapshotServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Header.Get("x-access-code") != testCode {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"state":     s.lastState,
				"updatedAt": nil,
			})
		case http.MethodPut:
			var body struct {
				State map[string]string `json:"state"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			s.lastState = body.State
			s.mu.Add(1)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	})
}

func TestDebouncedPushCollapsesBurst(t *testing.T) {
	srv := &snapshotServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	c := newTestClient(t, ts.URL)

	// A burst of writes within the debounce window lands as one push.
	require.NoError(t, c.Local().Set("thislife-ideas", "[]"))
	require.NoError(t, c.Local().Set("thislife-settings", "{}"))
	require.NoError(t, c.Local().Set("thislife-connections", "{}"))

	require.Eventually(t, func() bool { return srv.mu.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), srv.mu.Load())
	assert.Equal(t, "[]", srv.lastState["thislife-ideas"])
}

func TestUnauthenticatedClientNeverPushes(t *testing.T) {
	srv := &snapshotServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	c, err := New(ts.URL, WithLocalStorePath(t.TempDir()), WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	require.NoError(t, c.Local().Set("thislife-ideas", "[]"))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int64(0), srv.mu.Load())
	assert.False(t, c.Push(context.Background()))
}

func TestPullAppliesRemoteState(t *testing.T) {
	srv := &snapshotServer{lastState: map[string]string{"thislife-ideas": `[{"id":"idea_1","text":"remote"}]`}}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	require.True(t, c.Pull(context.Background()))

	v, ok := c.Local().Get("thislife-ideas")
	require.True(t, ok)
	assert.Contains(t, v, "remote")
}

func TestPullDecodesWithoutContentTypeHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No Content-Type at all; the body is still the canonical snapshot.
		_, _ = w.Write([]byte(`{"state":{"thislife-settings":"{}"},"updatedAt":null}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	require.True(t, c.Pull(context.Background()))

	v, ok := c.Local().Get("thislife-settings")
	require.True(t, ok)
	assert.Equal(t, "{}", v)
}

func TestPullUndecodableBodyKeepsLocalState(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login required</html>"))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	require.NoError(t, c.Local().Set("thislife-ideas", `["local"]`))

	assert.False(t, c.Pull(context.Background()))
	v, _ := c.Local().Get("thislife-ideas")
	assert.Equal(t, `["local"]`, v)
}

func TestPullFailureStaysOnLocalState(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1") // nothing listens here
	require.NoError(t, c.Local().Set("thislife-ideas", `["local"]`))

	assert.False(t, c.Pull(context.Background()))
	v, _ := c.Local().Get("thislife-ideas")
	assert.Equal(t, `["local"]`, v)
}

func TestIdeasFallBackToLocalWhenUnreachable(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	ctx := context.Background()

	list, err := c.Ideas().Create(ctx, "candle shop", "E-commerce")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "candle shop", list[0].Text)

	// Newest first on the local path too.
	list, err = c.Ideas().Create(ctx, "newsletter", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newsletter", list[0].Text)

	list, err = c.Ideas().Delete(ctx, list[1].ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "newsletter", list[0].Text)
}

func TestBrandLifecycleLocalFallback(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	ctx := context.Background()

	pipeline, err := c.Brands().CreatePipeline(ctx, "Forge", "", "E-commerce", "")
	require.NoError(t, err)
	require.Len(t, pipeline, 1)

	cur, err := c.Brands().Promote(ctx, pipeline[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Forge", cur.Name)
	assert.Equal(t, 1, cur.Phase)

	_, err = c.Brands().CreatePipeline(ctx, "Second", "", "", "")
	require.NoError(t, err)
	pipeline, err = c.Brands().Pipeline(ctx)
	require.NoError(t, err)
	_, err = c.Brands().Promote(ctx, pipeline[0].ID)
	require.ErrorIs(t, err, model.ErrCurrentBrandExists)

	live, err := c.Brands().MarkAutomated(ctx)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, 3, live[0].Phase)
	assert.Equal(t, "current_brand_transition", live[0].Source)

	cur, err = c.Brands().Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	_, err = c.Brands().LogRevenue(ctx, live[0].ID, "2026-03-02", 0)
	require.NoError(t, err)
	_, err = c.Brands().LogRevenue(ctx, live[0].ID, "2026-03-03", 99.5)
	require.NoError(t, err)

	archive, err := c.Brands().CloseLive(ctx, live[0].ID, "automated_closed")
	require.NoError(t, err)
	require.Len(t, archive, 1)
	assert.Equal(t, 99.5, archive[0].TotalRevenue)
}

func TestPipelineOrderSurvivesDeleteThenCreateLocally(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	ctx := context.Background()

	var first *model.PipelineBrand
	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		list, err := c.Brands().CreatePipeline(ctx, name, "", "", "")
		require.NoError(t, err)
		require.Len(t, list, i+1)
		if i == 0 {
			first = list[0]
		}
	}

	_, err := c.Brands().DeletePipeline(ctx, first.ID)
	require.NoError(t, err)

	list, err := c.Brands().CreatePipeline(ctx, "Delta", "", "", "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[2].Order, "new brand takes one past the highest surviving order")

	list, err = c.Brands().Reorder(ctx, list[2].ID, "up")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Delta", "Gamma"}, []string{list[0].Name, list[1].Name, list[2].Name})

	orders := map[int]bool{}
	for _, b := range list {
		require.False(t, orders[b.Order], "order %d duplicated", b.Order)
		orders[b.Order] = true
	}
}
