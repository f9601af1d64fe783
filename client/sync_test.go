package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyServer refuses snapshot puts until healthy is flipped, while always
// answering the health probe truthfully.
type flakyServer struct {
	healthy atomic.Bool
	puts    atomic.Int64
}

func (f *flakyServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method == http.MethodPut {
			f.puts.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
		}
	})
}

func TestReconnectWatcherFlushesWhenServiceReturns(t *testing.T) {
	srv := &flakyServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	c := newTestClient(t, ts.URL)

	// The first push fails and hands off to the reconnect watcher.
	require.NoError(t, c.Local().Set("thislife-ideas", "[]"))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int64(0), srv.puts.Load())

	srv.healthy.Store(true)
	require.Eventually(t, func() bool { return srv.puts.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestScheduleReplacesPendingTimer(t *testing.T) {
	srv := &snapshotServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	c := newTestClient(t, ts.URL, WithDebounce(60*time.Millisecond))

	// Keep re-arming inside the window: no push may fire until writes stop.
	for i := 0; i < 4; i++ {
		require.NoError(t, c.Local().Set("thislife-connections", "{}"))
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, int64(0), srv.mu.Load())

	require.Eventually(t, func() bool { return srv.mu.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestCloseStopsPendingPush(t *testing.T) {
	srv := &snapshotServer{}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	c := newTestClient(t, ts.URL, WithDebounce(100*time.Millisecond))
	require.NoError(t, c.Local().Set("thislife-ideas", "[]"))
	require.NoError(t, c.Close())

	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int64(0), srv.mu.Load())
}
