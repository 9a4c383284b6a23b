package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthyCheck(context.Context) error   { return nil }
func unhealthyCheck(context.Context) error { return errors.New("connection refused") }

func serveLive(h *Health) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	return w
}

func serveReady(h *Health) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ReadyEndpoint(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	return w
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) statusResponse {
	t.Helper()

	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLiveEndpoint_NoChecks(t *testing.T) {
	h := New()

	w := serveLive(h)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeStatus(t, w).Status)
}

func TestReadyEndpoint_NotReadyUntilMarked(t *testing.T) {
	h := New()

	w := serveReady(h)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decodeStatus(t, w).Status)

	h.SetReady(true)
	w = serveReady(h)
	assert.Equal(t, http.StatusOK, w.Code)

	// Graceful shutdown flips it back.
	h.SetReady(false)
	w = serveReady(h)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProbe_FailureThreshold(t *testing.T) {
	p := newProbe("db", time.Second, unhealthyCheck)
	ctx := context.Background()

	// Transient failures below the threshold do not flip the probe.
	p.run(ctx)
	p.run(ctx)
	assert.True(t, p.healthy.Load())

	p.run(ctx)
	assert.False(t, p.healthy.Load())
}

func TestProbe_RecoversAfterOneSuccess(t *testing.T) {
	fail := true
	p := newProbe("db", time.Second, func(context.Context) error {
		if fail {
			return errors.New("connection refused")
		}
		return nil
	})
	ctx := context.Background()

	for range failureThreshold {
		p.run(ctx)
	}
	require.False(t, p.healthy.Load())

	fail = false
	p.run(ctx)
	assert.True(t, p.healthy.Load())
}

func TestIsReady_RequiresHealthyProbes(t *testing.T) {
	h := New()
	h.AddReadinessCheck("db", time.Second, unhealthyCheck)
	h.SetReady(true)

	require.True(t, h.IsReady(), "probe starts healthy before any run")

	h.mu.RLock()
	p := h.readiness[0]
	h.mu.RUnlock()
	for range failureThreshold {
		p.run(context.Background())
	}

	assert.False(t, h.IsReady())

	w := serveReady(h)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeStatus(t, w)
	assert.Equal(t, "connection refused", resp.Checks["db"])
}

func TestStartStop(t *testing.T) {
	h := New()
	checked := make(chan struct{}, 1)
	h.AddLivenessCheck("ping", time.Second, func(context.Context) error {
		select {
		case checked <- struct{}{}:
		default:
		}
		return nil
	})

	h.Start(context.Background(), 10*time.Millisecond)
	defer h.Stop()

	select {
	case <-checked:
	case <-time.After(time.Second):
		t.Fatal("check never ran")
	}

	h.Stop()
	h.Stop() // idempotent
}

func TestLiveEndpoint_ReportsFailure(t *testing.T) {
	h := New()
	h.AddLivenessCheck("goroutines", time.Second, unhealthyCheck)

	h.mu.RLock()
	p := h.liveness[0]
	h.mu.RUnlock()
	for range failureThreshold {
		p.run(context.Background())
	}

	w := serveLive(h)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeStatus(t, w)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "connection refused", resp.Checks["goroutines"])
}
