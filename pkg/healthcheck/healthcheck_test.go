package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staticChecker(status Status, message string) Checker {
	return CheckerFunc(func(ctx context.Context) Check {
		return Check{Status: status, Message: message, LastChecked: time.Now()}
	})
}

func TestCheck_NoCheckers(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())

	response := hc.Check(context.Background())

	assert.Equal(t, StatusHealthy, response.Status)
	assert.Equal(t, "1.0.0", response.Version)
	assert.Empty(t, response.Checks)
}

func TestCheck_AggregatesWorstStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded wins over healthy", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins over degraded", []Status{StatusDegraded, StatusUnhealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := New("1.0.0", zap.NewNop())
			for i, s := range tt.statuses {
				hc.Register(string(rune('a'+i)), staticChecker(s, ""))
			}

			response := hc.Check(context.Background())

			assert.Equal(t, tt.want, response.Status)
			assert.Len(t, response.Checks, len(tt.statuses))
		})
	}
}

func TestCheck_CachesResponses(t *testing.T) {
	calls := 0
	hc := New("1.0.0", zap.NewNop())
	hc.Register("counted", CheckerFunc(func(ctx context.Context) Check {
		calls++
		return Check{Status: StatusHealthy, LastChecked: time.Now()}
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())

	assert.Equal(t, 1, calls)
}

func TestHandler(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.Register("ai", staticChecker(StatusHealthy, ""))

	w := httptest.NewRecorder()
	hc.Handler()(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, StatusHealthy, response.Status)
	require.Len(t, response.Checks, 1)
	assert.Equal(t, "ai", response.Checks[0].Name)
}

func TestHandler_UnhealthyIs503(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.Register("ai", staticChecker(StatusUnhealthy, "endpoint down"))

	w := httptest.NewRecorder()
	hc.Handler()(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type fakePinger struct{ err error }

func (f fakePinger) CheckReachability(ctx context.Context) error { return f.err }

func TestDependencyChecker(t *testing.T) {
	healthy := NewDependencyChecker(fakePinger{}).Check(context.Background())
	assert.Equal(t, StatusHealthy, healthy.Status)

	down := NewDependencyChecker(fakePinger{err: errors.New("no route")}).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, down.Status)
	assert.Equal(t, "no route", down.Message)
}

func TestKVChecker(t *testing.T) {
	store := map[string][]byte{}
	healthy := NewKVChecker(
		func(ctx context.Context, key string) ([]byte, error) { return store[key], nil },
		func(ctx context.Context, key string, value []byte) error { store[key] = value; return nil },
	).Check(context.Background())
	assert.Equal(t, StatusHealthy, healthy.Status)

	writeFails := NewKVChecker(
		func(ctx context.Context, key string) ([]byte, error) { return nil, nil },
		func(ctx context.Context, key string, value []byte) error { return errors.New("disk full") },
	).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, writeFails.Status)

	readFails := NewKVChecker(
		func(ctx context.Context, key string) ([]byte, error) { return nil, errors.New("read error") },
		func(ctx context.Context, key string, value []byte) error { return nil },
	).Check(context.Background())
	assert.Equal(t, StatusDegraded, readFails.Status)
}
