package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	c := NewClient(2 * time.Second)
	c.Backoff = time.Millisecond
	return c
}

func TestDoWithRetryRecoversFromServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient()
	resp, err := c.DoWithRetry(context.Background(), func() (*http.Request, error) {
		return c.NewRequest(context.Background(), http.MethodGet, srv.URL, nil)
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, int32(3), hits.Load())
}

func TestDoWithRetryDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient()
	_, err := c.DoWithRetry(context.Background(), func() (*http.Request, error) {
		return c.NewRequest(context.Background(), http.MethodGet, srv.URL, nil)
	})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.Equal(t, "bad key", se.Body)
	assert.Equal(t, int32(1), hits.Load())
}

func TestDoWithRetryGivesUp(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient()
	_, err := c.DoWithRetry(context.Background(), func() (*http.Request, error) {
		return c.NewRequest(context.Background(), http.MethodGet, srv.URL, nil)
	})
	require.Error(t, err)
	assert.Equal(t, int32(c.MaxAttempts), hits.Load())
}

func TestTransportErrorsDoNotLeakQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL + "/reverseGeocode/2,1.json?key=SECRET-KEY-123"
	srv.Close()

	c := newTestClient()
	c.MaxAttempts = 1
	_, err := c.DoWithRetry(context.Background(), func() (*http.Request, error) {
		return c.NewRequest(context.Background(), http.MethodGet, endpoint, nil)
	})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
	assert.Contains(t, err.Error(), "/reverseGeocode/2,1.json")

	var ue *url.Error
	assert.ErrorAs(t, err, &ue)
	assert.True(t, Retryable(err))
}
