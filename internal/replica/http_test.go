package replica

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_Post201IsSuccess(t *testing.T) {
	srv := newTestServer(t, http.StatusCreated)
	c := NewHTTPClient(srv.URL, time.Second)

	got := c.Post(context.Background(), "g1")

	assert.Equal(t, Outcome{Kind: Success, Status: 201}, got)
}

func TestHTTPClient_Post400IsAlreadyInDesiredState(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest)
	c := NewHTTPClient(srv.URL, time.Second)

	got := c.Post(context.Background(), "g1")

	assert.Equal(t, Outcome{Kind: AlreadyInDesiredState, Status: 400}, got)
}

func TestHTTPClient_Delete404IsAlreadyInDesiredState(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound)
	c := NewHTTPClient(srv.URL, time.Second)

	got := c.Delete(context.Background(), "g1")

	assert.Equal(t, Outcome{Kind: AlreadyInDesiredState, Status: 404}, got)
}

func TestHTTPClient_Delete400IsClientError(t *testing.T) {
	// On delete, 400 is NOT a no-op — only 404 is (spec.md §9's resolved
	// open question).
	srv := newTestServer(t, http.StatusBadRequest)
	c := NewHTTPClient(srv.URL, time.Second)

	got := c.Delete(context.Background(), "g1")

	assert.Equal(t, Outcome{Kind: ClientError, Status: 400}, got)
}

func TestHTTPClient_Post404IsClientError(t *testing.T) {
	// On create, 404 is NOT the no-op status — only 400 is.
	srv := newTestServer(t, http.StatusNotFound)
	c := NewHTTPClient(srv.URL, time.Second)

	got := c.Post(context.Background(), "g1")

	assert.Equal(t, Outcome{Kind: ClientError, Status: 404}, got)
}

func TestHTTPClient_5xxIsServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusServiceUnavailable)
	c := NewHTTPClient(srv.URL, time.Second)

	got := c.Post(context.Background(), "g1")

	assert.Equal(t, Outcome{Kind: ServerError, Status: 503}, got)
}

func TestHTTPClient_TimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 5*time.Millisecond)
	got := c.Post(context.Background(), "g1")

	assert.Equal(t, TransportError, got.Kind)
	require.Error(t, got.Cause)
}

func TestHTTPClient_ContextCancellationIsTransportError(t *testing.T) {
	srv := newTestServer(t, http.StatusOK)
	c := NewHTTPClient(srv.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := c.Post(ctx, "g1")

	assert.Equal(t, TransportError, got.Kind)
}

func TestHTTPClient_Get200IsSuccess(t *testing.T) {
	srv := newTestServer(t, http.StatusOK)
	c := NewHTTPClient(srv.URL, time.Second)

	got := c.Get(context.Background(), "g1")

	assert.Equal(t, Outcome{Kind: Success, Status: 200}, got)
}

func TestHTTPClient_Get404IsAlreadyInDesiredState(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound)
	c := NewHTTPClient(srv.URL, time.Second)

	got := c.Get(context.Background(), "g1")

	assert.Equal(t, Outcome{Kind: AlreadyInDesiredState, Status: 404}, got)
}
