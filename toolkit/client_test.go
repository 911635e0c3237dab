package toolkit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pengine-e2e/toolkit"
)

func TestClientHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := toolkit.NewClient(srv.URL, time.Second)

	_, err := c.Post(context.Background(), "/x", "tok-123", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	// No token and no body: both headers stay absent.
	_, err = c.Get(context.Background(), "/x", "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Empty(t, gotContentType)
}

func TestClientResponseDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":    "Invalid access token",
			"error":      "Unauthorized",
			"statusCode": 401,
		})
	}))
	defer srv.Close()

	c := toolkit.NewClient(srv.URL, time.Second)
	resp, err := c.Get(context.Background(), "/whatever", "bad")
	require.NoError(t, err)
	assert.Equal(t, 401, resp.Status)
	assert.False(t, resp.Empty())

	env, err := resp.Envelope()
	require.NoError(t, err)
	assert.Equal(t, "Invalid access token", env.Message.One)
	assert.False(t, env.Message.Array)
	assert.Equal(t, "Unauthorized", env.Error)
	assert.Equal(t, 401, env.StatusCode)
}

func TestMessagesWireShapes(t *testing.T) {
	var env toolkit.ErrorEnvelope
	require.NoError(t, json.Unmarshal([]byte(`{"message":["a","b"],"error":"Bad Request","statusCode":400}`), &env))
	assert.True(t, env.Message.Array)
	assert.Equal(t, []string{"a", "b"}, env.Message.Many)
	assert.Equal(t, []string{"a", "b"}, env.Message.All())

	require.NoError(t, json.Unmarshal([]byte(`{"message":"only one","error":"Bad Request","statusCode":400}`), &env))
	assert.False(t, env.Message.Array)
	assert.Equal(t, []string{"only one"}, env.Message.All())

	var bad toolkit.ErrorEnvelope
	err := json.Unmarshal([]byte(`{"message":{"nested":true}}`), &bad)
	require.Error(t, err)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c := toolkit.NewClient(srv.URL, time.Second)
	_, err := c.Get(context.Background(), "/x", "")
	require.Error(t, err)

	var tErr *toolkit.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, http.MethodGet, tErr.Method)
}

func TestClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := toolkit.NewClient(srv.URL, time.Second)
	_, err := c.Get(ctx, "/slow", "")
	var tErr *toolkit.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "cause must unwrap to the context deadline")
}

func TestPathID(t *testing.T) {
	assert.Equal(t, "/admins/abc123", toolkit.PathID("/admins", "abc123"))
	// Hostile ids stay a single path segment.
	assert.Equal(t, "/admins/..%2F..%2Fadmin", toolkit.PathID("/admins", "../../admin"))
	assert.Equal(t, "/admins/", toolkit.PathID("/admins", ""))
}
