package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/command"
	"github.com/lwmacct/251207-go-pkg-stringity/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-stringity/internal/config"
)

func init() {
	baseBackoff = time.Millisecond
}

func newTestClient(t *testing.T, url string, retries int) *Client {
	t.Helper()

	return New(config.ClientConfig{URL: url + "/", Timeout: 5 * time.Second, Retries: retries})
}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	srv := httptest.NewServer(server.NewHandler(&cfg))
	t.Cleanup(srv.Close)

	return srv
}

func TestClientCall(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv.URL, 0)

	data, err := c.Call(context.Background(), "slice", []byte(`{"text":"The quick brown fox","start":0,"end":2}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"The quick","found":true}`, string(data))

	data, err = c.Call(context.Background(), "count", []byte(`{"text":"a b c"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":3}`, string(data))
}

func TestClientCallErrors(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv.URL, 0)

	_, err := c.Call(context.Background(), "eval", []byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownOp)

	_, err = c.Call(context.Background(), "trim", []byte(`{"text":`))
	require.Error(t, err)

	_, err = c.Call(context.Background(), "slice", []byte(`{"text":"abc","start":2,"end":1}`))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "range", apiErr.Kind)
}

func TestClientRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	data, err := newTestClient(t, srv.URL, 3).Get(context.Background(), "health")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, 2).Get(context.Background(), "/health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientNoRetryOnBadRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"bad","kind":"request"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, 3).Get(context.Background(), "/")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL, 3).Get(ctx, "/health")
	require.ErrorIs(t, err, context.Canceled)
}

func runClient(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := &cli.Command{
		Name:      "stringity",
		Flags:     command.GlobalFlags(),
		Commands:  []*cli.Command{Command},
		Writer:    &out,
		ErrWriter: io.Discard,
		Reader:    strings.NewReader(stdin),
	}
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	err := root.Run(context.Background(), append([]string{"stringity", "--config", missing}, args...))

	return out.String(), err
}

func TestClientCommand(t *testing.T) {
	srv := newAPIServer(t)

	out, err := runClient(t, "", "client", "--client-url", srv.URL, "health")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	out, err = runClient(t, "", "client", "--client-url", srv.URL, "call", "trim", `{"text":"a   b"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"a b"}`, out)

	out, err = runClient(t, `{"text":"hello"}`, "client", "--client-url", srv.URL, "call", "classify")
	require.NoError(t, err)
	assert.JSONEq(t, `{"scope":"symbols"}`, out)

	_, err = runClient(t, "", "client", "--client-url", srv.URL, "call", "slice", `{"text":"abc","start":"x","end":"c"}`)
	require.ErrorIs(t, err, command.ErrNoValue)
}
