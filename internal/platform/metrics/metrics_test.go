package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())

	ts := httptest.NewServer(r)
	defer ts.Close()

	for _, p := range []string{"/items/1", "/items/2", "/ok"} {
		resp, err := http.Get(ts.URL + p)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `petboard_http_requests_total{method="GET",route="/items/{id}",status="418"} 2`)
	assert.Contains(t, out, `petboard_http_requests_total{method="GET",route="/ok",status="200"} 1`)
	assert.Contains(t, out, "petboard_http_request_duration_seconds_bucket")
	assert.Contains(t, out, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}
