package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestMiddleware_NamesSpanByRoutePattern(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	r := chi.NewRouter()
	r.Use(Middleware(tp))
	r.Get("/announcements/{announcementID}/comments", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/announcements/abc/comments", nil))
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := rec.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "GET /announcements/{announcementID}/comments", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.status_code", http.StatusOK))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, "GET /boom", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestInit_Exporters(t *testing.T) {
	ctx := context.Background()

	tp, shutdown, err := Init(ctx, Options{ServiceName: "test"})
	require.NoError(t, err)
	assert.NotNil(t, tp)
	assert.NoError(t, shutdown(ctx))

	tp, shutdown, err = Init(ctx, Options{ServiceName: "test", Exporter: "stdout", SampleRatio: 1})
	require.NoError(t, err)
	assert.NotNil(t, tp)
	assert.NoError(t, shutdown(ctx))

	_, _, err = Init(ctx, Options{Exporter: "zipkin"})
	assert.Error(t, err)
}
