package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"fast-generic-api/internal/middleware"
	"fast-generic-api/pkg/log"
)

func newEngine(mw middleware.Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, log.RequestIDFromContext(c.Request.Context()))
	})
	return r
}

func serve(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	mw := middleware.New(log.NewNop(), middleware.Config{APIKeys: []string{" key-1 ", "", "key-2"}})
	r := newEngine(mw, mw.Auth())

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic key-1", http.StatusUnauthorized},
		{"unknown key", "Bearer nope", http.StatusUnauthorized},
		{"valid key", "Bearer key-1", http.StatusOK},
		{"second key", "Bearer key-2", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := map[string]string{}
			if tt.header != "" {
				h["Authorization"] = tt.header
			}
			w := serve(r, h)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusUnauthorized && !strings.HasPrefix(w.Header().Get("WWW-Authenticate"), "Bearer") {
				t.Errorf("missing WWW-Authenticate header")
			}
		})
	}
}

func TestAuth_DisabledWithoutKeys(t *testing.T) {
	mw := middleware.New(log.NewNop(), middleware.Config{})
	r := newEngine(mw, mw.Auth())

	if w := serve(r, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	mw := middleware.New(log.NewNop(), middleware.Config{})
	r := newEngine(mw, mw.RequestID(), mw.AccessLog())

	w := serve(r, map[string]string{middleware.HeaderRequestID: "abc-123"})
	if got := w.Header().Get(middleware.HeaderRequestID); got != "abc-123" {
		t.Errorf("expected propagated id, got %q", got)
	}
	if w.Body.String() != "abc-123" {
		t.Errorf("expected id in context, got %q", w.Body.String())
	}

	w = serve(r, nil)
	got := w.Header().Get(middleware.HeaderRequestID)
	if len(got) != 36 || w.Body.String() != got {
		t.Errorf("expected generated uuid, header %q body %q", got, w.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	// 60 rpm gives a burst of 6 and one token per second.
	mw := middleware.New(log.NewNop(), middleware.Config{RateLimitPerMin: 60})
	r := newEngine(mw, mw.RateLimit())

	for i := 0; i < 6; i++ {
		if w := serve(r, nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := serve(r, nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	mw := middleware.New(log.NewNop(), middleware.Config{})
	r := newEngine(mw, mw.RateLimit())

	for i := 0; i < 50; i++ {
		if w := serve(r, nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := middleware.New(log.NewNop(), middleware.Config{Registerer: reg})
	r := newEngine(mw, mw.Metrics())

	serve(r, nil)
	serve(r, nil)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var count float64
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == "/ping" && labels["status"] == "200" {
				count = m.GetCounter().GetValue()
			}
		}
	}
	if count != 2 {
		t.Errorf("expected 2 requests counted, got %v", count)
	}
}
