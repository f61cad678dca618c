package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry

	// None of these may panic on a nil registry
	r.ObserveGateway("list", nil, time.Second)
	r.ObserveSubmission("accepted")
	r.ObserveFallback()
	r.ObserveApproval("Yes", nil)
	r.ObserveTask("replay_outbox", errors.New("boom"))
}

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()

	r.ObserveGateway("list", nil, 10*time.Millisecond)
	r.ObserveGateway("list", errors.New("down"), 10*time.Millisecond)
	r.ObserveGateway("list", errors.New("down"), 10*time.Millisecond)
	r.ObserveFallback()

	if got := testutil.ToFloat64(r.GatewayRequests.WithLabelValues("list", "ok")); got != 1 {
		t.Errorf("Expected 1 successful list call, got %v", got)
	}
	if got := testutil.ToFloat64(r.GatewayRequests.WithLabelValues("list", "error")); got != 2 {
		t.Errorf("Expected 2 failed list calls, got %v", got)
	}
	if got := testutil.ToFloat64(r.FeedFallbacks); got != 1 {
		t.Errorf("Expected 1 fallback, got %v", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveSubmission("failed")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `fitbhaskar_blog_submissions_total{outcome="failed"} 1`) {
		t.Error("Expected submissions counter in metrics output")
	}
}
