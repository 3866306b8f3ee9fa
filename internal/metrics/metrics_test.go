package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"":                            "unmatched",
		"/":                           "unmatched",
		"GET /api/users":              "/api/users",
		"PUT /api/users/{id}":         "/api/users/{id}",
		"/metrics":                    "/metrics",
		"DELETE /reports/leaves/{id}": "/reports/leaves/{id}",
	}
	for pattern, want := range tests {
		if got := routeLabel(pattern); got != want {
			t.Errorf("routeLabel(%q) = %q, want %q", pattern, got, want)
		}
	}
}

func TestInstrumentHandlerUsesPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := InstrumentHandler(mux)

	counter := httpRequests.WithLabelValues("GET", "/things/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("requests counted = %v, want 3", got)
	}
	if got := testutil.ToFloat64(httpInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}

type stubGateway struct {
	err error
}

func (s stubGateway) Select(context.Context, gateway.Query) ([]gateway.Row, error) {
	return nil, s.err
}

func (s stubGateway) Insert(context.Context, string, gateway.Row) ([]gateway.Row, error) {
	return []gateway.Row{{"id": 1}}, s.err
}

func (s stubGateway) Update(context.Context, string, gateway.Row, ...gateway.Filter) ([]gateway.Row, error) {
	return nil, s.err
}

func (s stubGateway) Delete(context.Context, string, ...gateway.Filter) error {
	return s.err
}

func TestInstrumentGateway(t *testing.T) {
	ctx := context.Background()
	okInsert := gatewayOps.WithLabelValues("metrics_test", "insert", "ok")
	failedSelect := gatewayOps.WithLabelValues("metrics_test", "select", "error")
	okBefore := testutil.ToFloat64(okInsert)
	failedBefore := testutil.ToFloat64(failedSelect)

	rows, err := InstrumentGateway(stubGateway{}).Insert(ctx, "metrics_test", gateway.Row{})
	if err != nil || len(rows) != 1 {
		t.Fatalf("Insert = %v, %v", rows, err)
	}

	boom := errors.New("boom")
	if _, err := InstrumentGateway(stubGateway{err: boom}).Select(ctx, gateway.From("metrics_test")); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom passed through", err)
	}

	if got := testutil.ToFloat64(okInsert) - okBefore; got != 1 {
		t.Errorf("ok inserts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failedSelect) - failedBefore; got != 1 {
		t.Errorf("failed selects = %v, want 1", got)
	}
}

func TestRecordLogin(t *testing.T) {
	c := logins.WithLabelValues("limited")
	before := testutil.ToFloat64(c)
	RecordLogin("limited")
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("logins = %v, want 1", got)
	}
}
