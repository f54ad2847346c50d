package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// DefaultTimeout bounds every dependency ping.
const DefaultTimeout = 2 * time.Second

// Checker is a dependency reachable by ping, such as a database or cache client.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

// Ping implements Checker.
func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Response is the body written by GET /health.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheck is the health check handler.
type HealthCheck struct {
	checks  map[string]Checker
	timeout time.Duration
}

// New creates a health check pinging every named checker.
func New(checks map[string]Checker, timeout time.Duration) HealthCheck {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return HealthCheck{checks: checks, timeout: timeout}
}

// Handler is used to control the flow of GET /health endpoint
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check. Any failing dependency answers 503.
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := hc.Check(r.Context())

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Check pings every dependency in name order.
func (hc HealthCheck) Check(ctx context.Context) Response {
	resp := Response{Status: "ok"}
	if len(hc.checks) == 0 {
		return resp
	}

	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp.Checks = make(map[string]string, len(names))
	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, hc.timeout)
		err := hc.checks[name].Ping(pingCtx)
		cancel()

		if err != nil {
			resp.Status = "unavailable"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}
	return resp
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == "GET" && r.URL.Path == "/health"
}
