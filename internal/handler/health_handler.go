package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"portableworkout-web/internal/cache"
	"portableworkout-web/internal/shopapi"
)

// Health returns basic health check
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// HealthCheckResult represents the result of a dependency check
type HealthCheckResult struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Ready returns readiness including the backend API and the optional cache.
// A degraded cache does not fail readiness; an unreachable backend does.
func Ready(api *shopapi.Client, products *cache.ProductCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		backend := checkBackend(ctx, api)
		checks := map[string]HealthCheckResult{
			"backend": backend,
		}
		if products != nil {
			checks["cache"] = checkCache(ctx, products)
		}

		response := map[string]any{
			"timestamp": time.Now().Format(time.RFC3339),
			"checks":    checks,
		}

		w.Header().Set("Content-Type", "application/json")
		if backend.Status == "up" {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}

// checkBackend probes the smallest read the backend offers; readiness is
// polled, so the full catalog would be needless load.
func checkBackend(ctx context.Context, api *shopapi.Client) HealthCheckResult {
	start := time.Now()
	_, err := api.FeaturedProducts(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return HealthCheckResult{Status: "down", LatencyMs: latency, Error: err.Error()}
	}
	return HealthCheckResult{Status: "up", LatencyMs: latency}
}

func checkCache(ctx context.Context, products *cache.ProductCache) HealthCheckResult {
	start := time.Now()
	err := products.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return HealthCheckResult{Status: "down", LatencyMs: latency, Error: err.Error()}
	}
	return HealthCheckResult{Status: "up", LatencyMs: latency}
}
