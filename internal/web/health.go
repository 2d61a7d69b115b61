package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type StorePinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	store      StorePinger
	emsHost    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewHealthChecker(store StorePinger, emsHost string, log *slog.Logger) *HealthChecker {
	clientTO := 5
	return &HealthChecker{
		store:      store,
		emsHost:    emsHost,
		httpClient: &http.Client{Timeout: time.Duration(clientTO) * time.Second},
		log:        log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	var err error
	status := make(map[string]string)
	overallStatus := http.StatusOK

	if err = h.store.Ping(req.Context()); err != nil {
		status["session_store"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: session store ping", "error", err)
	} else {
		status["session_store"] = "ok"
	}

	resp, err := h.httpClient.Head(h.emsHost) //nolint:noctx // ctx is overhead for this healthcheck
	switch {
	case err != nil:
		status["ems_api"] = "unreachable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(
			req.Context(),
			"Health check failed: EMS API unreachable",
			"host",
			h.emsHost,
			"error",
			err,
		)
	case resp.StatusCode >= http.StatusInternalServerError:
		status["ems_api"] = "degraded"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(
			req.Context(),
			"Health check failed: EMS API returned error status",
			"host",
			h.emsHost,
			"status_code",
			resp.StatusCode,
		)
	default:
		status["ems_api"] = "ok"
	}
	if resp != nil {
		if err = resp.Body.Close(); err != nil {
			h.log.WarnContext(req.Context(), "Failed to close response body", "error", err)
		}
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
