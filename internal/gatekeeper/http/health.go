package http

import (
	"net/http"
	"time"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
)

// HealthHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Minimal health signal for external callers; always 200 while the process serves traffic
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	gatesdk.HealthResponse	"ok"
//	@Router			/health [get].
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, gatesdk.HealthResponse{OK: true})
	}
}

// LivezHandler godoc
//
//	@Summary		Liveness Probe Endpoint
//	@Description	Returns service status, uptime, and version; 200 whenever the process is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	gatesdk.StatusResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, gatesdk.StatusResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Probe Endpoint
//	@Description	Checks the profile database connection; 503 until the service can do useful work
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	gatesdk.StatusResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	gatesdk.StatusResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &gatesdk.StatusChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, gatesdk.StatusResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
