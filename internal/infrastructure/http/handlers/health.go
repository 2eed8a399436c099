package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AppInfo is reported by the root and liveness endpoints.
type AppInfo struct {
	Name    string
	Version string
	DocsURL string
}

// HealthHandler handles GET / and GET /health.
type HealthHandler struct {
	info AppInfo
	now  func() time.Time
}

func NewHealthHandler(info AppInfo) *HealthHandler {
	return &HealthHandler{info: info, now: time.Now}
}

type rootResponse struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	DocsURL     string `json:"docs_url"`
	HealthCheck string `json:"health_check"`
}

type livenessResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	AppName   string    `json:"app_name"`
}

// Root describes the API and where to find its docs.
//
// @Summary  API info
// @Tags     health
// @Produce  json
// @Success  200  {object}  rootResponse
// @Router   / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{
		Message:     "Welcome to " + h.info.Name,
		Version:     h.info.Version,
		DocsURL:     h.info.DocsURL,
		HealthCheck: "/health",
	})
}

// Liveness returns 200 while the process is up.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  livenessResponse
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, livenessResponse{
		Status:    "healthy",
		Version:   h.info.Version,
		Timestamp: h.now().UTC(),
		AppName:   h.info.Name,
	})
}

// Probe reports a size for a dependency, or an error when it cannot serve.
type Probe func(ctx context.Context) (int64, error)

// ReadinessHandler handles GET /health/ready.
type ReadinessHandler struct {
	probes map[string]Probe
}

func NewReadinessHandler(probes map[string]Probe) *ReadinessHandler {
	return &ReadinessHandler{probes: probes}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness runs every probe and answers 503 if any fails.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  readinessResponse
// @Failure  503  {object}  readinessResponse
// @Router   /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.probes))
	healthy := true
	for name, probe := range h.probes {
		n, err := probe(ctx)
		if err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok", Count: n}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
