package services

import (
	"context"
	"os"
	"time"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// HealthService reports process and data-source health
type HealthService struct {
	inputPath string
	startedAt time.Time
}

// NewHealthService creates a new health service. inputPath is the history
// export whose presence readiness reports on.
func NewHealthService(inputPath string) *HealthService {
	return &HealthService{
		inputPath: inputPath,
		startedAt: time.Now(),
	}
}

// HealthStatus is the JSON health report
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// HealthCheck reports basic process health
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
	}
}

// ReadinessStatus reports whether the configured input file is servable
type ReadinessStatus struct {
	Ready     bool   `json:"ready"`
	InputPath string `json:"input_path"`
	Reason    string `json:"reason,omitempty"`
}

// ReadinessCheck reports whether the server can serve series requests,
// which requires the configured input file to exist.
func (s *HealthService) ReadinessCheck(ctx context.Context) ReadinessStatus {
	if _, err := os.Stat(s.inputPath); err != nil {
		return ReadinessStatus{
			Ready:     false,
			InputPath: s.inputPath,
			Reason:    err.Error(),
		}
	}
	return ReadinessStatus{Ready: true, InputPath: s.inputPath}
}
