package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zero-day-ai/aas/model"
	"github.com/zero-day-ai/aas/registry"
)

// ProbeID is the identifier RegistryCheck looks up. It is not expected to
// exist; a miss proves the registry answered.
const ProbeID = "urn:x-aas-health:probe"

// DefaultSlowThreshold is the lookup latency above which a registry is
// reported as degraded.
const DefaultSlowThreshold = 500 * time.Millisecond

// CheckOption configures RegistryCheck.
type CheckOption func(*checkConfig)

type checkConfig struct {
	slow time.Duration
}

// WithSlowThreshold overrides DefaultSlowThreshold. Values <= 0 are ignored.
func WithSlowThreshold(d time.Duration) CheckOption {
	return func(c *checkConfig) {
		if d > 0 {
			c.slow = d
		}
	}
}

// RegistryCheck probes p with a single lookup of ProbeID. A hit or a miss is
// healthy, a slow answer is degraded and any other error is unhealthy.
//
// Example:
//
//	status := health.RegistryCheck(ctx, "redis", provider)
//	if status.IsUnhealthy() {
//	    log.Println("registry unreachable:", status.Details["error"])
//	}
func RegistryCheck(ctx context.Context, name string, p registry.Provider, opts ...CheckOption) Status {
	if p == nil {
		return NewUnhealthyStatus(fmt.Sprintf("registry '%s' is not configured", name), nil)
	}

	cfg := checkConfig{slow: DefaultSlowThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	_, err := p.GetIdentifiableContext(ctx, ProbeID)
	elapsed := time.Since(start)

	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return NewUnhealthyStatus(
			fmt.Sprintf("registry '%s' lookup failed", name),
			map[string]any{
				"registry": name,
				"error":    err.Error(),
			},
		)
	}

	if elapsed > cfg.slow {
		return NewDegradedStatus(
			fmt.Sprintf("registry '%s' answered slowly", name),
			map[string]any{
				"registry":  name,
				"latency":   elapsed.String(),
				"threshold": cfg.slow.String(),
			},
		)
	}

	return NewHealthyStatus(fmt.Sprintf("registry '%s' reachable", name))
}

// Combine aggregates multiple health checks into a single status.
func Combine(checks ...Status) Status {
	if len(checks) == 0 {
		return NewHealthyStatus("no checks provided")
	}

	var unhealthyChecks []string
	var degradedChecks []string
	var healthyCount int

	for _, check := range checks {
		msg := check.Message
		if msg == "" {
			msg = "unnamed check"
		}
		switch check.Status {
		case StatusUnhealthy:
			unhealthyChecks = append(unhealthyChecks, msg)
		case StatusDegraded:
			degradedChecks = append(degradedChecks, msg)
		case StatusHealthy:
			healthyCount++
		}
	}

	if len(unhealthyChecks) > 0 {
		return NewUnhealthyStatus(
			fmt.Sprintf("%d check(s) failed", len(unhealthyChecks)),
			map[string]any{
				"total":         len(checks),
				"unhealthy":     len(unhealthyChecks),
				"degraded":      len(degradedChecks),
				"healthy":       healthyCount,
				"failed_checks": unhealthyChecks,
			},
		)
	}

	if len(degradedChecks) > 0 {
		return NewDegradedStatus(
			fmt.Sprintf("%d check(s) degraded", len(degradedChecks)),
			map[string]any{
				"total":           len(checks),
				"degraded":        len(degradedChecks),
				"healthy":         healthyCount,
				"degraded_checks": degradedChecks,
			},
		)
	}

	return NewHealthyStatus(fmt.Sprintf("all %d check(s) passed", len(checks)))
}
