package healthcheck

import (
	"context"
	"time"
)

// Pinger is anything that can verify connectivity to a dependency.
type Pinger interface {
	CheckReachability(ctx context.Context) error
}

// DependencyChecker wraps a Pinger as a health checker.
type DependencyChecker struct {
	pinger Pinger
}

// NewDependencyChecker creates a checker for an external dependency.
func NewDependencyChecker(pinger Pinger) *DependencyChecker {
	return &DependencyChecker{pinger: pinger}
}

// Check implements Checker
func (c *DependencyChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Status:      StatusHealthy,
		LastChecked: start,
	}

	if err := c.pinger.CheckReachability(ctx); err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}

	check.Duration = time.Since(start) / time.Millisecond
	return check
}

// KVChecker verifies that the key-value store round-trips a probe key.
type KVChecker struct {
	get func(ctx context.Context, key string) ([]byte, error)
	set func(ctx context.Context, key string, value []byte) error
}

// NewKVChecker creates a checker over raw store accessors.
func NewKVChecker(
	get func(ctx context.Context, key string) ([]byte, error),
	set func(ctx context.Context, key string, value []byte) error,
) *KVChecker {
	return &KVChecker{get: get, set: set}
}

// Check implements Checker
func (c *KVChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Status:      StatusHealthy,
		LastChecked: start,
	}

	const probeKey = "healthcheck:probe"
	if err := c.set(ctx, probeKey, []byte("ok")); err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	} else if _, err := c.get(ctx, probeKey); err != nil {
		check.Status = StatusDegraded
		check.Message = err.Error()
	}

	check.Duration = time.Since(start) / time.Millisecond
	return check
}
