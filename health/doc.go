// Package health reports whether the remote registries behind a runtime are
// reachable.
//
// # Health Check Functions
//
//   - RegistryCheck: probe a registry with a lookup and time it
//   - Combine: aggregate multiple health checks into a single status
//
// # Usage Example
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	overall := health.Combine(
//	    health.RegistryCheck(ctx, "redis", redisProvider),
//	    health.RegistryCheck(ctx, "etcd", etcdProvider, health.WithSlowThreshold(time.Second)),
//	)
//	if overall.IsUnhealthy() {
//	    log.Printf("Health check failed: %s", overall.Message)
//	    log.Printf("Details: %+v", overall.Details)
//	}
//
// # Health Status Priority
//
// When combining health checks with Combine(), the result follows this priority:
//
//   - Unhealthy: If any check is unhealthy, the combined result is unhealthy
//   - Degraded: If any check is degraded (and none unhealthy), the result is degraded
//   - Healthy: If all checks are healthy, the result is healthy
package health
