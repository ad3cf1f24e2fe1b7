// Package registry resolves identifiables held outside the local process.
//
// A registry stores a Descriptor for every remote identifiable: its
// identifier, idShort, model type and the endpoint that serves it. Providers
// implement model.ObjectProvider, so a model.ObjectProviderMultiplexer can put
// a remote registry behind the local object store and the identifier
// generators see both.
//
// Two backends are available:
//
//   - RedisProvider keeps descriptors as JSON in a single Redis hash.
//   - EtcdProvider keeps one etcd key per descriptor under a common prefix.
//
// Misses are reported with an error wrapping model.ErrNotFound. Transport
// failures are returned as they are, so a multiplexer stops at them instead
// of falling through to the next provider.
//
// # Decorators
//
// Instrument wraps a Provider with OpenTelemetry spans and a lookup counter.
// Cached keeps successful lookups in a TTL cache.
//
//	p, err := registry.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	p = registry.Cached(p, time.Minute)
//	mux := model.NewObjectProviderMultiplexer(store, p)
//
// All providers in this package are safe for concurrent use.
package registry
