/*
Package observability turns binder lifecycle hooks into logs and metrics.

Hooks are plain domain.LifecycleHooks values, so hosts can combine the
provided ones with their own using Compose.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Compose(
		observability.LoggingHooks(logger),
		metrics.Hooks(),
	)
*/
package observability
