/*
Package observability provides lifecycle hook implementations for a mockcoach.Coach.

Metrics exports callback counts, callback durations and window transitions to Prometheus.
LogHooks writes the same events to a structured logger. Both return domain.LifecycleHooks
values, which can be combined with Merge and passed to mockcoach.WithLifecycleHooks.
*/
package observability
