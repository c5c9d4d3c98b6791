/*
Package observability turns editor hooks into metrics and structured logs.

Metrics.Hooks feeds prometheus counters for role changes, warnings and environment
loads; LogHooks writes the same events through slog. Combine fans one event out to
several hook sets.
*/
package observability
