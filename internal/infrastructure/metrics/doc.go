// Package metrics publishes engine counters through expvar so any HTTP
// server that mounts /debug/vars exposes them without extra wiring.
package metrics
