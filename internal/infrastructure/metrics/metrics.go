package metrics

import (
	"expvar"
)

// Queue metrics (counters) using expvar maps keyed by queue label.
var (
	queuePushed  = expvar.NewMap("tickflow_queue_pushed_total")
	queueDropped = expvar.NewMap("tickflow_queue_dropped_total")
	queueEvicted = expvar.NewMap("tickflow_queue_evicted_total")
)

// Circuit / component metrics.
var (
	ticksTotal     = new(expvar.Int)
	componentExecs = expvar.NewMap("tickflow_component_executions_total")
	snapshotsSaved = new(expvar.Int)
)

func init() {
	expvar.Publish("tickflow_ticks_total", ticksTotal)
	expvar.Publish("tickflow_snapshots_saved_total", snapshotsSaved)
}

// Queue helpers
func QueuePushed(label string, n int64)  { queuePushed.Add(label, n) }
func QueueDropped(label string, n int64) { queueDropped.Add(label, n) }
func QueueEvicted(label string, n int64) { queueEvicted.Add(label, n) }

// Circuit/component helpers
func IncTicks()                     { ticksTotal.Add(1) }
func ComponentExecuted(name string) { componentExecs.Add(name, 1) }
func IncSnapshotsSaved()            { snapshotsSaved.Add(1) }
