package dataflow

import (
	"github.com/tickflow/tickflow/internal/core/circuit"
	"github.com/tickflow/tickflow/internal/core/component"
	"github.com/tickflow/tickflow/internal/core/mqueue"
	"github.com/tickflow/tickflow/internal/core/snapshot"
)

// Re-export core types for convenience, so callers wire whole pipelines
// without importing internal packages.

// Queue is a multi-reader broadcast buffer.
type Queue[T any] = mqueue.Queue[T]

// View is a reader's independent cursor into a Queue.
type View[T any] = mqueue.View[T]

// QueueConfig configures NewQueue.
type QueueConfig = mqueue.Config

// ErrDanglingView is reported by view operations whose queue no longer
// exists, including views that were never wired.
var ErrDanglingView = mqueue.ErrDanglingView

// NewQueue creates a standalone queue, e.g. to feed a circuit from outside.
func NewQueue[T any](label string) *Queue[T] {
	return mqueue.New[T](mqueue.Config{Label: label})
}

// Component is a schedulable unit driven by Tick.
type Component = component.Component

// Circuit is an insertion-ordered collection of components.
type Circuit = circuit.Circuit

// NewCircuit creates an empty circuit.
func NewCircuit(name string) *Circuit { return circuit.New(name) }

// Arity and port types, for callers assembling components through the
// low-level constructor.
type (
	Arity      = component.Arity
	InputPort  = component.InputPort
	OutputPort = component.OutputPort
	GroupSlot  = component.GroupSlot
	TickFunc   = component.TickFunc
	Adaptor    = component.Adaptor
)

const (
	ArityNone    = component.ArityNone
	AritySingle  = component.AritySingle
	ArityFixed   = component.ArityFixed
	ArityDynamic = component.ArityDynamic
)

// Construction errors.
var (
	ErrNoRole      = component.ErrNoRole
	ErrNilCallable = component.ErrNilCallable
)

// Opt is an optional value for dynamic output buses.
type Opt[T any] = component.Opt[T]

// Some wraps a present value.
func Some[T any](v T) Opt[T] { return component.Some(v) }

// None is an absent value.
func None[T any]() Opt[T] { return component.None[T]() }

// Skip marks an absent position in a fixed output group.
var Skip = component.Skip

// Typed port shapes.
type (
	Input[T any]     = component.Input[T]
	InputBus[T any]  = component.InputBus[T]
	Output[T any]    = component.Output[T]
	OutputBus[T any] = component.OutputBus[T]
	InputGroup       = component.InputGroup
	OutputGroup      = component.OutputGroup
)

// Typed component shapes.
type (
	Source[T any]             = component.Source[T]
	Sink[T any]               = component.Sink[T]
	Transform[In, Out any]    = component.Transform[In, Out]
	JoinSink                  = component.JoinSink
	JoinTransform[Out any]    = component.JoinTransform[Out]
	BusSink[T any]            = component.BusSink[T]
	BusTransform[In, Out any] = component.BusTransform[In, Out]
	FanSource[T any]          = component.FanSource[T]
	SplitSource               = component.SplitSource
)

// NewComponent builds a component from explicit ports and a type-erased
// callable; either port may be nil, but not both.
func NewComponent(name string, in InputPort, out OutputPort, fn TickFunc) (*Adaptor, error) {
	return component.New(name, in, out, fn)
}

// NewSource creates an output-only component producing at most one value
// per tick.
func NewSource[T any](name string, fn func() (T, bool)) (*Source[T], error) {
	return component.NewSource(name, fn)
}

// NewSink creates an input-only component consuming one value per tick when
// one is available.
func NewSink[T any](name string, fn func(T)) (*Sink[T], error) {
	return component.NewSink(name, fn)
}

// NewTransform creates a single-input, single-output component.
func NewTransform[In, Out any](name string, fn func(In) (Out, bool)) (*Transform[In, Out], error) {
	return component.NewTransform(name, fn)
}

// NewJoinSink creates a fixed-tuple consumer with all-or-nothing readiness.
func NewJoinSink(name string, fn func(values []interface{}), slots ...GroupSlot) (*JoinSink, error) {
	return component.NewJoinSink(name, fn, slots...)
}

// NewJoinTransform creates a fixed-tuple-input, single-output component.
func NewJoinTransform[Out any](name string, fn func(values []interface{}) (Out, bool), slots ...GroupSlot) (*JoinTransform[Out], error) {
	return component.NewJoinTransform(name, fn, slots...)
}

// NewBusSink creates a dynamic-bus consumer; partially collected batches
// persist across ticks.
func NewBusSink[T any](name string, fn func(batch []T)) (*BusSink[T], error) {
	return component.NewBusSink(name, fn)
}

// NewBusTransform creates a dynamic-bus-input, single-output component.
func NewBusTransform[In, Out any](name string, fn func(batch []In) (Out, bool)) (*BusTransform[In, Out], error) {
	return component.NewBusTransform(name, fn)
}

// NewFanSource creates an output-only component over a dynamic bus with
// lazily created queues.
func NewFanSource[T any](name string, fn func() []Opt[T]) (*FanSource[T], error) {
	return component.NewFanSource(name, fn)
}

// NewSplitSource creates an output-only component over a fixed group of
// typed outputs.
func NewSplitSource(name string, fn func() []interface{}, outs ...OutputPort) (*SplitSource, error) {
	return component.NewSplitSource(name, fn, outs...)
}

// Slot wraps a typed view as a position of a fixed input tuple.
func Slot[T any](v *View[T]) GroupSlot { return component.Slot(v) }

// Snapshot types, for capturing a queue's buffered backlog.
type (
	SnapshotRecord = snapshot.Record
	SnapshotSaver  = snapshot.Saver
)

// CaptureSnapshot builds a storable record of a queue's buffered backlog
// and view cursors.
func CaptureSnapshot[T any](q *Queue[T]) *SnapshotRecord { return snapshot.Capture(q) }

// ReplaySnapshot pushes a record's backlog into a queue, oldest first.
func ReplaySnapshot[T any](r *SnapshotRecord, q *Queue[T]) error { return snapshot.Replay(r, q) }

// NewInput creates an unconnected single input port.
func NewInput[T any]() *Input[T] { return component.NewInput[T]() }

// NewInputBus creates an empty dynamic input bus.
func NewInputBus[T any]() *InputBus[T] { return component.NewInputBus[T]() }

// NewOutput creates a single output port with a fresh owned queue.
func NewOutput[T any](label string) *Output[T] { return component.NewOutput[T](label) }

// NewOutputBus creates an empty dynamic output bus.
func NewOutputBus[T any](label string) *OutputBus[T] { return component.NewOutputBus[T](label) }
