// Package component provides the schedulable unit of the dataflow engine:
// a set of input ports, a set of owned output queues, and one user-supplied
// callable invoked at most once per tick.
//
// Arity is explicit and chosen at construction. An input or output side is
// either absent, a single port, a fixed heterogeneous group, or a dynamic
// homogeneous bus; the tick loop dispatches through the InputPort and
// OutputPort interfaces rather than through type introspection.
package component

// Arity describes the shape of a component's input or output side.
type Arity int

const (
	// ArityNone means the side is absent.
	ArityNone Arity = iota
	// AritySingle is one typed port.
	AritySingle
	// ArityFixed is a fixed-size heterogeneous group of ports.
	ArityFixed
	// ArityDynamic is a growable homogeneous bus of ports.
	ArityDynamic
)

// Component is a schedulable unit driven by an external tick.
type Component interface {
	// Name identifies the component in errors and metrics.
	Name() string

	// Tick runs the component at most once: collect input if any, invoke
	// the callable if ready, push output if any was produced.
	Tick() error
}

// InputPort collects one tick's worth of input.
type InputPort interface {
	Arity() Arity

	// Pull returns (value, true, nil) when a full input is ready,
	// (nil, false, nil) when it is not, and an error when a backing view
	// is dangling. A not-ready pull must not lose already collected data.
	Pull() (interface{}, bool, error)

	// Close releases the port's claim on everything it has not consumed.
	Close() error
}

// OutputPort publishes one tick's worth of output.
type OutputPort interface {
	Arity() Arity

	// Push publishes a value whose shape matches the port's arity.
	Push(value interface{}) error

	// Close closes the owned queues, making downstream views dangle.
	Close() error
}

// skipValue is the type of Skip.
type skipValue struct{}

// Skip marks an absent position in a fixed output group: the corresponding
// queue receives nothing this tick.
var Skip interface{} = skipValue{}

// Opt is an optional value for dynamic output buses, where per-position
// absence cannot be expressed by omitting the element.
type Opt[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] { return Opt[T]{Value: v, Valid: true} }

// None is an absent value.
func None[T any]() Opt[T] { return Opt[T]{} }
