package component

import (
	imetrics "github.com/tickflow/tickflow/internal/infrastructure/metrics"
	"github.com/tickflow/tickflow/pkg/validation"
)

// Spec holds the validated construction parameters of a component.
type Spec struct {
	Name string `json:"name" validate:"required,component_name"`
}

// TickFunc is the type-erased callable of an Adaptor. It receives the
// collected input (nil for output-only components), and returns the value
// to publish plus whether to publish it at all.
type TickFunc func(input interface{}) (output interface{}, emit bool, err error)

// Adaptor turns an input port, an output port, and a callable into a
// Component. Which roles exist decides the tick behavior:
//
//   - input only: pull; if ready, invoke and discard the return value
//   - output only: invoke unconditionally and push what it emits
//   - both: pull; if ready, invoke and push; if not ready, skip the
//     callable entirely this tick
//
// A component with neither role is rejected at construction.
type Adaptor struct {
	name string
	in   InputPort
	out  OutputPort
	fn   TickFunc
}

// New builds a component from explicit ports and a callable. Either port
// may be nil, but not both. Most callers want the typed constructors
// (NewSource, NewSink, NewTransform, ...) instead.
func New(name string, in InputPort, out OutputPort, fn TickFunc) (*Adaptor, error) {
	if err := validation.ValidateStruct(Spec{Name: name}); err != nil {
		return nil, err
	}
	if in == nil && out == nil {
		return nil, ErrNoRole
	}
	if fn == nil {
		return nil, ErrNilCallable
	}

	return &Adaptor{name: name, in: in, out: out, fn: fn}, nil
}

// Name implements Component.
func (a *Adaptor) Name() string { return a.name }

// Tick implements Component.
func (a *Adaptor) Tick() error {
	var input interface{}

	if a.in != nil {
		v, ready, err := a.in.Pull()
		if err != nil {
			return err
		}
		if !ready {
			return nil
		}
		input = v
	}

	output, emit, err := a.fn(input)
	if err != nil {
		return err
	}
	imetrics.ComponentExecuted(a.name)

	if a.out != nil && emit {
		if err := a.out.Push(output); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the component's side of the graph: owned output queues are
// closed (downstream views dangle from then on) and input claims released.
func (a *Adaptor) Close() error {
	var first error
	if a.out != nil {
		if err := a.out.Close(); err != nil {
			first = err
		}
	}
	if a.in != nil {
		if err := a.in.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Source is an output-only component with a single output.
type Source[T any] struct {
	*Adaptor
	Out *Output[T]
}

// NewSource creates a component that may produce one value per tick.
// Returning ok=false means no value is published that tick.
func NewSource[T any](name string, fn func() (T, bool)) (*Source[T], error) {
	out := NewOutput[T](name)
	ad, err := New(name, nil, out, func(interface{}) (interface{}, bool, error) {
		v, ok := fn()
		return v, ok, nil
	})
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	return &Source[T]{Adaptor: ad, Out: out}, nil
}

// Sink is an input-only component with a single input.
type Sink[T any] struct {
	*Adaptor
	In *Input[T]
}

// NewSink creates a component that consumes one value per tick when one is
// available.
func NewSink[T any](name string, fn func(T)) (*Sink[T], error) {
	in := NewInput[T]()
	ad, err := New(name, in, nil, func(v interface{}) (interface{}, bool, error) {
		fn(v.(T))
		return nil, false, nil
	})
	if err != nil {
		return nil, err
	}
	return &Sink[T]{Adaptor: ad, In: in}, nil
}

// Transform is a single-input, single-output component.
type Transform[In, Out any] struct {
	*Adaptor
	In  *Input[In]
	Out *Output[Out]
}

// NewTransform creates a component that maps each consumed value to at most
// one produced value.
func NewTransform[In, Out any](name string, fn func(In) (Out, bool)) (*Transform[In, Out], error) {
	in := NewInput[In]()
	out := NewOutput[Out](name)
	ad, err := New(name, in, out, func(v interface{}) (interface{}, bool, error) {
		res, ok := fn(v.(In))
		return res, ok, nil
	})
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	return &Transform[In, Out]{Adaptor: ad, In: in, Out: out}, nil
}

// JoinSink is an input-only component over a fixed heterogeneous tuple.
type JoinSink struct {
	*Adaptor
	In *InputGroup
}

// NewJoinSink creates a component invoked with one value per slot, in
// declared order, only when every slot is ready.
func NewJoinSink(name string, fn func(values []interface{}), slots ...GroupSlot) (*JoinSink, error) {
	in := NewInputGroup(slots...)
	ad, err := New(name, in, nil, func(v interface{}) (interface{}, bool, error) {
		fn(v.([]interface{}))
		return nil, false, nil
	})
	if err != nil {
		return nil, err
	}
	return &JoinSink{Adaptor: ad, In: in}, nil
}

// JoinTransform is a fixed-tuple-input, single-output component.
type JoinTransform[Out any] struct {
	*Adaptor
	In  *InputGroup
	Out *Output[Out]
}

// NewJoinTransform creates a component that combines one value per slot
// into at most one produced value.
func NewJoinTransform[Out any](name string, fn func(values []interface{}) (Out, bool), slots ...GroupSlot) (*JoinTransform[Out], error) {
	in := NewInputGroup(slots...)
	out := NewOutput[Out](name)
	ad, err := New(name, in, out, func(v interface{}) (interface{}, bool, error) {
		res, ok := fn(v.([]interface{}))
		return res, ok, nil
	})
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	return &JoinTransform[Out]{Adaptor: ad, In: in, Out: out}, nil
}

// BusSink is an input-only component over a dynamic homogeneous bus.
type BusSink[T any] struct {
	*Adaptor
	In *InputBus[T]
}

// NewBusSink creates a component invoked with the full batch once every bus
// position has contributed. Partially collected batches persist across
// ticks.
func NewBusSink[T any](name string, fn func(batch []T)) (*BusSink[T], error) {
	in := NewInputBus[T]()
	ad, err := New(name, in, nil, func(v interface{}) (interface{}, bool, error) {
		fn(v.([]T))
		return nil, false, nil
	})
	if err != nil {
		return nil, err
	}
	return &BusSink[T]{Adaptor: ad, In: in}, nil
}

// BusTransform is a dynamic-bus-input, single-output component.
type BusTransform[In, Out any] struct {
	*Adaptor
	In  *InputBus[In]
	Out *Output[Out]
}

// NewBusTransform creates a component that folds each completed batch into
// at most one produced value.
func NewBusTransform[In, Out any](name string, fn func(batch []In) (Out, bool)) (*BusTransform[In, Out], error) {
	in := NewInputBus[In]()
	out := NewOutput[Out](name)
	ad, err := New(name, in, out, func(v interface{}) (interface{}, bool, error) {
		res, ok := fn(v.([]In))
		return res, ok, nil
	})
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	return &BusTransform[In, Out]{Adaptor: ad, In: in, Out: out}, nil
}

// FanSource is an output-only component over a dynamic homogeneous bus.
type FanSource[T any] struct {
	*Adaptor
	Out *OutputBus[T]
}

// NewFanSource creates a component that publishes element i of its result
// to bus queue i, creating queues lazily. None positions publish nothing.
func NewFanSource[T any](name string, fn func() []Opt[T]) (*FanSource[T], error) {
	out := NewOutputBus[T](name)
	ad, err := New(name, nil, out, func(interface{}) (interface{}, bool, error) {
		return fn(), true, nil
	})
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	return &FanSource[T]{Adaptor: ad, Out: out}, nil
}

// SplitSource is an output-only component over a fixed heterogeneous group.
type SplitSource struct {
	*Adaptor
	Out *OutputGroup
}

// NewSplitSource creates a component that publishes its result positionally
// to the given outputs. Skip elements publish nothing for their position.
func NewSplitSource(name string, fn func() []interface{}, outs ...OutputPort) (*SplitSource, error) {
	out := NewOutputGroup(outs...)
	ad, err := New(name, nil, out, func(interface{}) (interface{}, bool, error) {
		return fn(), true, nil
	})
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	return &SplitSource{Adaptor: ad, Out: out}, nil
}
