package component

import (
	"fmt"

	"github.com/tickflow/tickflow/internal/core/mqueue"
)

// Input is a single-value input port backed by one view.
//
// The zero, unconnected Input reports ErrDanglingView rather than "no data
// yet", so a forgotten Connect surfaces on the first tick.
type Input[T any] struct {
	view *mqueue.View[T]
}

// NewInput creates an unconnected single input.
func NewInput[T any]() *Input[T] { return &Input[T]{} }

// Connect wires the input to an upstream view, replacing any previous
// wiring and releasing its claims.
func (in *Input[T]) Connect(v *mqueue.View[T]) {
	if in.view != nil {
		_ = in.view.Close()
	}
	in.view = v
}

// Arity implements InputPort.
func (in *Input[T]) Arity() Arity { return AritySingle }

// Pull pops exactly one value when one is available.
func (in *Input[T]) Pull() (interface{}, bool, error) {
	if in.view == nil {
		return nil, false, fmt.Errorf("input not wired: %w", mqueue.ErrDanglingView)
	}

	n, err := in.view.Len()
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return nil, false, nil
	}

	value, err := in.view.Pop()
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Close implements InputPort.
func (in *Input[T]) Close() error {
	if in.view == nil {
		return nil
	}
	return in.view.Close()
}

// GroupSlot is one typed position inside an InputGroup.
type GroupSlot interface {
	pending() (int, error)
	take() (interface{}, error)
	release() error
}

// typedSlot adapts a typed view to a GroupSlot.
type typedSlot[T any] struct {
	view *mqueue.View[T]
}

// Slot wraps a view as a group position. A nil view produces a slot that
// reports ErrDanglingView, matching the unconnected single input.
func Slot[T any](v *mqueue.View[T]) GroupSlot { return &typedSlot[T]{view: v} }

func (s *typedSlot[T]) pending() (int, error) {
	if s.view == nil {
		return 0, fmt.Errorf("input not wired: %w", mqueue.ErrDanglingView)
	}
	return s.view.Len()
}

func (s *typedSlot[T]) take() (interface{}, error) {
	return s.view.Pop()
}

func (s *typedSlot[T]) release() error {
	if s.view == nil {
		return nil
	}
	return s.view.Close()
}

// InputGroup is a fixed heterogeneous tuple of inputs with all-or-nothing
// readiness: nothing is consumed from any slot unless every slot has at
// least one unread value, so one lagging upstream never causes partial
// consumption.
type InputGroup struct {
	slots []GroupSlot
}

// NewInputGroup creates a group over the given slots, in declared order.
func NewInputGroup(slots ...GroupSlot) *InputGroup {
	return &InputGroup{slots: slots}
}

// Arity implements InputPort.
func (g *InputGroup) Arity() Arity { return ArityFixed }

// Pull pops one value per slot, in declared order, only when all slots are
// simultaneously ready. The aggregate is handed back as []interface{}.
func (g *InputGroup) Pull() (interface{}, bool, error) {
	for i, s := range g.slots {
		n, err := s.pending()
		if err != nil {
			return nil, false, fmt.Errorf("slot %d: %w", i, err)
		}
		if n == 0 {
			return nil, false, nil
		}
	}

	values := make([]interface{}, len(g.slots))
	for i, s := range g.slots {
		v, err := s.take()
		if err != nil {
			return nil, false, fmt.Errorf("slot %d: %w", i, err)
		}
		values[i] = v
	}
	return values, true, nil
}

// Close implements InputPort.
func (g *InputGroup) Close() error {
	var first error
	for _, s := range g.slots {
		if err := s.release(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// InputBus is a growable homogeneous list of inputs.
//
// Readiness is incremental and deliberately not atomic: values already
// collected stay in the pending buffer across ticks, and the batch is
// handed over only once every position has contributed. This differs from
// InputGroup, which rolls back by never consuming in the first place.
type InputBus[T any] struct {
	views   []*mqueue.View[T]
	pending []T
}

// NewInputBus creates an empty bus.
func NewInputBus[T any]() *InputBus[T] { return &InputBus[T]{} }

// Connect appends another upstream view to the bus.
func (b *InputBus[T]) Connect(v *mqueue.View[T]) {
	b.views = append(b.views, v)
}

// Width returns the number of connected positions.
func (b *InputBus[T]) Width() int { return len(b.views) }

// Arity implements InputPort.
func (b *InputBus[T]) Arity() Arity { return ArityDynamic }

// Pull collects from every not-yet-collected position that has data. If all
// positions have contributed, the full batch is returned and the pending
// buffer cleared; otherwise the partial buffer is kept for the next tick.
func (b *InputBus[T]) Pull() (interface{}, bool, error) {
	for i := len(b.pending); i < len(b.views); i++ {
		view := b.views[i]
		if view == nil {
			return nil, false, fmt.Errorf("bus position %d not wired: %w", i, mqueue.ErrDanglingView)
		}

		n, err := view.Len()
		if err != nil {
			return nil, false, fmt.Errorf("bus position %d: %w", i, err)
		}
		if n == 0 {
			return nil, false, nil
		}

		value, err := view.Pop()
		if err != nil {
			return nil, false, fmt.Errorf("bus position %d: %w", i, err)
		}
		b.pending = append(b.pending, value)
	}

	batch := b.pending
	b.pending = nil
	return batch, true, nil
}

// Close implements InputPort.
func (b *InputBus[T]) Close() error {
	var first error
	for _, v := range b.views {
		if v == nil {
			continue
		}
		if err := v.Close(); err != nil && first == nil {
			first = err
		}
	}
	b.pending = nil
	return first
}
