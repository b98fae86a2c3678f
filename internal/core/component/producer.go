package component

import (
	"fmt"

	"github.com/tickflow/tickflow/internal/core/mqueue"
)

// Output is a single-value output port owning one queue.
type Output[T any] struct {
	queue *mqueue.Queue[T]
}

// NewOutput creates an output with a fresh owned queue.
func NewOutput[T any](label string) *Output[T] {
	return &Output[T]{queue: mqueue.New[T](mqueue.Config{Label: label})}
}

// Tap opens a new downstream view on the owned queue. Any number of readers
// may tap the same output; each observes every subsequent push exactly once.
func (o *Output[T]) Tap() *mqueue.View[T] { return o.queue.OpenView() }

// Queue exposes the owned queue, e.g. for snapshot capture.
func (o *Output[T]) Queue() *mqueue.Queue[T] { return o.queue }

// Arity implements OutputPort.
func (o *Output[T]) Arity() Arity { return AritySingle }

// Push publishes one value. Skip is accepted and ignored so Output can
// serve as a position inside an OutputGroup.
func (o *Output[T]) Push(value interface{}) error {
	if value == Skip {
		return nil
	}
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("%w: %T", ErrTypeMismatch, value)
	}
	o.queue.Push(v)
	return nil
}

// Close implements OutputPort.
func (o *Output[T]) Close() error { return o.queue.Close() }

// OutputGroup is a fixed heterogeneous tuple of outputs pushed positionally.
// Construct the typed Output positions first, keep them for tapping, and
// hand them to the group in declared order.
type OutputGroup struct {
	outs []OutputPort
}

// NewOutputGroup creates a group over the given positions.
func NewOutputGroup(outs ...OutputPort) *OutputGroup {
	return &OutputGroup{outs: outs}
}

// Arity implements OutputPort.
func (g *OutputGroup) Arity() Arity { return ArityFixed }

// Push publishes a []interface{} positionally. A Skip element leaves that
// position's queue untouched this tick.
func (g *OutputGroup) Push(value interface{}) error {
	values, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("%w: expected []interface{}, got %T", ErrTypeMismatch, value)
	}
	if len(values) != len(g.outs) {
		return fmt.Errorf("%w: %d values for %d outputs", ErrArityMismatch, len(values), len(g.outs))
	}

	for i, v := range values {
		if v == Skip {
			continue
		}
		if err := g.outs[i].Push(v); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}
	return nil
}

// Close implements OutputPort.
func (g *OutputGroup) Close() error {
	var first error
	for _, o := range g.outs {
		if err := o.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OutputBus is a growable homogeneous list of outputs indexed by position.
// Queues are created lazily: tapping or pushing beyond the current width
// creates the missing queues first.
type OutputBus[T any] struct {
	label  string
	queues []*mqueue.Queue[T]
}

// NewOutputBus creates an empty bus.
func NewOutputBus[T any](label string) *OutputBus[T] {
	return &OutputBus[T]{label: label}
}

// Tap opens a view on the queue at idx, creating queues up to idx first.
func (b *OutputBus[T]) Tap(idx int) *mqueue.View[T] {
	return b.queueAt(idx).OpenView()
}

// Width returns the number of queues created so far.
func (b *OutputBus[T]) Width() int { return len(b.queues) }

// Arity implements OutputPort.
func (b *OutputBus[T]) Arity() Arity { return ArityDynamic }

// Push publishes a batch positionally: element i goes to queue i. Accepts
// []T for unconditional pushes or []Opt[T] when some positions produce
// nothing this tick.
func (b *OutputBus[T]) Push(value interface{}) error {
	switch values := value.(type) {
	case []T:
		for i, v := range values {
			b.queueAt(i).Push(v)
		}
	case []Opt[T]:
		for i, v := range values {
			if !v.Valid {
				continue
			}
			b.queueAt(i).Push(v.Value)
		}
	default:
		return fmt.Errorf("%w: expected []%T or []Opt, got %T", ErrTypeMismatch, *new(T), value)
	}
	return nil
}

// Close implements OutputPort.
func (b *OutputBus[T]) Close() error {
	var first error
	for _, q := range b.queues {
		if err := q.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// queueAt returns the queue at idx, creating missing queues on the way.
func (b *OutputBus[T]) queueAt(idx int) *mqueue.Queue[T] {
	for i := len(b.queues); i <= idx; i++ {
		b.queues = append(b.queues, mqueue.New[T](mqueue.Config{
			Label: fmt.Sprintf("%s[%d]", b.label, i),
		}))
	}
	return b.queues[idx]
}
