// Package circuit provides the tick scheduler: an insertion-ordered
// collection of components driven by an external, single-threaded tick.
package circuit

import (
	"fmt"
	"io"

	"github.com/tickflow/tickflow/internal/core/component"
	imetrics "github.com/tickflow/tickflow/internal/infrastructure/metrics"
)

// Circuit is an append-only, insertion-ordered collection of components.
//
// Tick must be driven by exactly one caller at a time; the circuit adds no
// locking of its own. Correct same-tick propagation through multi-component
// pipelines depends on producers being added before their consumers —
// otherwise the consumer observes the value one tick late. The circuit does
// not detect ordering violations or cycles.
//
// Circuit itself implements Component, so circuits nest: ticking the outer
// circuit recursively ticks the inner ones in order.
type Circuit struct {
	name       string
	components []component.Component
}

// New creates an empty circuit.
func New(name string) *Circuit {
	return &Circuit{name: name}
}

// Name implements Component.
func (c *Circuit) Name() string { return c.name }

// Add appends comp to the tick order and returns it for wiring. Components
// are never removed once added.
func (c *Circuit) Add(comp component.Component) component.Component {
	c.components = append(c.components, comp)
	return comp
}

// Len returns the number of registered components.
func (c *Circuit) Len() int { return len(c.components) }

// Tick runs every registered component exactly once, in registration order,
// synchronously on the calling thread. The first component error stops the
// pass and is returned wrapped with the component name.
func (c *Circuit) Tick() error {
	for _, comp := range c.components {
		if err := comp.Tick(); err != nil {
			return fmt.Errorf("%s: %w", comp.Name(), err)
		}
	}
	imetrics.IncTicks()
	return nil
}

// Close closes every component that owns resources, in registration order.
// Owned output queues close, so views held by external readers dangle.
func (c *Circuit) Close() error {
	var first error
	for _, comp := range c.components {
		closer, ok := comp.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && first == nil {
			first = fmt.Errorf("%s: %w", comp.Name(), err)
		}
	}
	return first
}
