package circuit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickflow/tickflow/internal/core/component"
	"github.com/tickflow/tickflow/internal/core/mqueue"
)

// probe is a minimal component recording its tick order.
type probe struct {
	name string
	log  *[]string
	err  error
}

func (p *probe) Name() string { return p.name }

func (p *probe) Tick() error {
	*p.log = append(*p.log, p.name)
	return p.err
}

func TestCircuitTick(t *testing.T) {
	t.Run("RegistrationOrderExactlyOnce", func(t *testing.T) {
		c := New("main")

		var log []string
		c.Add(&probe{name: "a", log: &log})
		c.Add(&probe{name: "b", log: &log})
		c.Add(&probe{name: "c", log: &log})

		require.NoError(t, c.Tick())
		assert.Equal(t, []string{"a", "b", "c"}, log)

		require.NoError(t, c.Tick())
		assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, log)
	})

	t.Run("FirstErrorStopsThePass", func(t *testing.T) {
		c := New("main")
		boom := errors.New("boom")

		var log []string
		c.Add(&probe{name: "a", log: &log})
		c.Add(&probe{name: "b", log: &log, err: boom})
		c.Add(&probe{name: "c", log: &log})

		err := c.Tick()
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "b")
		assert.Equal(t, []string{"a", "b"}, log)
	})

	t.Run("NestedCircuitsTickRecursively", func(t *testing.T) {
		outer := New("outer")
		inner := New("inner")

		var log []string
		outer.Add(&probe{name: "before", log: &log})
		outer.Add(inner)
		inner.Add(&probe{name: "nested", log: &log})
		outer.Add(&probe{name: "after", log: &log})

		require.NoError(t, outer.Tick())
		assert.Equal(t, []string{"before", "nested", "after"}, log)
	})
}

func TestCircuitPipeline(t *testing.T) {
	// Producer registered before its consumer: same-tick propagation.
	c := New("pipeline")

	n := 0
	src, err := component.NewSource("numbers", func() (int, bool) {
		n++
		return n, true
	})
	require.NoError(t, err)

	var seen []int
	sink, err := component.NewSink("collector", func(v int) { seen = append(seen, v) })
	require.NoError(t, err)

	c.Add(src)
	c.Add(sink)
	sink.In.Connect(src.Out.Tap())

	require.NoError(t, c.Tick())
	require.NoError(t, c.Tick())
	assert.Equal(t, []int{1, 2}, seen)

	assert.Equal(t, 2, c.Len())
}

func TestCircuitClose(t *testing.T) {
	c := New("main")

	src, err := component.NewSource("src", func() (int, bool) { return 1, true })
	require.NoError(t, err)
	c.Add(src)

	v := src.Out.Tap()
	require.NoError(t, c.Close())

	_, err = v.Len()
	assert.ErrorIs(t, err, mqueue.ErrDanglingView)
}
