// Package dataflow is the public surface of the tickflow engine: a
// synchronous dataflow runtime where typed components exchange values over
// one-directional broadcast queues, driven by explicit Tick calls.
//
// A minimal pipeline:
//
//	circuit := dataflow.NewCircuit("pipeline")
//
//	counter := 0
//	src, _ := dataflow.NewSource("counter", func() (int, bool) {
//		counter++
//		return counter, true
//	})
//	halver, _ := dataflow.NewTransform("halver", func(v int) (float64, bool) {
//		return float64(v) / 2, true
//	})
//
//	circuit.Add(src)
//	circuit.Add(halver)
//	halver.In.Connect(src.Out.Tap())
//
//	out := halver.Out.Tap()
//	_ = circuit.Tick()
//	v, _ := out.Pop() // 0.5
//
// Each component runs at most once per Tick, in registration order. Values
// survive across ticks until every reader that tapped the producing queue
// has consumed them; queues stay memory-bounded through reference-counted
// front eviction. Queues are safe for concurrent use, so views may also be
// consumed from goroutines outside the tick driver.
package dataflow
