// Package city implements the street growth model.
//
// Streets grow from seed points on a 2D canvas, one unit step per tick,
// branching at right angles and stopping when they collide with another
// street or leave the viewport:
//
//   - [Line]: one street, advancing from a fixed origin along a fixed angle
//   - [Seed]: a root street plus everything that branched from it
//   - [Model]: the whole forest; drives ticks and exposes traversal
//   - [Detector]: the segment-intersection collision predicate
//   - [Viewport]: the boundary the forest grows inside
//
// # Example
//
//	src := rng.New(1)
//	m := city.New(src, city.RectView{Width: 100, Height: 100}, city.DefaultConfig())
//	m.Generate()
//	for m.IsActive() {
//		m.Grow()
//	}
//
// # Determinism
//
// All randomness flows through the single [rng.Source] handed to [New], and
// the order of draws is fixed: per seed an angle then an origin, per line a
// tag at creation, then per growth step a branch draw followed by an expiry
// draw, then a direction coin flip on each branch event. The same seed and
// configuration therefore reproduce the same map exactly.
//
// # Thread Safety
//
// Model instances are NOT thread-safe. Grow mutates the forest and runs to
// completion before returning; traversal between ticks is read-only. Run
// concurrent models on separate Model values, as the experiment ensemble
// does.
package city
