package city

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/codebox/generative-city-map/internal/geom"
	"github.com/codebox/generative-city-map/internal/rng"
)

// fixedForest lets detector specs build a forest by hand.
type fixedForest []*Line

func (f fixedForest) ForEachLineUntilTrue(visit func(*Line) bool) bool {
	for _, l := range f {
		if visit(l) {
			return true
		}
	}
	return false
}

// mustNotScan fails the test if the detector traverses it.
type mustNotScan struct{}

func (mustNotScan) ForEachLineUntilTrue(func(*Line) bool) bool {
	Fail("detector scanned the forest for an offscreen tip")
	return false
}

func collectLines(m *Model) []Line {
	var out []Line
	m.ForEachLineUntilTrue(func(l *Line) bool {
		out = append(out, *l)
		return false
	})
	return out
}

func runToRest(m *Model, maxTicks int) int {
	ticks := 0
	for m.IsActive() && ticks < maxTicks {
		m.Grow()
		ticks++
	}
	return ticks
}

var _ = Describe("Model", func() {
	view := RectView{Width: 60, Height: 60}
	cfg := Config{SeedCount: 3, PBifurcation: 0.15, ExpiryThreshold: 0.03}

	It("reproduces the same forest for the same seed", func() {
		a := New(rng.New(42), view, cfg)
		b := New(rng.New(42), view, cfg)
		a.Generate()
		b.Generate()
		runToRest(a, 2000)
		runToRest(b, 2000)

		Expect(collectLines(a)).To(Equal(collectLines(b)))
		Expect(a.Ticks()).To(Equal(b.Ticks()))
	})

	It("diverges for different seeds", func() {
		a := New(rng.New(1), view, cfg)
		b := New(rng.New(2), view, cfg)
		a.Generate()
		b.Generate()
		Expect(collectLines(a)).NotTo(Equal(collectLines(b)))
	})

	It("grows every active line exactly one step per tick", func() {
		m := New(rng.New(7), view, cfg)
		m.Generate()

		key := func(l Line) [2]int { return [2]int{l.Seed, l.Index} }

		for tick := 0; tick < 50 && m.IsActive(); tick++ {
			before := map[[2]int]Line{}
			for _, l := range collectLines(m) {
				before[key(l)] = l
			}
			m.Grow()
			after := collectLines(m)
			Expect(len(after)).To(BeNumerically(">=", len(before)),
				"line collections are append-only")

			for _, l := range after {
				prev, existed := before[key(l)]
				if !existed {
					// Spawned this tick: creation includes exactly one step.
					Expect(l.Steps).To(Equal(1))
					continue
				}
				if prev.Active {
					Expect(l.Steps).To(Equal(prev.Steps+1),
						"active line should take one step")
				} else {
					Expect(l.Steps).To(Equal(prev.Steps),
						"stopped line should not move")
					Expect(l.Active).To(BeFalse(),
						"a stopped line must never reactivate")
				}
			}
		}
	})

	It("keeps generation arithmetic and one root per seed", func() {
		m := New(rng.New(99), view, cfg)
		m.Generate()
		runToRest(m, 2000)

		lines := collectLines(m)
		roots := map[int]int{}
		for _, l := range lines {
			if l.Root() {
				roots[l.Seed]++
				Expect(l.Generation).To(Equal(0))
				Expect(l.Index).To(Equal(0))
			} else {
				parent := lines[indexOf(lines, l.Seed, l.Parent)]
				Expect(l.Generation).To(Equal(parent.Generation + 1))
			}
		}
		Expect(roots).To(HaveLen(m.SeedCount()))
		for _, n := range roots {
			Expect(n).To(Equal(1))
		}
	})

	It("tracks the active counter through the traversal", func() {
		m := New(rng.New(21), view, cfg)
		m.Generate()
		for tick := 0; tick < 200 && m.IsActive(); tick++ {
			m.Grow()
			n := 0
			for _, l := range collectLines(m) {
				if l.Active {
					n++
				}
			}
			Expect(m.ActiveLines()).To(Equal(n))
		}
	})

	It("terminates for representative seeds", func() {
		small := RectView{Width: 40, Height: 40}
		for seed := uint32(1); seed <= 10; seed++ {
			m := New(rng.New(seed), small, DefaultConfig())
			m.Generate()
			runToRest(m, 20000)
			Expect(m.IsActive()).To(BeFalse(), "seed %d did not exhaust", seed)
		}
	})

	It("yields an empty, finished model for a non-positive seed count", func() {
		m := New(rng.New(5), view, Config{SeedCount: 0, PBifurcation: 0.1, ExpiryThreshold: 0.02})
		m.Generate()
		Expect(m.IsActive()).To(BeFalse())
		Expect(m.LineCount()).To(BeZero())
		m.Grow()
		Expect(m.IsActive()).To(BeFalse())
	})

	It("stops a lone street at the boundary with its tip back inside", func() {
		tiny := RectView{Width: 10, Height: 10}
		m := New(rng.New(1), tiny, Config{SeedCount: 1, PBifurcation: 0, ExpiryThreshold: 0})
		// Root placed by hand at the center, heading +Y. Creation grows it
		// once, then four ticks carry the tip to the edge.
		m.seeds = []Seed{{Angle: 0}}
		m.spawn(0, geom.Pt(5, 5), 0, -1, 0)

		ticks := runToRest(m, 40)
		Expect(ticks).To(Equal(4))

		root := collectLines(m)[0]
		Expect(root.Active).To(BeFalse())
		Expect(root.Expired).To(BeFalse())
		Expect(root.Steps).To(Equal(5))
		Expect(root.Tip).To(Equal(geom.Pt(5, 9)))
		// The tip sits one unit short of the counted steps after the
		// single backward correction.
		Expect(root.Origin.Distance(root.Tip)).To(
			BeNumerically("~", float64(root.Steps-1), 1e-9))
	})

	It("visits lines in seed order then creation order, with early exit", func() {
		m := New(rng.New(11), view, cfg)
		m.Generate()
		runToRest(m, 500)

		prevSeed, prevIndex := -1, -1
		m.ForEachLineUntilTrue(func(l *Line) bool {
			if l.Seed == prevSeed {
				Expect(l.Index).To(Equal(prevIndex + 1))
			} else {
				Expect(l.Seed).To(Equal(prevSeed + 1))
				Expect(l.Index).To(Equal(0))
			}
			prevSeed, prevIndex = l.Seed, l.Index
			return false
		})

		visited := 0
		stopped := m.ForEachLineUntilTrue(func(*Line) bool {
			visited++
			return true
		})
		Expect(stopped).To(BeTrue())
		Expect(visited).To(Equal(1))
	})
})

var _ = Describe("Detector", func() {
	It("reports an offscreen tip without scanning the forest", func() {
		det := &Detector{View: RectView{Width: 10, Height: 10}}
		l := &Line{Origin: geom.Pt(5, 5), Tip: geom.Pt(5, 11), Angle: 0}
		Expect(det.CheckForCollisions(l, mustNotScan{})).To(BeTrue())
	})

	It("never collides a line with its parent or children", func() {
		// Parent heading +Y, child branched off its interior, overlapping
		// at the branch point.
		parent := &Line{
			Origin: geom.Pt(5, 2), Tip: geom.Pt(5, 6), Angle: 0,
			Seed: 0, Index: 0, Parent: -1, Active: true,
		}
		child := &Line{
			Origin: geom.Pt(5, 4), Tip: geom.Pt(7, 4), Angle: math.Pi / 2,
			Generation: 1, Seed: 0, Index: 1, Parent: 0, Active: true,
		}
		forest := fixedForest{parent, child}
		det := &Detector{View: RectView{Width: 10, Height: 10}}

		Expect(det.CheckForCollisions(child, forest)).To(BeFalse())
		Expect(det.CheckForCollisions(parent, forest)).To(BeFalse())
	})

	It("still sees unrelated lines through a shared seed", func() {
		a := &Line{Origin: geom.Pt(1, 3), Tip: geom.Pt(9, 3), Seed: 0, Index: 2, Parent: 0}
		b := &Line{Origin: geom.Pt(4, 1), Tip: geom.Pt(4, 8), Seed: 0, Index: 5, Parent: 1}
		det := &Detector{View: RectView{Width: 10, Height: 10}}
		Expect(det.CheckForCollisions(a, fixedForest{a, b})).To(BeTrue())
	})

	It("detects lines from other seeds even at matching indices", func() {
		a := &Line{Origin: geom.Pt(1, 3), Tip: geom.Pt(9, 3), Seed: 0, Index: 0, Parent: -1}
		b := &Line{Origin: geom.Pt(4, 1), Tip: geom.Pt(4, 8), Seed: 1, Index: 0, Parent: -1}
		det := &Detector{View: RectView{Width: 10, Height: 10}}
		Expect(det.CheckForCollisions(a, fixedForest{a, b})).To(BeTrue())
	})

	It("does not flag a fresh parent and child grown one step past a split", func() {
		src := rng.New(1)
		angle := src.UpTo(2 * math.Pi)
		origin := geom.Pt(50, 50)
		h := geom.Heading(angle)

		// The child branched at the parent's second step; both have grown
		// once since, so the branch point is interior to the parent.
		parent := &Line{
			Origin: origin, Tip: origin.Add(h.Mul(3)), Angle: angle,
			Seed: 0, Index: 0, Parent: -1, Steps: 3, Active: true,
		}
		branch := origin.Add(h.Mul(2))
		ch := geom.Heading(angle + math.Pi/2)
		child := &Line{
			Origin: branch, Tip: branch.Add(ch.Mul(2)), Angle: angle + math.Pi/2,
			Generation: 1, Seed: 0, Index: 1, Parent: 0, Steps: 2, Active: true,
		}
		forest := fixedForest{parent, child}
		det := &Detector{View: RectView{Width: 100, Height: 100}}

		Expect(det.CheckForCollisions(parent, forest)).To(BeFalse())
		Expect(det.CheckForCollisions(child, forest)).To(BeFalse())
	})
})

var _ = Describe("expiry draws", func() {
	// Reusing one seed per generation makes the draw sequences identical,
	// so the expiry sets are strict supersets as the generation rises.
	countExpiries := func(gen int) int {
		cfg := Config{PBifurcation: 0, ExpiryThreshold: 0.05}
		src := rng.New(777)
		n := 0
		for i := 0; i < 2000; i++ {
			l := Line{Generation: gen}
			l.grow(src, cfg)
			if l.Expired {
				n++
			}
		}
		return n
	}

	It("never expires generation zero", func() {
		Expect(countExpiries(0)).To(BeZero())
	})

	It("expires deeper generations at least as often", func() {
		prev := 0
		for gen := 1; gen <= 5; gen++ {
			n := countExpiries(gen)
			Expect(n).To(BeNumerically(">=", prev), "generation %d", gen)
			prev = n
		}
		Expect(prev).To(BeNumerically(">", 0))
	})
})

var _ = Describe("DiscView", func() {
	It("contains the center and excludes the corners", func() {
		v := DiscView{Width: 100, Height: 80}
		Expect(v.Contains(50, 40)).To(BeTrue())
		Expect(v.Contains(1, 1)).To(BeFalse())
		Expect(v.Contains(99, 79)).To(BeFalse())
		Expect(v.Bounds()).To(Equal(geom.NewRect(0, 0, 100, 80)))
	})

	It("places every root inside the disc", func() {
		v := DiscView{Width: 50, Height: 50}
		m := New(rng.New(13), v, Config{SeedCount: 20, PBifurcation: 0, ExpiryThreshold: 0})
		m.Generate()
		m.ForEachLineUntilTrue(func(l *Line) bool {
			Expect(v.Contains(l.Origin.X, l.Origin.Y)).To(BeTrue())
			return false
		})
	})
})

func indexOf(lines []Line, seed, index int) int {
	for i, l := range lines {
		if l.Seed == seed && l.Index == index {
			return i
		}
	}
	return -1
}
