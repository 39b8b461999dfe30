// Package layout positions graph nodes with an iterative force-directed
// solver. The solver is advanced by explicit Tick calls and carries no
// scheduler coupling: the host's animation loop decides when to tick,
// and the solver reports when it has settled.
package layout

import "math"

// State is the solver's lifecycle phase.
type State int

const (
	// Running means ticks still move nodes; alpha is decaying.
	Running State = iota
	// Settled means alpha has decayed below the floor and positions
	// are frozen until a drag or Reheat perturbs the system.
	Settled
)

// Node is a positioned graph node. Fx/Fy, when pinned, override the
// simulation for the drag's duration: position ownership transfers to
// the pointer handler and returns to the solver on Unpin.
type Node struct {
	X, Y   float64
	Vx, Vy float64
	Radius float64

	pinned bool
	fx, fy float64
}

// Pin fixes the node at (x, y) until Unpin.
func (n *Node) Pin(x, y float64) {
	n.pinned = true
	n.fx, n.fy = x, y
}

// Unpin releases the node back into free simulation.
func (n *Node) Unpin() {
	n.pinned = false
}

// Pinned reports whether the node is under drag control.
func (n *Node) Pinned() bool {
	return n.pinned
}

// Edge is a weighted spring between two nodes, by index.
type Edge struct {
	Source int
	Target int
	Weight float64
}

// Config tunes the force terms. The weight→distance and weight→strength
// relationships are presentation parameters: monotone in relative
// weight, with the exact constants adjustable per view.
type Config struct {
	// LinkBaseDistance and LinkDistanceSpread give springs a target
	// distance of base + (w/maxW)·spread, so heavier transitions sit
	// farther apart and render thicker rather than tighter.
	LinkBaseDistance   float64
	LinkDistanceSpread float64

	// Charge is the many-body repulsion strength (negative repels).
	Charge float64

	// CenterX, CenterY is where the centering force pulls the centroid.
	CenterX, CenterY float64
	CenterStrength   float64

	// CollideRadius is the minimum separation enforced between nodes
	// when their own radii are zero.
	CollideRadius float64

	// AlphaDecay controls how fast the simulation cools; AlphaMin is
	// the settling floor; VelocityDecay is per-tick friction.
	AlphaDecay    float64
	AlphaMin      float64
	VelocityDecay float64
}

// DefaultConfig mirrors the tuning the views were designed around.
func DefaultConfig(centerX, centerY float64) Config {
	return Config{
		LinkBaseDistance:   80,
		LinkDistanceSpread: 40,
		Charge:             -120,
		CenterX:            centerX,
		CenterY:            centerY,
		CenterStrength:     0.05,
		CollideRadius:      14,
		AlphaDecay:         0.0228, // 1 - 0.001^(1/300)
		AlphaMin:           0.001,
		VelocityDecay:      0.4,
	}
}

// Solver owns the node positions for one rendered graph. A new render
// builds a new solver and abandons the old one.
type Solver struct {
	Nodes []*Node
	Edges []Edge

	cfg       Config
	alpha     float64
	maxWeight float64
}

// New seeds a solver. Nodes without positions are placed on a phyllotaxis
// spiral around the center so the first ticks never start from a
// degenerate all-zero layout.
func New(nodes []*Node, edges []Edge, cfg Config) *Solver {
	maxW := 0.0
	for _, e := range edges {
		if e.Weight > maxW {
			maxW = e.Weight
		}
	}
	s := &Solver{Nodes: nodes, Edges: edges, cfg: cfg, alpha: 1, maxWeight: maxW}
	for i, n := range nodes {
		if n.X == 0 && n.Y == 0 {
			r := 12 * math.Sqrt(0.5+float64(i))
			a := float64(i) * 2.399963229728653 // golden angle
			n.X = cfg.CenterX + r*math.Cos(a)
			n.Y = cfg.CenterY + r*math.Sin(a)
		}
	}
	return s
}

// State reports whether the solver is still running or has settled.
func (s *Solver) State() State {
	if s.alpha < s.cfg.AlphaMin {
		return Settled
	}
	return Running
}

// Alpha returns the current energy term.
func (s *Solver) Alpha() float64 {
	return s.alpha
}

// Reheat raises alpha back up, moving a settled solver to Running.
// Drag starts call this so released nodes re-enter a live simulation.
func (s *Solver) Reheat(alpha float64) {
	if alpha > s.alpha {
		s.alpha = alpha
	}
}

// Tick advances the simulation one step: applies the link, charge,
// center, and collision forces, integrates velocities, honors pins, and
// decays alpha. It returns false once the solver has settled.
func (s *Solver) Tick() bool {
	if s.State() == Settled {
		return false
	}

	s.applyLinks()
	s.applyCharge()
	s.applyCenter()

	for _, n := range s.Nodes {
		if n.pinned {
			n.X, n.Y = n.fx, n.fy
			n.Vx, n.Vy = 0, 0
			continue
		}
		n.Vx *= 1 - s.cfg.VelocityDecay
		n.Vy *= 1 - s.cfg.VelocityDecay
		n.X += n.Vx
		n.Y += n.Vy
	}

	s.applyCollision()

	s.alpha += (0 - s.alpha) * s.cfg.AlphaDecay
	return s.State() == Running
}

// normWeight returns w/maxW, or 1 when the graph has no weights.
func (s *Solver) normWeight(w float64) float64 {
	if s.maxWeight <= 0 {
		return 1
	}
	return w / s.maxWeight
}

// applyLinks pulls connected nodes toward their target distance with
// strength proportional to normalized weight.
func (s *Solver) applyLinks() {
	for _, e := range s.Edges {
		a, b := s.Nodes[e.Source], s.Nodes[e.Target]
		dx := b.X + b.Vx - a.X - a.Vx
		dy := b.Y + b.Vy - a.Y - a.Vy
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dx, dist = 1e-6, 1e-6
		}
		nw := s.normWeight(e.Weight)
		target := s.cfg.LinkBaseDistance + nw*s.cfg.LinkDistanceSpread
		k := (dist - target) / dist * s.alpha * nw
		fx, fy := dx*k*0.5, dy*k*0.5
		b.Vx -= fx
		b.Vy -= fy
		a.Vx += fx
		a.Vy += fy
	}
}

// applyCharge repels every node pair with inverse-distance force.
func (s *Solver) applyCharge() {
	for i, a := range s.Nodes {
		for j := i + 1; j < len(s.Nodes); j++ {
			b := s.Nodes[j]
			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy
			if d2 == 0 {
				dx, d2 = 1e-6, 1e-12
			}
			f := s.cfg.Charge * s.alpha / d2
			fx, fy := dx*f, dy*f
			a.Vx += fx
			a.Vy += fy
			b.Vx -= fx
			b.Vy -= fy
		}
	}
}

// applyCenter nudges the centroid toward the canvas center.
func (s *Solver) applyCenter() {
	if len(s.Nodes) == 0 {
		return
	}
	var cx, cy float64
	for _, n := range s.Nodes {
		cx += n.X
		cy += n.Y
	}
	cx = cx/float64(len(s.Nodes)) - s.cfg.CenterX
	cy = cy/float64(len(s.Nodes)) - s.cfg.CenterY
	for _, n := range s.Nodes {
		n.X -= cx * s.cfg.CenterStrength
		n.Y -= cy * s.cfg.CenterStrength
	}
}

// applyCollision enforces minimum separation by direct position
// correction, splitting the overlap between both nodes.
func (s *Solver) applyCollision() {
	for i, a := range s.Nodes {
		ra := a.Radius
		if ra == 0 {
			ra = s.cfg.CollideRadius
		}
		for j := i + 1; j < len(s.Nodes); j++ {
			b := s.Nodes[j]
			rb := b.Radius
			if rb == 0 {
				rb = s.cfg.CollideRadius
			}
			minDist := ra + rb
			dx := b.X - a.X
			dy := b.Y - a.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				dx, dist = 1e-6, 1e-6
			}
			push := (minDist - dist) / dist / 2
			if !a.pinned {
				a.X -= dx * push
				a.Y -= dy * push
			}
			if !b.pinned {
				b.X += dx * push
				b.Y += dy * push
			}
		}
	}
}
