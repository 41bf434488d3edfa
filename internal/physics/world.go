package physics

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/bopdrop/internal/core"
)

type pairKey struct {
	a, b ID // a < b
}

func makePair(a, b ID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

type stepHook struct {
	id int
	fn func()
}

type contactHook struct {
	id int
	fn func(a, b ID)
}

// World holds bodies and advances them one fixed step at a time.
// It is not safe for concurrent use.
type World struct {
	opts    Options
	bodies  *intmap.Map[ID, *Body]
	order   []ID // insertion order, keeps iteration deterministic
	lastID  ID
	running bool

	touching map[pairKey]struct{}

	// Per-step scratch, indexed like order.
	prevPos []core.Vec
	preVel  []core.Vec

	lastHook     int
	stepHooks    []stepHook
	contactHooks []contactHook
}

// NewWorld creates an empty, running world.
func NewWorld(opts Options) *World {
	if opts.PositionIterations <= 0 {
		opts.PositionIterations = 1
	}
	if opts.MaxCorrectionSpeed <= 0 {
		opts.MaxCorrectionSpeed = DefaultOptions().MaxCorrectionSpeed
	}
	return &World{
		opts:     opts,
		bodies:   intmap.New[ID, *Body](64),
		running:  true,
		touching: make(map[pairKey]struct{}),
	}
}

// Options returns the simulation options.
func (w *World) Options() Options {
	return w.opts
}

func (w *World) add(b *Body) ID {
	w.lastID++
	b.ID = w.lastID
	w.bodies.Put(b.ID, b)
	w.order = append(w.order, b.ID)
	return b.ID
}

// AddCircle adds a circle centered at pos.
func (w *World) AddCircle(pos core.Vec, radius float64, static bool) ID {
	return w.add(&Body{
		Shape:  ShapeCircle,
		Pos:    pos,
		Radius: radius,
		Static: static,
	})
}

// AddBox adds a static axis-aligned box centered at center.
func (w *World) AddBox(center core.Vec, width, height float64) ID {
	return w.add(&Body{
		Shape:  ShapeBox,
		Pos:    center,
		HalfW:  width / 2,
		HalfH:  height / 2,
		Static: true,
	})
}

// AddWalls encloses the field [0,width]x[0,height] with left, right and
// bottom walls of the given thickness placed just outside it.
func (w *World) AddWalls(width, height, thickness float64) []ID {
	half := thickness / 2
	return []ID{
		w.AddBox(core.V(-half, height/2), thickness, height+thickness*2),
		w.AddBox(core.V(width+half, height/2), thickness, height+thickness*2),
		w.AddBox(core.V(width/2, height+half), width+thickness*2, thickness),
	}
}

// Remove deletes bodies. Unknown IDs are ignored.
func (w *World) Remove(ids ...ID) {
	removed := false
	for _, id := range ids {
		if _, ok := w.bodies.Get(id); ok {
			w.bodies.Del(id)
			removed = true
		}
	}
	if !removed {
		return
	}
	kept := w.order[:0]
	for _, id := range w.order {
		if _, ok := w.bodies.Get(id); ok {
			kept = append(kept, id)
		}
	}
	w.order = kept
	for k := range w.touching {
		if !w.Has(k.a) || !w.Has(k.b) {
			delete(w.touching, k)
		}
	}
}

// Has reports whether a body exists.
func (w *World) Has(id ID) bool {
	_, ok := w.bodies.Get(id)
	return ok
}

// Body returns a snapshot of a body.
func (w *World) Body(id ID) (Body, bool) {
	b, ok := w.bodies.Get(id)
	if !ok {
		return Body{}, false
	}
	return *b, true
}

// Bodies returns snapshots of all bodies in insertion order.
func (w *World) Bodies() []Body {
	out := make([]Body, 0, len(w.order))
	for _, id := range w.order {
		if b, ok := w.bodies.Get(id); ok {
			out = append(out, *b)
		}
	}
	return out
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return w.bodies.Len()
}

func (w *World) update(id ID, fn func(b *Body)) {
	if b, ok := w.bodies.Get(id); ok {
		fn(b)
	}
}

// SetPosition teleports a body.
func (w *World) SetPosition(id ID, pos core.Vec) {
	w.update(id, func(b *Body) { b.Pos = pos })
}

// SetVelocity sets a body's velocity in units per step.
func (w *World) SetVelocity(id ID, vel core.Vec) {
	w.update(id, func(b *Body) { b.Vel = vel })
}

// SetAngle sets a body's rotation.
func (w *World) SetAngle(id ID, angle float64) {
	w.update(id, func(b *Body) { b.Angle = angle })
}

// SetAngularVelocity sets a body's spin in radians per step.
func (w *World) SetAngularVelocity(id ID, spin float64) {
	w.update(id, func(b *Body) { b.Spin = spin })
}

// SetStatic freezes or releases a body. Freezing zeroes its motion.
func (w *World) SetStatic(id ID, static bool) {
	w.update(id, func(b *Body) {
		b.Static = static
		if static {
			b.Vel = core.Vec{}
			b.Spin = 0
		}
	})
}

// Clear removes every body. Hooks stay registered.
func (w *World) Clear() {
	w.bodies.Clear()
	w.order = w.order[:0]
	clear(w.touching)
}

// Stop pauses the simulation; Step becomes a no-op.
func (w *World) Stop() {
	w.running = false
}

// Resume restarts a stopped simulation.
func (w *World) Resume() {
	w.running = true
}

// Running reports whether Step advances the simulation.
func (w *World) Running() bool {
	return w.running
}

// OnStep registers fn to run after every step. The returned func removes it.
func (w *World) OnStep(fn func()) (cancel func()) {
	w.lastHook++
	id := w.lastHook
	w.stepHooks = append(w.stepHooks, stepHook{id: id, fn: fn})
	return func() {
		for i, h := range w.stepHooks {
			if h.id == id {
				w.stepHooks = append(w.stepHooks[:i:i], w.stepHooks[i+1:]...)
				return
			}
		}
	}
}

// OnContact registers fn to run for every pair of bodies that starts touching
// during a step. The returned func removes it.
func (w *World) OnContact(fn func(a, b ID)) (cancel func()) {
	w.lastHook++
	id := w.lastHook
	w.contactHooks = append(w.contactHooks, contactHook{id: id, fn: fn})
	return func() {
		for i, h := range w.contactHooks {
			if h.id == id {
				w.contactHooks = append(w.contactHooks[:i:i], w.contactHooks[i+1:]...)
				return
			}
		}
	}
}

// Step advances the simulation by one tick: integrate, resolve contacts,
// derive velocities from the corrected motion, report new contacts, then run
// step hooks.
func (w *World) Step() {
	if !w.running {
		return
	}
	w.integrate()
	contacts, started := w.resolve()
	w.deriveVelocities()
	w.restitute(contacts)

	// Hooks may add or remove bodies and hooks; iterate over copies.
	contactHooks := append([]contactHook(nil), w.contactHooks...)
	for _, k := range started {
		for _, h := range contactHooks {
			h.fn(k.a, k.b)
		}
	}
	stepHooks := append([]stepHook(nil), w.stepHooks...)
	for _, h := range stepHooks {
		h.fn()
	}
}

// integrate applies gravity and moves bodies, remembering where each body
// started and the velocity it moved with.
func (w *World) integrate() {
	damp := 1 - w.opts.FrictionAir
	w.prevPos = w.prevPos[:0]
	w.preVel = w.preVel[:0]
	for _, id := range w.order {
		b, _ := w.bodies.Get(id)
		w.prevPos = append(w.prevPos, b.Pos)
		if !b.Static {
			b.Vel.Y += w.opts.Gravity
			b.Vel = b.Vel.Scale(damp)
			b.Pos = b.Pos.Add(b.Vel)
			b.Angle += b.Spin
		}
		w.preVel = append(w.preVel, b.Vel)
	}
}

// contact is a touching pair found by resolve. i and j index w.order.
type contact struct {
	i, j   int
	normal core.Vec // From body i to body j
	vnPre  float64  // Relative normal velocity before correction, negative when approaching
}

// resolve separates overlapping bodies and returns every touching pair plus
// the pairs that started touching this step, both in discovery order.
func (w *World) resolve() ([]contact, []pairKey) {
	current := make(map[pairKey]struct{}, len(w.touching))
	var contacts []contact
	var started []pairKey

	for iter := 0; iter < w.opts.PositionIterations; iter++ {
		for i := 0; i < len(w.order); i++ {
			a, _ := w.bodies.Get(w.order[i])
			for j := i + 1; j < len(w.order); j++ {
				b, _ := w.bodies.Get(w.order[j])
				if a.Static && b.Static {
					continue
				}
				m, ok := collide(a, b)
				if !ok || m.depth < -w.opts.TouchSlop {
					continue
				}
				key := makePair(a.ID, b.ID)
				if _, seen := current[key]; !seen {
					current[key] = struct{}{}
					contacts = append(contacts, contact{
						i:      i,
						j:      j,
						normal: m.normal,
						vnPre:  w.preVel[j].Sub(w.preVel[i]).Dot(m.normal),
					})
					if _, was := w.touching[key]; !was {
						started = append(started, key)
					}
				}
				if m.depth > 0 {
					w.separate(a, b, m)
				}
			}
		}
	}

	w.touching = current
	return contacts, started
}

// separate pushes an overlapping pair apart along the contact normal,
// weighted by inverse mass.
func (w *World) separate(a, b *Body, m manifold) {
	invA, invB := a.invMass(), b.invMass()
	total := invA + invB
	if total == 0 {
		return
	}
	if corr := m.depth - w.opts.Slop; corr > 0 {
		push := m.normal.Scale(corr * 0.8 / total)
		a.Pos = a.Pos.Sub(push.Scale(invA))
		b.Pos = b.Pos.Add(push.Scale(invB))
	}
}

// deriveVelocities sets each moving body's velocity to the distance it
// actually travelled this step. A body held in place by contacts ends the
// step at rest. Speed gained from being pushed out of an overlap is capped
// at MaxCorrectionSpeed.
func (w *World) deriveVelocities() {
	for i, id := range w.order {
		b, _ := w.bodies.Get(id)
		if b.Static {
			continue
		}
		v := b.Pos.Sub(w.prevPos[i])
		limit := max(w.preVel[i].Len(), w.opts.MaxCorrectionSpeed)
		if l := v.Len(); l > limit {
			v = v.Scale(limit / l)
		}
		b.Vel = v
	}
}

// restitute removes any remaining approach along each contact normal,
// bounces fast impacts and applies friction along the tangent.
func (w *World) restitute(contacts []contact) {
	// A body resting under gravity approaches at about one step of gravity
	// and must not bounce.
	bounceSpeed := max(w.opts.RestingSpeed, 2*w.opts.Gravity)

	for _, c := range contacts {
		a, _ := w.bodies.Get(w.order[c.i])
		b, _ := w.bodies.Get(w.order[c.j])
		invA, invB := a.invMass(), b.invMass()
		total := invA + invB
		if total == 0 {
			continue
		}

		target := 0.0
		if -c.vnPre > bounceSpeed {
			target = -w.opts.Restitution * c.vnPre
		}
		rel := b.Vel.Sub(a.Vel)
		if vn := rel.Dot(c.normal); vn < target {
			impulse := c.normal.Scale((target - vn) / total)
			a.Vel = a.Vel.Sub(impulse.Scale(invA))
			b.Vel = b.Vel.Add(impulse.Scale(invB))
			rel = b.Vel.Sub(a.Vel)
		}

		if w.opts.Friction <= 0 {
			continue
		}
		vn := rel.Dot(c.normal)
		tangent := rel.Sub(c.normal.Scale(vn))
		tl := tangent.Len()
		pressed := max(0, vn-c.vnPre)
		if tl < 1e-9 || pressed == 0 {
			continue
		}
		jt := min(tl, w.opts.Friction*pressed) / total
		fr := tangent.Scale(jt / tl)
		a.Vel = a.Vel.Add(fr.Scale(invA))
		b.Vel = b.Vel.Sub(fr.Scale(invB))
	}
}
