package core_test

import (
	platformcore "github.com/vovakirdan/bopdrop/internal/core"
	"github.com/vovakirdan/bopdrop/internal/games/bopdrop/core"
	"github.com/vovakirdan/bopdrop/internal/physics"
)

// fakeWorld is a scripted physics world: nothing moves unless a test says so,
// and contacts are delivered only through Contact.
type fakeWorld struct {
	last    physics.ID
	bodies  map[physics.ID]*physics.Body
	order   []physics.ID
	walls   int
	stopped bool

	hookID       int
	stepHooks    map[int]func()
	contactHooks map[int]func(a, b physics.ID)
}

var _ core.World = (*fakeWorld)(nil)

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		bodies:       make(map[physics.ID]*physics.Body),
		stepHooks:    make(map[int]func()),
		contactHooks: make(map[int]func(a, b physics.ID)),
	}
}

func (w *fakeWorld) add(b *physics.Body) physics.ID {
	w.last++
	b.ID = w.last
	w.bodies[b.ID] = b
	w.order = append(w.order, b.ID)
	return b.ID
}

func (w *fakeWorld) AddCircle(pos platformcore.Vec, radius float64, static bool) physics.ID {
	return w.add(&physics.Body{Shape: physics.ShapeCircle, Pos: pos, Radius: radius, Static: static})
}

func (w *fakeWorld) AddWalls(width, height, thickness float64) []physics.ID {
	w.walls++
	half := thickness / 2
	return []physics.ID{
		w.add(&physics.Body{Shape: physics.ShapeBox, Pos: platformcore.V(-half, height/2), HalfW: half, HalfH: height / 2, Static: true}),
		w.add(&physics.Body{Shape: physics.ShapeBox, Pos: platformcore.V(width+half, height/2), HalfW: half, HalfH: height / 2, Static: true}),
		w.add(&physics.Body{Shape: physics.ShapeBox, Pos: platformcore.V(width/2, height+half), HalfW: width / 2, HalfH: half, Static: true}),
	}
}

func (w *fakeWorld) Remove(ids ...physics.ID) {
	for _, id := range ids {
		delete(w.bodies, id)
	}
	kept := w.order[:0]
	for _, id := range w.order {
		if _, ok := w.bodies[id]; ok {
			kept = append(kept, id)
		}
	}
	w.order = kept
}

func (w *fakeWorld) Body(id physics.ID) (physics.Body, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return physics.Body{}, false
	}
	return *b, true
}

func (w *fakeWorld) Bodies() []physics.Body {
	out := make([]physics.Body, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, *w.bodies[id])
	}
	return out
}

func (w *fakeWorld) SetPosition(id physics.ID, pos platformcore.Vec) {
	if b, ok := w.bodies[id]; ok {
		b.Pos = pos
	}
}

func (w *fakeWorld) SetVelocity(id physics.ID, vel platformcore.Vec) {
	if b, ok := w.bodies[id]; ok {
		b.Vel = vel
	}
}

func (w *fakeWorld) SetAngle(id physics.ID, angle float64) {
	if b, ok := w.bodies[id]; ok {
		b.Angle = angle
	}
}

func (w *fakeWorld) SetAngularVelocity(id physics.ID, spin float64) {
	if b, ok := w.bodies[id]; ok {
		b.Spin = spin
	}
}

func (w *fakeWorld) SetStatic(id physics.ID, static bool) {
	if b, ok := w.bodies[id]; ok {
		b.Static = static
		if static {
			b.Vel = platformcore.Vec{}
		}
	}
}

func (w *fakeWorld) Clear() {
	clear(w.bodies)
	w.order = w.order[:0]
}

func (w *fakeWorld) Stop()   { w.stopped = true }
func (w *fakeWorld) Resume() { w.stopped = false }

func (w *fakeWorld) OnStep(fn func()) func() {
	w.hookID++
	id := w.hookID
	w.stepHooks[id] = fn
	return func() { delete(w.stepHooks, id) }
}

func (w *fakeWorld) OnContact(fn func(a, b physics.ID)) func() {
	w.hookID++
	id := w.hookID
	w.contactHooks[id] = fn
	return func() { delete(w.contactHooks, id) }
}

// Contact delivers a contact-start for a and b to every hook.
func (w *fakeWorld) Contact(a, b physics.ID) {
	for _, fn := range w.contactHooks {
		fn(a, b)
	}
}

// Step runs the after-step hooks without moving anything.
func (w *fakeWorld) Step() {
	for _, fn := range w.stepHooks {
		fn()
	}
}

// circles returns the non-static circles on the field.
func (w *fakeWorld) circles() []physics.Body {
	var out []physics.Body
	for _, b := range w.Bodies() {
		if b.Shape == physics.ShapeCircle && !b.Static {
			out = append(out, b)
		}
	}
	return out
}

// zeroSource makes every draw return rank 0.
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}
