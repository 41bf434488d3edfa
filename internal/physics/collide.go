package physics

import (
	"math"

	"github.com/vovakirdan/bopdrop/internal/core"
)

// manifold describes a contact. normal points from the first body to the
// second; depth is positive when they overlap and negative for a gap.
type manifold struct {
	normal core.Vec
	depth  float64
}

func collide(a, b *Body) (manifold, bool) {
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return circleCircle(a, b), true
	case a.Shape == ShapeBox && b.Shape == ShapeCircle:
		return boxCircle(a, b), true
	case a.Shape == ShapeCircle && b.Shape == ShapeBox:
		m := boxCircle(b, a)
		m.normal = m.normal.Scale(-1)
		return m, true
	default:
		return manifold{}, false
	}
}

func circleCircle(a, b *Body) manifold {
	d := b.Pos.Sub(a.Pos)
	dist := d.Len()
	n := core.V(0, 1)
	if dist > 1e-9 {
		n = d.Scale(1 / dist)
	}
	return manifold{normal: n, depth: a.Radius + b.Radius - dist}
}

// boxCircle returns the manifold with the normal pointing from box to circle.
func boxCircle(box, c *Body) manifold {
	minX, maxX := box.Pos.X-box.HalfW, box.Pos.X+box.HalfW
	minY, maxY := box.Pos.Y-box.HalfH, box.Pos.Y+box.HalfH

	closest := core.V(
		core.ClampF(c.Pos.X, minX, maxX),
		core.ClampF(c.Pos.Y, minY, maxY),
	)
	d := c.Pos.Sub(closest)
	dist := d.Len()
	if dist > 1e-9 {
		return manifold{normal: d.Scale(1 / dist), depth: c.Radius - dist}
	}

	// Center inside the box: push out along the shallowest axis.
	left := c.Pos.X - minX
	right := maxX - c.Pos.X
	top := c.Pos.Y - minY
	bottom := maxY - c.Pos.Y
	least := math.Min(math.Min(left, right), math.Min(top, bottom))
	switch least {
	case top:
		return manifold{normal: core.V(0, -1), depth: c.Radius + top}
	case left:
		return manifold{normal: core.V(-1, 0), depth: c.Radius + left}
	case right:
		return manifold{normal: core.V(1, 0), depth: c.Radius + right}
	default:
		return manifold{normal: core.V(0, 1), depth: c.Radius + bottom}
	}
}
