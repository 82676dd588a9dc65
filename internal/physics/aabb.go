package physics

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned box used as the broad phase: cheap overlap
// rejection before the full separating-axis test.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Bounds returns the world-space AABB enclosing the oriented box.
func (o OBB) Bounds() AABB {
	r := mgl32.Vec3{
		o.HalfSize.X()*absf(o.Axes[0].X()) + o.HalfSize.Y()*absf(o.Axes[1].X()) + o.HalfSize.Z()*absf(o.Axes[2].X()),
		o.HalfSize.X()*absf(o.Axes[0].Y()) + o.HalfSize.Y()*absf(o.Axes[1].Y()) + o.HalfSize.Z()*absf(o.Axes[2].Y()),
		o.HalfSize.X()*absf(o.Axes[0].Z()) + o.HalfSize.Y()*absf(o.Axes[1].Z()) + o.HalfSize.Z()*absf(o.Axes[2].Z()),
	}
	return AABB{Min: o.Center.Sub(r), Max: o.Center.Add(r)}
}

// Bounds returns the body's world-space box bounds. Only meaningful for
// box shapes; plane bodies never reach the broad phase.
func (b *Body) Bounds() AABB {
	return NewOBB(b.Position, b.Shape.HalfExtents, b.Orientation).Bounds()
}
