package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   mgl32.Vec3    // World-space center
	HalfSize mgl32.Vec3    // Half-extents along local axes
	Axes     [3]mgl32.Vec3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, half extents, and orientation quaternion.
func NewOBB(center, halfExtents mgl32.Vec3, orientation mgl32.Quat) OBB {
	return OBB{
		Center:   center,
		HalfSize: halfExtents,
		Axes: [3]mgl32.Vec3{
			orientation.Rotate(mgl32.Vec3{1, 0, 0}),
			orientation.Rotate(mgl32.Vec3{0, 1, 0}),
			orientation.Rotate(mgl32.Vec3{0, 0, 1}),
		},
	}
}

// Corners returns the eight world-space corners of the box.
func (o OBB) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	i := 0
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				c := o.Center
				c = c.Add(o.Axes[0].Mul(sx * o.HalfSize.X()))
				c = c.Add(o.Axes[1].Mul(sy * o.HalfSize.Y()))
				c = c.Add(o.Axes[2].Mul(sz * o.HalfSize.Z()))
				out[i] = c
				i++
			}
		}
	}
	return out
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	// Vector from A's center to B's center
	t := b.Center.Sub(a.Center)

	// 15 axes: 3 face normals from A, 3 from B, 9 edge cross products

	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}

	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := a.Axes[i].Cross(b.Axes[j])
			// Skip near-zero axes (parallel edges)
			if axis.Len() > 0.0001 {
				if !overlapOnAxis(a, b, axis.Normalize(), t) {
					return false
				}
			}
		}
	}

	return true
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t mgl32.Vec3) bool {
	aProjection := projectHalfSize(a, axis)
	bProjection := projectHalfSize(b, axis)
	distance := absf(t.Dot(axis))
	return distance <= aProjection+bProjection
}

func projectHalfSize(o OBB, axis mgl32.Vec3) float32 {
	return o.HalfSize.X()*absf(o.Axes[0].Dot(axis)) +
		o.HalfSize.Y()*absf(o.Axes[1].Dot(axis)) +
		o.HalfSize.Z()*absf(o.Axes[2].Dot(axis))
}

// ResolveOBB returns the minimum translation vector to push 'a' out of 'b'.
// Returns zero vector if no overlap.
func (a OBB) ResolveOBB(b OBB) mgl32.Vec3 {
	if !a.IntersectsOBB(b) {
		return mgl32.Vec3{}
	}

	t := b.Center.Sub(a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv mgl32.Vec3

	testAxis := func(axis mgl32.Vec3) {
		if axis.Len() < 0.0001 {
			return
		}
		axis = axis.Normalize()

		aProj := projectHalfSize(a, axis)
		bProj := projectHalfSize(b, axis)
		dist := t.Dot(axis)
		penetration := aProj + bProj - absf(dist)

		if penetration < minPenetration {
			minPenetration = penetration
			// Push in the direction away from B
			if dist < 0 {
				mtv = axis.Mul(penetration)
			} else {
				mtv = axis.Mul(-penetration)
			}
		}
	}

	for i := 0; i < 3; i++ {
		testAxis(a.Axes[i])
	}
	for i := 0; i < 3; i++ {
		testAxis(b.Axes[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(a.Axes[i].Cross(b.Axes[j]))
		}
	}

	return mtv
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
