package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RaycastHit describes the closest surface a ray hit.
type RaycastHit struct {
	Body     *Body
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Raycast finds the closest box body hit by the ray. Plane bodies are not
// pickable; the ray passes through them.
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool) {
	if direction.Len() == 0 {
		return RaycastHit{}, false
	}
	direction = direction.Normalize()

	closest := RaycastHit{Distance: maxDistance}
	hit := false
	for _, b := range w.Bodies {
		if b.Shape.Kind != ShapeBox {
			continue
		}
		if h, ok := raycastBox(origin, direction, b, closest.Distance); ok {
			closest = h
			closest.Body = b
			hit = true
		}
	}
	return closest, hit
}

// raycastBox runs a slab test in the box's local frame, where the box is
// axis-aligned around the origin.
func raycastBox(origin, direction mgl32.Vec3, b *Body, maxDistance float32) (RaycastHit, bool) {
	inv := b.Orientation.Inverse()
	localOrigin := inv.Rotate(origin.Sub(b.Position))
	localDir := inv.Rotate(direction)
	half := b.Shape.HalfExtents

	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for axis := 0; axis < 3; axis++ {
		o := localOrigin[axis]
		d := localDir[axis]
		h := half[axis]
		if d == 0 {
			if o < -h || o > h {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (-h - o) / d
		t2 := (h - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}
	t := tmin
	if t < 0 {
		// Ray starts inside the box
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	localPoint := localOrigin.Add(localDir.Mul(t))

	// Normal of the face the hit point sits on
	var localNormal mgl32.Vec3
	best := float32(math.Inf(1))
	for axis := 0; axis < 3; axis++ {
		if d := absf(half[axis] - absf(localPoint[axis])); d < best {
			best = d
			localNormal = mgl32.Vec3{}
			if localPoint[axis] < 0 {
				localNormal[axis] = -1
			} else {
				localNormal[axis] = 1
			}
		}
	}

	return RaycastHit{
		Point:    b.Position.Add(b.Orientation.Rotate(localPoint)),
		Normal:   b.Orientation.Rotate(localNormal),
		Distance: t,
	}, true
}
