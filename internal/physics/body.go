package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.15 // units/sec - below this, body might sleep
	SleepAngularThreshold  = 0.25 // rad/sec - below this, body might sleep
	SleepTimeThreshold     = 0.3  // seconds of low velocity before sleeping
)

// ShapeKind tags the collision shape variants.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapePlane
)

// Shape is a tagged collision shape. Box uses HalfExtents; Plane is the
// infinite plane with the given unit Normal at signed Offset from origin.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl32.Vec3
	Normal      mgl32.Vec3
	Offset      float32
}

// BoxShape returns a box shape with the given half extents.
func BoxShape(halfExtents mgl32.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// PlaneShape returns an infinite plane shape.
func PlaneShape(normal mgl32.Vec3, offset float32) Shape {
	return Shape{Kind: ShapePlane, Normal: normal.Normalize(), Offset: offset}
}

// Body is a rigid body. The body's transform is authoritative; meshes are
// derived from it once per frame. Mass 0 marks a static body.
type Body struct {
	Position        mgl32.Vec3
	Orientation     mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3 // radians per second on each axis
	Mass            float32
	Restitution     float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32
	Shape           Shape

	// Sleep state - sleeping bodies skip integration
	IsSleeping bool
	CanSleep   bool
	sleepTimer float32
}

// NewBox creates a dynamic box body at the given position.
func NewBox(position, halfExtents mgl32.Vec3, mass float32) *Body {
	return &Body{
		Position:       position,
		Orientation:    mgl32.QuatIdent(),
		Mass:           mass,
		Restitution:    0.3,
		Friction:       0.4,
		AngularDamping: 0.98,
		Shape:          BoxShape(halfExtents),
		CanSleep:       true,
	}
}

// NewStaticPlane creates an immovable plane body. A zero mass keeps it out
// of integration; it only participates as a collision target.
func NewStaticPlane(normal mgl32.Vec3, offset float32) *Body {
	return &Body{
		Orientation: mgl32.QuatIdent(),
		Shape:       PlaneShape(normal, offset),
		Restitution: 0.3,
		Friction:    0.4,
	}
}

// Static reports whether the body never moves.
func (b *Body) Static() bool {
	return b.Mass == 0
}

// Wake forces the body out of sleep state.
func (b *Body) Wake() {
	b.IsSleeping = false
	b.sleepTimer = 0
}

// ApplyImpulse adds an instantaneous velocity change scaled by mass.
func (b *Body) ApplyImpulse(impulse mgl32.Vec3) {
	if b.Static() {
		return
	}
	b.Wake()
	b.Velocity = b.Velocity.Add(impulse.Mul(1.0 / b.Mass))
}

// trySleep checks if the body should go to sleep based on velocity.
func (b *Body) trySleep(deltaTime float32) {
	if !b.CanSleep || b.IsSleeping {
		return
	}

	speed := b.Velocity.Len()
	angSpeed := b.AngularVelocity.Len()

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		b.sleepTimer += deltaTime

		// Extra damping when nearly at rest to reduce jitter
		b.Velocity = b.Velocity.Mul(0.9)
		b.AngularVelocity = b.AngularVelocity.Mul(0.9)

		if b.sleepTimer >= SleepTimeThreshold {
			b.IsSleeping = true
			b.Velocity = mgl32.Vec3{}
			b.AngularVelocity = mgl32.Vec3{}
		}
	} else {
		b.sleepTimer = 0
	}
}
