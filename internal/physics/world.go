package physics

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// Fixed-step advancement parameters. Step covers the measured wall-clock
// delta in FixedTimeStep increments, bounded by MaxSubSteps per call so a
// frame-rate drop makes the simulation fall behind instead of spiraling.
const (
	FixedTimeStep = float32(1.0 / 60.0)
	MaxSubSteps   = 10
)

// estimateContactPoint estimates the contact point on a box surface given a
// push direction, in the body's local frame centered at origin.
func estimateContactPoint(halfSize, pushDir mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		-pushDir.X() * halfSize.X(),
		-pushDir.Y() * halfSize.Y(),
		-pushDir.Z() * halfSize.Z(),
	}
}

// World owns all rigid bodies and advances them in fixed time steps.
type World struct {
	Gravity mgl32.Vec3
	Bodies  []*Body

	accumulator float32
}

// NewWorld creates an empty world with tabletop gravity.
func NewWorld() *World {
	return &World{
		Gravity: mgl32.Vec3{0, -9.82, 0},
		Bodies:  make([]*Body, 0),
	}
}

func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

func (w *World) RemoveBody(b *Body) {
	for i, body := range w.Bodies {
		if body == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return
		}
	}
}

// DynamicBodyCount returns the number of non-static bodies.
func (w *World) DynamicBodyCount() int {
	n := 0
	for _, b := range w.Bodies {
		if !b.Static() {
			n++
		}
	}
	return n
}

// Step advances the simulation toward covering the elapsed wall-clock time,
// in FixedTimeStep sub-steps, at most MaxSubSteps per call.
func (w *World) Step(elapsed float32) {
	if elapsed < 0 {
		return
	}
	w.accumulator += elapsed

	steps := 0
	for w.accumulator >= FixedTimeStep && steps < MaxSubSteps {
		w.subStep(FixedTimeStep)
		w.accumulator -= FixedTimeStep
		steps++
	}

	// Catch-up budget exhausted: drop the surplus so the next frame starts
	// fresh instead of carrying an ever-growing debt.
	if w.accumulator >= FixedTimeStep {
		log.Printf("Physics: dropping %.0fms of simulation debt", w.accumulator*1000)
		w.accumulator = 0
	}
}

func (w *World) subStep(dt float32) {
	// 1. Integrate gravity, velocity and orientation
	for _, b := range w.Bodies {
		if b.Static() || b.IsSleeping {
			continue
		}

		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))

		// Quaternion derivative: q' = q + 0.5*dt*(0,w)*q
		omega := mgl32.Quat{W: 0, V: b.AngularVelocity}
		dq := omega.Mul(b.Orientation).Scale(0.5 * dt)
		b.Orientation = b.Orientation.Add(dq).Normalize()

		// Time-based angular damping so it's framerate independent
		damping := 1.0 - (1.0-b.AngularDamping)*dt*60
		if damping < 0 {
			damping = 0
		}
		b.AngularVelocity = b.AngularVelocity.Mul(damping)
	}

	// 2. Collisions: dynamic vs dynamic, then dynamic vs static
	for i := 0; i < len(w.Bodies); i++ {
		a := w.Bodies[i]
		if a.Static() {
			continue
		}
		for j := 0; j < len(w.Bodies); j++ {
			if i == j {
				continue
			}
			b := w.Bodies[j]
			switch {
			case b.Static():
				w.resolveStatic(a, b)
			case j > i:
				w.resolveDynamic(a, b)
			}
		}
	}

	// 3. Sleep pass
	for _, b := range w.Bodies {
		if b.Static() {
			continue
		}
		b.trySleep(dt)
	}
}

// resolveDynamic handles box vs box between two dynamic bodies.
func (w *World) resolveDynamic(a, b *Body) {
	if a.Shape.Kind != ShapeBox || b.Shape.Kind != ShapeBox {
		return
	}
	if a.IsSleeping && b.IsSleeping {
		return
	}

	// Broad phase before the 15-axis SAT
	if !a.Bounds().Intersects(b.Bounds()) {
		return
	}

	obbA := NewOBB(a.Position, a.Shape.HalfExtents, a.Orientation)
	obbB := NewOBB(b.Position, b.Shape.HalfExtents, b.Orientation)

	pushOut := obbA.ResolveOBB(obbB)
	if pushOut == (mgl32.Vec3{}) {
		return
	}

	// Wake on contact with significant relative velocity; micro-contacts
	// must not wake settled stacks.
	relVel := a.Velocity.Sub(b.Velocity)
	if relVel.Len() > SleepVelocityThreshold*2 {
		a.Wake()
		b.Wake()
	}

	// Split the push based on mass ratio
	totalMass := a.Mass + b.Mass
	a.Position = a.Position.Add(pushOut.Mul(b.Mass / totalMass))
	b.Position = b.Position.Sub(pushOut.Mul(a.Mass / totalMass))

	pushLen := pushOut.Len()
	if pushLen < 0.0001 {
		return
	}
	normal := pushOut.Mul(1 / pushLen)

	velAlongNormal := relVel.Dot(normal)
	if velAlongNormal > 0 {
		// Already separating
		return
	}

	e := (a.Restitution + b.Restitution) / 2
	j := -(1 + e) * velAlongNormal
	j /= 1/a.Mass + 1/b.Mass

	impulse := normal.Mul(j)
	a.Velocity = a.Velocity.Add(impulse.Mul(1 / a.Mass))
	b.Velocity = b.Velocity.Sub(impulse.Mul(1 / b.Mass))

	// Contact torque: contact point sits on the face opposite the push
	if -velAlongNormal > 1.0 {
		rA := estimateContactPoint(a.Shape.HalfExtents, normal.Mul(-1))
		rB := estimateContactPoint(b.Shape.HalfExtents, normal)

		const torqueScale = 8.0
		a.AngularVelocity = a.AngularVelocity.Add(rA.Cross(impulse).Mul(torqueScale / a.Mass))
		b.AngularVelocity = b.AngularVelocity.Add(rB.Cross(impulse.Mul(-1)).Mul(torqueScale / b.Mass))
	}
}

// resolveStatic handles a dynamic box against a static body (plane or box).
func (w *World) resolveStatic(body, static *Body) {
	if body.Shape.Kind != ShapeBox || body.IsSleeping {
		return
	}
	switch static.Shape.Kind {
	case ShapePlane:
		w.resolveBoxVsPlane(body, static)
	case ShapeBox:
		w.resolveBoxVsStaticBox(body, static)
	}
}

func (w *World) resolveBoxVsPlane(body, plane *Body) {
	normal := plane.Shape.Normal
	obb := NewOBB(body.Position, body.Shape.HalfExtents, body.Orientation)

	// Deepest corner below the plane decides penetration and contact point
	var deepest float32
	var contact mgl32.Vec3
	found := false
	for _, corner := range obb.Corners() {
		d := corner.Dot(normal) - plane.Shape.Offset
		if d < deepest {
			deepest = d
			contact = corner
			found = true
		}
	}
	if !found {
		return
	}

	// Push fully out (the plane doesn't move)
	body.Position = body.Position.Sub(normal.Mul(deepest))

	// Contact-point velocity includes the angular contribution
	r := contact.Sub(body.Position)
	contactVel := body.Velocity.Add(body.AngularVelocity.Cross(r))
	velAlongNormal := contactVel.Dot(normal)
	if velAlongNormal >= 0 {
		return
	}

	e := (body.Restitution + plane.Restitution) / 2
	j := -(1 + e) * velAlongNormal * body.Mass
	impulse := normal.Mul(j)
	body.Velocity = body.Velocity.Add(impulse.Mul(1 / body.Mass))

	// Tangential friction
	tangentVel := body.Velocity.Sub(normal.Mul(body.Velocity.Dot(normal)))
	body.Velocity = body.Velocity.Sub(tangentVel.Mul((body.Friction + plane.Friction) / 2))

	// Contact torque tips the box toward a flat face. Only real impacts get
	// torque; resting contact must stay quiet so the body can sleep.
	if -velAlongNormal > 1.0 {
		const torqueScale = 8.0
		body.AngularVelocity = body.AngularVelocity.Add(r.Cross(impulse).Mul(torqueScale / body.Mass))
	}

	// Angular friction on ground contact
	if normal.Y() > 0.5 {
		f := 1 - body.Friction*0.5
		body.AngularVelocity = mgl32.Vec3{
			body.AngularVelocity.X() * f,
			body.AngularVelocity.Y() * f,
			body.AngularVelocity.Z() * f,
		}
	}
}

func (w *World) resolveBoxVsStaticBox(body, static *Body) {
	if !body.Bounds().Intersects(static.Bounds()) {
		return
	}

	obbBody := NewOBB(body.Position, body.Shape.HalfExtents, body.Orientation)
	obbStatic := NewOBB(static.Position, static.Shape.HalfExtents, static.Orientation)

	pushOut := obbBody.ResolveOBB(obbStatic)
	if pushOut == (mgl32.Vec3{}) {
		return
	}

	body.Position = body.Position.Add(pushOut)

	pushLen := pushOut.Len()
	if pushLen < 0.0001 {
		return
	}
	normal := pushOut.Mul(1 / pushLen)

	velAlongNormal := body.Velocity.Dot(normal)
	if velAlongNormal >= 0 {
		return
	}

	e := (body.Restitution + static.Restitution) / 2
	reflect := normal.Mul(-(1 + e) * velAlongNormal)
	body.Velocity = body.Velocity.Add(reflect)

	tangentVel := body.Velocity.Sub(normal.Mul(body.Velocity.Dot(normal)))
	body.Velocity = body.Velocity.Sub(tangentVel.Mul(body.Friction))

	if -velAlongNormal > 1.0 {
		r := estimateContactPoint(body.Shape.HalfExtents, normal.Mul(-1))
		const torqueScale = 8.0
		body.AngularVelocity = body.AngularVelocity.Add(r.Cross(reflect.Mul(body.Mass)).Mul(torqueScale / body.Mass))
	}
}
