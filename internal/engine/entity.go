package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tabletop3d/internal/physics"
)

// Builder constructs the two halves of an entity. BuildModel runs on the
// render thread (it uploads GPU resources); BuildBody is pure state.
type Builder interface {
	BuildModel() rl.Model
	BuildBody() *physics.Body
}

// Entity pairs exactly one visual model with one rigid body. The pair is
// created together and destroyed together. The body is authoritative:
// between frames the model transform may lag, Sync brings it back in line
// once per frame.
type Entity struct {
	Name  string
	Model rl.Model
	Body  *physics.Body
	Tint  rl.Color
}

// NewEntity builds the model/body pair from the given builder.
func NewEntity(name string, b Builder) *Entity {
	e := &Entity{
		Name:  name,
		Model: b.BuildModel(),
		Body:  b.BuildBody(),
		Tint:  rl.White,
	}
	e.Sync()
	return e
}

// SetPosition moves body and model in lockstep.
func (e *Entity) SetPosition(p mgl32.Vec3) {
	e.Body.Position = p
	e.Body.Wake()
	e.Sync()
}

// SetRotation rotates body and model in lockstep.
func (e *Entity) SetRotation(q mgl32.Quat) {
	e.Body.Orientation = q.Normalize()
	e.Body.Wake()
	e.Sync()
}

// Position returns the body's world position.
func (e *Entity) Position() mgl32.Vec3 {
	return e.Body.Position
}

// Orientation returns the body's world orientation.
func (e *Entity) Orientation() mgl32.Quat {
	return e.Body.Orientation
}

// Sync copies the rigid body's position and orientation onto the model
// transform. Called once per frame after the physics step.
func (e *Entity) Sync() {
	p := e.Body.Position
	m := mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(e.Body.Orientation.Mat4())
	e.Model.Transform = rlMatrix(m)
}

// Draw renders the model with its synced transform baked in.
func (e *Entity) Draw() {
	rl.DrawModel(e.Model, rl.Vector3Zero(), 1.0, e.Tint)
}

// Unload releases the model's GPU resources. The body is removed from the
// physics world by the scene owner, keeping the pair's lifetimes aligned.
func (e *Entity) Unload() {
	rl.UnloadModel(e.Model)
}

// rlMatrix converts a column-major mgl32 matrix to the raylib layout.
func rlMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
