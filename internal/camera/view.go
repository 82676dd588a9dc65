package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera holds the viewer pose and projection. The orbit controller mutates
// Position and Orientation in place; rendering converts to a raylib camera.
type Camera struct {
	Position    mgl32.Vec3
	Up          mgl32.Vec3
	Orientation mgl32.Quat
	Projection  Projection
}

// NewPerspective creates a camera with a perspective projection.
func NewPerspective(fovY float32, position mgl32.Vec3) *Camera {
	return &Camera{
		Position:    position,
		Up:          mgl32.Vec3{0, 1, 0},
		Orientation: mgl32.QuatIdent(),
		Projection:  Perspective{FovY: fovY},
	}
}

// NewOrthographic creates a camera with an orthographic projection.
func NewOrthographic(left, right, top, bottom float32, position mgl32.Vec3) *Camera {
	return &Camera{
		Position:    position,
		Up:          mgl32.Vec3{0, 1, 0},
		Orientation: mgl32.QuatIdent(),
		Projection:  Orthographic{Left: left, Right: right, Top: top, Bottom: bottom, Zoom: 1},
	}
}

// LookAt orients the camera toward the target, keeping its up vector.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Orientation = mgl32.QuatLookAtV(c.Position, target, c.Up)
}

// Forward returns the view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Raylib converts the camera for rendering. For orthographic projections
// raylib interprets Fovy as the vertical world-space span of the view.
func (c *Camera) Raylib() rl.Camera3D {
	target := c.Position.Add(c.Forward())
	cam := rl.Camera3D{
		Position: rl.Vector3{X: c.Position.X(), Y: c.Position.Y(), Z: c.Position.Z()},
		Target:   rl.Vector3{X: target.X(), Y: target.Y(), Z: target.Z()},
		Up:       rl.Vector3{X: c.Up.X(), Y: c.Up.Y(), Z: c.Up.Z()},
	}
	switch p := c.Projection.(type) {
	case Perspective:
		cam.Fovy = p.FovY
		cam.Projection = rl.CameraPerspective
	case Orthographic:
		cam.Fovy = (p.Top - p.Bottom) / p.Zoom
		cam.Projection = rl.CameraOrthographic
	}
	return cam
}
