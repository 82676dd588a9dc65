package entities

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tabletop3d/internal/physics"
)

// Die is a physics-driven cube dropped onto the table.
type Die struct {
	Size     float32
	Mass     float32
	Color    rl.Color
	Texture  rl.Texture2D // zero ID means untextured
	Position mgl32.Vec3
	Spin     mgl32.Vec3 // initial angular velocity, radians/sec
}

// NewDie creates a die of the given edge length above the table.
func NewDie(size float32, position mgl32.Vec3, color rl.Color) *Die {
	return &Die{
		Size:     size,
		Mass:     100,
		Color:    color,
		Position: position,
	}
}

func (d *Die) BuildModel() rl.Model {
	mesh := rl.GenMeshCube(d.Size, d.Size, d.Size)
	model := rl.LoadModelFromMesh(mesh)
	if d.Texture.ID != 0 {
		rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, d.Texture)
	} else {
		model.Materials.Maps.Color = d.Color
	}
	return model
}

func (d *Die) BuildBody() *physics.Body {
	half := d.Size / 2
	body := physics.NewBox(d.Position, mgl32.Vec3{half, half, half}, d.Mass)
	body.AngularVelocity = d.Spin
	return body
}
