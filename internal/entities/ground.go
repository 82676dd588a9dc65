package entities

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tabletop3d/internal/physics"
)

// Ground is the table surface: a plane textured with the map image and a
// static physics plane at y=0. The plane is sized from the texture's aspect
// ratio so the map is never stretched.
type Ground struct {
	Texture rl.Texture2D
	Depth   float32
	Width   float32
}

// NewGround sizes the table from the map texture: depth is the given base
// size, width follows the texture aspect ratio.
func NewGround(texture rl.Texture2D, baseSize float32) *Ground {
	aspect := float32(1)
	if texture.Height > 0 {
		aspect = float32(texture.Width) / float32(texture.Height)
	}
	return &Ground{
		Texture: texture,
		Depth:   baseSize,
		Width:   baseSize * aspect,
	}
}

func (g *Ground) BuildModel() rl.Model {
	mesh := rl.GenMeshPlane(g.Width, g.Depth, 1, 1)
	model := rl.LoadModelFromMesh(mesh)
	if g.Texture.ID != 0 {
		rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, g.Texture)
	} else {
		model.Materials.Maps.Color = rl.LightGray
	}
	return model
}

func (g *Ground) BuildBody() *physics.Body {
	return physics.NewStaticPlane(mgl32.Vec3{0, 1, 0}, 0)
}
