package entities

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tabletop3d/internal/physics"
)

func TestDieBody(t *testing.T) {
	die := NewDie(2, mgl32.Vec3{0, 5, 0}, rl.Red)
	die.Spin = mgl32.Vec3{1, 2, 3}

	body := die.BuildBody()

	assert.Equal(t, physics.ShapeBox, body.Shape.Kind)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, body.Shape.HalfExtents)
	assert.Equal(t, mgl32.Vec3{0, 5, 0}, body.Position)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, body.AngularVelocity)
	assert.False(t, body.Static())
	assert.True(t, body.CanSleep)
}

func TestGroundSizedByTextureAspect(t *testing.T) {
	tex := rl.Texture2D{Width: 1600, Height: 800}
	g := NewGround(tex, 20)

	assert.Equal(t, float32(20), g.Depth)
	assert.Equal(t, float32(40), g.Width)
}

func TestGroundWithoutTextureIsSquare(t *testing.T) {
	g := NewGround(rl.Texture2D{}, 20)

	assert.Equal(t, float32(20), g.Depth)
	assert.Equal(t, float32(20), g.Width)
}

func TestGroundBodyIsStaticPlane(t *testing.T) {
	body := NewGround(rl.Texture2D{}, 20).BuildBody()

	assert.True(t, body.Static())
	assert.Equal(t, physics.ShapePlane, body.Shape.Kind)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, body.Shape.Normal)
	assert.Zero(t, body.Shape.Offset)
}
