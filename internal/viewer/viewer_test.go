package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop3d/internal/config"
	"tabletop3d/internal/physics"
)

// Engines under test hold bodies only; entities need a GPU context.

func newTestEngine() *Engine {
	return New(&config.Config{GravityY: -9.82})
}

func TestFlickKnocksHitBody(t *testing.T) {
	e := newTestEngine()
	die := physics.NewBox(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5}, 100)
	die.IsSleeping = true
	e.World.AddBody(die)

	e.flickAlong(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})

	require.False(t, die.IsSleeping)
	assert.Negative(t, die.Velocity.Z(), "flick pushes along the view ray")
	assert.Positive(t, die.Velocity.Y(), "flick lifts the die off the table")
}

func TestFlickIgnoresMissesAndStatics(t *testing.T) {
	e := newTestEngine()
	wall := physics.NewBox(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5}, 0) // mass 0: static
	die := physics.NewBox(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, 100)
	e.World.AddBody(wall)
	e.World.AddBody(die)

	// Ray hits the static box: nothing moves.
	e.flickAlong(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})
	assert.Equal(t, mgl32.Vec3{}, wall.Velocity)

	// Ray misses everything: nothing moves.
	e.flickAlong(mgl32.Vec3{10, 0, 10}, mgl32.Vec3{0, 0, -1})
	assert.Equal(t, mgl32.Vec3{}, die.Velocity)
}
