// Headless settling check: drops a tray of dice and reports how long the
// simulation takes to put every body to sleep. Run after touching the
// solver to catch resting-contact jitter regressions without a window.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"tabletop3d/internal/physics"
)

func main() {
	testCounts := []int{1, 4, 8, 16, 32}

	for _, count := range testCounts {
		testSettle(count)
	}
}

func testSettle(count int) {
	rand.Seed(42) // Consistent results

	world := physics.NewWorld()
	world.AddBody(physics.NewStaticPlane(mgl32.Vec3{0, 1, 0}, 0))

	// Spawn in a loose grid above the plane with random spin so they
	// collide on the way down.
	for i := 0; i < count; i++ {
		pos := mgl32.Vec3{
			float32(i%4)*1.6 - 2.4,
			4 + float32(i/4)*1.6,
			float32((i*7)%4)*1.6 - 2.4,
		}
		box := physics.NewBox(pos, mgl32.Vec3{0.5, 0.5, 0.5}, 100)
		box.AngularVelocity = mgl32.Vec3{
			rand.Float32()*8 - 4,
			rand.Float32()*8 - 4,
			rand.Float32()*8 - 4,
		}
		world.AddBody(box)
	}

	const maxSeconds = 30
	dt := physics.FixedTimeStep
	maxSteps := int(maxSeconds / dt)

	start := time.Now()
	steps := 0
	for ; steps < maxSteps; steps++ {
		world.Step(physics.FixedTimeStep)
		if allAsleep(world) {
			break
		}
	}
	elapsed := time.Since(start)

	if !allAsleep(world) {
		fmt.Printf("%3d dice: DID NOT SETTLE in %ds (awake: %d)\n",
			count, maxSeconds, awakeCount(world))
		return
	}

	simTime := float32(steps) * physics.FixedTimeStep
	fmt.Printf("%3d dice: settled in %6.2fs sim (%d steps) | wall %8v | max height %.3f\n",
		count, simTime, steps, elapsed.Round(time.Microsecond), maxHeight(world))
}

func allAsleep(w *physics.World) bool {
	for _, b := range w.Bodies {
		if !b.Static() && !b.IsSleeping {
			return false
		}
	}
	return true
}

func awakeCount(w *physics.World) int {
	n := 0
	for _, b := range w.Bodies {
		if !b.Static() && !b.IsSleeping {
			n++
		}
	}
	return n
}

func maxHeight(w *physics.World) float32 {
	top := float32(0)
	for _, b := range w.Bodies {
		if !b.Static() && b.Position.Y() > top {
			top = b.Position.Y()
		}
	}
	return top
}
