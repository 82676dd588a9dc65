package viewer

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type overlayState struct {
	hidden bool
}

// drawOverlay renders the control panel. raygui widgets are immediate-mode,
// so the controller's config fields double as the widget state.
func (e *Engine) drawOverlay() {
	rl.DrawFPS(10, 10)

	if e.overlay.hidden {
		if gui.Button(rl.NewRectangle(10, 34, 90, 22), "Controls") {
			e.overlay.hidden = false
		}
		return
	}

	x := float32(10)
	y := float32(34)

	gui.Panel(rl.NewRectangle(x, y, 230, 178), "Camera")
	y += 28

	c := e.Controls
	c.EnableDamping = gui.CheckBox(rl.NewRectangle(x+8, y, 16, 16), "Damping", c.EnableDamping)
	c.AutoRotate = gui.CheckBox(rl.NewRectangle(x+120, y, 16, 16), "Auto-rotate", c.AutoRotate)
	y += 26

	c.RotateSpeed = gui.Slider(rl.NewRectangle(x+58, y, 130, 16), "Rotate", fmt.Sprintf("%.1f", c.RotateSpeed), c.RotateSpeed, 0.1, 4)
	y += 24
	c.ZoomSpeed = gui.Slider(rl.NewRectangle(x+58, y, 130, 16), "Zoom", fmt.Sprintf("%.1f", c.ZoomSpeed), c.ZoomSpeed, 0.1, 4)
	y += 24
	c.PanSpeed = gui.Slider(rl.NewRectangle(x+58, y, 130, 16), "Pan", fmt.Sprintf("%.1f", c.PanSpeed), c.PanSpeed, 0.1, 4)
	y += 28

	if gui.Button(rl.NewRectangle(x+8, y, 100, 22), "Roll dice") {
		e.rollDice()
	}
	if gui.Button(rl.NewRectangle(x+116, y, 100, 22), "Hide") {
		e.overlay.hidden = true
	}
}

// rollDice tosses every die entity back above the table with a random
// throw. Static bodies and non-dice are left alone.
func (e *Engine) rollDice() {
	for _, ent := range e.Scene.Entities {
		if !strings.HasPrefix(ent.Name, "die") {
			continue
		}
		ent.SetPosition(mgl32.Vec3{
			rand.Float32()*4 - 2,
			6 + rand.Float32()*2,
			rand.Float32()*4 - 2,
		})
		ent.Body.Velocity = mgl32.Vec3{
			rand.Float32()*6 - 3,
			0,
			rand.Float32()*6 - 3,
		}
		ent.Body.AngularVelocity = mgl32.Vec3{
			rand.Float32()*12 - 6,
			rand.Float32()*12 - 6,
			rand.Float32()*12 - 6,
		}
	}
}
