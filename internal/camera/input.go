package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PollInput translates the raylib input state of the current frame into the
// controller's event methods. Touch input takes precedence over the mouse:
// raylib mirrors the primary touch as mouse input, and handling both would
// double-apply the gesture.
func (c *Controller) PollInput() {
	if !c.Enabled {
		return
	}

	if count := rl.GetTouchPointCount(); count > 0 || c.touchActive() {
		c.pollTouch(count)
		return
	}

	mods := Modifiers{
		Ctrl:  rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl),
		Shift: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
	}
	pos := rl.GetMousePosition()

	for button, rlButton := range map[int]rl.MouseButton{
		ButtonLeft:   rl.MouseLeftButton,
		ButtonMiddle: rl.MouseMiddleButton,
		ButtonRight:  rl.MouseRightButton,
	} {
		if rl.IsMouseButtonPressed(rlButton) {
			c.MouseDown(button, pos.X, pos.Y, mods)
		}
		if rl.IsMouseButtonReleased(rlButton) {
			c.MouseUp()
		}
	}

	if c.state != StateNone {
		c.MouseMove(pos.X, pos.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		// Browser convention: scrolling down is a positive delta
		c.MouseWheel(-wheel * 100)
	}

	for key, rlKey := range map[Key]int32{
		KeyArrowUp:    rl.KeyUp,
		KeyArrowDown:  rl.KeyDown,
		KeyArrowLeft:  rl.KeyLeft,
		KeyArrowRight: rl.KeyRight,
	} {
		if rl.IsKeyPressed(rlKey) {
			c.KeyDown(key)
		}
	}
}

func (c *Controller) touchActive() bool {
	switch c.state {
	case StateTouchRotate, StateTouchPan, StateTouchDollyPan, StateTouchDollyRotate:
		return true
	}
	return false
}

func (c *Controller) pollTouch(count int32) {
	if count == 0 {
		c.TouchEnd()
		return
	}

	points := make([]mgl32.Vec2, count)
	for i := int32(0); i < count; i++ {
		p := rl.GetTouchPosition(i)
		points[i] = mgl32.Vec2{p.X, p.Y}
	}

	if !c.touchActive() {
		c.TouchStart(points)
		return
	}
	c.TouchMove(points)
}
