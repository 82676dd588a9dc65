package camera

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"tabletop3d/internal/engine"
)

// State is the controller's interaction state. Exactly one state is active
// at a time; None is both the initial state and the state between
// interactions.
type State int

const (
	StateNone State = iota
	StateRotate
	StateDolly
	StatePan
	StateTouchRotate
	StateTouchPan
	StateTouchDollyPan
	StateTouchDollyRotate
)

// Action is the role a mouse button or touch-count is mapped to.
type Action int

const (
	ActionNone Action = iota
	ActionRotate
	ActionDolly
	ActionPan
	ActionDollyPan
	ActionDollyRotate
)

// Mouse buttons as delivered by the input layer.
const (
	ButtonLeft = iota
	ButtonMiddle
	ButtonRight
)

// Key identifies the pan arrow keys.
type Key int

const (
	KeyArrowUp Key = iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

// Modifiers carries the modifier-key flags of an input event. Any active
// modifier swaps the rotate and pan roles for the pressed button.
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

func (m Modifiers) any() bool {
	return m.Ctrl || m.Shift
}

// MouseButtonMap assigns an action to each mouse button.
type MouseButtonMap struct {
	Left   Action
	Middle Action
	Right  Action
}

// TouchMap assigns an action to one- and two-finger gestures.
type TouchMap struct {
	One Action
	Two Action
}

const eps = 1e-6

// a small phi margin keeps the camera off the poles, where the azimuth
// becomes degenerate
const safePhiMargin = 1e-6

// Controller derives the camera pose from spherical coordinates around a
// movable target, translating pointer/touch/key/wheel input into rotate,
// dolly and pan. Input handlers accumulate deltas; Update consumes them
// once per frame and once per discrete interaction step.
type Controller struct {
	Target mgl32.Vec3

	Enabled bool

	MinDistance float32
	MaxDistance float32

	MinZoom float32
	MaxZoom float32

	MinPolarAngle   float32 // radians, within [0, pi]
	MaxPolarAngle   float32
	MinAzimuthAngle float32 // radians, may be infinite
	MaxAzimuthAngle float32

	EnableDamping bool
	DampingFactor float32

	EnableRotate bool
	RotateSpeed  float32

	EnableZoom bool
	ZoomSpeed  float32

	EnablePan          bool
	PanSpeed           float32
	ScreenSpacePanning bool
	KeyPanSpeed        float32 // pixels per arrow-key press

	EnableKeys bool

	AutoRotate      bool
	AutoRotateSpeed float32 // 2.0 means one orbit in 30s at 60fps

	MouseButtons MouseButtonMap
	Touches      TouchMap

	// Lifecycle signals. Change fires whenever an Update moved the camera
	// beyond the movement threshold; it is the sole redraw cue.
	OnStart  engine.Event
	OnChange engine.Event
	OnEnd    engine.Event

	cam   *Camera
	state State

	width  float32
	height float32

	// Basis rotation making the camera's up vector +Y, fixed at construction
	quat    mgl32.Quat
	quatInv mgl32.Quat

	// Accumulators consumed by Update. Internal scratch state; not meant to
	// be observed mid-computation.
	spherical      spherical
	sphericalDelta spherical
	scale          float32
	panOffset      mgl32.Vec3
	zoomChanged    bool

	rotateStart mgl32.Vec2
	panStart    mgl32.Vec2
	dollyStart  mgl32.Vec2

	lastPosition mgl32.Vec3
	lastQuat     mgl32.Quat
}

// NewController wires a controller to a camera orbiting the given target.
func NewController(cam *Camera, target mgl32.Vec3) *Controller {
	inf := float32(math.Inf(1))
	c := &Controller{
		Target:  target,
		Enabled: true,

		MinDistance: 0,
		MaxDistance: inf,
		MinZoom:     0,
		MaxZoom:     inf,

		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi,
		MinAzimuthAngle: -inf,
		MaxAzimuthAngle: inf,

		EnableDamping: false,
		DampingFactor: 0.05,

		EnableRotate: true,
		RotateSpeed:  1.0,
		EnableZoom:   true,
		ZoomSpeed:    1.0,

		EnablePan:          true,
		PanSpeed:           1.0,
		ScreenSpacePanning: true,
		KeyPanSpeed:        7.0,

		EnableKeys: true,

		AutoRotate:      false,
		AutoRotateSpeed: 2.0,

		MouseButtons: MouseButtonMap{Left: ActionRotate, Middle: ActionDolly, Right: ActionPan},
		Touches:      TouchMap{One: ActionRotate, Two: ActionDollyPan},

		cam:   cam,
		scale: 1,

		width:  1,
		height: 1,
	}

	c.quat = mgl32.QuatBetweenVectors(cam.Up, mgl32.Vec3{0, 1, 0})
	c.quatInv = c.quat.Inverse()

	c.lastPosition = cam.Position
	c.lastQuat = cam.Orientation

	cam.LookAt(target)
	c.Update(0)
	return c
}

// Camera returns the controlled camera.
func (c *Controller) Camera() *Camera {
	return c.cam
}

// State returns the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// SetViewport tells the controller the input surface size in pixels.
func (c *Controller) SetViewport(width, height float32) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
}

// Azimuth returns the current horizontal angle around the target in radians.
func (c *Controller) Azimuth() float32 {
	return c.spherical.theta
}

// PolarAngle returns the current vertical angle in radians, 0 at the +Y pole.
func (c *Controller) PolarAngle() float32 {
	return c.spherical.phi
}

// Distance returns the current distance from camera to target.
func (c *Controller) Distance() float32 {
	return c.spherical.radius
}

// Dispose drops all registered lifecycle listeners. A pending frame or an
// in-flight interaction is not cancelled.
func (c *Controller) Dispose() {
	c.OnStart.RemoveAllListeners()
	c.OnChange.RemoveAllListeners()
	c.OnEnd.RemoveAllListeners()
}

// MouseDown classifies a pressed button into an interaction state. Modifier
// keys swap the rotate and pan roles.
func (c *Controller) MouseDown(button int, x, y float32, mods Modifiers) {
	if !c.Enabled {
		return
	}

	var action Action
	switch button {
	case ButtonLeft:
		action = c.MouseButtons.Left
	case ButtonMiddle:
		action = c.MouseButtons.Middle
	case ButtonRight:
		action = c.MouseButtons.Right
	default:
		action = ActionNone
	}

	switch action {
	case ActionDolly:
		if !c.EnableZoom {
			return
		}
		c.dollyStart = mgl32.Vec2{x, y}
		c.state = StateDolly

	case ActionRotate:
		if mods.any() {
			if !c.EnablePan {
				return
			}
			c.panStart = mgl32.Vec2{x, y}
			c.state = StatePan
		} else {
			if !c.EnableRotate {
				return
			}
			c.rotateStart = mgl32.Vec2{x, y}
			c.state = StateRotate
		}

	case ActionPan:
		if mods.any() {
			if !c.EnableRotate {
				return
			}
			c.rotateStart = mgl32.Vec2{x, y}
			c.state = StateRotate
		} else {
			if !c.EnablePan {
				return
			}
			c.panStart = mgl32.Vec2{x, y}
			c.state = StatePan
		}

	default:
		return
	}

	c.OnStart.Invoke()
}

// MouseMove applies the pointer delta against the last reference point and
// advances the reference point.
func (c *Controller) MouseMove(x, y float32) {
	if !c.Enabled {
		return
	}
	pos := mgl32.Vec2{x, y}

	switch c.state {
	case StateRotate:
		if !c.EnableRotate {
			return
		}
		delta := pos.Sub(c.rotateStart).Mul(c.RotateSpeed)
		c.rotateLeft(2 * math.Pi * delta.X() / c.height)
		c.rotateUp(2 * math.Pi * delta.Y() / c.height)
		c.rotateStart = pos
		c.Update(0)

	case StateDolly:
		if !c.EnableZoom {
			return
		}
		delta := pos.Sub(c.dollyStart)
		if delta.Y() > 0 {
			c.dollyOut(c.zoomScale())
		} else if delta.Y() < 0 {
			c.dollyIn(c.zoomScale())
		}
		c.dollyStart = pos
		c.Update(0)

	case StatePan:
		if !c.EnablePan {
			return
		}
		delta := pos.Sub(c.panStart).Mul(c.PanSpeed)
		c.pan(delta.X(), delta.Y())
		c.panStart = pos
		c.Update(0)
	}
}

// MouseUp ends the current interaction.
func (c *Controller) MouseUp() {
	if !c.Enabled || c.state == StateNone {
		return
	}
	c.OnEnd.Invoke()
	c.state = StateNone
}

// MouseWheel is an atomic start-dolly-end triple.
func (c *Controller) MouseWheel(deltaY float32) {
	if !c.Enabled || !c.EnableZoom || (c.state != StateNone && c.state != StateRotate) {
		return
	}

	c.OnStart.Invoke()
	if deltaY < 0 {
		c.dollyIn(c.zoomScale())
	} else if deltaY > 0 {
		c.dollyOut(c.zoomScale())
	}
	c.Update(0)
	c.OnEnd.Invoke()
}

// KeyDown performs one discrete pan step per arrow key. It never changes the
// interaction state.
func (c *Controller) KeyDown(key Key) {
	if !c.Enabled || !c.EnableKeys || !c.EnablePan {
		return
	}

	switch key {
	case KeyArrowUp:
		c.pan(0, c.KeyPanSpeed)
	case KeyArrowDown:
		c.pan(0, -c.KeyPanSpeed)
	case KeyArrowLeft:
		c.pan(c.KeyPanSpeed, 0)
	case KeyArrowRight:
		c.pan(-c.KeyPanSpeed, 0)
	default:
		return
	}
	c.Update(0)
}

// TouchStart classifies the gesture by touch count and configured roles.
func (c *Controller) TouchStart(points []mgl32.Vec2) {
	if !c.Enabled || len(points) == 0 {
		return
	}

	switch len(points) {
	case 1:
		switch c.Touches.One {
		case ActionRotate:
			if !c.EnableRotate {
				return
			}
			c.rotateStart = points[0]
			c.state = StateTouchRotate
		case ActionPan:
			if !c.EnablePan {
				return
			}
			c.panStart = points[0]
			c.state = StateTouchPan
		default:
			return
		}

	default:
		switch c.Touches.Two {
		case ActionDollyPan:
			if !c.EnableZoom && !c.EnablePan {
				return
			}
			c.touchStartDolly(points)
			c.touchStartPan(points)
			c.state = StateTouchDollyPan
		case ActionDollyRotate:
			if !c.EnableZoom && !c.EnableRotate {
				return
			}
			c.touchStartDolly(points)
			c.rotateStart = midpoint(points)
			c.state = StateTouchDollyRotate
		default:
			return
		}
	}

	c.OnStart.Invoke()
}

// TouchMove applies the gesture delta. A touch list shorter than the active
// gesture expects is ignored rather than trusted.
func (c *Controller) TouchMove(points []mgl32.Vec2) {
	if !c.Enabled || len(points) == 0 {
		return
	}

	switch c.state {
	case StateTouchRotate:
		if !c.EnableRotate {
			return
		}
		c.touchMoveRotate(points)
		c.Update(0)

	case StateTouchPan:
		if !c.EnablePan {
			return
		}
		c.touchMovePan(points)
		c.Update(0)

	case StateTouchDollyPan:
		if len(points) < 2 {
			return
		}
		if c.EnableZoom {
			c.touchMoveDolly(points)
		}
		if c.EnablePan {
			c.touchMovePan(points)
		}
		c.Update(0)

	case StateTouchDollyRotate:
		if len(points) < 2 {
			return
		}
		if c.EnableZoom {
			c.touchMoveDolly(points)
		}
		if c.EnableRotate {
			c.touchMoveRotate(points)
		}
		c.Update(0)
	}
}

// TouchEnd ends the current touch interaction.
func (c *Controller) TouchEnd() {
	if !c.Enabled || c.state == StateNone {
		return
	}
	c.OnEnd.Invoke()
	c.state = StateNone
}

func (c *Controller) touchStartDolly(points []mgl32.Vec2) {
	if !c.EnableZoom || len(points) < 2 {
		return
	}
	c.dollyStart = mgl32.Vec2{0, points[0].Sub(points[1]).Len()}
}

func (c *Controller) touchStartPan(points []mgl32.Vec2) {
	if !c.EnablePan {
		return
	}
	c.panStart = midpoint(points)
}

func (c *Controller) touchMoveRotate(points []mgl32.Vec2) {
	pos := midpoint(points)
	delta := pos.Sub(c.rotateStart).Mul(c.RotateSpeed)
	c.rotateLeft(2 * math.Pi * delta.X() / c.height)
	c.rotateUp(2 * math.Pi * delta.Y() / c.height)
	c.rotateStart = pos
}

func (c *Controller) touchMovePan(points []mgl32.Vec2) {
	pos := midpoint(points)
	delta := pos.Sub(c.panStart).Mul(c.PanSpeed)
	c.pan(delta.X(), delta.Y())
	c.panStart = pos
}

func (c *Controller) touchMoveDolly(points []mgl32.Vec2) {
	span := points[0].Sub(points[1]).Len()
	if c.dollyStart.Y() <= 0 {
		c.dollyStart = mgl32.Vec2{0, span}
		return
	}
	ratio := float32(math.Pow(float64(span/c.dollyStart.Y()), float64(c.ZoomSpeed)))
	c.dollyOut(ratio)
	c.dollyStart = mgl32.Vec2{0, span}
}

func midpoint(points []mgl32.Vec2) mgl32.Vec2 {
	if len(points) < 2 {
		return points[0]
	}
	return points[0].Add(points[1]).Mul(0.5)
}

func (c *Controller) rotateLeft(angle float32) {
	c.sphericalDelta.theta -= angle
}

func (c *Controller) rotateUp(angle float32) {
	c.sphericalDelta.phi -= angle
}

func (c *Controller) zoomScale() float32 {
	return float32(math.Pow(0.95, float64(c.ZoomSpeed)))
}

func (c *Controller) dollyIn(dollyScale float32) {
	switch p := c.cam.Projection.(type) {
	case Perspective:
		c.scale *= dollyScale
	case Orthographic:
		p.Zoom = clamp(p.Zoom/dollyScale, c.MinZoom, c.MaxZoom)
		c.cam.Projection = p
		c.zoomChanged = true
	default:
		log.Printf("Camera: unknown projection type, zoom disabled")
		c.EnableZoom = false
	}
}

func (c *Controller) dollyOut(dollyScale float32) {
	switch p := c.cam.Projection.(type) {
	case Perspective:
		c.scale /= dollyScale
	case Orthographic:
		p.Zoom = clamp(p.Zoom*dollyScale, c.MinZoom, c.MaxZoom)
		c.cam.Projection = p
		c.zoomChanged = true
	default:
		log.Printf("Camera: unknown projection type, zoom disabled")
		c.EnableZoom = false
	}
}

// pan accumulates a target translation so that a pixel delta moves the
// scene at a perceived speed independent of target distance.
func (c *Controller) pan(deltaX, deltaY float32) {
	switch p := c.cam.Projection.(type) {
	case Perspective:
		offset := c.cam.Position.Sub(c.Target)
		targetDistance := offset.Len()
		targetDistance *= float32(math.Tan(float64(p.FovY) / 2 * math.Pi / 180))
		c.panLeft(2 * deltaX * targetDistance / c.height)
		c.panUp(2 * deltaY * targetDistance / c.height)

	case Orthographic:
		c.panLeft(deltaX * (p.Right - p.Left) / p.Zoom / c.width)
		c.panUp(deltaY * (p.Top - p.Bottom) / p.Zoom / c.height)

	default:
		log.Printf("Camera: unknown projection type, pan disabled")
		c.EnablePan = false
	}
}

func (c *Controller) panLeft(distance float32) {
	right := c.cam.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
	c.panOffset = c.panOffset.Add(right.Mul(-distance))
}

func (c *Controller) panUp(distance float32) {
	var up mgl32.Vec3
	if c.ScreenSpacePanning {
		up = c.cam.Orientation.Rotate(mgl32.Vec3{0, 1, 0})
	} else {
		right := c.cam.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
		up = c.cam.Up.Cross(right).Mul(-1)
	}
	c.panOffset = c.panOffset.Add(up.Mul(distance))
}

// Update consumes the accumulated deltas and recomputes the camera pose.
// It reports whether the pose changed beyond the movement threshold; in
// that case the OnChange signal has fired.
func (c *Controller) Update(dt float32) bool {
	// Offset in the basis where the camera up vector is +Y
	offset := c.cam.Position.Sub(c.Target)
	offset = c.quat.Rotate(offset)
	c.spherical.setFromVector3(offset)

	if c.AutoRotate && c.state == StateNone {
		c.rotateLeft(2 * math.Pi / 60 * c.AutoRotateSpeed * dt)
	}

	if c.EnableDamping {
		c.spherical.theta += c.sphericalDelta.theta * c.DampingFactor
		c.spherical.phi += c.sphericalDelta.phi * c.DampingFactor
	} else {
		c.spherical.theta += c.sphericalDelta.theta
		c.spherical.phi += c.sphericalDelta.phi
	}

	if !math.IsInf(float64(c.MinAzimuthAngle), -1) && c.spherical.theta < c.MinAzimuthAngle {
		c.spherical.theta = c.MinAzimuthAngle
	}
	if !math.IsInf(float64(c.MaxAzimuthAngle), 1) && c.spherical.theta > c.MaxAzimuthAngle {
		c.spherical.theta = c.MaxAzimuthAngle
	}

	c.spherical.phi = clamp(c.spherical.phi, c.MinPolarAngle, c.MaxPolarAngle)
	c.spherical.phi = clamp(c.spherical.phi, safePhiMargin, math.Pi-safePhiMargin)

	c.spherical.radius = clamp(c.spherical.radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	offset = c.spherical.toVector3()
	offset = c.quatInv.Rotate(offset)

	c.cam.Position = c.Target.Add(offset)
	c.cam.LookAt(c.Target)

	if c.EnableDamping {
		c.sphericalDelta.theta *= 1 - c.DampingFactor
		c.sphericalDelta.phi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.sphericalDelta = spherical{}
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1

	// Movement threshold: squared position delta, quaternion rotation delta,
	// or a zoom change
	posDelta := c.cam.Position.Sub(c.lastPosition)
	rotDelta := 8 * (1 - c.lastQuat.Dot(c.cam.Orientation))
	if c.zoomChanged || posDelta.Dot(posDelta) > eps || rotDelta > eps {
		c.OnChange.Invoke()
		c.lastPosition = c.cam.Position
		c.lastQuat = c.cam.Orientation
		c.zoomChanged = false
		return true
	}
	return false
}
