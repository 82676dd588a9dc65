package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestController builds a controller on an 800x800 viewport with the
// camera 10 units down +Z from the origin.
func newTestController() *Controller {
	cam := NewPerspective(45, mgl32.Vec3{0, 0, 10})
	c := NewController(cam, mgl32.Vec3{})
	c.SetViewport(800, 800)
	return c
}

func TestMouseDownClassification(t *testing.T) {
	tests := []struct {
		name   string
		button int
		mods   Modifiers
		want   State
	}{
		{"left rotates", ButtonLeft, Modifiers{}, StateRotate},
		{"middle dollies", ButtonMiddle, Modifiers{}, StateDolly},
		{"right pans", ButtonRight, Modifiers{}, StatePan},
		{"shift+left pans", ButtonLeft, Modifiers{Shift: true}, StatePan},
		{"ctrl+left pans", ButtonLeft, Modifiers{Ctrl: true}, StatePan},
		{"shift+right rotates", ButtonRight, Modifiers{Shift: true}, StateRotate},
		{"unknown button ignored", 7, Modifiers{}, StateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			c.MouseDown(tt.button, 400, 400, tt.mods)
			assert.Equal(t, tt.want, c.State())

			c.MouseUp()
			assert.Equal(t, StateNone, c.State())
		})
	}
}

func TestMouseDownRespectsCapabilityFlags(t *testing.T) {
	c := newTestController()
	c.EnableRotate = false
	c.MouseDown(ButtonLeft, 0, 0, Modifiers{})
	assert.Equal(t, StateNone, c.State())

	c.EnablePan = false
	c.MouseDown(ButtonRight, 0, 0, Modifiers{})
	assert.Equal(t, StateNone, c.State())

	c.EnableZoom = false
	c.MouseDown(ButtonMiddle, 0, 0, Modifiers{})
	assert.Equal(t, StateNone, c.State())
}

func TestDisabledControllerIgnoresInput(t *testing.T) {
	c := newTestController()
	c.Enabled = false

	starts := 0
	c.OnStart.AddListener(func() { starts++ })

	c.MouseDown(ButtonLeft, 0, 0, Modifiers{})
	c.MouseWheel(120)
	c.KeyDown(KeyArrowUp)
	c.TouchStart([]mgl32.Vec2{{100, 100}})

	assert.Equal(t, StateNone, c.State())
	assert.Zero(t, starts)
	assert.InDelta(t, 10.0, c.Distance(), 1e-5)
}

func TestRotateDragMovesAzimuth(t *testing.T) {
	c := newTestController()

	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	c.MouseMove(500, 400) // +100px horizontal on a 800px-high viewport
	c.MouseUp()

	// One full viewport height of drag is one full orbit, so 100px is
	// 2*pi*100/800, applied opposite the drag direction.
	wantTheta := float32(-2 * math.Pi * 100 / 800)
	assert.InDelta(t, wantTheta, c.Azimuth(), 1e-5)
	assert.InDelta(t, math.Pi/2, c.PolarAngle(), 1e-5)
	assert.InDelta(t, 10.0, c.Distance(), 1e-4)

	// The camera orbited, it did not roll: still 10 units from the target.
	pos := c.Camera().Position
	assert.InDelta(t, 10*math.Sin(float64(-wantTheta)), -pos.X(), 1e-3)
	assert.InDelta(t, 10*math.Cos(float64(wantTheta)), pos.Z(), 1e-3)
	assert.InDelta(t, 0, pos.Y(), 1e-3)
}

func TestVerticalDragClampsToPolarLimits(t *testing.T) {
	c := newTestController()
	c.MaxPolarAngle = 1.45

	// Dragging up tilts the camera down toward the horizon limit.
	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	c.MouseMove(400, -40000)
	c.MouseUp()
	assert.InDelta(t, 1.45, c.PolarAngle(), 1e-5)

	// Dragging down heads for the +Y pole; the margin keeps phi off it.
	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	c.MouseMove(400, 40000)
	c.MouseUp()
	assert.Greater(t, c.PolarAngle(), float32(0))
}

func TestAzimuthLimits(t *testing.T) {
	c := newTestController()
	c.MinAzimuthAngle = -0.5
	c.MaxAzimuthAngle = 0.5

	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	c.MouseMove(4000, 400)
	c.MouseUp()

	assert.InDelta(t, -0.5, c.Azimuth(), 1e-5)
}

func TestWheelDolly(t *testing.T) {
	c := newTestController()

	var starts, ends int
	c.OnStart.AddListener(func() { starts++ })
	c.OnEnd.AddListener(func() { ends++ })

	c.MouseWheel(120)
	assert.InDelta(t, 10/0.95, c.Distance(), 1e-4)
	assert.Equal(t, StateNone, c.State())
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, ends)

	c.MouseWheel(-120)
	assert.InDelta(t, 10.0, c.Distance(), 1e-4)
}

func TestWheelIgnoredDuringPan(t *testing.T) {
	c := newTestController()
	c.MouseDown(ButtonRight, 400, 400, Modifiers{})
	require.Equal(t, StatePan, c.State())

	c.MouseWheel(120)
	assert.InDelta(t, 10.0, c.Distance(), 1e-4)
}

func TestDistanceClamp(t *testing.T) {
	c := newTestController()
	c.MinDistance = 8
	c.MaxDistance = 12

	for i := 0; i < 20; i++ {
		c.MouseWheel(120)
	}
	assert.InDelta(t, 12.0, c.Distance(), 1e-4)

	for i := 0; i < 20; i++ {
		c.MouseWheel(-120)
	}
	assert.InDelta(t, 8.0, c.Distance(), 1e-4)
}

func TestDollyDragUsesVerticalDelta(t *testing.T) {
	c := newTestController()

	c.MouseDown(ButtonMiddle, 400, 400, Modifiers{})
	c.MouseMove(400, 300) // upward drag zooms in
	c.MouseUp()
	assert.InDelta(t, 10*0.95, c.Distance(), 1e-4)

	c.MouseDown(ButtonMiddle, 400, 400, Modifiers{})
	c.MouseMove(400, 500)
	c.MouseUp()
	assert.InDelta(t, 10.0, c.Distance(), 1e-4)
}

func TestKeyPanMovesTarget(t *testing.T) {
	c := newTestController()

	c.KeyDown(KeyArrowUp)
	assert.Equal(t, StateNone, c.State())

	// 2 * KeyPanSpeed * dist * tan(fov/2) / height
	want := 2 * 7 * 10 * float32(math.Tan(45*math.Pi/360)) / 800
	assert.InDelta(t, want, c.Target.Y(), 1e-4)
	assert.InDelta(t, 0, c.Target.X(), 1e-5)

	c.KeyDown(KeyArrowDown)
	assert.InDelta(t, 0, c.Target.Y(), 1e-4)
}

func TestKeyPanDisabled(t *testing.T) {
	c := newTestController()
	c.EnableKeys = false
	c.KeyDown(KeyArrowLeft)
	assert.Equal(t, mgl32.Vec3{}, c.Target)
}

func TestDampingSpreadsRotationAcrossFrames(t *testing.T) {
	c := newTestController()
	c.EnableDamping = true
	c.DampingFactor = 0.05

	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	c.MouseMove(500, 400)
	c.MouseUp()

	full := float32(-2 * math.Pi * 100 / 800)

	// The move's own update applied only the damped fraction.
	assert.InDelta(t, full*0.05, c.Azimuth(), 1e-4)

	for i := 0; i < 400; i++ {
		c.Update(1.0 / 60)
	}
	assert.InDelta(t, full, c.Azimuth(), 1e-3)
}

func TestWithoutDampingDeltaIsConsumedOnce(t *testing.T) {
	c := newTestController()

	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	c.MouseMove(500, 400)
	c.MouseUp()

	theta := c.Azimuth()
	changed := c.Update(1.0 / 60)
	assert.False(t, changed)
	assert.InDelta(t, theta, c.Azimuth(), 1e-6)
}

func TestAutoRotate(t *testing.T) {
	c := newTestController()
	c.AutoRotate = true
	c.AutoRotateSpeed = 2.0

	changed := c.Update(1.0 / 60)
	assert.True(t, changed)
	want := float32(-2 * math.Pi / 60 * 2.0 / 60)
	assert.InDelta(t, want, c.Azimuth(), 1e-6)

	// Auto-rotate pauses while the user is interacting.
	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	before := c.Azimuth()
	c.Update(1.0 / 60)
	assert.InDelta(t, before, c.Azimuth(), 1e-6)
	c.MouseUp()
}

func TestChangeEventFiresOnlyOnMovement(t *testing.T) {
	c := newTestController()

	var changes int
	c.OnChange.AddListener(func() { changes++ })

	assert.False(t, c.Update(1.0/60))
	assert.Zero(t, changes)

	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	c.MouseMove(500, 400)
	c.MouseUp()
	assert.Equal(t, 1, changes)

	assert.False(t, c.Update(1.0/60))
	assert.Equal(t, 1, changes)
}

func TestChangeEventPositionThresholdBoundary(t *testing.T) {
	// A key pan translates camera and target by the same offset, so the
	// position delta equals the pan step exactly: 2 * KeyPanSpeed *
	// targetDistance * tan(fov/2) / height. The squared-delta threshold
	// (1e-6) trips once the step exceeds 1e-3.
	fires := func(panSpeed float32) bool {
		c := newTestController()
		var changes int
		c.OnChange.AddListener(func() { changes++ })
		c.KeyPanSpeed = panSpeed
		c.KeyDown(KeyArrowUp)
		return changes > 0
	}

	perUnit := 2 * 10 * float32(math.Tan(45*math.Pi/360)) / 800
	assert.True(t, fires(2e-3/perUnit), "a 2e-3 step is above the threshold")
	assert.False(t, fires(5e-4/perUnit), "a 5e-4 step is below the threshold")
}

func TestOrthographicMinZoomClamp(t *testing.T) {
	cam := NewOrthographic(-10, 10, 10, -10, mgl32.Vec3{0, 0, 10})
	c := NewController(cam, mgl32.Vec3{})
	c.SetViewport(800, 800)
	c.MinZoom = 0.5

	for i := 0; i < 100; i++ {
		c.MouseWheel(120) // zoom out
	}
	p := cam.Projection.(Orthographic)
	assert.InDelta(t, 0.5, p.Zoom, 1e-4)
}

func TestOrthographicDollyScalesZoom(t *testing.T) {
	cam := NewOrthographic(-10, 10, 10, -10, mgl32.Vec3{0, 0, 10})
	c := NewController(cam, mgl32.Vec3{})
	c.SetViewport(800, 800)
	c.MaxZoom = 4

	var changes int
	c.OnChange.AddListener(func() { changes++ })

	c.MouseWheel(-120) // zoom in
	p := cam.Projection.(Orthographic)
	assert.InDelta(t, 1/0.95, p.Zoom, 1e-4)
	// The camera never moved; the zoom flag alone must report the change.
	assert.Equal(t, 1, changes)
	assert.InDelta(t, 10.0, c.Distance(), 1e-4)

	for i := 0; i < 100; i++ {
		c.MouseWheel(-120)
	}
	p = cam.Projection.(Orthographic)
	assert.InDelta(t, 4.0, p.Zoom, 1e-4)
}

// brokenProjection stands in for a projection variant the controller does
// not know how to dolly or pan.
type brokenProjection struct{}

func (brokenProjection) isProjection() {}

func TestUnknownProjectionDegradesZoomAndPan(t *testing.T) {
	c := newTestController()
	c.cam.Projection = brokenProjection{}

	c.MouseWheel(120)
	assert.False(t, c.EnableZoom)

	c.MouseDown(ButtonRight, 400, 400, Modifiers{})
	c.MouseMove(500, 400)
	c.MouseUp()
	assert.False(t, c.EnablePan)

	// Degradation is permanent: rotate still works, zoom stays off.
	c.MouseWheel(120)
	assert.False(t, c.EnableZoom)
	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	assert.Equal(t, StateRotate, c.State())
}

func TestTouchGestureClassification(t *testing.T) {
	c := newTestController()

	c.TouchStart([]mgl32.Vec2{{400, 400}})
	assert.Equal(t, StateTouchRotate, c.State())
	c.TouchEnd()

	c.TouchStart([]mgl32.Vec2{{300, 400}, {500, 400}})
	assert.Equal(t, StateTouchDollyPan, c.State())
	c.TouchEnd()

	c.Touches = TouchMap{One: ActionPan, Two: ActionDollyRotate}
	c.TouchStart([]mgl32.Vec2{{400, 400}})
	assert.Equal(t, StateTouchPan, c.State())
	c.TouchEnd()

	c.TouchStart([]mgl32.Vec2{{300, 400}, {500, 400}})
	assert.Equal(t, StateTouchDollyRotate, c.State())
	c.TouchEnd()
	assert.Equal(t, StateNone, c.State())
}

func TestPinchDolly(t *testing.T) {
	c := newTestController()

	c.TouchStart([]mgl32.Vec2{{300, 400}, {500, 400}})
	require.Equal(t, StateTouchDollyPan, c.State())

	// Spreading the fingers to twice the span halves the distance.
	c.TouchMove([]mgl32.Vec2{{200, 400}, {600, 400}})
	c.TouchEnd()

	assert.InDelta(t, 5.0, c.Distance(), 1e-3)
	// Midpoint did not move, so no pan crept in.
	assert.InDelta(t, 0, c.Target.Len(), 1e-4)
}

func TestTwoFingerPan(t *testing.T) {
	c := newTestController()

	c.TouchStart([]mgl32.Vec2{{300, 400}, {500, 400}})
	// Same span, midpoint shifted: pure pan.
	c.TouchMove([]mgl32.Vec2{{300, 500}, {500, 500}})
	c.TouchEnd()

	assert.InDelta(t, 10.0, c.Distance(), 1e-3)
	assert.Greater(t, c.Target.Len(), float32(0))
}

func TestTouchMoveWithTooFewPointsIgnored(t *testing.T) {
	c := newTestController()

	c.TouchStart([]mgl32.Vec2{{300, 400}, {500, 400}})
	require.Equal(t, StateTouchDollyPan, c.State())

	// A finger lifted mid-gesture must not be treated as a pinch.
	c.TouchMove([]mgl32.Vec2{{350, 400}})
	assert.InDelta(t, 10.0, c.Distance(), 1e-4)
	assert.InDelta(t, 0, c.Target.Len(), 1e-5)
}

func TestOneFingerRotate(t *testing.T) {
	c := newTestController()

	c.TouchStart([]mgl32.Vec2{{400, 400}})
	c.TouchMove([]mgl32.Vec2{{500, 400}})
	c.TouchEnd()

	assert.InDelta(t, -2*math.Pi*100/800, c.Azimuth(), 1e-5)
}

func TestDisposeDropsListeners(t *testing.T) {
	c := newTestController()
	fired := false
	c.OnStart.AddListener(func() { fired = true })

	c.Dispose()
	c.MouseDown(ButtonLeft, 0, 0, Modifiers{})
	assert.False(t, fired)
}

func TestSetViewportIgnoresDegenerateSizes(t *testing.T) {
	c := newTestController()
	c.SetViewport(0, -5)

	// Rotation math still uses the last good viewport.
	c.MouseDown(ButtonLeft, 400, 400, Modifiers{})
	c.MouseMove(500, 400)
	c.MouseUp()
	assert.InDelta(t, -2*math.Pi*100/800, c.Azimuth(), 1e-5)
}
