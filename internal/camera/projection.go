package camera

// Projection is a sealed variant over the two supported camera projections.
// Pan and dolly behave differently per variant; an unrecognized variant
// permanently degrades the corresponding capability instead of crashing.
type Projection interface {
	isProjection()
}

// Perspective projects with a vertical field of view in degrees.
type Perspective struct {
	FovY float32
}

func (Perspective) isProjection() {}

// Orthographic projects a fixed view volume scaled by Zoom.
type Orthographic struct {
	Left   float32
	Right  float32
	Top    float32
	Bottom float32
	Zoom   float32
}

func (Orthographic) isProjection() {}
