package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// spherical is the controller's canonical camera-offset representation:
// radius, polar angle phi measured from +Y, azimuth theta around +Y.
type spherical struct {
	radius float32
	phi    float32
	theta  float32
}

func (s *spherical) setFromVector3(v mgl32.Vec3) {
	s.radius = v.Len()
	if s.radius == 0 {
		s.theta = 0
		s.phi = 0
		return
	}
	s.theta = float32(math.Atan2(float64(v.X()), float64(v.Z())))
	s.phi = float32(math.Acos(float64(clamp(v.Y()/s.radius, -1, 1))))
}

func (s *spherical) toVector3() mgl32.Vec3 {
	sinPhiRadius := float32(math.Sin(float64(s.phi))) * s.radius
	return mgl32.Vec3{
		sinPhiRadius * float32(math.Sin(float64(s.theta))),
		float32(math.Cos(float64(s.phi))) * s.radius,
		sinPhiRadius * float32(math.Cos(float64(s.theta))),
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
