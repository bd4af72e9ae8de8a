package spheres

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// box is an axis-aligned bounding box.
type box struct {
	Min, Max mgl64.Vec3
}

// contact describes how far a sphere penetrates a box and which way to push
// it out.
type contact struct {
	Normal mgl64.Vec3
	Depth  float64
	// Top is set when the sphere touches the box from above.
	Top bool
}

// intersect runs the clamp-to-box closest point test. A sphere whose center
// is inside the box is pushed out through the face of least penetration.
func (b box) intersect(center mgl64.Vec3, radius float64) (contact, bool) {
	closest := mgl64.Vec3{
		clampf(center[0], b.Min[0], b.Max[0]),
		clampf(center[1], b.Min[1], b.Max[1]),
		clampf(center[2], b.Min[2], b.Max[2]),
	}
	diff := center.Sub(closest)
	distSq := diff.Dot(diff)
	if distSq > radius*radius {
		return contact{}, false
	}
	if distSq > 0 {
		dist := math.Sqrt(distSq)
		return contact{
			Normal: diff.Mul(1 / dist),
			Depth:  radius - dist,
			Top:    center[1] >= b.Max[1],
		}, true
	}
	return b.insideContact(center, radius), true
}

func (b box) insideContact(center mgl64.Vec3, radius float64) contact {
	faces := [6]struct {
		pen    float64
		normal mgl64.Vec3
	}{
		{center[0] - b.Min[0], mgl64.Vec3{-1, 0, 0}},
		{b.Max[0] - center[0], mgl64.Vec3{1, 0, 0}},
		{center[1] - b.Min[1], mgl64.Vec3{0, -1, 0}},
		{b.Max[1] - center[1], mgl64.Vec3{0, 1, 0}},
		{center[2] - b.Min[2], mgl64.Vec3{0, 0, -1}},
		{b.Max[2] - center[2], mgl64.Vec3{0, 0, 1}},
	}
	best := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].pen < faces[best].pen {
			best = i
		}
	}
	return contact{
		Normal: faces[best].normal,
		Depth:  faces[best].pen + radius,
		Top:    best == 3,
	}
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
