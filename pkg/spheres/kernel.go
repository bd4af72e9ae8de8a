package spheres

import "sea-block/pkg/tiling"

// SpiralKernel lists tile offsets in concentric square rings of increasing
// Chebyshev radius, starting with the center tile. Each ring is walked
// counter-clockwise starting just above its +x/-z corner.
func SpiralKernel(radius int) []tiling.Offset {
	if radius < 0 {
		radius = 0
	}
	side := 2*radius + 1
	out := make([]tiling.Offset, 0, side*side)
	out = append(out, tiling.Offset{})
	for r := 1; r <= radius; r++ {
		x, z := r, -r
		step := func(dx, dz, n int) {
			for i := 0; i < n; i++ {
				x += dx
				z += dz
				out = append(out, tiling.Offset{X: x, Z: z})
			}
		}
		step(0, 1, 2*r)
		step(-1, 0, 2*r)
		step(0, -1, 2*r)
		step(1, 0, 2*r)
	}
	return out
}
