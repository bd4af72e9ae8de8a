//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"sea-block/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type markerProvider interface {
	Markers() []core.Marker
}

type heightFieldProvider interface {
	HeightField() []float64
}

// Overlay draws optional debugging visuals on top of the base simulation:
// key 1 toggles sphere velocity arrows, key 2 the height tint.
type Overlay struct {
	sim         core.Sim
	scale       int
	showMarkers bool
	showHeights bool

	heightImg *ebiten.Image
	heightBuf []byte
	pixel     *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1), showMarkers: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showMarkers = !o.showMarkers
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeights = !o.showHeights
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showHeights {
		if provider, ok := o.sim.(heightFieldProvider); ok {
			o.drawHeights(screen, provider.HeightField(), size)
		}
	}
	if o.showMarkers {
		if provider, ok := o.sim.(markerProvider); ok {
			o.drawMarkers(screen, provider.Markers())
		}
	}
}

func (o *Overlay) drawHeights(screen *ebiten.Image, field []float64, size core.Size) {
	total := size.W * size.H
	if len(field) != total {
		return
	}
	if o.heightImg == nil || o.heightImg.Bounds().Dx() != size.W || o.heightImg.Bounds().Dy() != size.H {
		o.heightImg = ebiten.NewImage(size.W, size.H)
		o.heightBuf = make([]byte, 4*total)
	}
	fillHeightRGBA(o.heightBuf, field)
	o.heightImg.WritePixels(o.heightBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.heightImg, op)
}

func (o *Overlay) drawMarkers(screen *ebiten.Image, markers []core.Marker) {
	const (
		maxSpeed   = 0.5
		headAngle  = math.Pi / 6
		arrowCells = 6.0
	)
	s := float64(o.scale)
	for _, m := range markers {
		x, y := m.X*s, m.Y*s
		dot := color.RGBA{R: 240, G: 240, B: 250, A: 200}
		if m.Tracked {
			dot = color.RGBA{R: 255, G: 230, B: 80, A: 230}
		}
		o.drawPoint(screen, x, y, math.Max(s*0.8, 2), dot)

		speed := math.Hypot(m.VX, m.VY)
		if speed < 1e-3 {
			continue
		}
		norm := clamp01(speed / maxSpeed)
		length := s * arrowCells * math.Sqrt(norm)
		nx, ny := m.VX/speed, m.VY/speed
		tipX, tipY := x+nx*length, y+ny*length
		col := speedColor(norm)
		thickness := math.Max(1, s*0.3)
		o.drawLine(screen, x, y, tipX, tipY, thickness, col)

		head := math.Min(length*0.35, s*2)
		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, thickness, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, thickness, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
