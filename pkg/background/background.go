package background

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/golangdaddy/roadrush/pkg/road"
)

// Generator paints roadside tiles for an environment. Tiles are plain
// images so hosts can upload them to whatever surface they draw on.
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new background generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// Tile paints one vertically repeating tile. The same seed always yields
// the same tile.
func (g *Generator) Tile(env road.Environment, night bool, dim func(color.RGBA, bool) color.RGBA, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	rng := rand.New(rand.NewSource(seed))
	if dim == nil {
		dim = func(c color.RGBA, _ bool) color.RGBA { return c }
	}

	ground := env.Ground.Color()
	fill(img, dim(ground, night))

	// speckle the ground
	for i := 0; i < g.Width*g.Height/10; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		img.SetRGBA(x, y, dim(shade(ground, rng.Intn(40)-20), night))
	}

	foliage := env.Foliage.Color()
	for y := 0; y < g.Height; y += 10 {
		density := env.Density * (0.7 + 0.3*math.Sin(float64(y)*0.01))

		for x := 0; x < g.Width; x += 5 + rng.Intn(15) {
			if rng.Float64() >= density {
				continue
			}

			drawX := x + rng.Intn(10) - 5
			drawY := y + rng.Intn(10) - 5
			c := dim(shade(foliage, rng.Intn(50)-25), night)

			if rng.Float64() < 0.3 {
				g.drawTree(img, drawX, drawY, c, rng)
			} else {
				g.drawBush(img, drawX, drawY, c, rng)
			}
		}
	}

	return img
}

// drawTree draws a trunk with stacked triangular layers
func (g *Generator) drawTree(img *image.RGBA, x, y int, leaves color.RGBA, rng *rand.Rand) {
	height := 40 + rng.Intn(30)
	width := 20 + rng.Intn(15)

	trunk := color.RGBA{60, 40, 20, 255}
	trunkW := 4 + rng.Intn(4)
	for ty := 0; ty < height/3; ty++ {
		for tx := -trunkW / 2; tx < trunkW/2; tx++ {
			g.set(img, x+tx, y-ty, trunk)
		}
	}

	for l := 0; l < 3; l++ {
		layerY := y - height/3 - l*height/4
		layerW := width - l*5
		if layerW < 5 {
			layerW = 5
		}
		for ly := 0; ly < height/3; ly++ {
			rowW := layerW * (height/3 - ly) / (height / 3)
			for lx := -rowW / 2; lx < rowW/2; lx++ {
				g.set(img, x+lx, layerY-ly, leaves)
			}
		}
	}
}

// drawBush draws a filled circle
func (g *Generator) drawBush(img *image.RGBA, x, y int, c color.RGBA, rng *rand.Rand) {
	radius := 5 + rng.Intn(10)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				g.set(img, x+dx, y+dy, c)
			}
		}
	}
}

// set wraps y so features crossing the tile edge continue on the next tile
func (g *Generator) set(img *image.RGBA, x, y int, c color.RGBA) {
	if x < 0 || x >= g.Width {
		return
	}
	y = ((y % g.Height) + g.Height) % g.Height
	img.SetRGBA(x, y, c)
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func shade(c color.RGBA, delta int) color.RGBA {
	return color.RGBA{
		R: clampByte(int(c.R) + delta),
		G: clampByte(int(c.G) + delta),
		B: clampByte(int(c.B) + delta),
		A: c.A,
	}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
