package ui

import (
	"image/color"

	"github.com/golangdaddy/roadrush/pkg/background"
	"github.com/golangdaddy/roadrush/pkg/models"
	"github.com/golangdaddy/roadrush/pkg/road"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	dashLength = 60
	dashWidth  = 6
	tileSeed   = 1987
)

var (
	playerColor = color.RGBA{230, 40, 40, 255}
	flashColor  = color.RGBA{255, 255, 255, 255}
)

type tileKey struct {
	env   string
	night bool
}

// GameplayScreen draws the road, traffic and HUD from the latest snapshot
type GameplayScreen struct {
	snapshot func() models.Snapshot
	road     *road.Road
	catalog  *road.Catalog
	gen      *background.Generator
	tiles    map[tileKey]*ebiten.Image
	frame    int
}

// NewGameplayScreen creates the in-run view. The roadside strips are
// width wide on each side of the road.
func NewGameplayScreen(snapshot func() models.Snapshot, r *road.Road, catalog *road.Catalog, width int) *GameplayScreen {
	if width < 1 {
		width = 1
	}
	return &GameplayScreen{
		snapshot: snapshot,
		road:     r,
		catalog:  catalog,
		gen:      background.NewGenerator(width, int(road.TileHeight)),
		tiles:    make(map[tileKey]*ebiten.Image),
	}
}

func (gs *GameplayScreen) Update() error {
	gs.frame++
	return nil
}

// Draw renders the current snapshot
func (gs *GameplayScreen) Draw(screen *ebiten.Image) {
	snap := gs.snapshot()
	env := gs.catalog.Get(snap.Environment)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	ox := (float64(width) - gs.road.Width) / 2
	oy := (float64(height) - gs.road.Height) / 2

	gs.drawRoadside(screen, snap, env, ox)

	roadColor := gs.catalog.Dim(env.Road.Color(), snap.Night)
	vector.DrawFilledRect(screen, float32(ox), float32(oy), float32(gs.road.Width), float32(gs.road.Height), roadColor, false)
	gs.drawLines(screen, snap, env, ox, oy)

	for _, o := range snap.Obstacles {
		if o.Y+o.H < 0 || o.Y > gs.road.Height {
			continue
		}
		RenderCar(screen, o, ox, oy, gs.catalog.Dim(o.Color, snap.Night))
	}

	// blink while invincible after a hit
	body := color.Color(gs.catalog.Dim(playerColor, snap.Night))
	if snap.Hit && gs.frame/6%2 == 0 {
		body = flashColor
	}
	RenderCar(screen, snap.Player, ox, oy, body)

	drawHUD(screen, snap)
}

func (gs *GameplayScreen) drawRoadside(screen *ebiten.Image, snap models.Snapshot, env road.Environment, ox float64) {
	tile := gs.tile(env, snap.Night)
	th := float64(tile.Bounds().Dy())
	height := float64(screen.Bounds().Dy())

	for _, x := range []float64{ox - float64(tile.Bounds().Dx()), ox + gs.road.Width} {
		for y := snap.Background - th; y < height; y += th {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(x, y)
			screen.DrawImage(tile, op)
		}
	}
}

// drawLines draws the dashes between neighbouring lanes
func (gs *GameplayScreen) drawLines(screen *ebiten.Image, snap models.Snapshot, env road.Environment, ox, oy float64) {
	lineColor := gs.catalog.Dim(env.Line.Color(), snap.Night)
	for lane := 0; lane < road.LaneCount-1; lane++ {
		right := gs.road.LaneX(lane) + gs.road.CarWidth
		x := ox + (right+gs.road.LaneX(lane+1))/2 - dashWidth/2
		for _, y := range snap.Lines {
			top := y
			if top > gs.road.Height || top+dashLength < 0 {
				continue
			}
			h := float64(dashLength)
			if top+h > gs.road.Height {
				h = gs.road.Height - top
			}
			vector.DrawFilledRect(screen, float32(x), float32(oy+top), dashWidth, float32(h), lineColor, false)
		}
	}
}

// tile returns the roadside tile for an environment, painting it on first use
func (gs *GameplayScreen) tile(env road.Environment, night bool) *ebiten.Image {
	key := tileKey{env.Name, night}
	if img, ok := gs.tiles[key]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(gs.gen.Tile(env, night, gs.catalog.Dim, tileSeed))
	gs.tiles[key] = img
	return img
}
