package vehicle

// Body is the footprint shared by every car on the road
type Body struct {
	Width  float64
	Height float64
}

// At places the body with its top-left corner at x, y
func (b Body) At(x, y float64) Box {
	return Box{X: x, Y: y, W: b.Width, H: b.Height}
}
