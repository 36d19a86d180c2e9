package vehicle

// Box is an axis-aligned rectangle in road pixels, origin at the top-left
type Box struct {
	X, Y float64
	W, H float64
}

func (b Box) Left() float64   { return b.X }
func (b Box) Right() float64  { return b.X + b.W }
func (b Box) Top() float64    { return b.Y }
func (b Box) Bottom() float64 { return b.Y + b.H }

// Collides reports whether two boxes overlap. Boxes that only touch along an
// edge count as colliding; they are apart only when one lies strictly above,
// below, left or right of the other.
func Collides(a, b Box) bool {
	return !(a.Bottom() < b.Top() ||
		a.Top() > b.Bottom() ||
		a.Right() < b.Left() ||
		a.Left() > b.Right())
}
