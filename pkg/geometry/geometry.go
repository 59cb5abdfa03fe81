// Package geometry provides the axis-aligned primitives the layout engine is
// built on: points, rectangles, the 0.25 m placement grid, and the contact
// predicates (overlap, flush edges, containment) every other package relies on.
//
// All coordinates are in metres in hall space: x grows east, y grows north,
// origin at the hall's south-west corner. Rectangles are stored as origin plus
// size and are considered closed regions; overlap tests compare interiors, so
// two rectangles sharing only an edge do not overlap.
package geometry

import "math"

// Grid is the placement grid in metres. Every booth and corridor coordinate
// must be a multiple of it.
const Grid = 0.25

// Epsilon is the tolerance for coordinate comparisons. Coordinates are grid
// multiples, so anything below Grid/2 is safe.
const Epsilon = 1e-6

// =============================================================================
// Point
// =============================================================================

// Point is a location in hall space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Manhattan returns the L1 distance between p and q.
func (p Point) Manhattan(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// =============================================================================
// Rect
// =============================================================================

// Rect is an axis-aligned rectangle anchored at its south-west corner.
type Rect struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// MaxX returns the east edge coordinate.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the north edge coordinate.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Area returns W×H.
func (r Rect) Area() float64 { return r.W * r.H }

// MinSide returns the shorter side length.
func (r Rect) MinSide() float64 { return math.Min(r.W, r.H) }

// MaxSide returns the longer side length.
func (r Rect) MaxSide() float64 { return math.Max(r.W, r.H) }

// AspectRatio returns the long side divided by the short side.
// Degenerate rectangles report +Inf.
func (r Rect) AspectRatio() float64 {
	if r.MinSide() <= 0 {
		return math.Inf(1)
	}
	return r.MaxSide() / r.MinSide()
}

// IsEmpty reports whether the rectangle has no interior.
func (r Rect) IsEmpty() bool { return r.W < Epsilon || r.H < Epsilon }

// Contains reports whether inner lies entirely within r (edges may coincide).
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X-Epsilon &&
		inner.Y >= r.Y-Epsilon &&
		inner.MaxX() <= r.MaxX()+Epsilon &&
		inner.MaxY() <= r.MaxY()+Epsilon
}

// Overlaps reports whether the interiors of r and o intersect.
// Rectangles that only share an edge or corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX()-Epsilon &&
		o.X < r.MaxX()-Epsilon &&
		r.Y < o.MaxY()-Epsilon &&
		o.Y < r.MaxY()-Epsilon
}

// Intersect returns the overlapping region of r and o.
// The zero Rect is returned when the interiors are disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.MaxX(), o.MaxX())
	y1 := math.Min(r.MaxY(), o.MaxY())
	if x1-x0 < Epsilon || y1-y0 < Epsilon {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// OnGrid reports whether every coordinate of r is a multiple of Grid.
func (r Rect) OnGrid() bool {
	return onGrid(r.X) && onGrid(r.Y) && onGrid(r.W) && onGrid(r.H)
}

func onGrid(v float64) bool {
	n := math.Round(v / Grid)
	return math.Abs(v-n*Grid) < Epsilon
}

// Snap rounds v to the nearest grid multiple.
func Snap(v float64) float64 {
	return math.Round(v/Grid) * Grid
}

// SnapRect snaps all four coordinates of r to the grid.
func SnapRect(r Rect) Rect {
	return Rect{X: Snap(r.X), Y: Snap(r.Y), W: Snap(r.W), H: Snap(r.H)}
}

// Eq reports coordinate-wise equality within Epsilon.
func (r Rect) Eq(o Rect) bool {
	return eq(r.X, o.X) && eq(r.Y, o.Y) && eq(r.W, o.W) && eq(r.H, o.H)
}

func eq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// =============================================================================
// Edge contact
// =============================================================================

// Side identifies one edge of a rectangle.
type Side int

const (
	SideWest Side = iota
	SideEast
	SideSouth
	SideNorth
)

// String returns the compass name of the side.
func (s Side) String() string {
	switch s {
	case SideWest:
		return "west"
	case SideEast:
		return "east"
	case SideSouth:
		return "south"
	case SideNorth:
		return "north"
	}
	return "unknown"
}

// ContactLength returns the length along which the boundaries of r and o
// touch without overlapping, and the side of r on which the contact occurs.
// Returns 0 when the rectangles are apart or overlap.
func (r Rect) ContactLength(o Rect) (float64, Side) {
	// Vertical contact: r's east edge on o's west edge, or vice versa.
	if eq(r.MaxX(), o.X) {
		if l := spanOverlap(r.Y, r.MaxY(), o.Y, o.MaxY()); l > 0 {
			return l, SideEast
		}
	}
	if eq(o.MaxX(), r.X) {
		if l := spanOverlap(r.Y, r.MaxY(), o.Y, o.MaxY()); l > 0 {
			return l, SideWest
		}
	}
	// Horizontal contact.
	if eq(r.MaxY(), o.Y) {
		if l := spanOverlap(r.X, r.MaxX(), o.X, o.MaxX()); l > 0 {
			return l, SideNorth
		}
	}
	if eq(o.MaxY(), r.Y) {
		if l := spanOverlap(r.X, r.MaxX(), o.X, o.MaxX()); l > 0 {
			return l, SideSouth
		}
	}
	return 0, SideWest
}

// FlushSide reports whether one full side of r lies on the boundary of o with
// o's edge covering it completely, and which side of r that is. This is the
/// frontage condition: the touching edge of o must be at least as long as r's
// side and must contain it.
func (r Rect) FlushSide(o Rect) (Side, bool) {
	if eq(r.MaxX(), o.X) && spanCovers(o.Y, o.MaxY(), r.Y, r.MaxY()) {
		return SideEast, true
	}
	if eq(o.MaxX(), r.X) && spanCovers(o.Y, o.MaxY(), r.Y, r.MaxY()) {
		return SideWest, true
	}
	if eq(r.MaxY(), o.Y) && spanCovers(o.X, o.MaxX(), r.X, r.MaxX()) {
		return SideNorth, true
	}
	if eq(o.MaxY(), r.Y) && spanCovers(o.X, o.MaxX(), r.X, r.MaxX()) {
		return SideSouth, true
	}
	return SideWest, false
}

// spanOverlap returns the length of the intersection of [a0,a1] and [b0,b1].
func spanOverlap(a0, a1, b0, b1 float64) float64 {
	l := math.Min(a1, b1) - math.Max(a0, b0)
	if l < Epsilon {
		return 0
	}
	return l
}

// spanCovers reports whether [b0,b1] lies within [a0,a1].
func spanCovers(a0, a1, b0, b1 float64) bool {
	return b0 >= a0-Epsilon && b1 <= a1+Epsilon
}

// =============================================================================
// Subtraction
// =============================================================================

// Subtract removes cut from base and returns the remainder as up to four
// disjoint rectangles (west, east, south, north slabs). Returns base unchanged
// when the interiors do not intersect.
func Subtract(base, cut Rect) []Rect {
	if !base.Overlaps(cut) {
		return []Rect{base}
	}

	var out []Rect
	c := base.Intersect(cut)

	if c.X-base.X > Epsilon {
		out = append(out, Rect{X: base.X, Y: base.Y, W: c.X - base.X, H: base.H})
	}
	if base.MaxX()-c.MaxX() > Epsilon {
		out = append(out, Rect{X: c.MaxX(), Y: base.Y, W: base.MaxX() - c.MaxX(), H: base.H})
	}
	if c.Y-base.Y > Epsilon {
		out = append(out, Rect{X: c.X, Y: base.Y, W: c.W, H: c.Y - base.Y})
	}
	if base.MaxY()-c.MaxY() > Epsilon {
		out = append(out, Rect{X: c.X, Y: c.MaxY(), W: c.W, H: base.MaxY() - c.MaxY()})
	}
	return out
}

// SubtractAll removes every cut from every base rectangle.
// The result is a set of disjoint rectangles covering base minus all cuts.
func SubtractAll(bases []Rect, cuts []Rect) []Rect {
	current := bases
	for _, cut := range cuts {
		var next []Rect
		for _, b := range current {
			next = append(next, Subtract(b, cut)...)
		}
		current = next
	}
	return current
}
