// Package corridor materializes the hall's circulation network: the three
// fixed main corridors, plus secondary and tertiary corridors proposed inside
// zones A and B to improve booth frontage.
//
// The builder is a pure function of the fixed hall geometry and its options;
// rerunning it with the same inputs yields the same segments in the same
// order. Downstream components (region decomposer, placement engine,
// validator, renderer) consume the finalized segment set and never mutate it.
package corridor

import (
	"fmt"

	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

// Kind classifies a corridor segment.
type Kind string

const (
	// KindMain marks the three fixed 4 m corridors. Their centerlines are
	// never altered.
	KindMain Kind = "main"

	// KindSecondary marks vertical spurs added inside zones A/B.
	KindSecondary Kind = "secondary"

	// KindTertiary marks horizontal cuts added inside zones A/B.
	KindTertiary Kind = "tertiary"
)

// Segment is one axis-aligned corridor strip. The occupied rectangle is the
// centerline extended by half the width on each side.
type Segment struct {
	ID    string        `json:"id" bson:"id"`
	Kind  Kind          `json:"kind" bson:"kind"`
	Rect  geometry.Rect `json:"rect" bson:"rect"`
	Width float64       `json:"width" bson:"width"`

	// Zone is the zone a secondary/tertiary segment was proposed for.
	// Empty for main segments, which span multiple zones.
	Zone hall.ZoneID `json:"zone,omitempty" bson:"zone,omitempty"`
}

// IsMain reports whether the segment is one of the fixed main corridors.
func (s Segment) IsMain() bool { return s.Kind == KindMain }

// String implements fmt.Stringer for diagnostics.
func (s Segment) String() string {
	return fmt.Sprintf("%s[%s %.1f×%.1f at (%.1f,%.1f)]", s.ID, s.Kind, s.Rect.W, s.Rect.H, s.Rect.X, s.Rect.Y)
}

// =============================================================================
// Network
// =============================================================================

// Network is the finalized corridor set for a plan.
type Network struct {
	Segments []Segment `json:"segments" bson:"segments"`

	hallBounds geometry.Rect
}

// NewNetwork wraps an existing segment set, for example one loaded from a
// serialized layout. Area computations use the given hall bounds.
func NewNetwork(hallBounds geometry.Rect, segments []Segment) *Network {
	return &Network{Segments: segments, hallBounds: hallBounds}
}

// Rects returns the occupied rectangles of all segments, in segment order.
func (n *Network) Rects() []geometry.Rect {
	out := make([]geometry.Rect, len(n.Segments))
	for i, s := range n.Segments {
		out[i] = s.Rect
	}
	return out
}

// MainRects returns the rectangles of the main segments only.
func (n *Network) MainRects() []geometry.Rect {
	var out []geometry.Rect
	for _, s := range n.Segments {
		if s.IsMain() {
			out = append(out, s.Rect)
		}
	}
	return out
}

// Area returns the total corridor area with overlaps at intersections
// counted once. It is computed as hall area minus the area left after
// subtracting every segment rectangle, so double-subtraction cannot occur.
func (n *Network) Area() float64 {
	free := geometry.SubtractAll([]geometry.Rect{n.hallBounds}, n.Rects())
	var left float64
	for _, r := range free {
		left += r.Area()
	}
	return n.hallBounds.Area() - left
}

// Segment returns the segment with the given id.
func (n *Network) Segment(id string) (Segment, bool) {
	for _, s := range n.Segments {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}
