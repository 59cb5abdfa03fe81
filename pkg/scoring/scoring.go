// Package scoring ranks candidate booth placements. Score is a pure function
// over a measured candidate: no side effects, O(1) per call, evaluated many
// times per inventory instance by the placement engine.
//
// The multi-objective requirement (near the entrance, long frontage, corners,
// clean aspect) is collapsed into a single weighted scalarization. The
// weights are configuration, not hardcoded policy; only their signs are fixed
// so each term stays monotonic in its stated direction.
package scoring

import (
	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

// =============================================================================
// Weights
// =============================================================================

// Weights are the coefficients of the placement score. All values must be
// non-negative; EntranceDistance is applied with a negative sign (closer is
// better).
type Weights struct {
	EntranceDistance  float64 `toml:"entrance_distance" json:"entrance_distance"`
	Frontage          float64 `toml:"frontage" json:"frontage"`
	MainFrontage      float64 `toml:"main_frontage" json:"main_frontage"`
	OpenSide          float64 `toml:"open_side" json:"open_side"`
	Corner            float64 `toml:"corner" json:"corner"`
	AspectCleanliness float64 `toml:"aspect_cleanliness" json:"aspect_cleanliness"`
}

// DefaultWeights returns the stock scoring coefficients.
func DefaultWeights() Weights {
	return Weights{
		EntranceDistance:  1.0,
		Frontage:          2.0,
		MainFrontage:      1.0,
		OpenSide:          3.0,
		Corner:            10.0,
		AspectCleanliness: 5.0,
	}
}

// Validate rejects negative coefficients, which would invert the documented
// monotonicity of the score.
func (w Weights) Validate() error {
	for _, v := range []float64{w.EntranceDistance, w.Frontage, w.MainFrontage, w.OpenSide, w.Corner, w.AspectCleanliness} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "scoring weights must be non-negative")
		}
	}
	return nil
}

// =============================================================================
// Candidate
// =============================================================================

// Candidate is a measured placement option: geometry plus the corridor and
// boundary contact features the score depends on.
type Candidate struct {
	Rect geometry.Rect
	Zone hall.Zone

	// Frontage is the total corridor contact length over all sides.
	Frontage float64

	// MainFrontage is the contact length against main corridors only.
	MainFrontage float64

	// OpenSides counts booth sides with any corridor contact.
	OpenSides int

	// Corner is true when the booth touches contacts on two perpendicular
	// sides (two corridors, or a corridor and a hall wall).
	Corner bool
}

// Measure computes the contact features of a booth rectangle against the
// corridor network and the hall boundary. The result feeds Score.
func Measure(rect geometry.Rect, zone hall.Zone, net *corridor.Network, bounds geometry.Rect) Candidate {
	c := Candidate{Rect: rect, Zone: zone}

	sideTouched := map[geometry.Side]bool{}
	for _, s := range net.Segments {
		l, side := rect.ContactLength(s.Rect)
		if l <= 0 {
			continue
		}
		c.Frontage += l
		if s.IsMain() {
			c.MainFrontage += l
		}
		sideTouched[side] = true
	}
	c.OpenSides = len(sideTouched)

	// Hall walls count toward the corner condition but not toward frontage.
	wallTouched := map[geometry.Side]bool{}
	if eq(rect.X, bounds.X) {
		wallTouched[geometry.SideWest] = true
	}
	if eq(rect.MaxX(), bounds.MaxX()) {
		wallTouched[geometry.SideEast] = true
	}
	if eq(rect.Y, bounds.Y) {
		wallTouched[geometry.SideSouth] = true
	}
	if eq(rect.MaxY(), bounds.MaxY()) {
		wallTouched[geometry.SideNorth] = true
	}

	c.Corner = hasPerpendicularPair(sideTouched, wallTouched)
	return c
}

// hasPerpendicularPair reports whether the union of corridor contacts and
// wall contacts spans two perpendicular sides, with at least one corridor
// contact among them.
func hasPerpendicularPair(corridorSides, wallSides map[geometry.Side]bool) bool {
	if len(corridorSides) == 0 {
		return false
	}
	all := map[geometry.Side]bool{}
	for s := range corridorSides {
		all[s] = true
	}
	for s := range wallSides {
		all[s] = true
	}
	horizontal := all[geometry.SideNorth] || all[geometry.SideSouth]
	vertical := all[geometry.SideWest] || all[geometry.SideEast]
	return horizontal && vertical
}

// =============================================================================
// Score
// =============================================================================

// Score computes the placement score of a measured candidate relative to the
// main entrance. Higher is better. Monotonicity: decreasing in entrance
// distance, increasing in frontage, main-corridor frontage, open sides,
// corner contact and aspect cleanliness.
func Score(c Candidate, entrance geometry.Point, w Weights) float64 {
	score := -w.EntranceDistance * c.Rect.Center().Manhattan(entrance)
	score += w.Frontage * c.Frontage
	score += w.MainFrontage * c.MainFrontage
	score += w.OpenSide * float64(c.OpenSides)
	if c.Corner {
		score += w.Corner
	}
	score += w.AspectCleanliness * cleanliness(c)
	return score
}

// cleanliness rewards shapes matching the zone's natural depth: a booth at
// exactly the strip depth in C/D/E/F, or a compact aspect ratio in A/B.
func cleanliness(c Candidate) float64 {
	if c.Zone.IsStrip() {
		if eq(c.Rect.MinSide(), c.Zone.MaxBoothDepth) {
			return 1
		}
		return 0
	}
	return 1 / c.Rect.AspectRatio()
}

func eq(a, b float64) bool {
	d := a - b
	return d < geometry.Epsilon && d > -geometry.Epsilon
}
