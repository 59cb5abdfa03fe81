// Package placement implements the greedy booth placement engine: it walks the
// inventory in priority order and, for every booth instance, picks the
// best-scoring valid position among all free regions, carves it out, and
// re-partitions the remainder.
//
// The engine is a strictly sequential single pass. There is no backtracking
// across already-placed booths; determinism and priority order are the
// correctness contract, not global optimality. Inventory that fits nowhere is
// reported as unused, never treated as an error.
package placement

import (
	"fmt"

	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/scoring"
)

// Booth is one placed booth instance. Booths are immutable after creation
// except for the recorded frontage sides.
type Booth struct {
	ID    string        `json:"id" bson:"id"`
	Zone  hall.ZoneID   `json:"zone" bson:"zone"`
	Area  float64       `json:"area" bson:"area"`
	Rect  geometry.Rect `json:"rect" bson:"rect"`
	Score float64       `json:"score" bson:"score"`

	// Frontage lists the booth sides flush with a corridor edge, in fixed
	// west/east/south/north order.
	Frontage []geometry.Side `json:"frontage" bson:"frontage"`
}

// String implements fmt.Stringer for diagnostics.
func (b Booth) String() string {
	return fmt.Sprintf("booth %s %.0f m² at (%.2f,%.2f) %.2f×%.2f", b.ID, b.Area, b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
}

// Unused is one inventory line that could not be fully placed.
type Unused struct {
	Area  float64 `json:"area" bson:"area"`
	Count int     `json:"count" bson:"count"`
}

// Result is the outcome of a placement run.
type Result struct {
	Booths []Booth  `json:"booths" bson:"booths"`
	Unused []Unused `json:"unused,omitempty" bson:"unused,omitempty"`
}

// PlacedArea sums the area of all placed booths.
func (r *Result) PlacedArea() float64 {
	var total float64
	for _, b := range r.Booths {
		total += b.Area
	}
	return total
}

// UnusedCount sums the booth instances left unplaced.
func (r *Result) UnusedCount() int {
	var n int
	for _, u := range r.Unused {
		n += u.Count
	}
	return n
}

// =============================================================================
// Options
// =============================================================================

// Options configures a placement run.
type Options struct {
	// Weights are the scoring coefficients. Zero value means defaults.
	Weights scoring.Weights

	// Inventory is the booth multiset to place. Nil means the fixed
	// default inventory.
	Inventory []hall.BoothSpec
}

// ValidateAndSetDefaults fills zero-value fields and validates the rest.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Weights == (scoring.Weights{}) {
		o.Weights = scoring.DefaultWeights()
	}
	if err := o.Weights.Validate(); err != nil {
		return err
	}
	if o.Inventory == nil {
		o.Inventory = hall.DefaultInventory()
	}
	if err := hall.ValidateInventory(o.Inventory); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInventory, "placement inventory")
	}
	return nil
}
