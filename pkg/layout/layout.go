// Package layout defines the final plan aggregate handed to renderers,
// reporters and the store: hall geometry, corridor segments, placed booths,
// unused inventory, waste and the validation report.
//
// A Layout is assembled once at the end of a pipeline run and never mutated
// afterwards. Serialization is deterministic: identical inputs produce
// byte-identical JSON, which is what makes run results cacheable and
// comparable.
package layout

import (
	"bytes"
	"encoding/json"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/placement"
	"github.com/expogrid/hallplan/pkg/region"
	"github.com/expogrid/hallplan/pkg/validate"
)

// Layout is the complete floor plan of one run.
type Layout struct {
	Hall      geometry.Rect     `json:"hall" bson:"hall"`
	Zones     []hall.Zone       `json:"zones" bson:"zones"`
	Entrances []hall.Entrance   `json:"entrances" bson:"entrances"`
	Corridors []corridor.Segment `json:"corridors" bson:"corridors"`
	Booths    []placement.Booth `json:"booths" bson:"booths"`
	Unused    []placement.Unused `json:"unused,omitempty" bson:"unused,omitempty"`
	Waste     []region.Waste    `json:"waste,omitempty" bson:"waste,omitempty"`
	Report    *validate.Report  `json:"report" bson:"report"`
	Stats     Stats             `json:"stats" bson:"stats"`
}

// Stats summarizes a layout for reporting.
type Stats struct {
	CorridorArea float64 `json:"corridor_area" bson:"corridor_area"`
	PlacedArea   float64 `json:"placed_area" bson:"placed_area"`
	FreeArea     float64 `json:"free_area" bson:"free_area"`
	WasteArea    float64 `json:"waste_area" bson:"waste_area"`
	PlacedCount  int     `json:"placed_count" bson:"placed_count"`
	UnusedCount  int     `json:"unused_count" bson:"unused_count"`

	// Utilization is placed booth area over the hall area outside corridors.
	Utilization float64 `json:"utilization" bson:"utilization"`
}

// Assemble builds the final aggregate from the pipeline stage outputs.
func Assemble(g hall.Geometry, net *corridor.Network, res *placement.Result, arena *region.Arena, report *validate.Report) *Layout {
	l := &Layout{
		Hall:      g.Bounds,
		Zones:     g.Zones,
		Entrances: g.Entrances,
		Corridors: net.Segments,
		Booths:    res.Booths,
		Unused:    res.Unused,
		Waste:     arena.Waste(),
		Report:    report,
	}
	l.Stats = Stats{
		CorridorArea: net.Area(),
		PlacedArea:   res.PlacedArea(),
		FreeArea:     arena.FreeArea(),
		WasteArea:    arena.WasteArea(),
		PlacedCount:  len(res.Booths),
		UnusedCount:  res.UnusedCount(),
	}
	if sellable := g.Bounds.Area() - l.Stats.CorridorArea; sellable > 0 {
		l.Stats.Utilization = l.Stats.PlacedArea / sellable
	}
	return l
}

// Passed reports whether the validation report holds every invariant.
func (l *Layout) Passed() bool {
	return l.Report != nil && l.Report.Passed()
}

// JSON serializes the layout deterministically with stable key order and
// indentation.
func (l *Layout) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "encoding layout")
	}
	return buf.Bytes(), nil
}

// FromJSON decodes a layout previously produced by JSON.
func FromJSON(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidFormat, "decoding layout")
	}
	return &l, nil
}
