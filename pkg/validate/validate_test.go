package validate

import (
	"testing"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/placement"
	"github.com/expogrid/hallplan/pkg/region"
)

func defaultNetwork(t *testing.T) *corridor.Network {
	t.Helper()
	net, err := corridor.Build(hall.Default(), corridor.Options{})
	if err != nil {
		t.Fatalf("Build corridors: %v", err)
	}
	return net
}

func hasRule(r *Report, rule Rule) bool {
	for _, v := range r.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

func TestCheckFullPipelineLayout(t *testing.T) {
	g := hall.Default()
	net := defaultNetwork(t)
	arena := region.Decompose(g, net)
	res, err := placement.Place(g, net, arena, placement.Options{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	report := Check(g, net, res.Booths, hall.DefaultInventory())

	// The default run must be fully clean: every leftover pocket is either
	// negligible or unable to host an unused inventory shape with frontage.
	if !report.Passed() {
		for _, v := range report.Violations {
			t.Errorf("unexpected violation: %s", v)
		}
	}
	if report.PlacedCount != len(res.Booths) {
		t.Errorf("PlacedCount = %d, want %d", report.PlacedCount, len(res.Booths))
	}
	if d := report.CorridorArea - 768; d > geometry.Epsilon || d < -geometry.Epsilon {
		t.Errorf("CorridorArea = %.2f, want 768", report.CorridorArea)
	}
}

func TestCheckDetectsBoothOverlap(t *testing.T) {
	g := hall.Default()
	net := defaultNetwork(t)

	booths := []placement.Booth{
		{ID: "A-1", Zone: hall.ZoneA, Area: 100, Rect: geometry.Rect{X: 0, Y: 7, W: 10, H: 10}},
		{ID: "A-2", Zone: hall.ZoneA, Area: 100, Rect: geometry.Rect{X: 5, Y: 7, W: 10, H: 10}},
	}
	report := Check(g, net, booths, hall.DefaultInventory())

	if !hasRule(report, RuleBoothOverlap) {
		t.Error("overlapping booths not reported")
	}
	if report.Passed() {
		t.Error("report with violations must not pass")
	}
}

func TestCheckDetectsStripDepthViolation(t *testing.T) {
	g := hall.Default()
	net := defaultNetwork(t)

	// 6×5 realization of 30 m² in zone C: valid area and aspect, wrong depth.
	booths := []placement.Booth{
		{ID: "C-1", Zone: hall.ZoneC, Area: 30, Rect: geometry.Rect{X: 0, Y: 35, W: 6, H: 5}},
	}
	report := Check(g, net, booths, hall.DefaultInventory())

	if !hasRule(report, RuleStripDepth) {
		t.Error("strip depth violation not reported")
	}
}

func TestCheckDetectsMissingFrontage(t *testing.T) {
	g := hall.Default()
	net := defaultNetwork(t)

	// Floating mid-zone booth touching nothing.
	booths := []placement.Booth{
		{ID: "A-1", Zone: hall.ZoneA, Area: 100, Rect: geometry.Rect{X: 1, Y: 22, W: 10, H: 10}},
	}
	report := Check(g, net, booths, hall.DefaultInventory())

	if !hasRule(report, RuleFrontage) {
		t.Error("missing frontage not reported")
	}
}

func TestCheckDetectsCorridorOverlap(t *testing.T) {
	g := hall.Default()
	net := defaultNetwork(t)

	booths := []placement.Booth{
		{ID: "A-1", Zone: hall.ZoneA, Area: 100, Rect: geometry.Rect{X: 0, Y: 7, W: 10, H: 10}},
	}
	booths[0].Rect.Y = 5 // slides into the lower main corridor
	report := Check(g, net, booths, hall.DefaultInventory())

	if !hasRule(report, RuleCorridorOverlap) {
		t.Error("corridor overlap not reported")
	}
}

func TestCheckDetectsInventoryOverrun(t *testing.T) {
	g := hall.Default()
	net := defaultNetwork(t)

	booths := []placement.Booth{
		{ID: "A-1", Zone: hall.ZoneA, Area: 200, Rect: geometry.Rect{X: 0, Y: 7, W: 20, H: 10}},
		{ID: "A-2", Zone: hall.ZoneA, Area: 200, Rect: geometry.Rect{X: 28, Y: 7, W: 20, H: 10}},
		{ID: "B-1", Zone: hall.ZoneB, Area: 200, Rect: geometry.Rect{X: 52, Y: 7, W: 20, H: 10}},
	}
	report := Check(g, net, booths, hall.DefaultInventory())

	if !hasRule(report, RuleInventoryBound) {
		t.Error("inventory overrun not reported")
	}
}

func TestCheckDetectsInventedArea(t *testing.T) {
	g := hall.Default()
	net := defaultNetwork(t)

	booths := []placement.Booth{
		{ID: "A-1", Zone: hall.ZoneA, Area: 77, Rect: geometry.Rect{X: 0, Y: 7, W: 11, H: 7}},
	}
	report := Check(g, net, booths, hall.DefaultInventory())

	if !hasRule(report, RuleAllowedArea) {
		t.Error("invented booth area not reported")
	}
}

func TestCheckDetectsUnexplainedGap(t *testing.T) {
	g := hall.Default()
	net := defaultNetwork(t)

	// An empty layout leaves the whole of zone A free while the entire
	// inventory is unused.
	report := Check(g, net, nil, hall.DefaultInventory())

	if !hasRule(report, RuleUnexplainedGap) {
		t.Error("empty layout with unused inventory should report gaps")
	}
}

func TestReportPassedEmpty(t *testing.T) {
	r := &Report{}
	if !r.Passed() {
		t.Error("empty report should pass")
	}
}
