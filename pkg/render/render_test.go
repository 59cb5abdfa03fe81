package render

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/layout"
	"github.com/expogrid/hallplan/pkg/placement"
	"github.com/expogrid/hallplan/pkg/region"
	"github.com/expogrid/hallplan/pkg/validate"
)

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	g := hall.Default()
	net, err := corridor.Build(g, corridor.Options{})
	if err != nil {
		t.Fatalf("Build corridors: %v", err)
	}
	arena := region.Decompose(g, net)
	res, err := placement.Place(g, net, arena, placement.Options{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	report := validate.Check(g, net, res.Booths, hall.DefaultInventory())
	return layout.Assemble(g, net, res, arena, report)
}

func TestSVGStructure(t *testing.T) {
	l := testLayout(t)
	svg := string(SVG(l))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg root element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}

	// One rect per corridor and booth, plus the hall frame and zone outlines.
	rects := strings.Count(svg, "<rect")
	want := 1 + len(l.Corridors) + len(l.Zones) + len(l.Booths)
	if rects != want {
		t.Errorf("rect count = %d, want %d", rects, want)
	}

	// Every booth carries its area label.
	for _, b := range l.Booths {
		label := fmt.Sprintf("%.0f m²", b.Area)
		if !strings.Contains(svg, label) {
			t.Errorf("missing label %q", label)
			break
		}
	}

	// All four entrances are marked.
	for _, e := range l.Entrances {
		if !strings.Contains(svg, ">"+e.Label+"<") {
			t.Errorf("missing entrance marker %q", e.Label)
		}
	}
}

func TestSVGYFlip(t *testing.T) {
	l := testLayout(t)
	svg := string(SVG(l, WithoutLabels(), WithoutZones()))

	// The upper main corridor (y 33-37 in plan coordinates) must land in the
	// upper half of the image: pixel y = (40-37)*12 = 36.
	if !strings.Contains(svg, `y="36.0"`) {
		t.Error("upper main corridor not flipped to the image top")
	}
}

func TestSVGOptions(t *testing.T) {
	l := testLayout(t)

	plain := string(SVG(l, WithoutLabels(), WithoutZones()))
	if strings.Contains(plain, "stroke-dasharray") {
		t.Error("zone outlines rendered despite WithoutZones")
	}
	if strings.Contains(plain, "m²") {
		t.Error("labels rendered despite WithoutLabels")
	}

	scaled := string(SVG(l, WithScale(24)))
	if !strings.Contains(scaled, `width="1920"`) {
		t.Error("WithScale not applied to frame width")
	}
}

func TestGraphSVG(t *testing.T) {
	g := hall.Default()
	net, err := corridor.Build(g, corridor.Options{})
	if err != nil {
		t.Fatal(err)
	}

	svg, err := GraphSVG(context.Background(), net)
	if err != nil {
		t.Fatalf("GraphSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not an SVG document")
	}
	// Graphviz carries the node ids into the output.
	for _, s := range net.Segments {
		if s.IsMain() && !strings.Contains(string(svg), s.ID) {
			t.Errorf("segment %s missing from graph SVG", s.ID)
		}
	}
}

func TestToDOT(t *testing.T) {
	l := testLayout(t)
	g := hall.Default()
	net, err := corridor.Build(g, corridor.Options{})
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(net)
	if !strings.HasPrefix(dot, "graph corridors {") {
		t.Error("missing graph header")
	}
	for _, s := range l.Corridors {
		if !strings.Contains(dot, fmt.Sprintf("%q", s.ID)) {
			t.Errorf("segment %s missing from DOT", s.ID)
		}
	}

	// The three mains pairwise intersect, so at least those edges exist.
	if strings.Count(dot, " -- ") < 3 {
		t.Errorf("too few adjacency edges:\n%s", dot)
	}
}
