package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/geometry"
)

// ToDOT converts the corridor network to Graphviz DOT format. Nodes are
// segments, edges are physical adjacencies (shared edge or point). The graph
// a validator declares connected renders as a single component here.
func ToDOT(net *corridor.Network) string {
	var buf bytes.Buffer
	buf.WriteString("graph corridors {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12];\n")
	buf.WriteString("\n")

	for _, s := range net.Segments {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", s.ID, dotLabel(s), dotFill(s.Kind))
	}

	buf.WriteString("\n")
	for i, a := range net.Segments {
		for _, b := range net.Segments[i+1:] {
			if segmentsTouch(a.Rect, b.Rect) {
				fmt.Fprintf(&buf, "  %q -- %q;\n", a.ID, b.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(s corridor.Segment) string {
	return fmt.Sprintf("%s\n%.1f m", s.ID, s.Width)
}

func dotFill(k corridor.Kind) string {
	switch k {
	case corridor.KindMain:
		return "lightgrey"
	case corridor.KindSecondary:
		return "white"
	default:
		return "whitesmoke"
	}
}

// segmentsTouch reports closed-rectangle contact: overlapping interiors or a
// shared edge or corner.
func segmentsTouch(a, b geometry.Rect) bool {
	if a.X > b.MaxX()+geometry.Epsilon || b.X > a.MaxX()+geometry.Epsilon {
		return false
	}
	if a.Y > b.MaxY()+geometry.Epsilon || b.Y > a.MaxY()+geometry.Epsilon {
		return false
	}
	return true
}

// GraphSVG renders the corridor adjacency graph to SVG using Graphviz.
func GraphSVG(ctx context.Context, net *corridor.Network) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(net)))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "render corridor graph")
	}
	return buf.Bytes(), nil
}
