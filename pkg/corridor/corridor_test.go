package corridor

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

func build(t *testing.T) *Network {
	t.Helper()
	n, err := Build(hall.Default(), Options{})
	require.NoError(t, err)
	return n
}

func TestMainSegments(t *testing.T) {
	n := build(t)

	want := map[string]geometry.Rect{
		"main-x50": {X: 48, Y: 0, W: 4, H: 40},
		"main-y35": {X: 0, Y: 33, W: 80, H: 4},
		"main-y5":  {X: 0, Y: 3, W: 80, H: 4},
	}
	for id, rect := range want {
		s, ok := n.Segment(id)
		require.True(t, ok, "missing segment %s", id)
		assert.True(t, s.Rect.Eq(rect), "%s rect = %+v, want %+v", id, s.Rect, rect)
		assert.Equal(t, KindMain, s.Kind)
		assert.InDelta(t, hall.MainCorridorWidth, s.Width, geometry.Epsilon)
	}
}

func TestMainCorridorAreaDeduplicated(t *testing.T) {
	g := hall.Default()
	n := &Network{hallBounds: g.Bounds}
	n.Segments = mainSegments(g)

	// 4×40 + 80×4 + 80×4 − 2 × (4×4) intersections = 768.
	assert.InDelta(t, 768.0, n.Area(), geometry.Epsilon)
}

func TestSecondaryProposalsOnlyInInnerZones(t *testing.T) {
	n := build(t)

	g := hall.Default()
	for _, s := range n.Segments {
		if s.IsMain() {
			continue
		}
		require.NotEmpty(t, s.Zone)
		z, ok := g.Zone(s.Zone)
		require.True(t, ok)
		assert.True(t, z.AllowsSecondaryCorridors, "segment %s proposed in zone %s", s.ID, s.Zone)
		assert.True(t, z.Bounds.Contains(s.Rect), "segment %s leaves its zone", s.ID)
		assert.GreaterOrEqual(t, s.Width, MinSecondaryWidth-geometry.Epsilon)
		assert.LessOrEqual(t, s.Width, MaxSecondaryWidth+geometry.Epsilon)
		assert.True(t, s.Rect.OnGrid(), "segment %s off grid", s.ID)
	}
}

func TestZoneAProposals(t *testing.T) {
	n := build(t)

	// Zone A is 48 m wide and 26 m tall: one centered spur, one tertiary cut.
	spur, ok := n.Segment("sec-A-1")
	require.True(t, ok)
	assert.True(t, spur.Rect.Eq(geometry.Rect{X: 22.5, Y: 7, W: 3, H: 26}), "spur rect = %+v", spur.Rect)

	ter, ok := n.Segment("ter-A-1")
	require.True(t, ok)
	assert.True(t, ter.Rect.Eq(geometry.Rect{X: 0, Y: 18.5, W: 48, H: 3}), "tertiary rect = %+v", ter.Rect)
}

func TestNoDeadEnds(t *testing.T) {
	n := build(t)
	assert.Empty(t, n.DeadEnds())
	assert.True(t, n.Connected())
}

func TestDeadEndDetection(t *testing.T) {
	g := hall.Default()
	n := &Network{hallBounds: g.Bounds}
	n.Segments = mainSegments(g)
	// A floating strip touching nothing.
	n.Segments = append(n.Segments, Segment{
		ID:   "sec-X-1",
		Kind: KindSecondary,
		Rect: geometry.Rect{X: 10, Y: 10, W: 3, H: 10},
	})

	assert.Equal(t, []string{"sec-X-1"}, n.DeadEnds())
	assert.False(t, n.Connected())
}

func TestCoversAllEntrances(t *testing.T) {
	g := hall.Default()
	n := build(t)
	for _, e := range g.Entrances {
		assert.True(t, n.CoversEntrance(e), "entrance %s not covered", e.Label)
	}
}

func TestBuildIdempotent(t *testing.T) {
	a := build(t)
	b := build(t)
	assert.True(t, reflect.DeepEqual(a.Segments, b.Segments))
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		width   float64
		wantErr bool
	}{
		{3.0, false},
		{2.5, false},
		{3.5, false},
		{2.0, true},
		{4.0, true},
		{3.1, true}, // off grid
	}
	for _, tt := range tests {
		_, err := Build(hall.Default(), Options{SecondaryWidth: tt.width})
		if tt.wantErr {
			assert.Error(t, err, "width %.2f", tt.width)
		} else {
			assert.NoError(t, err, "width %.2f", tt.width)
		}
	}
}
