package hall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expogrid/hallplan/pkg/geometry"
)

func TestDefaultGeometryValid(t *testing.T) {
	g := Default()
	require.NoError(t, g.Validate())

	assert.Equal(t, geometry.Rect{X: 0, Y: 0, W: 80, H: 40}, g.Bounds)
	assert.Len(t, g.Zones, 6)
	assert.Len(t, g.Entrances, 4)
}

func TestZoneAreas(t *testing.T) {
	// The six zones cover everything except the 4 m vertical corridor band
	// and the 2 m corridor cores between the inner zones and the strips:
	// 80×40 - 4×40 - 2×(2×76) = 2736.
	g := Default()
	var zoneArea float64
	for _, z := range g.Zones {
		zoneArea += z.Bounds.Area()
	}
	assert.InDelta(t, 2736, zoneArea, 1e-9)
}

func TestZoneLookup(t *testing.T) {
	g := Default()

	z, ok := g.Zone(ZoneC)
	require.True(t, ok)
	assert.True(t, z.IsStrip())
	assert.Equal(t, StripDepth, z.MaxBoothDepth)

	a, ok := g.Zone(ZoneA)
	require.True(t, ok)
	assert.False(t, a.IsStrip())
	assert.True(t, a.AllowsSecondaryCorridors)

	_, ok = g.Zone(ZoneID("X"))
	assert.False(t, ok)
}

func TestMainEntrance(t *testing.T) {
	g := Default()
	assert.Equal(t, geometry.Point{X: 50, Y: 40}, g.MainEntrance())
}

func TestValidateRejectsOverlappingZones(t *testing.T) {
	g := Default()
	g.Zones[1].Bounds = g.Zones[0].Bounds
	assert.Error(t, g.Validate())
}

func TestValidateRejectsOffGridZone(t *testing.T) {
	g := Default()
	g.Zones[0].Bounds.X = 0.1
	assert.Error(t, g.Validate())
}

func TestValidateRejectsInteriorEntrance(t *testing.T) {
	g := Default()
	g.Entrances[0].Position = geometry.Point{X: 40, Y: 20}
	assert.Error(t, g.Validate())
}

func TestDefaultInventoryTotals(t *testing.T) {
	inv := DefaultInventory()
	assert.Equal(t, 48, TotalCount(inv))
	assert.InDelta(t, 2232, TotalArea(inv), 1e-9)
	require.NoError(t, ValidateInventory(inv))
}

func TestValidateInventory(t *testing.T) {
	assert.Error(t, ValidateInventory([]BoothSpec{{Area: 77, Count: 1}}))
	assert.Error(t, ValidateInventory([]BoothSpec{{Area: 60, Count: -1}}))
	assert.Error(t, ValidateInventory([]BoothSpec{{Area: 60, Count: 1}, {Area: 60, Count: 2}}))
	assert.NoError(t, ValidateInventory([]BoothSpec{{Area: 60, Count: 1}, {Area: 12, Count: 2}}))
}

func TestSortByPriority(t *testing.T) {
	in := []BoothSpec{{Area: 12, Count: 6}, {Area: 200, Count: 2}, {Area: 60, Count: 4}}
	out := SortByPriority(in)

	assert.Equal(t, []BoothSpec{{Area: 200, Count: 2}, {Area: 60, Count: 4}, {Area: 12, Count: 6}}, out)
	// Input order untouched.
	assert.Equal(t, 12.0, in[0].Area)
}

func TestShapesIncludeRotations(t *testing.T) {
	s := Shapes(30)
	assert.Equal(t, []Shape{{W: 10, H: 3}, {W: 6, H: 5}, {W: 3, H: 10}, {W: 5, H: 6}}, s)

	// Squares are not duplicated.
	assert.Equal(t, []Shape{{W: 10, H: 10}}, Shapes(100))

	assert.Empty(t, Shapes(77))
}

func TestShapesHonorSideLimits(t *testing.T) {
	for _, area := range Areas {
		for _, s := range Shapes(area) {
			assert.GreaterOrEqual(t, s.W, MinBoothSide, "area %.0f", area)
			assert.GreaterOrEqual(t, s.H, MinBoothSide, "area %.0f", area)
			long, short := s.W, s.H
			if short > long {
				long, short = short, long
			}
			assert.LessOrEqual(t, long/short, MaxAspectRatio+1e-9, "area %.0f", area)
			assert.InDelta(t, area, s.W*s.H, 1e-9, "area %.0f", area)
		}
	}
}

func TestStripShape(t *testing.T) {
	s, ok := StripShape(30)
	require.True(t, ok)
	assert.Equal(t, Shape{W: 10, H: 3}, s)

	s, ok = StripShape(12)
	require.True(t, ok)
	assert.Equal(t, Shape{W: 4, H: 3}, s)

	// 200 has no depth-3 variant within the 12 m side limit.
	_, ok = StripShape(200)
	assert.False(t, ok)

	// 20 = 5×4 only, no depth-3 variant at all.
	_, ok = StripShape(20)
	assert.False(t, ok)
}

func TestTierOf(t *testing.T) {
	assert.Equal(t, TierXL, TierOf(200))
	assert.Equal(t, TierLG, TierOf(80))
	assert.Equal(t, TierMD, TierOf(40))
	assert.Equal(t, TierSM, TierOf(12))
}

func TestAllowedArea(t *testing.T) {
	for _, a := range Areas {
		assert.True(t, AllowedArea(a))
	}
	assert.False(t, AllowedArea(77))
}
