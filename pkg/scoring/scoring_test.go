package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

func buildNetwork(t *testing.T) *corridor.Network {
	t.Helper()
	net, err := corridor.Build(hall.Default(), corridor.Options{})
	require.NoError(t, err)
	return net
}

func zone(t *testing.T, id hall.ZoneID) hall.Zone {
	t.Helper()
	z, ok := hall.Default().Zone(id)
	require.True(t, ok)
	return z
}

func TestDefaultWeightsValid(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
}

func TestWeightsValidateRejectsNegative(t *testing.T) {
	w := DefaultWeights()
	w.Frontage = -1
	assert.Error(t, w.Validate())
}

func TestMeasureMainCorridorFrontage(t *testing.T) {
	net := buildNetwork(t)
	g := hall.Default()

	// 20×10 booth in the SW corner of zone A, flush against the lower main
	// corridor and the west hall wall.
	c := Measure(geometry.Rect{X: 0, Y: 7, W: 20, H: 10}, zone(t, hall.ZoneA), net, g.Bounds)

	assert.InDelta(t, 20.0, c.Frontage, geometry.Epsilon)
	assert.InDelta(t, 20.0, c.MainFrontage, geometry.Epsilon)
	assert.Equal(t, 1, c.OpenSides)
	assert.True(t, c.Corner, "corridor south + wall west should count as a corner")
}

func TestMeasureNoContact(t *testing.T) {
	net := buildNetwork(t)
	g := hall.Default()

	// Floating mid-zone booth: no corridor within reach, no wall contact.
	c := Measure(geometry.Rect{X: 1, Y: 22, W: 20, H: 10}, zone(t, hall.ZoneA), net, g.Bounds)

	assert.Zero(t, c.Frontage)
	assert.Zero(t, c.MainFrontage)
	assert.Zero(t, c.OpenSides)
	assert.False(t, c.Corner)
}

func TestMeasureWallAloneIsNotCorner(t *testing.T) {
	net := buildNetwork(t)
	g := hall.Default()

	// Touches the west wall but no corridor at all.
	c := Measure(geometry.Rect{X: 0, Y: 22, W: 10, H: 10}, zone(t, hall.ZoneA), net, g.Bounds)
	assert.False(t, c.Corner)
}

func TestCornerPlacementBeatsMidZone(t *testing.T) {
	net := buildNetwork(t)
	g := hall.Default()
	za := zone(t, hall.ZoneA)
	entrance := g.MainEntrance()
	w := DefaultWeights()

	corner := Measure(geometry.Rect{X: 0, Y: 7, W: 20, H: 10}, za, net, g.Bounds)
	mid := Measure(geometry.Rect{X: 1, Y: 22, W: 20, H: 10}, za, net, g.Bounds)

	// The mid-zone booth is nearer the entrance but has no frontage, no open
	// sides and no corner contact; the corner placement must win.
	assert.Greater(t, Score(corner, entrance, w), Score(mid, entrance, w))
}

func TestScoreDecreasesWithEntranceDistance(t *testing.T) {
	za := zone(t, hall.ZoneA)
	entrance := geometry.Point{X: 50, Y: 40}
	w := DefaultWeights()

	near := Candidate{Rect: geometry.Rect{X: 38, Y: 23, W: 10, H: 10}, Zone: za}
	far := Candidate{Rect: geometry.Rect{X: 0, Y: 7, W: 10, H: 10}, Zone: za}

	assert.Greater(t, Score(near, entrance, w), Score(far, entrance, w))
}

func TestCleanlinessStripDepth(t *testing.T) {
	zc := zone(t, hall.ZoneC)
	entrance := geometry.Point{X: 50, Y: 40}

	// Only the cleanliness weight is active, so the score isolates the term.
	w := Weights{AspectCleanliness: 1}

	exact := Candidate{Rect: geometry.Rect{X: 0, Y: 37, W: 10, H: 3}, Zone: zc}
	off := Candidate{Rect: geometry.Rect{X: 0, Y: 36, W: 6, H: 4}, Zone: zc}

	assert.InDelta(t, 1.0, Score(exact, entrance, w), geometry.Epsilon)
	assert.InDelta(t, 0.0, Score(off, entrance, w), geometry.Epsilon)
}

func TestCleanlinessCompactAspect(t *testing.T) {
	za := zone(t, hall.ZoneA)
	entrance := geometry.Point{X: 50, Y: 40}
	w := Weights{AspectCleanliness: 1}

	square := Candidate{Rect: geometry.Rect{X: 0, Y: 7, W: 10, H: 10}, Zone: za}
	oblong := Candidate{Rect: geometry.Rect{X: 0, Y: 7, W: 20, H: 10}, Zone: za}

	assert.Greater(t, Score(square, entrance, w), Score(oblong, entrance, w))
}
