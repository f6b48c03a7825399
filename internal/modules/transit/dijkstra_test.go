package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// demoGraph is the seeded six-stop network used across the test suite.
func demoGraph() Graph {
	return BuildGraph([]Route{
		{FromName: "A", ToName: "B", DurationMin: 5},
		{FromName: "A", ToName: "C", DurationMin: 7},
		{FromName: "B", ToName: "D", DurationMin: 15},
		{FromName: "B", ToName: "C", DurationMin: 20},
		{FromName: "C", ToName: "D", DurationMin: 5},
		{FromName: "C", ToName: "E", DurationMin: 35},
		{FromName: "D", ToName: "E", DurationMin: 20},
		{FromName: "D", ToName: "F", DurationMin: 20},
		{FromName: "E", ToName: "F", DurationMin: 10},
	})
}

func TestShortestPathDemoNetwork(t *testing.T) {
	path, duration, ok := ShortestPath(demoGraph(), "A", "F")

	require.True(t, ok)
	assert.Equal(t, 32, duration)
	assert.Equal(t, []string{"A", "C", "D", "F"}, path)
}

func TestShortestPathEdgesSumToDuration(t *testing.T) {
	g := demoGraph()
	path, duration, ok := ShortestPath(g, "A", "E")
	require.True(t, ok)

	sum := 0
	for i := 0; i+1 < len(path); i++ {
		w, present := g[path[i]][path[i+1]]
		require.True(t, present, "consecutive pair %s-%s must be an edge", path[i], path[i+1])
		sum += w
	}
	assert.Equal(t, duration, sum)
}

func TestShortestPathSymmetry(t *testing.T) {
	g := demoGraph()

	_, forward, ok := ShortestPath(g, "A", "F")
	require.True(t, ok)
	_, backward, ok := ShortestPath(g, "F", "A")
	require.True(t, ok)

	assert.Equal(t, forward, backward)
}

func TestShortestPathSameStartAndEnd(t *testing.T) {
	path, duration, ok := ShortestPath(demoGraph(), "C", "C")

	require.True(t, ok)
	assert.Equal(t, 0, duration)
	assert.Equal(t, []string{"C"}, path)
}

func TestShortestPathUnreachable(t *testing.T) {
	g := demoGraph()
	g.AddNode("Z")

	_, _, ok := ShortestPath(g, "A", "Z")
	assert.False(t, ok)
}

func TestShortestPathUnknownNode(t *testing.T) {
	_, _, ok := ShortestPath(demoGraph(), "A", "nowhere")
	assert.False(t, ok)

	_, _, ok = ShortestPath(demoGraph(), "nowhere", "A")
	assert.False(t, ok)
}

func TestShortestPathDeterministicTieBreak(t *testing.T) {
	// Two equal-cost paths S->X->T and S->Y->T; the lexically smaller
	// intermediate node must win, on every run.
	g := BuildGraph([]Route{
		{FromName: "S", ToName: "Y", DurationMin: 1},
		{FromName: "S", ToName: "X", DurationMin: 1},
		{FromName: "X", ToName: "T", DurationMin: 1},
		{FromName: "Y", ToName: "T", DurationMin: 1},
	})

	for i := 0; i < 50; i++ {
		path, duration, ok := ShortestPath(g, "S", "T")
		require.True(t, ok)
		require.Equal(t, 2, duration)
		require.Equal(t, []string{"S", "X", "T"}, path)
	}
}
