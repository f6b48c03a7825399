package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGraphSymmetric(t *testing.T) {
	g := BuildGraph([]Route{
		{FromName: "A", ToName: "B", DurationMin: 5},
	})

	assert.Equal(t, 5, g["A"]["B"])
	assert.Equal(t, 5, g["B"]["A"])
}

func TestBuildGraphDuplicateEdgesKeepMinimum(t *testing.T) {
	g := BuildGraph([]Route{
		{FromName: "A", ToName: "B", DurationMin: 9},
		{FromName: "A", ToName: "B", DurationMin: 5},
		{FromName: "B", ToName: "A", DurationMin: 7},
	})

	assert.Equal(t, 5, g["A"]["B"])
	assert.Equal(t, 5, g["B"]["A"])
}

func TestBuildGraphIsolatedNode(t *testing.T) {
	g := BuildGraph([]Route{
		{FromName: "A", ToName: "B", DurationMin: 5},
	})
	g.AddNode("Z")

	assert.Empty(t, g["Z"])

	// adding an already-connected node must not clobber its neighbors
	g.AddNode("A")
	assert.Equal(t, 5, g["A"]["B"])
}
