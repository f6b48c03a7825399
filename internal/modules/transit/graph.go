// README: Adjacency-map graph built from route records.
package transit

// Graph maps a location name to its neighbors and the travel duration
// in minutes to each. Edges are stored symmetrically.
type Graph map[string]map[string]int

// BuildGraph converts route records into an adjacency map. Each route
// contributes both directions at the same weight. When the same pair
// appears more than once, the minimum duration wins.
func BuildGraph(routes []Route) Graph {
	g := make(Graph, len(routes)*2)
	for _, r := range routes {
		addEdge(g, r.FromName, r.ToName, r.DurationMin)
		addEdge(g, r.ToName, r.FromName, r.DurationMin)
	}
	return g
}

func addEdge(g Graph, from, to string, w int) {
	neighbors, ok := g[from]
	if !ok {
		neighbors = make(map[string]int)
		g[from] = neighbors
	}
	if cur, ok := neighbors[to]; !ok || w < cur {
		neighbors[to] = w
	}
}

// AddNode ensures a location is present even when no route touches it.
func (g Graph) AddNode(name string) {
	if _, ok := g[name]; !ok {
		g[name] = make(map[string]int)
	}
}
