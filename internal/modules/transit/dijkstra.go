// README: Dijkstra shortest-path solver over the transit graph.
package transit

import "container/heap"

// ShortestPath returns the minimum-duration path between two named
// locations and its total duration in minutes. ok is false when no
// path exists or either endpoint is not a node of the graph.
//
// The solver exits as soon as the goal is dequeued rather than
// completing the full single-source run. Ties on distance are broken
// by node name so results are reproducible.
func ShortestPath(g Graph, start, end string) (path []string, durationMin int, ok bool) {
	if _, present := g[start]; !present {
		return nil, 0, false
	}
	if _, present := g[end]; !present {
		return nil, 0, false
	}

	dist := map[string]int{start: 0}
	prev := make(map[string]string)
	done := make(map[string]bool)

	pq := &nodeQueue{{name: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(nodeItem)
		if done[cur.name] {
			continue
		}
		done[cur.name] = true

		if cur.name == end {
			return reconstruct(prev, start, end), cur.dist, true
		}

		for neighbor, w := range g[cur.name] {
			if done[neighbor] {
				continue
			}
			alt := cur.dist + w
			if d, seen := dist[neighbor]; !seen || alt < d {
				dist[neighbor] = alt
				prev[neighbor] = cur.name
				heap.Push(pq, nodeItem{name: neighbor, dist: alt})
			}
		}
	}

	return nil, 0, false
}

func reconstruct(prev map[string]string, start, end string) []string {
	path := []string{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type nodeItem struct {
	name string
	dist int
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].name < q[j].name
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) {
	*q = append(*q, x.(nodeItem))
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
