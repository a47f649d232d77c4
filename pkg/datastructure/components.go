package datastructure

// computeComponents. label every vertex with its connected component, iterative dfs over the
// undirected adjacency. component ids follow the insertion order of their first vertex.
func (g *Graph) computeComponents() {
	n := len(g.vertices)
	components := make([]Index, n)
	for i := range components {
		components[i] = INVALID_VERTEX_ID
	}

	numberOfComponents := Index(0)
	stack := make([]Index, 0, 64)

	for s := Index(0); s < Index(n); s++ {
		if components[s] != INVALID_VERTEX_ID {
			continue
		}

		components[s] = numberOfComponents
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range g.adjList[u] {
				if components[e.head] == INVALID_VERTEX_ID {
					components[e.head] = numberOfComponents
					stack = append(stack, e.head)
				}
			}
		}
		numberOfComponents++
	}

	g.components = components
	g.numberOfComponents = int(numberOfComponents)
}

// NumberOfComponents. only meaningful once the graph is sealed.
func (g *Graph) NumberOfComponents() int {
	return g.numberOfComponents
}

func (g *Graph) GetComponent(u Index) Index {
	if int(u) >= len(g.components) {
		return INVALID_VERTEX_ID
	}
	return g.components[u]
}

// Connected. true if u and v lie in the same connected component of a sealed graph.
// an unsealed graph has no labels yet and reports every pair as connected.
func (g *Graph) Connected(u, v Index) bool {
	if !g.sealed {
		return true
	}
	return g.GetComponent(u) == g.GetComponent(v)
}
