package routing

import (
	"context"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
)

const (
	ctxCheckInterval = 1024
)

// Dijkstra. single query point to point search on a sealed indoor graph.
// a Dijkstra value holds per query state and must not be shared between goroutines, the graph can be.
type Dijkstra struct {
	graph *da.Graph

	info []*VertexInfo[da.Index]
	pq   *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		pq:    da.NewFourAryHeap[da.Index](),
	}
}

// ShortestPath. ordered coordinates from start to end, empty if either endpoint is not a node of the graph
// or end is unreachable.
func ShortestPath(graph *da.Graph, start, end da.Coordinate) []da.Coordinate {
	route, _ := NewDijkstra(graph).ShortestPathSearch(context.Background(), start, end)
	return route.GetPath()
}

// ShortestPathSearch. both endpoints must match a graph node exactly (after canonicalization), no snapping.
// NodeNotFound and Unreachable are not errors, they give a route with an empty path. the only error is a
// cancelled or expired ctx.
func (us *Dijkstra) ShortestPathSearch(ctx context.Context, start, end da.Coordinate) (*Route, error) {
	s, ok := us.graph.GetVertexId(us.graph.Canonicalize(start))
	if !ok {
		return NewEmptyRoute(), nil
	}
	t, ok := us.graph.GetVertexId(us.graph.Canonicalize(end))
	if !ok {
		return NewEmptyRoute(), nil
	}

	if s == t {
		return NewRoute([]da.Coordinate{us.graph.GetVertexCoordinate(s)}, 0), nil
	}
	if !us.graph.Connected(s, t) {
		return NewEmptyRoute(), nil
	}

	us.Preallocate()

	shNode := da.NewPriorityQueueNode(0, s)
	us.pq.Insert(shNode)
	us.info[s] = NewVertexInfo(0, da.INVALID_VERTEX_ID, shNode)

	for !us.pq.IsEmpty() {
		if us.numSettledNodes%ctxCheckInterval == 0 && util.StopConcurrentOperation(ctx) {
			return NewEmptyRoute(), ctx.Err()
		}

		u := us.graphSearchUni()
		us.numSettledNodes++
		if u == t {
			break
		}
	}

	tInfo := us.info[t]
	if tInfo == nil || !tInfo.IsScanned() || tInfo.GetDist() >= pkg.INF_WEIGHT {
		return NewEmptyRoute(), nil
	}

	path := us.retrievePath(s, t)
	if len(path) == 0 {
		return NewEmptyRoute(), nil
	}
	return NewRoute(path, tInfo.GetDist()), nil
}

// graphSearchUni. settle the vertex with the smallest tentative distance and relax its edges.
// ties are broken by heap order, callers must not rely on it.
func (us *Dijkstra) graphSearchUni() da.Index {
	queryKey, _ := us.pq.ExtractMin()
	uId := queryKey.GetItem()
	uInfo := us.info[uId]
	uInfo.Scan()

	us.graph.ForEdgesOf(uId, func(e da.Edge) {
		vId := e.GetHead()
		vInfo := us.info[vId]
		if vInfo != nil && vInfo.IsScanned() {
			return
		}

		newDist := uInfo.GetDist() + e.GetWeight()
		if newDist >= pkg.INF_WEIGHT {
			// finite weights can still overflow
			return
		}

		if vInfo == nil {
			vhNode := da.NewPriorityQueueNode(newDist, vId)
			us.info[vId] = NewVertexInfo(newDist, uId, vhNode)
			us.pq.Insert(vhNode)
			return
		}

		if newDist >= vInfo.GetDist() {
			// parallel edges and longer detours end here
			return
		}

		vInfo.UpdateDist(newDist)
		vInfo.UpdateParent(uId)
		us.pq.DecreaseKey(vInfo.GetHeapNode(), newDist)
	})

	return uId
}

// retrievePath. walk the parent pointers from t back to s, empty if the walk does not reach s.
func (us *Dijkstra) retrievePath(s, t da.Index) []da.Coordinate {
	n := us.graph.NumberOfVertices()
	vertexPath := make([]da.Index, 0)

	for cur := t; cur != da.INVALID_VERTEX_ID; cur = us.info[cur].GetParent() {
		vertexPath = append(vertexPath, cur)
		if len(vertexPath) > n || us.info[cur] == nil {
			return nil
		}
	}
	vertexPath = util.ReverseG(vertexPath)
	if vertexPath[0] != s {
		return nil
	}

	path := make([]da.Coordinate, len(vertexPath))
	for i, v := range vertexPath {
		path[i] = us.graph.GetVertexCoordinate(v)
	}
	return path
}

func (us *Dijkstra) Preallocate() {
	n := us.graph.NumberOfVertices()
	us.info = make([]*VertexInfo[da.Index], n)
	us.pq.Preallocate(n)
	us.numSettledNodes = 0
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}
