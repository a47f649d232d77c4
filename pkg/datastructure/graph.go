package datastructure

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
)

var (
	ErrInvalidWeight = errors.New("edge weight must be a finite non-negative number")
	ErrGraphSealed   = errors.New("graph is sealed, edges can not be added")
)

// Edge. one adjacency entry, the tail is the vertex whose edge list holds it.
type Edge struct {
	head   Index
	weight float64
}

func NewEdge(head Index, weight float64) Edge {
	return Edge{head: head, weight: weight}
}

func (e Edge) GetHead() Index {
	return e.head
}

func (e Edge) GetWeight() float64 {
	return e.weight
}

// UndirectedEdge. an edge as it was added, each AddEdge call produces exactly one.
type UndirectedEdge struct {
	u, v   Index
	weight float64
}

func (e UndirectedEdge) GetEndpoints() (Index, Index) {
	return e.u, e.v
}

func (e UndirectedEdge) GetWeight() float64 {
	return e.weight
}

// Graph. undirected weighted multigraph keyed by node identity.
// parallel edges between the same pair of nodes are kept. the graph is append-only and becomes read-only
// after Seal, a sealed graph can be shared between any number of concurrent queries.
type Graph struct {
	canonicalizer Canonicalizer

	vertexIds map[Node]Index
	vertices  []Node
	adjList   [][]Edge
	edges     []UndirectedEdge

	bbox   *BoundingBox
	sealed bool

	components         []Index
	numberOfComponents int
}

func NewGraph(canonicalizer Canonicalizer) *Graph {
	return &Graph{
		canonicalizer: canonicalizer,
		vertexIds:     make(map[Node]Index),
		vertices:      make([]Node, 0),
		adjList:       make([][]Edge, 0),
		edges:         make([]UndirectedEdge, 0),
		bbox:          NewEmptyBoundingBox(),
	}
}

func NewGraphWithSize(canonicalizer Canonicalizer, numberOfVertices, numberOfEdges int) *Graph {
	g := NewGraph(canonicalizer)
	g.vertexIds = make(map[Node]Index, numberOfVertices)
	g.vertices = make([]Node, 0, numberOfVertices)
	g.adjList = make([][]Edge, 0, numberOfVertices)
	g.edges = make([]UndirectedEdge, 0, numberOfEdges)
	return g
}

func (g *Graph) GetCanonicalizer() Canonicalizer {
	return g.canonicalizer
}

func (g *Graph) Canonicalize(c Coordinate) Node {
	return g.canonicalizer.Canonicalize(c)
}

// AddNode. idempotent, returns the vertex id of n.
func (g *Graph) AddNode(n Node) (Index, error) {
	if id, ok := g.vertexIds[n]; ok {
		return id, nil
	}
	if g.sealed {
		return INVALID_VERTEX_ID, ErrGraphSealed
	}

	id := Index(len(g.vertices))
	g.vertexIds[n] = id
	g.vertices = append(g.vertices, n)
	g.adjList = append(g.adjList, make([]Edge, 0, 2))
	g.bbox.Extend(n.Coordinate())
	return id, nil
}

// AddEdge. add undirected edge (a,b). both endpoints are inserted if absent.
// negative, NaN or infinite weights are rejected with ErrInvalidWeight.
func (g *Graph) AddEdge(a, b Node, weight float64) error {
	if g.sealed {
		return ErrGraphSealed
	}
	if !util.IsFinite(weight) || weight < 0 {
		return fmt.Errorf("%w: edge %v-%v weight %v", ErrInvalidWeight, a, b, weight)
	}

	u, err := g.AddNode(a)
	if err != nil {
		return err
	}
	v, err := g.AddNode(b)
	if err != nil {
		return err
	}

	g.adjList[u] = append(g.adjList[u], NewEdge(v, weight))
	g.adjList[v] = append(g.adjList[v], NewEdge(u, weight))
	g.edges = append(g.edges, UndirectedEdge{u: u, v: v, weight: weight})
	return nil
}

// Seal. freeze the graph and label its connected components.
func (g *Graph) Seal() {
	if g.sealed {
		return
	}
	g.computeComponents()
	g.sealed = true
}

func (g *Graph) IsSealed() bool {
	return g.sealed
}

func (g *Graph) GetVertexId(n Node) (Index, bool) {
	id, ok := g.vertexIds[n]
	return id, ok
}

func (g *Graph) HasNode(n Node) bool {
	_, ok := g.vertexIds[n]
	return ok
}

func (g *Graph) GetNode(u Index) Node {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinate(u Index) Coordinate {
	return g.vertices[u].Coordinate()
}

// Nodes. all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, len(g.vertices))
	copy(nodes, g.vertices)
	return nodes
}

// Edges. adjacency of n, nil if n is not in the graph.
func (g *Graph) Edges(n Node) []Edge {
	u, ok := g.vertexIds[n]
	if !ok {
		return nil
	}
	edges := make([]Edge, len(g.adjList[u]))
	copy(edges, g.adjList[u])
	return edges
}

func (g *Graph) ForEdgesOf(u Index, handle func(e Edge)) {
	for _, e := range g.adjList[u] {
		handle(e)
	}
}

func (g *Graph) ForUndirectedEdges(handle func(e UndirectedEdge)) {
	for _, e := range g.edges {
		handle(e)
	}
}

// Degree. number of incident edge entries, parallel edges counted separately.
func (g *Graph) Degree(n Node) int {
	u, ok := g.vertexIds[n]
	if !ok {
		return 0
	}
	return len(g.adjList[u])
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

// NumberOfEdges. number of undirected edges including duplicates.
func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.bbox
}
