package graphbuilder

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-indoor/pkg/costfunction"
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"go.uber.org/zap"
)

type BuildStats struct {
	Segments          int `json:"segments"`
	Nodes             int `json:"nodes"`
	Edges             int `json:"edges"`
	Crossings         int `json:"crossings"`
	CrossingEdges     int `json:"crossing_edges"`
	SkippedFeatures   int `json:"skipped_features"`
	DeclaredCrossings int `json:"declared_crossings"`
	Components        int `json:"components"`
}

// GraphBuilder. turns corridor segments into an indoor graph.
type GraphBuilder struct {
	log           *zap.Logger
	costFunction  costfunction.CostFunction
	canonicalizer da.Canonicalizer
}

func NewGraphBuilder(log *zap.Logger, costFunction costfunction.CostFunction,
	canonicalizer da.Canonicalizer) *GraphBuilder {
	return &GraphBuilder{
		log:           log,
		costFunction:  costFunction,
		canonicalizer: canonicalizer,
	}
}

// Build. build a sealed graph from segments. on any error no graph is returned.
//
// every consecutive coordinate pair of a segment becomes an edge weighted cost(c_i, c_i+1) * segment weight.
// a node shared by several segments (corridor crossing) is additionally linked, for every other segment
// containing it, to its predecessor and successor inside that other segment using that segment's weight.
func (gb *GraphBuilder) Build(segments []*da.Segment) (*da.Graph, *BuildStats, error) {
	stats := &BuildStats{Segments: len(segments)}

	numberOfCoords := 0
	for _, s := range segments {
		if err := s.Validate(); err != nil {
			return nil, nil, util.WrapErrorf(err, util.ErrParseGeometry, "invalid segment")
		}
		numberOfCoords += s.Len()
	}

	segmentNodes := make([][]da.Node, len(segments))
	for i, s := range segments {
		segmentNodes[i] = gb.canonicalizer.CanonicalizeAll(s.GetCoordinates())
	}

	overlaps := gb.buildNodeSegmentMap(segmentNodes)

	g := da.NewGraphWithSize(gb.canonicalizer, numberOfCoords, 2*numberOfCoords)

	for i, s := range segments {
		nodes := segmentNodes[i]
		coords := s.GetCoordinates()

		for j := 0; j < len(nodes)-1; j++ {
			weight := gb.costFunction.GetWeight(coords[j], coords[j+1], s.GetWeight())
			if err := g.AddEdge(nodes[j], nodes[j+1], weight); err != nil {
				return nil, nil, err
			}

			from := nodes[j]
			others := overlaps[from]
			if len(others) <= 1 {
				continue
			}

			for _, o := range others {
				if o.segment == i {
					continue
				}
				n, err := gb.linkCrossing(g, from, segments[o.segment], segmentNodes[o.segment], o.position)
				if err != nil {
					return nil, nil, err
				}
				stats.CrossingEdges += n
			}
		}
	}

	for _, others := range overlaps {
		if len(others) > 1 {
			stats.Crossings++
		}
	}

	g.Seal()

	stats.Nodes = g.NumberOfVertices()
	stats.Edges = g.NumberOfEdges()
	stats.Components = g.NumberOfComponents()

	gb.log.Info("indoor graph built",
		zap.Int("segments", stats.Segments),
		zap.Int("nodes", stats.Nodes),
		zap.Int("edges", stats.Edges),
		zap.Int("crossings", stats.Crossings),
		zap.Int("components", stats.Components),
		zap.String("canonicalizer", gb.canonicalizer.String()),
		zap.String("distance_metric", gb.costFunction.GetMetric().String()))

	return g, stats, nil
}

// linkCrossing. link from to its neighbours at position pos of the other segment.
func (gb *GraphBuilder) linkCrossing(g *da.Graph, from da.Node, other *da.Segment, otherNodes []da.Node,
	pos int) (int, error) {
	added := 0
	coords := other.GetCoordinates()
	if pos > 0 {
		weight := gb.costFunction.GetWeight(coords[pos], coords[pos-1], other.GetWeight())
		if err := g.AddEdge(from, otherNodes[pos-1], weight); err != nil {
			return added, fmt.Errorf("link crossing %v: %w", from, err)
		}
		added++
	}
	if pos < len(otherNodes)-1 {
		weight := gb.costFunction.GetWeight(coords[pos], coords[pos+1], other.GetWeight())
		if err := g.AddEdge(from, otherNodes[pos+1], weight); err != nil {
			return added, fmt.Errorf("link crossing %v: %w", from, err)
		}
		added++
	}
	return added, nil
}

type segmentPosition struct {
	segment  int
	position int // first occurrence of the node in the segment
}

// buildNodeSegmentMap. node -> distinct segments containing it, ordered by segment index.
func (gb *GraphBuilder) buildNodeSegmentMap(segmentNodes [][]da.Node) map[da.Node][]segmentPosition {
	overlaps := make(map[da.Node][]segmentPosition)
	for i, nodes := range segmentNodes {
		for j, n := range nodes {
			positions := overlaps[n]
			if len(positions) > 0 && positions[len(positions)-1].segment == i {
				continue
			}
			overlaps[n] = append(positions, segmentPosition{segment: i, position: j})
		}
	}
	return overlaps
}

// BuildCollection. Build plus the parser side statistics of the collection.
func (gb *GraphBuilder) BuildCollection(collection *da.SegmentCollection) (*da.Graph, *BuildStats, error) {
	g, stats, err := gb.Build(collection.Segments)
	if err != nil {
		return nil, nil, err
	}
	stats.SkippedFeatures = collection.SkippedFeatures
	stats.DeclaredCrossings = collection.DeclaredCrossings
	return g, stats, nil
}
