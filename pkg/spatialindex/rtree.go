package spatialindex

import (
	"sort"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree. waypoint index over the graph nodes, used only by the explicit nearest waypoint lookup.
// route queries never snap through it.
type Rtree struct {
	tr *rtree.RTreeG[datastructure.Index]
	g  *datastructure.Graph
}

type Waypoint struct {
	coord    datastructure.Coordinate
	degree   int
	distance float64 // meter
}

func (w Waypoint) GetCoordinate() datastructure.Coordinate {
	return w.coord
}

func (w Waypoint) GetDegree() int {
	return w.degree
}

func (w Waypoint) GetDistance() float64 {
	return w.distance
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. one leaf per graph node.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree waypoint index...", zap.Int("nodes", graph.NumberOfVertices()))
	rt.g = graph
	for u := 0; u < graph.NumberOfVertices(); u++ {
		c := graph.GetVertexCoordinate(datastructure.Index(u))
		rt.tr.Insert([2]float64{c.Lon, c.Lat}, [2]float64{c.Lon, c.Lat}, datastructure.Index(u))
	}

	log.Info("R-tree waypoint index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius search for graph nodes within radius (in km) from the query point (qLat, qLon),
// nearest first.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []Waypoint {
	lowerLat, _ := geo.GetDestinationPoint(qLat, qLon, 180, radius)
	upperLat, _ := geo.GetDestinationPoint(qLat, qLon, 0, radius)
	_, lowerLon := geo.GetDestinationPoint(qLat, qLon, 270, radius)
	_, upperLon := geo.GetDestinationPoint(qLat, qLon, 90, radius)

	q := datastructure.NewCoordinate(qLon, qLat)
	results := make([]Waypoint, 0, 10)
	visit := func(min, max [2]float64, data datastructure.Index) bool {
		c := rt.g.GetVertexCoordinate(data)
		dist := geo.DistanceMeters(q, c)
		if dist > radius*1000 {
			return true
		}
		results = append(results, Waypoint{
			coord:    c,
			degree:   rt.g.Degree(rt.g.GetNode(data)),
			distance: dist,
		})
		return true
	}

	if lowerLon > upperLon {
		// the box crosses the antimeridian, search both halves
		rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{180, upperLat}, visit)
		rt.tr.Search([2]float64{-180, lowerLat}, [2]float64{upperLon, upperLat}, visit)
	} else {
		rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}, visit)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].distance < results[j].distance
	})
	if len(results) > pkg.MAX_WAYPOINT_RESULTS {
		results = results[:pkg.MAX_WAYPOINT_RESULTS]
	}
	return results
}
