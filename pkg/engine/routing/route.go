package routing

import (
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Route. result of a shortest path query, an empty path means no route.
type Route struct {
	path []da.Coordinate
	cost float64
}

func NewRoute(path []da.Coordinate, cost float64) *Route {
	return &Route{
		path: path,
		cost: cost,
	}
}

func NewEmptyRoute() *Route {
	return &Route{
		path: make([]da.Coordinate, 0),
	}
}

func (r *Route) Found() bool {
	return r != nil && len(r.path) > 0
}

func (r *Route) GetPath() []da.Coordinate {
	if r == nil {
		return make([]da.Coordinate, 0)
	}
	return r.path
}

// GetCost. sum of edge weights along the path.
func (r *Route) GetCost() float64 {
	return r.cost
}

func (r *Route) GetLengthMeters() float64 {
	return geo.PathLengthMeters(r.path)
}

func (r *Route) GetPolyline() string {
	return geo.PolylineFromCoords(r.path)
}

// GetInitialBearing. bearing of the first leg in degree, 0 for routes with less than two points.
func (r *Route) GetInitialBearing() float64 {
	if len(r.path) < 2 {
		return 0
	}
	return geo.BearingTo(r.path[0].Lat, r.path[0].Lon, r.path[1].Lat, r.path[1].Lon)
}

// LineString. geojson feature whose coordinates are exactly the path, ready for a map overlay.
func (r *Route) LineString() *geojson.Feature {
	ls := make(orb.LineString, len(r.path))
	for i, c := range r.path {
		ls[i] = orb.Point{c.Lon, c.Lat}
	}
	f := geojson.NewFeature(ls)
	f.Properties["cost"] = r.cost
	return f
}
