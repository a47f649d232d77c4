package usecases

import (
	"context"

	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/spatialindex"
)

type RoutingEngine interface {
	GetSnapshot() *engine.Snapshot
	ShortestPathOn(ctx context.Context, snap *engine.Snapshot, start, end da.Coordinate) (*routing.Route, error)
	NearestWaypoints(lon, lat, radius float64) ([]spatialindex.Waypoint, error)
	Load(ctx context.Context, src string) (*engine.Snapshot, error)
}
