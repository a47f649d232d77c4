package controllers

import (
	"context"

	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/spatialindex"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, origLon, origLat, dstLon, dstLat float64) (*routing.Route,
		[]guidance.WalkingDirection, error)
	BatchShortestPath(ctx context.Context, queries []usecases.RouteQuery) ([]usecases.BatchRouteResult, error)
	NearestWaypoints(lon, lat, radius float64) ([]spatialindex.Waypoint, error)
}

type GraphService interface {
	Reload(ctx context.Context, src string) (*engine.Snapshot, error)
	Current() (*engine.Snapshot, error)
}
