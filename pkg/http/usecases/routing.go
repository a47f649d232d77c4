package usecases

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/concurrent"
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"go.uber.org/zap"
)

var (
	ERRPATHNOTFOND = errors.New("no path found")
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		searchRadius: searchRadius,
	}
}

// ShortestPath. route plus walking directions, both taken from the same snapshot. an empty route is reported
// as ERRPATHNOTFOND (code util.ErrNotFound), so callers can tell it apart from a graph that failed to load.
func (rs *RoutingService) ShortestPath(ctx context.Context, origLon, origLat, dstLon, dstLat float64) (*routing.Route,
	[]guidance.WalkingDirection, error) {
	snap := rs.engine.GetSnapshot()
	if snap == nil {
		return nil, nil, util.NewErrorf(util.ErrGraphNotLoaded, "no indoor graph loaded")
	}

	route, err := rs.engine.ShortestPathOn(ctx, snap, da.NewCoordinate(origLon, origLat), da.NewCoordinate(dstLon, dstLat))
	if err != nil {
		return nil, nil, err
	}
	if !route.Found() {
		return nil, nil, util.WrapErrorf(ERRPATHNOTFOND, util.ErrNotFound,
			"no path found from [%v,%v] to [%v,%v]", origLon, origLat, dstLon, dstLat)
	}

	directions := guidance.NewDirectionBuilder(snap.GetGraph()).GetWalkingDirections(route.GetPath())
	return route, directions, nil
}

type RouteQuery struct {
	Origin      da.Coordinate
	Destination da.Coordinate
}

type BatchRouteResult struct {
	Index int
	Route *routing.Route
	Err   error
}

type batchRouteJob struct {
	index int
	query RouteQuery
}

// BatchShortestPath. answer every query against the same snapshot on a worker pool. results are in query order,
// a query without a route has an empty route, not an error.
func (rs *RoutingService) BatchShortestPath(ctx context.Context, queries []RouteQuery) ([]BatchRouteResult, error) {
	if len(queries) > pkg.MAX_BATCH_ROUTES {
		return nil, util.NewErrorf(util.ErrBadParamInput, "at most %d route queries per batch", pkg.MAX_BATCH_ROUTES)
	}
	snap := rs.engine.GetSnapshot()
	if snap == nil {
		return nil, util.NewErrorf(util.ErrGraphNotLoaded, "no indoor graph loaded")
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(queries) {
		numWorkers = len(queries)
	}
	if numWorkers == 0 {
		return []BatchRouteResult{}, nil
	}

	wp := concurrent.NewWorkerPool[batchRouteJob, BatchRouteResult](numWorkers, len(queries))
	wp.Start(func(job batchRouteJob) BatchRouteResult {
		route, err := rs.engine.ShortestPathOn(ctx, snap, job.query.Origin, job.query.Destination)
		return BatchRouteResult{Index: job.index, Route: route, Err: err}
	})

	for i, q := range queries {
		wp.AddJob(batchRouteJob{index: i, query: q})
	}
	wp.Close()
	wp.Wait()

	results := make([]BatchRouteResult, len(queries))
	for res := range wp.CollectResults() {
		if res.Err != nil {
			return nil, fmt.Errorf("route query %d: %w", res.Index, res.Err)
		}
		results[res.Index] = res
	}

	rs.log.Debug("batch routes computed", zap.Int("queries", len(queries)), zap.Uint64("version", snap.GetVersion()))
	return results, nil
}

// NearestWaypoints. exact node coordinates around a point, radius in km (0 uses the default radius).
func (rs *RoutingService) NearestWaypoints(lon, lat, radius float64) ([]spatialindex.Waypoint, error) {
	if radius <= 0 {
		radius = rs.searchRadius
	}
	return rs.engine.NearestWaypoints(lon, lat, radius)
}
