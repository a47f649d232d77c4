package engine

import (
	"bytes"
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/costfunction"
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/geojsonparser"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/graphbuilder"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/osmparser"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/source"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Config struct {
	Level          string // floor filter, empty keeps every feature
	Precision      int    // coordinate quantization, < 0 for exact node identity
	Metric         pkg.DistanceMetric
	RouteCacheSize int
	FetchTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		Precision:      -1,
		Metric:         pkg.EUCLIDEAN,
		RouteCacheSize: 1 << 14,
		FetchTimeout:   30 * time.Second,
	}
}

type routeCacheKey struct {
	version    uint64
	start, end da.Node
}

// Engine. routing context of one floor. it owns the published graph snapshot: a load builds a new graph
// off to the side and publishes it with one atomic swap, queries always run against a complete snapshot.
type Engine struct {
	log     *zap.Logger
	config  Config
	fetcher *source.Fetcher
	builder *graphbuilder.GraphBuilder

	snapshot   atomic.Pointer[Snapshot]
	version    atomic.Uint64
	routeCache *lru.Cache[routeCacheKey, *routing.Route]
	loadGroup  singleflight.Group
}

func NewEngine(config Config, logger *zap.Logger) (*Engine, error) {
	return NewEngineWithFetcher(config, source.NewFetcher(logger, config.FetchTimeout), logger)
}

func NewEngineWithFetcher(config Config, fetcher *source.Fetcher, logger *zap.Logger) (*Engine, error) {
	if config.RouteCacheSize <= 0 {
		config.RouteCacheSize = 1
	}
	routeCache, err := lru.New[routeCacheKey, *routing.Route](config.RouteCacheSize)
	if err != nil {
		return nil, err
	}

	canonicalizer := da.NewCanonicalizer(config.Precision)
	if canonicalizer.IsQuantizing() {
		logger.Warn("coordinate quantization enabled, near-coincident waypoints will be merged",
			zap.Int("precision", config.Precision))
	}

	return &Engine{
		log:        logger,
		config:     config,
		fetcher:    fetcher,
		builder:    graphbuilder.NewGraphBuilder(logger, costfunction.NewCostFunction(config.Metric), canonicalizer),
		routeCache: routeCache,
	}, nil
}

// Load. fetch, parse, build and publish the geometry at src. concurrent loads of the same source share
// one build. on failure the current snapshot stays published and the typed error
// (util.ErrFetchGeometry or util.ErrParseGeometry) is returned.
//
// the shared build does not inherit the cancellation of whichever caller started it, only the fetch
// timeout. a cancelled caller stops waiting and gets ctx.Err(), the build still finishes for the others.
func (e *Engine) Load(ctx context.Context, src string) (*Snapshot, error) {
	flightCtx := context.WithoutCancel(ctx)

	ch := e.loadGroup.DoChan(src, func() (interface{}, error) {
		fetchCtx := flightCtx
		if e.config.FetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(flightCtx, e.config.FetchTimeout)
			defer cancel()
		}

		data, err := e.fetcher.Fetch(fetchCtx, src)
		if err != nil {
			return nil, err
		}
		return e.LoadFromBytes(flightCtx, src, data)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		e.log.Warn("stopped waiting for indoor geometry load", zap.String("source", src), zap.Error(ctx.Err()))
		return nil, ctx.Err()
	case res = <-ch:
	}

	if res.Err != nil {
		e.log.Error("failed to load indoor geometry, keeping the last published graph",
			zap.String("source", src), zap.Error(res.Err))
		return nil, res.Err
	}
	if res.Shared {
		e.log.Debug("indoor geometry load shared with a concurrent request", zap.String("source", src))
	}
	return res.Val.(*Snapshot), nil
}

// LoadFromBytes. parse and build an already fetched payload, then publish it.
func (e *Engine) LoadFromBytes(ctx context.Context, src string, data []byte) (*Snapshot, error) {
	format := source.DetectFormat(src, data)

	var (
		g     *da.Graph
		stats *graphbuilder.BuildStats
		err   error
	)

	switch format {
	case pkg.GEOJSON:
		var collection *da.SegmentCollection
		collection, err = geojsonparser.NewGeoJSONParser(e.log, e.config.Level).Parse(data)
		if err != nil {
			return nil, err
		}
		g, stats, err = e.builder.BuildCollection(collection)

	case pkg.OSM_XML, pkg.OSM_PBF:
		op := osmparser.NewOsmParser(e.log, e.config.Level)
		var collection *da.SegmentCollection
		if format == pkg.OSM_PBF {
			collection, err = op.ParsePBF(ctx, data)
		} else {
			collection, err = op.ParseXML(ctx, data)
		}
		if err != nil {
			return nil, err
		}
		g, stats, err = e.builder.BuildCollection(collection)

	case pkg.GRAPH_SNAPSHOT:
		g, err = da.ReadGraphFrom(bytes.NewReader(data))
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrParseGeometry, "invalid graph snapshot %s", src)
		}
		stats = &graphbuilder.BuildStats{Nodes: g.NumberOfVertices(), Edges: g.NumberOfEdges(),
			Components: g.NumberOfComponents()}

	default:
		return nil, util.NewErrorf(util.ErrParseGeometry, "unknown geometry format of %s", src)
	}
	if err != nil {
		return nil, err
	}

	return e.Publish(g, stats, src, source.FormatName(format)), nil
}

// Publish. seal g, index it and swap it in as the current snapshot.
func (e *Engine) Publish(g *da.Graph, stats *graphbuilder.BuildStats, src, format string) *Snapshot {
	g.Seal()

	waypoints := spatialindex.NewRtree()
	waypoints.Build(g, e.log)

	snap := newSnapshot(g, waypoints, stats, e.version.Add(1), src, format)
	old := e.snapshot.Swap(snap)

	fields := []zap.Field{
		zap.Uint64("version", snap.GetVersion()),
		zap.String("source", src),
		zap.Int("nodes", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()),
	}
	if old != nil {
		fields = append(fields, zap.Uint64("replaced_version", old.GetVersion()))
	}
	e.log.Info("published indoor graph", fields...)
	return snap
}

// GetSnapshot. nil until the first successful load.
func (e *Engine) GetSnapshot() *Snapshot {
	return e.snapshot.Load()
}

func (e *Engine) GetGraph() *da.Graph {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil
	}
	return snap.GetGraph()
}

// ShortestPath. route on the current snapshot. unknown endpoints and unreachable targets give an empty
// route, util.ErrGraphNotLoaded is returned before the first successful load.
func (e *Engine) ShortestPath(ctx context.Context, start, end da.Coordinate) (*routing.Route, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, util.NewErrorf(util.ErrGraphNotLoaded, "no indoor graph loaded")
	}
	return e.ShortestPathOn(ctx, snap, start, end)
}

// ShortestPathOn. route on a given snapshot, used to answer several queries against one consistent graph.
func (e *Engine) ShortestPathOn(ctx context.Context, snap *Snapshot, start, end da.Coordinate) (*routing.Route, error) {
	g := snap.GetGraph()
	key := routeCacheKey{
		version: snap.GetVersion(),
		start:   g.Canonicalize(start),
		end:     g.Canonicalize(end),
	}
	if route, ok := e.routeCache.Get(key); ok {
		return route, nil
	}

	route, err := routing.NewDijkstra(g).ShortestPathSearch(ctx, start, end)
	if err != nil {
		return nil, err
	}
	e.routeCache.Add(key, route)
	return route, nil
}

// NearestWaypoints. graph nodes within radius km of (lon, lat), nearest first.
func (e *Engine) NearestWaypoints(lon, lat, radius float64) ([]spatialindex.Waypoint, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, util.NewErrorf(util.ErrGraphNotLoaded, "no indoor graph loaded")
	}
	return snap.GetWaypointIndex().SearchWithinRadius(lat, lon, radius), nil
}

func (e *Engine) GetConfig() Config {
	return e.config
}
