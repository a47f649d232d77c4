package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/logger"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	geometrySource = flag.String("source", "", "indoor geometry url or file (geojson, osm xml or osm pbf), defaults to GEOMETRY_SOURCE")
	outputFile     = flag.String("out", "./data/indoor.graph", "output graph snapshot file")
	level          = flag.String("level", "", "floor level filter, defaults to FLOOR_LEVEL")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(); err != nil {
		logger.Fatal("failed to read config", zap.Error(err))
	}

	src := viper.GetString("GEOMETRY_SOURCE")
	if *geometrySource != "" {
		src = *geometrySource
	}
	floor := viper.GetString("FLOOR_LEVEL")
	if *level != "" {
		floor = *level
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := engine.NewEngine(engine.Config{
		Level:          floor,
		Precision:      viper.GetInt("COORDINATE_PRECISION"),
		Metric:         pkg.GetDistanceMetric(viper.GetString("DISTANCE_METRIC")),
		RouteCacheSize: 1,
		FetchTimeout:   viper.GetDuration("FETCH_TIMEOUT"),
	}, logger)
	if err != nil {
		logger.Fatal("failed to create engine", zap.Error(err))
	}

	snap, err := e.Load(ctx, src)
	if err != nil {
		logger.Fatal("failed to build indoor graph", zap.String("source", src), zap.Error(err))
	}

	if err := snap.GetGraph().WriteGraph(*outputFile); err != nil {
		logger.Fatal("failed to write graph snapshot", zap.String("out", *outputFile), zap.Error(err))
	}

	stats := snap.GetStats()
	logger.Sugar().Infof("graph snapshot written to %s: %d nodes, %d edges, %d crossings",
		*outputFile, stats.Nodes, stats.Edges, stats.Crossings)
}
