package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/http"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/logger"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	geometrySource = flag.String("source", "", "indoor geometry url or file, overrides GEOMETRY_SOURCE")
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

	routingEngine, err := engine.NewEngine(engine.Config{
		Level:          viper.GetString("FLOOR_LEVEL"),
		Precision:      viper.GetInt("COORDINATE_PRECISION"),
		Metric:         pkg.GetDistanceMetric(viper.GetString("DISTANCE_METRIC")),
		RouteCacheSize: viper.GetInt("ROUTE_CACHE_SIZE"),
		FetchTimeout:   viper.GetDuration("FETCH_TIMEOUT"),
	}, logger)
	if err != nil {
		logger.Fatal("failed to create routing engine", zap.Error(err))
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	// the server also starts without a graph, queries answer 503 until a reload succeeds
	if _, err := routingEngine.Load(ctx, src); err != nil {
		logger.Error("initial indoor graph load failed", zap.String("source", src), zap.Error(err))
	}

	routingService := usecases.NewRoutingService(logger, routingEngine, viper.GetFloat64("WAYPOINT_SEARCH_RADIUS"))
	graphService := usecases.NewGraphService(logger, routingEngine, src, viper.GetBool("ALLOW_SOURCE_OVERRIDE"))

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, routingService, graphService); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	logger.Info("Navigatorx Indoor Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	_ = api.Wait()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
