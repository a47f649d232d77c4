package usecases

import (
	"context"

	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"go.uber.org/zap"
)

type GraphService struct {
	log           *zap.Logger
	engine        RoutingEngine
	defaultSource string
	allowOverride bool
}

// NewGraphService. allowOverride lets reload requests name a source other than defaultSource.
func NewGraphService(log *zap.Logger, engine RoutingEngine, defaultSource string, allowOverride bool) *GraphService {
	return &GraphService{
		log:           log,
		engine:        engine,
		defaultSource: defaultSource,
		allowOverride: allowOverride,
	}
}

// Reload. rebuild the graph from src (the configured source when empty). a failed reload keeps the
// published graph.
func (gs *GraphService) Reload(ctx context.Context, src string) (*engine.Snapshot, error) {
	if src == "" {
		src = gs.defaultSource
	} else if src != gs.defaultSource && !gs.allowOverride {
		return nil, util.NewErrorf(util.ErrBadParamInput, "reloading from another geometry source is disabled")
	}
	gs.log.Info("reloading indoor graph", zap.String("source", src))
	return gs.engine.Load(ctx, src)
}

func (gs *GraphService) Current() (*engine.Snapshot, error) {
	snap := gs.engine.GetSnapshot()
	if snap == nil {
		return nil, util.NewErrorf(util.ErrGraphNotLoaded, "no indoor graph loaded")
	}
	return snap, nil
}
