package usecases

import (
	"context"
	"testing"

	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const crossingGeoJSON = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 0], [2, 0]]}},
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[1, 0], [1, 1], [1, 2]]}},
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[5, 5], [6, 5]]}}
]}`

func newLoadedEngine(t *testing.T) *engine.Engine {
	e, err := engine.NewEngine(engine.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	_, err = e.LoadFromBytes(context.Background(), "indoor.geojson", []byte(crossingGeoJSON))
	require.NoError(t, err)
	return e
}

func TestRoutingServiceShortestPath(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), newLoadedEngine(t), 0.05)

	route, directions, err := rs.ShortestPath(context.Background(), 0, 0, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, route.GetCost(), 1e-9)
	require.Len(t, directions, 3)
	assert.Equal(t, guidance.START, directions[0].GetSign())
	assert.Equal(t, guidance.TURN_LEFT, directions[1].GetSign())
	assert.Equal(t, guidance.FINISH, directions[2].GetSign())

	_, _, err = rs.ShortestPath(context.Background(), 0, 0, 6, 5)
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.ErrorIs(t, err, ERRPATHNOTFOND)

	empty, err := engine.NewEngine(engine.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	_, _, err = NewRoutingService(zap.NewNop(), empty, 0.05).ShortestPath(context.Background(), 0, 0, 1, 2)
	assert.ErrorIs(t, err, util.ErrGraphNotLoaded)
}

func TestRoutingServiceBatchShortestPath(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), newLoadedEngine(t), 0.05)

	queries := []RouteQuery{
		{Origin: da.NewCoordinate(0, 0), Destination: da.NewCoordinate(1, 2)},
		{Origin: da.NewCoordinate(0, 0), Destination: da.NewCoordinate(6, 5)},
		{Origin: da.NewCoordinate(2, 0), Destination: da.NewCoordinate(0, 0)},
		{Origin: da.NewCoordinate(9, 9), Destination: da.NewCoordinate(0, 0)},
	}

	results, err := rs.BatchShortestPath(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	wantCosts := []float64{3, 0, 2, 0}
	wantFound := []bool{true, false, true, false}
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, wantFound[i], res.Route.Found(), "query %d", i)
		assert.InDelta(t, wantCosts[i], res.Route.GetCost(), 1e-9, "query %d", i)
	}

	t.Run("empty batch", func(t *testing.T) {
		results, err := rs.BatchShortestPath(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("too many queries", func(t *testing.T) {
		_, err := rs.BatchShortestPath(context.Background(), make([]RouteQuery, 101))
		assert.ErrorIs(t, err, util.ErrBadParamInput)
	})
}

func TestRoutingServiceNearestWaypoints(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), newLoadedEngine(t), 0.05)

	wps, err := rs.NearestWaypoints(0, 0, 0)
	require.NoError(t, err)
	require.NotEmpty(t, wps)
	assert.Equal(t, da.NewCoordinate(0, 0), wps[0].GetCoordinate())
}

func TestGraphServiceReload(t *testing.T) {
	e := newLoadedEngine(t)

	gs := NewGraphService(zap.NewNop(), e, "./missing.geojson", false)

	_, err := gs.Reload(context.Background(), "")
	assert.ErrorIs(t, err, util.ErrFetchGeometry)

	_, err = gs.Reload(context.Background(), "https://example.com/other.geojson")
	assert.ErrorIs(t, err, util.ErrBadParamInput)

	snap, err := gs.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.GetVersion())
}
