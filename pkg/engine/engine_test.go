package engine

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const crossingGeoJSON = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 0], [2, 0]]}},
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[1, 0], [1, 1], [1, 2]]}}
]}`

func writeFile(t *testing.T, name, content string) string {
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func bzip2Text(t *testing.T, text string) string {
	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, bz.Close())
	return buf.String()
}

func newTestEngine(t *testing.T) *Engine {
	e, err := NewEngine(DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestEngineNotLoaded(t *testing.T) {
	e := newTestEngine(t)

	assert.Nil(t, e.GetSnapshot())
	assert.Nil(t, e.GetGraph())

	_, err := e.ShortestPath(context.Background(), da.NewCoordinate(0, 0), da.NewCoordinate(1, 0))
	assert.ErrorIs(t, err, util.ErrGraphNotLoaded)

	_, err = e.NearestWaypoints(0, 0, 1)
	assert.ErrorIs(t, err, util.ErrGraphNotLoaded)
}

func TestEngineLoadAndRoute(t *testing.T) {
	e := newTestEngine(t)
	src := writeFile(t, "indoor.geojson", crossingGeoJSON)

	snap, err := e.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.GetVersion())
	assert.Equal(t, "geojson", snap.GetFormat())
	assert.Equal(t, src, snap.GetSource())
	assert.Equal(t, 5, snap.GetStats().Nodes)
	assert.Equal(t, 1, snap.GetStats().Crossings)
	assert.Equal(t, 5, snap.GetWaypointIndex().Len())

	route, err := e.ShortestPath(context.Background(), da.NewCoordinate(0, 0), da.NewCoordinate(1, 2))
	require.NoError(t, err)
	assert.Equal(t, []da.Coordinate{
		da.NewCoordinate(0, 0), da.NewCoordinate(1, 0), da.NewCoordinate(1, 1), da.NewCoordinate(1, 2),
	}, route.GetPath())
	assert.InDelta(t, 3.0, route.GetCost(), 1e-9)

	cached, err := e.ShortestPath(context.Background(), da.NewCoordinate(0, 0), da.NewCoordinate(1, 2))
	require.NoError(t, err)
	assert.Same(t, route, cached)

	unknown, err := e.ShortestPath(context.Background(), da.NewCoordinate(0, 0), da.NewCoordinate(7, 7))
	require.NoError(t, err)
	assert.False(t, unknown.Found())
}

func TestEngineFailedLoadKeepsPublishedGraph(t *testing.T) {
	e := newTestEngine(t)
	good := writeFile(t, "indoor.geojson", crossingGeoJSON)

	before, err := e.Load(context.Background(), good)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "invalid json",
			src:     writeFile(t, "broken.geojson", `{"type": "FeatureCollection", "features": [`),
			wantErr: util.ErrParseGeometry,
		},
		{
			name: "degenerate line string",
			src: writeFile(t, "degenerate.geojson", `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[0, 0]]}}]}`),
			wantErr: util.ErrParseGeometry,
		},
		{
			name:    "missing file",
			src:     filepath.Join(t.TempDir(), "missing.geojson"),
			wantErr: util.ErrFetchGeometry,
		},
		{
			name:    "oversized snapshot header",
			src:     writeFile(t, "huge.graph", bzip2Text(t, "4000000000 4000000000 -1\n0 0\n")),
			wantErr: util.ErrParseGeometry,
		},
		{
			name:    "unknown format",
			src:     writeFile(t, "floor.bin", "hello"),
			wantErr: util.ErrParseGeometry,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := e.Load(context.Background(), tt.src)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, snap)

			assert.Same(t, before, e.GetSnapshot())
			route, err := e.ShortestPath(context.Background(), da.NewCoordinate(0, 0), da.NewCoordinate(1, 2))
			require.NoError(t, err)
			assert.InDelta(t, 3.0, route.GetCost(), 1e-9)
		})
	}
}

func TestEngineLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/indoor.geojson" {
			w.Write([]byte(crossingGeoJSON))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := newTestEngine(t)

	_, err := e.Load(context.Background(), srv.URL+"/broken.geojson")
	assert.ErrorIs(t, err, util.ErrFetchGeometry)
	assert.Nil(t, e.GetSnapshot())

	snap, err := e.Load(context.Background(), srv.URL+"/indoor.geojson")
	require.NoError(t, err)
	assert.Equal(t, 7, snap.GetGraph().NumberOfEdges())
}

func TestEngineLoadOutlivesCancelledCaller(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		w.Write([]byte(crossingGeoJSON))
	}))
	defer srv.Close()
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	e := newTestEngine(t)
	src := srv.URL + "/indoor.geojson"

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := e.Load(ctx, src)
		firstErr <- err
	}()

	<-started
	cancel()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller kept waiting for the shared load")
	}

	secondErr := make(chan error, 1)
	go func() {
		_, err := e.Load(context.Background(), src)
		secondErr <- err
	}()
	close(release)

	require.NoError(t, <-secondErr)
	require.Eventually(t, func() bool { return e.GetSnapshot() != nil }, 5*time.Second, 10*time.Millisecond)

	route, err := e.ShortestPath(context.Background(), da.NewCoordinate(0, 0), da.NewCoordinate(1, 2))
	require.NoError(t, err)
	assert.True(t, route.Found())
}

func TestEngineLoadGraphSnapshot(t *testing.T) {
	e := newTestEngine(t)
	snap, err := e.LoadFromBytes(context.Background(), "indoor.geojson", []byte(crossingGeoJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, snap.GetGraph().WriteGraphTo(&buf))

	other := newTestEngine(t)
	loaded, err := other.LoadFromBytes(context.Background(), "indoor.graph", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "graph", loaded.GetFormat())
	assert.Equal(t, snap.GetGraph().NumberOfEdges(), loaded.GetGraph().NumberOfEdges())

	route, err := other.ShortestPath(context.Background(), da.NewCoordinate(0, 0), da.NewCoordinate(1, 2))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, route.GetCost(), 1e-9)
}

func TestEngineConcurrentQueriesDuringReload(t *testing.T) {
	e := newTestEngine(t)
	src := writeFile(t, "indoor.geojson", crossingGeoJSON)
	_, err := e.Load(context.Background(), src)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				route, err := e.ShortestPath(context.Background(), da.NewCoordinate(0, 0), da.NewCoordinate(1, 2))
				if err != nil {
					return err
				}
				if !route.Found() {
					return assert.AnError
				}
			}
			return nil
		})
	}
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			_, err := e.Load(context.Background(), src)
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.GreaterOrEqual(t, e.GetSnapshot().GetVersion(), uint64(2))
}

func TestEngineNearestWaypoints(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.LoadFromBytes(context.Background(), "indoor.geojson", []byte(`{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[110.3779, -7.7713], [110.3780, -7.7713]]}}
]}`))
	require.NoError(t, err)

	wps, err := e.NearestWaypoints(110.3779, -7.7713, 0.005)
	require.NoError(t, err)
	require.Len(t, wps, 1)
	assert.Equal(t, da.NewCoordinate(110.3779, -7.7713), wps[0].GetCoordinate())
}
