package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/indoor.geojson":
			w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
		case "/forbidden.geojson":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewFetcherWithClient(zap.NewNop(), srv.Client())

	testCases := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{name: "ok", src: srv.URL + "/indoor.geojson"},
		{name: "not found", src: srv.URL + "/missing.geojson", wantErr: true},
		{name: "forbidden", src: srv.URL + "/forbidden.geojson", wantErr: true},
		{name: "unreachable host", src: "http://127.0.0.1:1/indoor.geojson", wantErr: true},
		{name: "empty source", src: "", wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			data, err := f.Fetch(context.Background(), tt.src)
			if tt.wantErr {
				assert.ErrorIs(t, err, util.ErrFetchGeometry)
				assert.Nil(t, data)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, string(data), "FeatureCollection")
		})
	}
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "indoor.geojson")
	require.NoError(t, os.WriteFile(filename, []byte(`{"type":"FeatureCollection","features":[]}`), 0o644))

	f := NewFetcher(zap.NewNop(), time.Second)

	data, err := f.Fetch(context.Background(), filename)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	data, err = f.Fetch(context.Background(), "file://"+filename)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = f.Fetch(context.Background(), filepath.Join(dir, "missing.geojson"))
	assert.ErrorIs(t, err, util.ErrFetchGeometry)
}

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		data []byte
		want pkg.SourceFormat
	}{
		{name: "geojson extension", src: "./data/indoor.geojson", want: pkg.GEOJSON},
		{name: "json extension in url", src: "https://example.com/floors/1.json?v=2", want: pkg.GEOJSON},
		{name: "osm xml extension", src: "mall.osm", want: pkg.OSM_XML},
		{name: "osm pbf extension", src: "mall.osm.pbf", want: pkg.OSM_PBF},
		{name: "graph snapshot extension", src: "indoor.graph", want: pkg.GRAPH_SNAPSHOT},
		{name: "sniff geojson", src: "https://example.com/floor", data: []byte("  {\"type\":\"FeatureCollection\"}"), want: pkg.GEOJSON},
		{name: "sniff osm xml", src: "floor", data: []byte("<?xml version=\"1.0\"?><osm></osm>"), want: pkg.OSM_XML},
		{name: "sniff bzip2 snapshot", src: "floor", data: []byte("BZh91AY&SY"), want: pkg.GRAPH_SNAPSHOT},
		{name: "unknown", src: "floor", data: []byte("hello"), want: pkg.UNKNOWN_FORMAT},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.src, tt.data))
		})
	}
}
