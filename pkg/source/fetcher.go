package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"go.uber.org/zap"
)

const (
	maxPayloadBytes = 256 << 20
)

// Fetcher. retrieve a geometry payload from an http(s) url or a local file path.
type Fetcher struct {
	log    *zap.Logger
	client *http.Client
}

func NewFetcher(log *zap.Logger, timeout time.Duration) *Fetcher {
	return &Fetcher{
		log: log,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func NewFetcherWithClient(log *zap.Logger, client *http.Client) *Fetcher {
	return &Fetcher{
		log:    log,
		client: client,
	}
}

func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch. every failure is wrapped with util.ErrFetchGeometry.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, util.NewErrorf(util.ErrFetchGeometry, "empty geometry source")
	}
	if IsRemote(src) {
		return f.fetchRemote(ctx, src)
	}
	return f.fetchFile(strings.TrimPrefix(src, "file://"))
}

func (f *Fetcher) fetchRemote(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrFetchGeometry, "invalid geometry source url %s", src)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrFetchGeometry, "failed to load geometry from %s", src)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, util.NewErrorf(util.ErrFetchGeometry, "failed to load geometry from %s: %s", src, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrFetchGeometry, "failed to read geometry from %s", src)
	}

	f.log.Info("fetched geometry", zap.String("source", src), zap.Int("bytes", len(data)))
	return data, nil
}

func (f *Fetcher) fetchFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrFetchGeometry, "failed to read geometry file %s", filename)
	}

	f.log.Info("read geometry file", zap.String("source", filename), zap.Int("bytes", len(data)))
	return data, nil
}

var bzip2Magic = []byte("BZh")

// DetectFormat. by extension first, then by sniffing the payload.
func DetectFormat(src string, data []byte) pkg.SourceFormat {
	name := src
	if IsRemote(src) {
		if u, err := url.Parse(src); err == nil {
			name = u.Path
		}
	}
	name = strings.ToLower(name)

	switch path.Ext(name) {
	case ".pbf":
		return pkg.OSM_PBF
	case ".geojson", ".json":
		return pkg.GEOJSON
	case ".osm", ".xml":
		return pkg.OSM_XML
	case ".graph":
		return pkg.GRAPH_SNAPSHOT
	}

	if bytes.HasPrefix(data, bzip2Magic) {
		return pkg.GRAPH_SNAPSHOT
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '{':
			return pkg.GEOJSON
		case '<':
			return pkg.OSM_XML
		}
	}
	return pkg.UNKNOWN_FORMAT
}

func FormatName(format pkg.SourceFormat) string {
	switch format {
	case pkg.GEOJSON:
		return "geojson"
	case pkg.OSM_XML:
		return "osm"
	case pkg.OSM_PBF:
		return "osm.pbf"
	case pkg.GRAPH_SNAPSHOT:
		return "graph"
	default:
		return fmt.Sprintf("unknown(%d)", format)
	}
}
