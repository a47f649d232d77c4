package geojsonparser

import (
	"fmt"
	"strconv"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// GeoJSONParser. parse an indoor walkway FeatureCollection into corridor segments.
// LineString features become one segment, MultiLineString features one segment per part,
// every other geometry is ignored. properties.weight multiplies the edge length (default 1).
type GeoJSONParser struct {
	log   *zap.Logger
	level string
}

// NewGeoJSONParser. level != "" keeps only features whose properties.level equals level.
func NewGeoJSONParser(log *zap.Logger, level string) *GeoJSONParser {
	return &GeoJSONParser{
		log:   log,
		level: level,
	}
}

func (p *GeoJSONParser) Parse(data []byte) (*da.SegmentCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrParseGeometry, "invalid geojson feature collection")
	}

	collection := da.NewSegmentCollection()

	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			collection.SkippedFeatures++
			continue
		}

		if !p.onLevel(f.Properties) {
			collection.SkippedFeatures++
			continue
		}

		featureId := featureIdOf(f, i)

		switch geom := f.Geometry.(type) {
		case orb.LineString:
			weight, err := segmentWeight(f.Properties)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrParseGeometry, "feature %s", featureId)
			}
			s := collection.AddSegment(lineStringCoordinates(geom), weight, featureId, p.levelOf(f.Properties))
			if err := s.Validate(); err != nil {
				return nil, util.WrapErrorf(err, util.ErrParseGeometry, "feature %s", featureId)
			}

		case orb.MultiLineString:
			weight, err := segmentWeight(f.Properties)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrParseGeometry, "feature %s", featureId)
			}
			for _, ls := range geom {
				s := collection.AddSegment(lineStringCoordinates(ls), weight, featureId, p.levelOf(f.Properties))
				if err := s.Validate(); err != nil {
					return nil, util.WrapErrorf(err, util.ErrParseGeometry, "feature %s", featureId)
				}
			}

		case orb.Point:
			if isCrossing(f.Properties) {
				collection.DeclaredCrossings++
				continue
			}
			collection.SkippedFeatures++

		default:
			collection.SkippedFeatures++
		}
	}

	p.log.Info("parsed geojson feature collection",
		zap.Int("features", len(fc.Features)),
		zap.Int("segments", len(collection.Segments)),
		zap.Int("skipped", collection.SkippedFeatures))

	return collection, nil
}

func lineStringCoordinates(ls orb.LineString) []da.Coordinate {
	coords := make([]da.Coordinate, len(ls))
	for i, p := range ls {
		coords[i] = da.NewCoordinate(p.Lon(), p.Lat())
	}
	return coords
}

// segmentWeight. missing, null or zero weight means the default multiplier, anything else must be a
// positive number.
func segmentWeight(props geojson.Properties) (float64, error) {
	raw, ok := props[pkg.WEIGHT_PROPERTY]
	if !ok || raw == nil {
		return da.NormalizeWeight(0, false), nil
	}

	weight, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("weight must be a number, got %T", raw)
	}
	if !util.IsFinite(weight) || weight < 0 {
		return 0, fmt.Errorf("weight must be a positive number, got %v", weight)
	}
	return da.NormalizeWeight(weight, true), nil
}

func (p *GeoJSONParser) onLevel(props geojson.Properties) bool {
	if p.level == "" {
		return true
	}
	return p.levelOf(props) == p.level
}

func (p *GeoJSONParser) levelOf(props geojson.Properties) string {
	raw, ok := props[pkg.LEVEL_PROPERTY]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func isCrossing(props geojson.Properties) bool {
	t, ok := props[pkg.TYPE_PROPERTY].(string)
	return ok && t == pkg.CROSSING_FEATURE
}

func featureIdOf(f *geojson.Feature, i int) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return strconv.Itoa(i)
}
