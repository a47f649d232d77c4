package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
)

// Segment. one indoor corridor polyline. every edge derived from it is multiplied by weight.
type Segment struct {
	id          int
	featureId   string
	coordinates []Coordinate
	weight      float64
	level       string
}

func NewSegment(id int, coordinates []Coordinate, weight float64) *Segment {
	return &Segment{
		id:          id,
		coordinates: coordinates,
		weight:      weight,
	}
}

func NewSegmentWithInfo(id int, featureId, level string, coordinates []Coordinate, weight float64) *Segment {
	s := NewSegment(id, coordinates, weight)
	s.featureId = featureId
	s.level = level
	return s
}

func (s *Segment) GetId() int {
	return s.id
}

func (s *Segment) GetFeatureId() string {
	return s.featureId
}

func (s *Segment) GetCoordinates() []Coordinate {
	return s.coordinates
}

func (s *Segment) GetCoordinate(i int) Coordinate {
	return s.coordinates[i]
}

func (s *Segment) Len() int {
	return len(s.coordinates)
}

func (s *Segment) GetWeight() float64 {
	return s.weight
}

func (s *Segment) GetLevel() string {
	return s.level
}

// Validate. a segment needs at least two finite positions and a positive finite weight.
func (s *Segment) Validate() error {
	if len(s.coordinates) < 2 {
		return fmt.Errorf("segment %d has %d positions, need at least 2", s.id, len(s.coordinates))
	}
	for i, c := range s.coordinates {
		if !util.IsFinite(c.Lon) || !util.IsFinite(c.Lat) {
			return fmt.Errorf("segment %d position %d is not a finite coordinate", s.id, i)
		}
	}
	if !util.IsFinite(s.weight) || s.weight <= 0 {
		return fmt.Errorf("segment %d weight must be a positive number, got %v", s.id, s.weight)
	}
	return nil
}

// NormalizeWeight. missing or zero weight falls back to the default multiplier.
func NormalizeWeight(weight float64, ok bool) float64 {
	if !ok || weight == 0 {
		return pkg.DEFAULT_SEGMENT_WEIGHT
	}
	return weight
}

// SegmentCollection. parsed corridor segments of one floor dataset.
type SegmentCollection struct {
	Segments          []*Segment
	SkippedFeatures   int // non line geometries or features outside the requested level
	DeclaredCrossings int // point features tagged as crossing, debug view only
}

func NewSegmentCollection() *SegmentCollection {
	return &SegmentCollection{
		Segments: make([]*Segment, 0),
	}
}

func (sc *SegmentCollection) AddSegment(coordinates []Coordinate, weight float64, featureId, level string) *Segment {
	s := NewSegmentWithInfo(len(sc.Segments), featureId, level, coordinates, weight)
	sc.Segments = append(sc.Segments, s)
	return s
}
