package osmparser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

// OsmParser. extract indoor walkways (simple indoor tagging) from an openstreetmap extract.
// nodes must precede the ways that reference them, which is the order osm files are written in.
type OsmParser struct {
	log   *zap.Logger
	level string

	nodeCoords map[osm.NodeID]da.Coordinate
}

func NewOsmParser(log *zap.Logger, level string) *OsmParser {
	return &OsmParser{
		log:        log,
		level:      level,
		nodeCoords: make(map[osm.NodeID]da.Coordinate),
	}
}

func (p *OsmParser) ParseXML(ctx context.Context, data []byte) (*da.SegmentCollection, error) {
	scanner := osmxml.New(ctx, bytes.NewReader(data))
	return p.parse(scanner)
}

func (p *OsmParser) ParsePBF(ctx context.Context, data []byte) (*da.SegmentCollection, error) {
	scanner := osmpbf.New(ctx, bytes.NewReader(data), 1)
	return p.parse(scanner)
}

func (p *OsmParser) parse(scanner osm.Scanner) (*da.SegmentCollection, error) {
	defer scanner.Close()

	collection := da.NewSegmentCollection()
	countWays := 0

	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeNode:
			node := o.(*osm.Node)
			p.nodeCoords[node.ID] = da.NewCoordinate(node.Lon, node.Lat)

		case osm.TypeWay:
			way := o.(*osm.Way)
			if !acceptIndoorWay(way) {
				collection.SkippedFeatures++
				continue
			}
			if p.level != "" && !onLevel(way.Tags.Find("level"), p.level) {
				collection.SkippedFeatures++
				continue
			}

			coords, err := p.wayCoordinates(way)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrParseGeometry, "osm way %d", way.ID)
			}
			weight, err := wayWeight(way)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrParseGeometry, "osm way %d", way.ID)
			}

			s := collection.AddSegment(coords, weight, strconv.FormatInt(int64(way.ID), 10), way.Tags.Find("level"))
			if err := s.Validate(); err != nil {
				return nil, util.WrapErrorf(err, util.ErrParseGeometry, "osm way %d", way.ID)
			}
			countWays++
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, util.WrapErrorf(err, util.ErrParseGeometry, "invalid openstreetmap data")
	}

	p.log.Info("parsed openstreetmap indoor ways", zap.Int("ways", countWays),
		zap.Int("skipped", collection.SkippedFeatures))

	return collection, nil
}

func (p *OsmParser) wayCoordinates(way *osm.Way) ([]da.Coordinate, error) {
	coords := make([]da.Coordinate, 0, len(way.Nodes))
	for _, wn := range way.Nodes {
		if c, ok := p.nodeCoords[wn.ID]; ok {
			coords = append(coords, c)
			continue
		}
		if wn.Lat != 0 || wn.Lon != 0 {
			// annotated way node
			coords = append(coords, da.NewCoordinate(wn.Lon, wn.Lat))
			continue
		}
		return nil, fmt.Errorf("node %d is referenced before it is defined", wn.ID)
	}
	return coords, nil
}

var acceptedIndoorHighway = map[string]struct{}{
	"corridor": {},
	"footway":  {},
	"steps":    {},
	"elevator": {},
}

func acceptIndoorWay(way *osm.Way) bool {
	if way.Tags.Find("indoor") == "corridor" {
		return true
	}
	highway := way.Tags.Find("highway")
	if _, ok := acceptedIndoorHighway[highway]; !ok {
		return false
	}
	if highway == "corridor" {
		return true
	}
	// footways and steps only count when they are mapped indoor
	return way.Tags.HasTag("indoor") || way.Tags.HasTag("level")
}

// onLevel. level tag may hold several levels, e.g. "0;1".
func onLevel(tag, level string) bool {
	for _, l := range strings.Split(tag, ";") {
		if strings.TrimSpace(l) == level {
			return true
		}
	}
	return false
}

func wayWeight(way *osm.Way) (float64, error) {
	tag := way.Tags.Find(pkg.WEIGHT_PROPERTY)
	if tag == "" {
		return da.NormalizeWeight(0, false), nil
	}
	weight, err := strconv.ParseFloat(tag, 64)
	if err != nil {
		return 0, fmt.Errorf("weight tag must be a number: %w", err)
	}
	if !util.IsFinite(weight) || weight < 0 {
		return 0, fmt.Errorf("weight must be a positive number, got %v", weight)
	}
	return da.NormalizeWeight(weight, true), nil
}
