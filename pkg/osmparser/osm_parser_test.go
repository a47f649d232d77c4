package osmparser

import (
	"context"
	"testing"

	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const indoorOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="-7.7713" lon="110.3779"/>
  <node id="2" lat="-7.7713" lon="110.3780"/>
  <node id="3" lat="-7.7712" lon="110.3780"/>
  <node id="4" lat="-7.7711" lon="110.3780"/>
  <node id="5" lat="-7.7710" lon="110.3781"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="indoor" v="corridor"/>
    <tag k="level" v="0"/>
  </way>
  <way id="11">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="steps"/>
    <tag k="level" v="0;1"/>
    <tag k="weight" v="2.5"/>
  </way>
  <way id="12">
    <nd ref="4"/>
    <nd ref="5"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="13">
    <nd ref="1"/>
    <nd ref="5"/>
    <tag k="indoor" v="room"/>
    <tag k="level" v="0"/>
  </way>
</osm>`

func TestParseXML(t *testing.T) {
	testCases := []struct {
		name         string
		level        string
		wantSegments int
		wantSkipped  int
	}{
		{name: "every level", level: "", wantSegments: 2, wantSkipped: 2},
		{name: "level 1 only", level: "1", wantSegments: 1, wantSkipped: 3},
		{name: "missing level", level: "5", wantSegments: 0, wantSkipped: 4},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			collection, err := NewOsmParser(zap.NewNop(), tt.level).ParseXML(context.Background(), []byte(indoorOSM))
			require.NoError(t, err)
			assert.Len(t, collection.Segments, tt.wantSegments)
			assert.Equal(t, tt.wantSkipped, collection.SkippedFeatures)
		})
	}
}

func TestParseXMLSegments(t *testing.T) {
	collection, err := NewOsmParser(zap.NewNop(), "").ParseXML(context.Background(), []byte(indoorOSM))
	require.NoError(t, err)
	require.Len(t, collection.Segments, 2)

	corridor := collection.Segments[0]
	assert.Equal(t, "10", corridor.GetFeatureId())
	assert.Equal(t, 3, corridor.Len())
	assert.Equal(t, 1.0, corridor.GetWeight())
	assert.Equal(t, 110.3779, corridor.GetCoordinate(0).Lon)
	assert.Equal(t, -7.7713, corridor.GetCoordinate(0).Lat)

	steps := collection.Segments[1]
	assert.Equal(t, 2.5, steps.GetWeight())
	assert.Equal(t, "0;1", steps.GetLevel())
}

func TestParseXMLInvalidWeight(t *testing.T) {
	data := `<osm version="0.6">
  <node id="1" lat="0" lon="0"/>
  <node id="2" lat="0" lon="1"/>
  <way id="10"><nd ref="1"/><nd ref="2"/><tag k="indoor" v="corridor"/><tag k="weight" v="heavy"/></way>
</osm>`

	_, err := NewOsmParser(zap.NewNop(), "").ParseXML(context.Background(), []byte(data))
	assert.ErrorIs(t, err, util.ErrParseGeometry)
}

func TestOnLevel(t *testing.T) {
	assert.True(t, onLevel("0;1", "1"))
	assert.True(t, onLevel("2", "2"))
	assert.False(t, onLevel("", "0"))
	assert.False(t, onLevel("10", "1"))
}
