package pkg

import "math"

// INF_WEIGHT. distance of an unreached vertex, any finite path cost is a valid route.
var INF_WEIGHT = math.Inf(1)

const (
	DEFAULT_SEGMENT_WEIGHT = 1.0
	MAX_BATCH_ROUTES       = 100
	MAX_WAYPOINT_RESULTS   = 20
)

const (
	WEIGHT_PROPERTY  = "weight"
	LEVEL_PROPERTY   = "level"
	TYPE_PROPERTY    = "type"
	CROSSING_FEATURE = "crossing"
)

type DistanceMetric uint8

// enum of edge distance metric
const (
	EUCLIDEAN DistanceMetric = iota // planar distance in coordinate units
	HAVERSINE                       // great circle distance in meter
)

func GetDistanceMetric(metric string) DistanceMetric {
	switch metric {
	case "haversine":
		return HAVERSINE
	default:
		return EUCLIDEAN
	}
}

func (m DistanceMetric) String() string {
	switch m {
	case HAVERSINE:
		return "haversine"
	default:
		return "euclidean"
	}
}

type SourceFormat uint8

// enum of geometry source format
const (
	GEOJSON SourceFormat = iota
	OSM_XML
	OSM_PBF
	GRAPH_SNAPSHOT
	UNKNOWN_FORMAT
)

const (
	DEBUG = false
)
