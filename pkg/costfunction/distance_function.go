package costfunction

import (
	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/geo"
)

// EuclideanCostFunction. planar length of the edge times the segment weight.
type EuclideanCostFunction struct {
}

func NewEuclideanCostFunction() *EuclideanCostFunction {
	return &EuclideanCostFunction{}
}

func (cf *EuclideanCostFunction) GetWeight(from, to datastructure.Coordinate, segmentWeight float64) float64 {
	return geo.CalculateEuclideanDistance(from.Lon, from.Lat, to.Lon, to.Lat) * segmentWeight
}

func (cf *EuclideanCostFunction) GetMetric() pkg.DistanceMetric {
	return pkg.EUCLIDEAN
}

// HaversineCostFunction. great circle length of the edge in meter times the segment weight.
type HaversineCostFunction struct {
}

func NewHaversineCostFunction() *HaversineCostFunction {
	return &HaversineCostFunction{}
}

func (cf *HaversineCostFunction) GetWeight(from, to datastructure.Coordinate, segmentWeight float64) float64 {
	return geo.DistanceMeters(from, to) * segmentWeight
}

func (cf *HaversineCostFunction) GetMetric() pkg.DistanceMetric {
	return pkg.HAVERSINE
}
