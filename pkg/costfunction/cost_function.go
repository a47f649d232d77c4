package costfunction

import (
	"github.com/lintang-b-s/navigatorx-indoor/pkg"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
)

type CostFunction interface {
	// GetWeight. weight of the edge (from,to) of a segment with the given weight multiplier.
	GetWeight(from, to datastructure.Coordinate, segmentWeight float64) float64
	GetMetric() pkg.DistanceMetric
}

func NewCostFunction(metric pkg.DistanceMetric) CostFunction {
	switch metric {
	case pkg.HAVERSINE:
		return NewHaversineCostFunction()
	default:
		return NewEuclideanCostFunction()
	}
}
