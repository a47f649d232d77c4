package guidance

import (
	"math"

	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/geo"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
)

// initial bearing of the leg (a,b) in radians, clockwise from north.
func computeInitialBearing(a, b da.Coordinate) float64 {
	return util.DegreeToRadians(geo.BearingTo(a.Lat, a.Lon, b.Lat, b.Lon))
}

// computeDeltaBearing. signed change of heading in radians, negative turns left.
func computeDeltaBearing(prevInitialBearing, initialBearing float64) float64 {
	prevInitialBearing, initialBearing = alignInitialBearing(prevInitialBearing, initialBearing)
	return initialBearing - prevInitialBearing
}

/*
alignInitialBearing. keep the heading change inside [-180°, 180°].

e.g. prev 20°, current 350°: the raw difference is 330° (right) but the walker turned 30° left,
so prev is moved to 380°. prev 340°, current 10°: raw -330° (left) is a 30° right turn, so current
is moved to 370°.
*/
func alignInitialBearing(prevInitialBearing, initialBearing float64) (float64, float64) {
	dif := util.RadiansToDegree(initialBearing) - util.RadiansToDegree(prevInitialBearing)
	if da.Gt(dif, 180.0) {
		prevInitialBearing += 2 * math.Pi
	} else if da.Lt(dif, -180.0) {
		initialBearing += 2 * math.Pi
	}
	return prevInitialBearing, initialBearing
}

func getTurnDirection(prevInitialBearing, initialBearing float64) TurnSign {
	delta := computeDeltaBearing(prevInitialBearing, initialBearing)
	deltaDegree := util.RadiansToDegree(math.Abs(delta))

	switch {
	case da.Lt(deltaDegree, 12.0):
		return CONTINUE
	case da.Lt(deltaDegree, 40.0):
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	case da.Lt(deltaDegree, 105.0):
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	case da.Lt(deltaDegree, 170.0):
		if delta < 0 {
			return TURN_SHARP_LEFT
		}
		return TURN_SHARP_RIGHT
	default:
		return U_TURN
	}
}
