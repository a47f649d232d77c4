package guidance

import (
	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/geo"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
)

type TurnSign int8

const (
	U_TURN            TurnSign = -8
	TURN_SHARP_LEFT   TurnSign = -3
	TURN_LEFT         TurnSign = -2
	TURN_SLIGHT_LEFT  TurnSign = -1
	CONTINUE          TurnSign = 0
	TURN_SLIGHT_RIGHT TurnSign = 1
	TURN_RIGHT        TurnSign = 2
	TURN_SHARP_RIGHT  TurnSign = 3
	FINISH            TurnSign = 4
	START             TurnSign = 101
)

func (s TurnSign) String() string {
	switch s {
	case START:
		return "START"
	case FINISH:
		return "FINISH"
	case CONTINUE:
		return "CONTINUE"
	case TURN_SLIGHT_LEFT:
		return "TURN_SLIGHT_LEFT"
	case TURN_LEFT:
		return "TURN_LEFT"
	case TURN_SHARP_LEFT:
		return "TURN_SHARP_LEFT"
	case TURN_SLIGHT_RIGHT:
		return "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "TURN_SHARP_RIGHT"
	default:
		return "U_TURN"
	}
}

func (s TurnSign) Description() string {
	switch s {
	case START:
		return "Head out"
	case FINISH:
		return "You have arrived at your destination"
	case CONTINUE:
		return "Continue straight through the crossing"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left"
	case TURN_LEFT:
		return "Turn left"
	case TURN_SHARP_LEFT:
		return "Turn sharp left"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right"
	case TURN_RIGHT:
		return "Turn right"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right"
	default:
		return "Turn around"
	}
}

// WalkingDirection. one step of a route: the manoeuvre at point, then distance meters to the next step.
type WalkingDirection struct {
	sign     TurnSign
	point    da.Coordinate
	bearing  float64 // heading after the manoeuvre, degree
	distance float64 // meter
}

func (wd WalkingDirection) GetSign() TurnSign {
	return wd.sign
}

func (wd WalkingDirection) GetInstruction() string {
	return wd.sign.Description()
}

func (wd WalkingDirection) GetPoint() da.Coordinate {
	return wd.point
}

func (wd WalkingDirection) GetBearing() float64 {
	return wd.bearing
}

func (wd WalkingDirection) GetDistance() float64 {
	return wd.distance
}

type DirectionBuilder struct {
	graph Graph
}

func NewDirectionBuilder(graph Graph) *DirectionBuilder {
	return &DirectionBuilder{graph: graph}
}

// GetWalkingDirections. turn by turn steps of path. a bend inside a corridor is announced like a turn,
// going straight is only announced at crossings where the walker could take another corridor.
func (db *DirectionBuilder) GetWalkingDirections(path []da.Coordinate) []WalkingDirection {
	if len(path) == 0 {
		return []WalkingDirection{}
	}
	if len(path) == 1 {
		return []WalkingDirection{{sign: FINISH, point: path[0]}}
	}

	prevBearing := computeInitialBearing(path[0], path[1])
	directions := []WalkingDirection{{
		sign:    START,
		point:   path[0],
		bearing: util.RadiansToDegree(prevBearing),
	}}
	current := &directions[0]

	for i := 1; i < len(path)-1; i++ {
		current.distance += geo.DistanceMeters(path[i-1], path[i])

		bearing := computeInitialBearing(path[i], path[i+1])
		sign := getTurnDirection(prevBearing, bearing)
		prevBearing = bearing

		if sign == CONTINUE && !db.isCrossing(path[i]) {
			continue
		}

		directions = append(directions, WalkingDirection{
			sign:    sign,
			point:   path[i],
			bearing: util.RadiansToDegree(bearing),
		})
		current = &directions[len(directions)-1]
	}
	current.distance += geo.DistanceMeters(path[len(path)-2], path[len(path)-1])

	return append(directions, WalkingDirection{sign: FINISH, point: path[len(path)-1]})
}

// isCrossing. more corridors than the incoming and outgoing one meet at c. parallel edges and the extra
// links the builder adds around a crossing point at the same neighbours, so distinct neighbours are counted.
func (db *DirectionBuilder) isCrossing(c da.Coordinate) bool {
	neighbours := make(map[da.Index]struct{}, 4)
	for _, e := range db.graph.Edges(db.graph.Canonicalize(c)) {
		neighbours[e.GetHead()] = struct{}{}
	}
	return len(neighbours) > 2
}
