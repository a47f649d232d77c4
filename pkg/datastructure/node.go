package datastructure

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
)

// Node. canonical graph identity of a coordinate: the ieee-754 bit pattern of both axes after normalization.
// two coordinates are the same node only if they are bit-identical after normalization, coordinates
// that differ by floating point noise stay different nodes.
type Node struct {
	lon uint64
	lat uint64
}

func (n Node) Coordinate() Coordinate {
	return NewCoordinate(math.Float64frombits(n.lon), math.Float64frombits(n.lat))
}

func (n Node) String() string {
	return n.Coordinate().String()
}

// Canonicalizer. maps coordinates to nodes. with precision < 0 the mapping is exact (legacy behaviour),
// with precision >= 0 both axes are rounded to that many decimal places first, which merges
// near-coincident waypoints.
type Canonicalizer struct {
	precision int
}

func NewExactCanonicalizer() Canonicalizer {
	return Canonicalizer{precision: -1}
}

// MAX_COORDINATE_PRECISION. float64 carries at most 15-17 significant decimal digits, 10^p overflows past 308.
const MAX_COORDINATE_PRECISION = 15

// NewCanonicalizer. precision above MAX_COORDINATE_PRECISION is clamped.
func NewCanonicalizer(precision int) Canonicalizer {
	if precision < 0 {
		return NewExactCanonicalizer()
	}
	return Canonicalizer{precision: min(precision, MAX_COORDINATE_PRECISION)}
}

func (c Canonicalizer) GetPrecision() int {
	return c.precision
}

func (c Canonicalizer) IsQuantizing() bool {
	return c.precision >= 0
}

func (c Canonicalizer) normalize(v float64) float64 {
	if c.precision >= 0 {
		v = util.RoundFloat(v, uint(c.precision))
	}
	if v == 0 {
		// fold -0 into +0
		v = 0
	}
	return v
}

func (c Canonicalizer) Canonicalize(coord Coordinate) Node {
	return Node{
		lon: math.Float64bits(c.normalize(coord.Lon)),
		lat: math.Float64bits(c.normalize(coord.Lat)),
	}
}

func (c Canonicalizer) CanonicalizeAll(coords []Coordinate) []Node {
	nodes := make([]Node, len(coords))
	for i, coord := range coords {
		nodes[i] = c.Canonicalize(coord)
	}
	return nodes
}

func (c Canonicalizer) String() string {
	if !c.IsQuantizing() {
		return "exact"
	}
	return fmt.Sprintf("quantized(%d)", c.precision)
}
