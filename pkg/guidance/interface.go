package guidance

import "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"

type Graph interface {
	Canonicalize(c datastructure.Coordinate) datastructure.Node
	Edges(n datastructure.Node) []datastructure.Edge
}
