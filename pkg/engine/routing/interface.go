package routing

import (
	"context"

	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
)

type Router interface {
	ShortestPathSearch(ctx context.Context, start, end da.Coordinate) (*Route, error)
}
