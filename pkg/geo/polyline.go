package geo

import (
	"github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. google encoded polyline (precision 5) of the path.
func PolylineFromCoords(path []datastructure.Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

func CoordsFromPolyline(encoded string) ([]datastructure.Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	path := make([]datastructure.Coordinate, len(coords))
	for i, c := range coords {
		path[i] = datastructure.NewCoordinate(c[1], c[0])
	}
	return path, nil
}
