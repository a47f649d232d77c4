package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
)

// DistanceMeters. great circle distance between two coordinates in meter.
func DistanceMeters(a, b datastructure.Coordinate) float64 {
	aLatLng := s2.LatLngFromDegrees(a.Lat, a.Lon)
	bLatLng := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return aLatLng.Distance(bLatLng).Radians() * earthRadiusM
}

// PathLengthMeters. length of the route polyline on the sphere, in meter.
func PathLengthMeters(path []datastructure.Coordinate) float64 {
	if len(path) < 2 {
		return 0
	}
	latLngs := make([]s2.LatLng, len(path))
	for i, c := range path {
		latLngs[i] = s2.LatLngFromDegrees(c.Lat, c.Lon)
	}
	return s2.PolylineFromLatLngs(latLngs).Length().Radians() * earthRadiusM
}
