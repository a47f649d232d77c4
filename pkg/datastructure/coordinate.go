package datastructure

import "fmt"

// Coordinate. a (longitude, latitude) position, in the same axis order as geojson positions.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{
		Lon: lon,
		Lat: lat,
	}
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) String() string {
	return fmt.Sprintf("[%v,%v]", c.Lon, c.Lat)
}

