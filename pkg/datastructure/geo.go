package datastructure

import "math"

type BoundingBox struct {
	minLon, minLat float64
	maxLon, maxLat float64
}

func NewBoundingBox(minLon, minLat, maxLon, maxLat float64) *BoundingBox {
	return &BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

// NewEmptyBoundingBox. inverted box, the first Extend makes it a point.
func NewEmptyBoundingBox() *BoundingBox {
	return NewBoundingBox(math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1))
}

func (b *BoundingBox) Extend(c Coordinate) {
	b.minLon = math.Min(b.minLon, c.Lon)
	b.minLat = math.Min(b.minLat, c.Lat)
	b.maxLon = math.Max(b.maxLon, c.Lon)
	b.maxLat = math.Max(b.maxLat, c.Lat)
}

func (b *BoundingBox) IsEmpty() bool {
	return b.minLon > b.maxLon || b.minLat > b.maxLat
}

func (b *BoundingBox) Contains(c Coordinate) bool {
	return c.Lon >= b.minLon && c.Lon <= b.maxLon && c.Lat >= b.minLat && c.Lat <= b.maxLat
}

func (b *BoundingBox) GetMinLat() float64 {
	return b.minLat
}

func (b *BoundingBox) GetMinLon() float64 {
	return b.minLon
}

func (b *BoundingBox) GetMaxLat() float64 {
	return b.maxLat
}

func (b *BoundingBox) GetMaxLon() float64 {
	return b.maxLon
}
