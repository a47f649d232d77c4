package controllers

import (
	"time"

	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/graphbuilder"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/spatialindex"
	"github.com/paulmach/orb/geojson"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

// routeMessage. [lon, lat] pairs, used by the batch endpoint and the websocket API.
type routeMessage struct {
	Origin      []float64 `json:"origin" validate:"required,len=2"`
	Destination []float64 `json:"destination" validate:"required,len=2"`
}

func (m routeMessage) toQuery() shortestPathRequest {
	return shortestPathRequest{
		OriginLon:      m.Origin[0],
		OriginLat:      m.Origin[1],
		DestinationLon: m.Destination[0],
		DestinationLat: m.Destination[1],
	}
}

type batchRouteRequest struct {
	Routes []routeMessage `json:"routes" validate:"required,min=1,max=100,dive"`
}

type nearestWaypointsRequest struct {
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lon    float64 `json:"lon" validate:"min=-180,max=180"`
	Radius float64 `json:"radius" validate:"min=0,max=1"`
}

type reloadRequest struct {
	Source string `json:"source" validate:"omitempty,max=2048"`
}

type shortestPathResponse struct {
	Found      bool                   `json:"found"`
	Cost       float64                `json:"cost"`
	Dist       float64                `json:"distance"`
	Bearing    float64                `json:"bearing"`
	Path       string                 `json:"path"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Directions []walkingDirectionResp `json:"directions,omitempty"`
}

type walkingDirectionResp struct {
	Instruction string    `json:"instruction"`
	TurnType    string    `json:"turn_type"`
	Point       []float64 `json:"point"`
	Bearing     float64   `json:"bearing"`
	Distance    float64   `json:"distance"`
}

func NewShortestPathResponse(route *routing.Route, directions []guidance.WalkingDirection) shortestPathResponse {
	f := route.LineString()
	resp := shortestPathResponse{
		Found:    route.Found(),
		Cost:     route.GetCost(),
		Dist:     route.GetLengthMeters(),
		Bearing:  route.GetInitialBearing(),
		Path:     route.GetPolyline(),
		Geometry: geojson.NewGeometry(f.Geometry),
	}
	if len(directions) == 0 {
		return resp
	}

	resp.Directions = make([]walkingDirectionResp, len(directions))
	for i, d := range directions {
		resp.Directions[i] = walkingDirectionResp{
			Instruction: d.GetInstruction(),
			TurnType:    d.GetSign().String(),
			Point:       []float64{d.GetPoint().Lon, d.GetPoint().Lat},
			Bearing:     d.GetBearing(),
			Distance:    d.GetDistance(),
		}
	}
	return resp
}

func NewBatchRouteResponse(routes []*routing.Route) []shortestPathResponse {
	resp := make([]shortestPathResponse, len(routes))
	for i, r := range routes {
		resp[i] = NewShortestPathResponse(r, nil)
	}
	return resp
}

type waypointResponse struct {
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	Degree   int     `json:"degree"`
	Distance float64 `json:"distance"`
}

func NewWaypointsResponse(wps []spatialindex.Waypoint) []waypointResponse {
	resp := make([]waypointResponse, len(wps))
	for i, wp := range wps {
		resp[i] = waypointResponse{
			Lon:      wp.GetCoordinate().Lon,
			Lat:      wp.GetCoordinate().Lat,
			Degree:   wp.GetDegree(),
			Distance: wp.GetDistance(),
		}
	}
	return resp
}

type graphResponse struct {
	Version     uint64                  `json:"version"`
	Source      string                  `json:"source"`
	Format      string                  `json:"format"`
	LoadedAt    time.Time               `json:"loaded_at"`
	Stats       graphbuilder.BuildStats `json:"stats"`
	BoundingBox []float64               `json:"bbox,omitempty"`
}

func NewGraphResponse(snap *engine.Snapshot) graphResponse {
	resp := graphResponse{
		Version:  snap.GetVersion(),
		Source:   snap.GetSource(),
		Format:   snap.GetFormat(),
		LoadedAt: snap.GetLoadedAt(),
		Stats:    snap.GetStats(),
	}
	bbox := snap.GetGraph().GetBoundingBox()
	if !bbox.IsEmpty() {
		resp.BoundingBox = []float64{bbox.GetMinLon(), bbox.GetMinLat(), bbox.GetMaxLon(), bbox.GetMaxLat()}
	}
	return resp
}

func toCoordinate(lon, lat float64) da.Coordinate {
	return da.NewCoordinate(lon, lat)
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
