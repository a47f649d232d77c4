package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine/routing"
	helper "github.com/lintang-b-s/navigatorx-indoor/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/http/usecases"
	"go.uber.org/zap"
)

type routingAPI struct {
	responder
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		responder:      responder{log: log},
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.POST("/computeRoutes/batch", api.batchShortestPath)
	group.GET("/waypoints/nearest", api.nearestWaypoints)
}

// shortestPath
//
//	@Summary		shortest walking route between two indoor waypoints
//	@Description	both endpoints must be waypoints of the loaded geometry, no snapping is done
//	@Tags			routing
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Produce		application/json
//	@Router			/computeRoutes [get]
//	@Success		200	{object}	shortestPathResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()

	if request.OriginLon, err = parseFloatQuery(query, "origin_lon"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.OriginLat, err = parseFloatQuery(query, "origin_lat"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.DestinationLon, err = parseFloatQuery(query, "destination_lon"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.DestinationLat, err = parseFloatQuery(query, "destination_lat"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, directions, err := api.routingService.ShortestPath(r.Context(), request.OriginLon, request.OriginLat,
		request.DestinationLon, request.DestinationLat)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route, directions)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// batchShortestPath
//
//	@Summary		up to 100 routes answered against the same graph version
//	@Tags			routing
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body	batchRouteRequest	true	"origin and destination pairs as [lon, lat]"
//	@Router			/computeRoutes/batch [post]
//	@Success		200	{object}	[]shortestPathResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
func (api *routingAPI) batchShortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchRouteRequest
	if err := readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	queries := make([]usecases.RouteQuery, len(request.Routes))
	for i, m := range request.Routes {
		q := m.toQuery()
		if err := validateRequest(q); err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
		queries[i] = usecases.RouteQuery{
			Origin:      toCoordinate(q.OriginLon, q.OriginLat),
			Destination: toCoordinate(q.DestinationLon, q.DestinationLat),
		}
	}

	results, err := api.routingService.BatchShortestPath(r.Context(), queries)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	routes := make([]*routing.Route, len(results))
	for i, res := range results {
		routes[i] = res.Route
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewBatchRouteResponse(routes)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// nearestWaypoints
//
//	@Summary		graph waypoints around a point, nearest first
//	@Tags			routing
//	@Param			lon		query	number	true	"longitude"
//	@Param			lat		query	number	true	"latitude"
//	@Param			radius	query	number	false	"search radius in km"
//	@Produce		application/json
//	@Router			/waypoints/nearest [get]
//	@Success		200	{object}	[]waypointResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
func (api *routingAPI) nearestWaypoints(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestWaypointsRequest
		err     error
	)

	query := r.URL.Query()
	if request.Lon, err = parseFloatQuery(query, "lon"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.Lat, err = parseFloatQuery(query, "lat"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if query.Get("radius") != "" {
		if request.Radius, err = parseFloatQuery(query, "radius"); err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	wps, err := api.routingService.NearestWaypoints(request.Lon, request.Lat, request.Radius)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewWaypointsResponse(wps)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
