package controllers

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/navigatorx-indoor/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type graphAPI struct {
	responder
	graphService GraphService
	log          *zap.Logger
}

func NewGraphAPI(graphService GraphService, log *zap.Logger) *graphAPI {
	return &graphAPI{
		responder:    responder{log: log},
		graphService: graphService,
		log:          log,
	}
}

func (api *graphAPI) Routes(group *helper.RouteGroup) {
	group.GET("/graph", api.graph)
	group.POST("/graph/reload", api.reload)
}

// graph
//
//	@Summary	version, source and build statistics of the published indoor graph
//	@Tags		graph
//	@Produce	application/json
//	@Router		/graph [get]
//	@Success	200	{object}	graphResponse
//	@Failure	503	{object}	errorResponse
func (api *graphAPI) graph(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	snap, err := api.graphService.Current()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewGraphResponse(snap)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// reload
//
//	@Summary		rebuild the indoor graph and publish it atomically
//	@Description	an empty body or source reloads the configured geometry source. on failure the previous graph stays published
//	@Tags			graph
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body	reloadRequest	false	"geometry source, url or file path"
//	@Router			/graph/reload [post]
//	@Success		200	{object}	graphResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		422	{object}	errorResponse
//	@Failure		502	{object}	errorResponse
func (api *graphAPI) reload(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request reloadRequest
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &request); err != nil && !errors.Is(err, errEmptyBody) {
			api.BadRequestResponse(w, r, err)
			return
		}
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	snap, err := api.graphService.Reload(r.Context(), request.Source)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewGraphResponse(snap)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
