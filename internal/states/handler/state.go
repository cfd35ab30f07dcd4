package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"marketplace/internal/states/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"
)

type StatesResponse struct {
	States []*model.State `json:"states"`
}

type CitiesResponse struct {
	Cities []*model.City `json:"cities"`
}

type CityCreatedResponse struct {
	City int64 `json:"city"`
}

type createCityRequest struct {
	Name string `json:"name"`
}

type StateHandler struct {
	service service.StateService
	log     *logger.Logger
}

func NewStateHandler(service service.StateService, log *logger.Logger) *StateHandler {
	return &StateHandler{
		service: service,
		log:     log,
	}
}

func (h *StateHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	states, err := h.service.List(r.Context(), httputil.QueryValues(r, "name"), httputil.QueryValues(r, "initials"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if len(states) == 0 {
		httputil.WriteNoContent(w)
		return
	}

	if err := httputil.WriteSuccess(w, StatesResponse{States: states}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StateHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state, err := h.service.GetByID(r.Context(), ps.ByName("state_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, state); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StateHandler) ListCities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cities, err := h.service.ListCities(r.Context(), ps.ByName("state_id"), httputil.QueryValue(r, "name"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListCities", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if len(cities) == 0 {
		httputil.WriteNoContent(w)
		return
	}

	if err := httputil.WriteSuccess(w, CitiesResponse{Cities: cities}); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCities", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StateHandler) CreateCity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req createCityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateCity", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	city, err := h.service.CreateCity(r.Context(), ps.ByName("state_id"), req.Name)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateCity", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, CityCreatedResponse{City: city.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateCity", "operation", "WriteCreated", "error", err)
	}
}

func (h *StateHandler) RegisterRoutes(router *httprouter.Router, gate *middleware.Gate) {
	router.GET("/api/v1/states", gate.Require(h.List, model.PermissionRead))
	router.GET("/api/v1/states/:state_id", gate.Require(h.GetByID, model.PermissionRead))
	router.GET("/api/v1/states/:state_id/cities", gate.Require(h.ListCities, model.PermissionRead))
	router.POST("/api/v1/states/:state_id/cities", gate.Require(h.CreateCity, model.PermissionWrite))
}
