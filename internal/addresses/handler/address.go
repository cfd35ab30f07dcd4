package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"marketplace/internal/addresses/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"
)

const (
	MsgAddressExists  = "This address already exists"
	MsgAddressUpdated = "Address updated successfully"
	MsgAddressesFound = "Addresses found"
)

type AddressCreatedResponse struct {
	Message   string `json:"message,omitempty"`
	AddressID int64  `json:"address_id"`
}

type AddressesResponse struct {
	Message   string           `json:"message"`
	Addresses []*model.Address `json:"addresses"`
}

type AddressHandler struct {
	service service.AddressService
	log     *logger.Logger
}

func NewAddressHandler(service service.AddressService, log *logger.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		log:     log,
	}
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.AddressInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	address, existed, err := h.service.Create(r.Context(), ps.ByName("state_id"), ps.ByName("city_id"), &in)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if existed {
		if err := httputil.WriteSuccess(w, AddressCreatedResponse{Message: MsgAddressExists, AddressID: address.ID}); err != nil {
			h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
		}
		return
	}

	if err := httputil.WriteCreated(w, AddressCreatedResponse{AddressID: address.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	addresses, err := h.service.List(r.Context(),
		httputil.QueryValue(r, "city_id"),
		httputil.QueryValue(r, "street"),
		httputil.QueryValue(r, "cep"),
	)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if len(addresses) == 0 {
		httputil.WriteNoContent(w)
		return
	}

	if err := httputil.WriteSuccess(w, AddressesResponse{Message: MsgAddressesFound, Addresses: addresses}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.AddressInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if _, err := h.service.Update(r.Context(), ps.ByName("address_id"), &in); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, MsgAddressUpdated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteMessage", "error", err)
	}
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("address_id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AddressHandler) RegisterRoutes(router *httprouter.Router, gate *middleware.Gate) {
	router.POST("/api/v1/states/:state_id/cities/:city_id/addresses", gate.Require(h.Create, model.PermissionWrite))
	router.GET("/api/v1/addresses", gate.Require(h.List, model.PermissionRead))
	router.PATCH("/api/v1/addresses/:address_id", gate.Require(h.Update, model.PermissionUpdate))
	router.DELETE("/api/v1/addresses/:address_id", gate.Require(h.Delete, model.PermissionDelete))
}
