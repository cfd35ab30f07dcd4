package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"marketplace/internal/deliveries/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"
)

type DeliveriesResponse struct {
	Deliveries []*model.Delivery `json:"deliveries"`
}

type DeliveryHandler struct {
	service service.DeliveryService
	log     *logger.Logger
}

func NewDeliveryHandler(service service.DeliveryService, log *logger.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		service: service,
		log:     log,
	}
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deliveries, err := h.service.List(r.Context(), httputil.QueryValue(r, "address_id"), httputil.QueryValue(r, "sale_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if len(deliveries) == 0 {
		httputil.WriteNoContent(w)
		return
	}

	if err := httputil.WriteSuccess(w, DeliveriesResponse{Deliveries: deliveries}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DeliveryHandler) RegisterRoutes(router *httprouter.Router, gate *middleware.Gate) {
	router.GET("/api/v1/deliveries", gate.Require(h.List, model.PermissionRead))
}
