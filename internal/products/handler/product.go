package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"marketplace/internal/products/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"
)

type ProductsResponse struct {
	Products []*model.Product `json:"products"`
}

type ProductHandler struct {
	service service.ProductService
	log     *logger.Logger
}

func NewProductHandler(service service.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	products, err := h.service.List(r.Context(), httputil.QueryValue(r, "name"), httputil.QueryValue(r, "category_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if len(products) == 0 {
		httputil.WriteNoContent(w)
		return
	}

	if err := httputil.WriteSuccess(w, ProductsResponse{Products: products}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	product, err := h.service.GetByID(r.Context(), ps.ByName("product_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, product); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProductHandler) RegisterRoutes(router *httprouter.Router, gate *middleware.Gate) {
	router.GET("/api/v1/products", gate.Require(h.List, model.PermissionRead))
	router.GET("/api/v1/products/id/:product_id", gate.Require(h.GetByID, model.PermissionRead))
}
