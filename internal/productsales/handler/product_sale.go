package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"marketplace/internal/productsales/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"
)

type ProductSaleHandler struct {
	service service.ProductSaleService
	log     *logger.Logger
}

func NewProductSaleHandler(service service.ProductSaleService, log *logger.Logger) *ProductSaleHandler {
	return &ProductSaleHandler{
		service: service,
		log:     log,
	}
}

func (h *ProductSaleHandler) UpdatePrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, err := h.service.UpdatePrice(r.Context(), ps.ByName("sale_id"), ps.ByName("product_id"), ps.ByName("price"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdatePrice", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ProductSaleHandler) UpdateAmount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, err := h.service.UpdateAmount(r.Context(), ps.ByName("sale_id"), ps.ByName("product_id"), ps.ByName("amount"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateAmount", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ProductSaleHandler) RegisterRoutes(router *httprouter.Router, gate *middleware.Gate) {
	router.PATCH("/api/v1/sales/:sale_id/products/:product_id/price/:price", gate.Require(h.UpdatePrice, model.PermissionUpdate))
	router.PATCH("/api/v1/sales/:sale_id/products/:product_id/amount/:amount", gate.Require(h.UpdateAmount, model.PermissionUpdate))
}
