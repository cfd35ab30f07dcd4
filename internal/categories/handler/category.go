package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"marketplace/internal/categories/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"
)

type CategoryCreatedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CategoriesResponse struct {
	Categories []*model.Category `json:"categories"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryHandler struct {
	service service.CategoryService
	log     *logger.Logger
}

func NewCategoryHandler(service service.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createCategoryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	category, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, CategoryCreatedResponse{ID: category.ID, Name: category.Name}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categories, err := h.service.List(r.Context(), httputil.QueryValue(r, "name"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if len(categories) == 0 {
		httputil.WriteNoContent(w)
		return
	}

	if err := httputil.WriteSuccess(w, CategoriesResponse{Categories: categories}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

// Listing is gated on WRITE, like creation.
func (h *CategoryHandler) RegisterRoutes(router *httprouter.Router, gate *middleware.Gate) {
	router.POST("/api/v1/products/category", gate.Require(h.Create, model.PermissionWrite))
	router.GET("/api/v1/products/category", gate.Require(h.List, model.PermissionWrite))
}
