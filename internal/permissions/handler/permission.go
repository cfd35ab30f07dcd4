package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"marketplace/internal/permissions/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"
)

const MsgPermissionCreated = "Permission successfully created."

type PermissionCreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type createPermissionRequest struct {
	Description string `json:"description"`
}

type PermissionHandler struct {
	service service.PermissionService
	log     *logger.Logger
}

func NewPermissionHandler(service service.PermissionService, log *logger.Logger) *PermissionHandler {
	return &PermissionHandler{
		service: service,
		log:     log,
	}
}

func (h *PermissionHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createPermissionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	permission, err := h.service.Create(r.Context(), req.Description)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, PermissionCreatedResponse{Message: MsgPermissionCreated, ID: permission.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *PermissionHandler) RegisterRoutes(router *httprouter.Router, gate *middleware.Gate) {
	router.POST("/api/v1/permissions", gate.Require(h.Create, model.PermissionWrite))
}
