package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/middleware"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/service"
)

type updateStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note"`
}

func (h HandlerSet) ListApplications(c *gin.Context) {
	views, err := h.reviews.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Error al obtener las solicitudes")
		return
	}
	writeOK(c, views)
}

func (h HandlerSet) UpdateApplicationStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, service.ErrInvalidStatus, "")
		return
	}

	actor, _ := middleware.CurrentPrincipal(c)
	result, err := h.reviews.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status, req.Note)
	if err != nil {
		h.writeError(c, err, "Error al actualizar el estado de la solicitud")
		return
	}
	writeOK(c, result)
}
