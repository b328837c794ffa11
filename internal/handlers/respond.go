package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/service"
)

func writeOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func writeFailure(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, gin.H{
		"ok":    false,
		"error": message,
		"code":  code,
	})
}

// writeError maps service errors onto the response envelope. Anything not
// recognised is logged and reported as fallback.
func (h HandlerSet) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		writeFailure(c, http.StatusBadRequest, "Invalid status. Must be 'approved', 'rejected', or 'in_review'", "INVALID_STATUS")
	case errors.Is(err, service.ErrSolicitudNotFound):
		writeFailure(c, http.StatusNotFound, "Solicitud no encontrada", "NOT_FOUND")
	case errors.Is(err, service.ErrFileNotFound):
		writeFailure(c, http.StatusNotFound, "File not found", "NOT_FOUND")
	case errors.Is(err, service.ErrFileMissing):
		writeFailure(c, http.StatusNotFound, "File not found on disk", "NOT_FOUND_ON_DISK")
	case errors.Is(err, service.ErrUnauthenticated):
		writeFailure(c, http.StatusUnauthorized, "UNAUTHORIZED", "UNAUTHENTICATED")
	default:
		h.log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg(fallback)
		writeFailure(c, http.StatusInternalServerError, fallback, "INTERNAL_ERROR")
	}
}
