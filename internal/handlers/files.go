package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) ServeFile(c *gin.Context) {
	dl, err := h.files.Open(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		h.writeError(c, err, "Error al obtener el archivo")
		return
	}
	defer dl.Body.Close()

	c.DataFromReader(http.StatusOK, dl.Size, dl.MimeType, dl.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", sanitizeFilename(dl.Filename)),
	})
}

// sanitizeFilename keeps the header a single line.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
}
