package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
)

type userItem struct {
	ID        string          `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Error al obtener los usuarios")
		return
	}

	items := make([]userItem, 0, len(users))
	for _, u := range users {
		items = append(items, userItem{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Role:      u.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"users": items,
	})
}
