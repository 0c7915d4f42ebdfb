package gym

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/api"
)

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// List godoc
// @Summary      List gyms
// @Tags         gyms
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Gym
// @Failure      500  {object}  api.ErrorResponse
// @Router       /gyms [get]
func (h *Handler) List(c *gin.Context) {
	gyms, err := h.catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gyms"})
		return
	}
	c.JSON(http.StatusOK, gyms)
}
