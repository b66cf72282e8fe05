package api

import (
	"net/http"

	resdto "commerce-booking/internal/handler/dto/response"
	"commerce-booking/internal/handler/httperr"
	"commerce-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	q queries.InventoryQueries
}

func NewInventoryHandler(q queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{q: q}
}

// @Summary Get inventory
// @Description Current stock for a product
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} resdto.InventoryResponse
// @Failure 404 {object} httperr.Response
// @Router /inventory/{productId} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	view, err := h.q.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromInventoryView(view))
}
