package api

import (
	"net/http"

	resdto "commerce-booking/internal/handler/dto/response"
	"commerce-booking/internal/handler/httperr"
	"commerce-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	q queries.DirectoryQueries
}

func NewDirectoryHandler(q queries.DirectoryQueries) *DirectoryHandler {
	return &DirectoryHandler{q: q}
}

// @Summary Look up participant profile
// @Description Specialists are consulted before users; the first match wins
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} resdto.ProfileResponse
// @Failure 404 {object} httperr.Response
// @Router /directory/{id} [get]
func (h *DirectoryHandler) Lookup(c *gin.Context) {
	profile, err := h.q.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProfile(profile))
}
