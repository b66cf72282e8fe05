package api

import (
	"net/http"

	reqdto "commerce-booking/internal/handler/dto/request"
	resdto "commerce-booking/internal/handler/dto/response"
	"commerce-booking/internal/handler/httperr"
	"commerce-booking/internal/handler/middleware"
	"commerce-booking/internal/usecase/commands"
	"commerce-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// ParticipationHandler answers every failure with the same localized message.
// The kind travels in the error body and the request log.
type ParticipationHandler struct {
	cmds commands.ParticipationCommands
	q    queries.ParticipationQueries
}

func NewParticipationHandler(cmds commands.ParticipationCommands, q queries.ParticipationQueries) *ParticipationHandler {
	return &ParticipationHandler{cmds: cmds, q: q}
}

// @Summary Participation status
// @Description Whether the caller participates in an event. A missing event reads as not participating.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.ParticipationStatusResponse
// @Failure 503 {object} httperr.Response
// @Router /events/{id}/participants/me [get]
func (h *ParticipationHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		fail(c, errUnauthenticated, http.StatusUnauthorized)
		return
	}
	eventID := c.Param("id")
	participating, err := h.q.IsParticipating(c.Request.Context(), eventID, userID)
	if err != nil {
		fail(c, err, httperr.StatusFor(err))
		return
	}
	c.JSON(http.StatusOK, resdto.ParticipationStatusResponse{EventID: eventID, Participating: participating})
}

// @Summary List participants
// @Description Participants of an event ordered by join time
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.EventParticipantsResponse
// @Failure 404 {object} httperr.Response
// @Router /events/{id}/participants [get]
func (h *ParticipationHandler) List(c *gin.Context) {
	view, err := h.q.ListParticipants(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, httperr.StatusFor(err))
		return
	}
	c.JSON(http.StatusOK, resdto.FromEventParticipantsView(view))
}

// @Summary Join event
// @Description Add the caller to an event. Joining twice keeps a single entry.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body reqdto.JoinEventRequest false "Display name"
// @Success 200 {object} resdto.ParticipationStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /events/{id}/participants [post]
func (h *ParticipationHandler) Join(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		fail(c, errUnauthenticated, http.StatusUnauthorized)
		return
	}
	var req reqdto.JoinEventRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, err, http.StatusBadRequest)
			return
		}
	}

	eventID := c.Param("id")
	if err := h.cmds.Participate(c.Request.Context(), eventID, userID, req.Name); err != nil {
		fail(c, err, httperr.StatusFor(err))
		return
	}
	c.JSON(http.StatusOK, resdto.ParticipationStatusResponse{EventID: eventID, Participating: true})
}

// @Summary Leave event
// @Description Remove the caller from an event. Leaving when absent succeeds.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.ParticipationStatusResponse
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /events/{id}/participants/me [delete]
func (h *ParticipationHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		fail(c, errUnauthenticated, http.StatusUnauthorized)
		return
	}
	eventID := c.Param("id")
	if err := h.cmds.CancelParticipation(c.Request.Context(), eventID, userID, c.Query("name")); err != nil {
		fail(c, err, httperr.StatusFor(err))
		return
	}
	c.JSON(http.StatusOK, resdto.ParticipationStatusResponse{EventID: eventID, Participating: false})
}

func fail(c *gin.Context, err error, status int) {
	httperr.AbortWithError(c, status, err, httperr.GenericFailureMessage, nil)
}
