package api

import (
	"net/http"
	"strings"

	reqdto "commerce-booking/internal/handler/dto/request"
	resdto "commerce-booking/internal/handler/dto/response"
	"commerce-booking/internal/handler/httperr"
	"commerce-booking/internal/handler/middleware"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/commands"
	"commerce-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const maxIdempotencyKeyLength = 128

var (
	errUnauthenticated       = errs.New("no authenticated user on context")
	errIdempotencyKeyTooLong = errs.Mark(errs.New("Idempotency-Key header too long"), errs.ErrValidation)
)

type ProductionHandler struct {
	cmds commands.ProductionCommands
	q    queries.ProductionQueries
}

func NewProductionHandler(cmds commands.ProductionCommands, q queries.ProductionQueries) *ProductionHandler {
	return &ProductionHandler{cmds: cmds, q: q}
}

// @Summary Create production order
// @Description Reserve stock and schedule a production order in one transaction
// @Tags production-orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Key for safe client retries"
// @Param request body reqdto.CreateProductionOrderRequest true "Production order request"
// @Success 201 {object} resdto.CreateProductionOrderResponse
// @Success 200 {object} resdto.CreateProductionOrderResponse "Replayed idempotent request"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /production-orders [post]
func (h *ProductionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	idempotencyKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(idempotencyKey) > maxIdempotencyKeyLength {
		httperr.Abort(c, errIdempotencyKeyTooLong)
		return
	}

	var req reqdto.CreateProductionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	params, err := req.ToParams(userID, idempotencyKey)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateProductionOrder(c.Request.Context(), params)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.Header("Location", "/api/production-orders/"+result.OrderID)
	c.JSON(status, resdto.CreateProductionOrderResponse{ID: result.OrderID, Replayed: result.Replayed})
}

// @Summary Get production order
// @Description Get a production order by ID
// @Tags production-orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Production order ID"
// @Success 200 {object} resdto.ProductionOrderResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /production-orders/{id} [get]
func (h *ProductionHandler) Get(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductionOrderView(view))
}
