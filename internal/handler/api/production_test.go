//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/domain/user"
	"commerce-booking/internal/handler/api"
	resdto "commerce-booking/internal/handler/dto/response"
	"commerce-booking/internal/handler/middleware"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/commands"
	"commerce-booking/tests/common/builder"
	"commerce-booking/tests/common/httptest"
	"commerce-booking/tests/common/testutil"
	commandsmock "commerce-booking/tests/mock/commands"
	queriesmock "commerce-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testUserID = "operator-1"

// fakeAuth authenticates any request carrying a bearer token as testUserID.
func fakeAuth(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetIdentity(c, testUserID, role)
		c.Next()
	}
}

type ProductionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockProductionCommands
	mockQueries  *queriesmock.MockProductionQueries
	handler      *api.ProductionHandler
}

func (s *ProductionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockProductionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockProductionQueries(s.mockCtrl)
	s.handler = api.NewProductionHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/production-orders", fakeAuth(user.RoleOperator), s.handler.Create)
	s.router.GET("/api/production-orders/:id", fakeAuth(user.RoleViewer), s.handler.Get)
}

func (s *ProductionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestProductionHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductionHandlerTestSuite))
}

type testCaseProduction struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ProductionHandlerTestSuite) TestCreate() {
	url := "/api/production-orders"

	b := builder.NewProductionOrderBuilder()
	reqBody := b.BuildRequestDTO()
	expectedParams := b.BuildParams()
	expectedParams.CreatedBy = testUserID

	s.Run("success: returns 201 Created with the order id", func() {
		s.mockCommands.EXPECT().CreateProductionOrder(gomock.Any(), expectedParams).
			Return(&commands.CreateProductionOrderResult{OrderID: "order-1"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CreateProductionOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("order-1", body.ID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/production-orders/order-1"})
	})

	s.Run("success: replayed idempotent request returns 200", func() {
		params := expectedParams
		params.IdempotencyKey = "key-1"
		s.mockCommands.EXPECT().CreateProductionOrder(gomock.Any(), params).
			Return(&commands.CreateProductionOrderResult{OrderID: "order-1", Replayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "key-1"})

		var body resdto.CreateProductionOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseProduction{
			{name: "missing field: productId", mutate: testutil.Field("productId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: quantity", mutate: testutil.Field("quantity", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: scheduledDate", mutate: testutil.Field("scheduledDate", nil), expectCode: http.StatusBadRequest},
			{name: "quantity boundary invalid (0)", mutate: testutil.Field("quantity", 0), expectCode: http.StatusBadRequest},
			{name: "quantity boundary invalid (-1)", mutate: testutil.Field("quantity", -1), expectCode: http.StatusBadRequest},
			{name: "scheduledDate not a date", mutate: testutil.Field("scheduledDate", "next tuesday"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown product",
				commandsError:  errs.Wrap(errs.ErrNotFound, "product p1"),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "insufficient stock",
				commandsError:  &inventory.InsufficientStockError{ProductID: "p1", Requested: 7, Available: 3},
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Insufficient stock",
			},
			{
				name:           "retries exhausted",
				commandsError:  errs.Mark(errs.New("gave up"), errs.ErrTransactionConflict),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Concurrent update",
			},
			{
				name:           "store unavailable",
				commandsError:  errs.Mark(errs.New("breaker open"), errs.ErrStoreUnavailable),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "temporarily unavailable",
			},
			{
				name:           "idempotency key reused",
				commandsError:  commands.ErrIdempotencyKeyReused,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid request",
			},
			{
				name:           "internal server error",
				commandsError:  errs.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateProductionOrder(gomock.Any(), expectedParams).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ProductionHandlerTestSuite) TestGet() {
	view := builder.NewProductionOrderBuilder().BuildView()

	s.Run("success: returns the order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/production-orders/"+view.ID, nil, "bearer-token")

		var body resdto.ProductionOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("2025-04-15", body.ScheduledDate)
		s.Equal("scheduled", body.Status)
	})

	s.Run("error: 404 for unknown order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), "missing").
			Return(nil, errs.Wrap(errs.ErrNotFound, "order missing")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/production-orders/missing", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}
