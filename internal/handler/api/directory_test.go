//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/domain/user"
	"commerce-booking/internal/handler/api"
	resdto "commerce-booking/internal/handler/dto/response"
	"commerce-booking/internal/handler/middleware"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/tests/common/builder"
	"commerce-booking/tests/common/httptest"
	queriesmock "commerce-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestDirectoryAndInventoryHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	dirQueries := queriesmock.NewMockDirectoryQueries(ctrl)
	invQueries := queriesmock.NewMockInventoryQueries(ctrl)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/api/directory/:id", fakeAuth(user.RoleViewer), api.NewDirectoryHandler(dirQueries).Lookup)
	router.GET("/api/inventory/:productId", fakeAuth(user.RoleViewer), api.NewInventoryHandler(invQueries).Get)

	t.Run("directory hit reports its source", func(t *testing.T) {
		dirQueries.EXPECT().Lookup(gomock.Any(), "s1").Return(&directory.Profile{
			ID:       "s1",
			Email:    "dr@example.com",
			Kind:     directory.KindSpecialist,
			Priority: directory.PrimaryRecord,
		}, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/directory/s1", nil, "bearer-token")

		var body resdto.ProfileResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "dr@example.com", body.Name)
		assert.Equal(t, "specialist", body.Kind)
		assert.Equal(t, "primary", body.Priority)
	})

	t.Run("directory miss is 404", func(t *testing.T) {
		dirQueries.EXPECT().Lookup(gomock.Any(), "nobody").Return(nil, errs.Wrap(errs.ErrNotFound, "profile nobody"))

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/directory/nobody", nil, "bearer-token")
		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "Not found")
	})

	t.Run("inventory view", func(t *testing.T) {
		view := builder.NewInventoryBuilder().BuildView()
		invQueries.EXPECT().Get(gomock.Any(), view.ProductID).Return(view, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/inventory/"+view.ProductID, nil, "bearer-token")

		var body resdto.InventoryResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, view.Stock, body.Stock)
	})
}
