package httperr

import (
	"net/http"

	"commerce-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// GenericFailureMessage is the single message participation callers see for any failure.
const GenericFailureMessage = "a apărut o eroare"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Kind    string `json:"kind,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	if kind := errs.Kind(err); kind != nil {
		resp.Error.Kind = errs.KindName(err)
	}
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(err error) int {
	switch errs.Kind(err) {
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrInsufficientStock, errs.ErrTransactionConflict, errs.ErrIdempotencyInProgress:
		return http.StatusConflict
	case errs.ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor is the English message used on the production order endpoints.
func MessageFor(err error) string {
	switch errs.Kind(err) {
	case errs.ErrValidation:
		return "Invalid request"
	case errs.ErrNotFound:
		return "Not found"
	case errs.ErrInsufficientStock:
		return "Insufficient stock"
	case errs.ErrTransactionConflict:
		return "Concurrent update, please retry"
	case errs.ErrIdempotencyInProgress:
		return "Request is currently being processed"
	case errs.ErrStoreUnavailable:
		return "Service temporarily unavailable"
	default:
		return "Internal server error"
	}
}

// Abort responds with the status and message derived from err.
func Abort(c *gin.Context, err error) {
	AbortWithError(c, StatusFor(err), err, MessageFor(err), nil)
}
