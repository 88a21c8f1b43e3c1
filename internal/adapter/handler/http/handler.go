package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzaorders/internal/core/domain"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:     http.StatusInternalServerError,
	domain.ErrDataNotFound: http.StatusNotFound,
	// A unique violation is outside the caller's control: retrying the whole
	// request recomputes a fresh order number.
	domain.ErrConflictingData: http.StatusInternalServerError,

	domain.ErrBadRequest: http.StatusBadRequest,

	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrBadOrderStatus:     http.StatusBadRequest,
	domain.ErrBadPaymentMethod:   http.StatusBadRequest,
	domain.ErrStatusNotReachable: http.StatusBadRequest,
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleAbort sends an error response and aborts the request with the status
// code mapped for the error
func handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.AbortWithStatusJSON(statusCode, errorResponse{Error: err.Error()})
}

// handleValidationError sends an error response for a rejected request body
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		h.handleValidationError(ctx, err)
		return
	}

	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
		h.logger.Error("error processing request",
			zap.Error(err),
			zap.String("request_id", requestIDFrom(ctx)))
		err = domain.ErrInternal
	}
	ctx.JSON(statusCode, errorResponse{Error: err.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
