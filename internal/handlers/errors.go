package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrValidation, apperrors.ErrInvalidAmount, apperrors.ErrSameAccount, apperrors.ErrInvalidApprover:
		return http.StatusBadRequest
	case apperrors.ErrInsufficientFunds:
		return http.StatusUnprocessableEntity
	case apperrors.ErrDuplicate, apperrors.ErrAlreadyDecided:
		return http.StatusConflict
	case apperrors.ErrForbidden:
		return http.StatusForbidden
	case apperrors.ErrBusy, apperrors.ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the {"error", "detail"} body for err. Internal errors
// are logged with their cause and the detail is replaced by fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	body := dto.ErrorResponse{Error: apperrors.KindName(err), Detail: err.Error()}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" && status != http.StatusInternalServerError {
		body.Detail = appErr.Message
	}

	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(fallback, slog.String("error", err.Error()), slog.Int("status", status))
		if apperrors.KindOf(err) == nil {
			body.Detail = fallback
		}
	default:
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, body)
}

// respondBindError reports a malformed body or query string.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "VALIDATION", Detail: "Invalid request format: " + err.Error()})
}

// caller returns the authenticated identity, or writes 401 and reports false.
func caller(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller identity not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "UNAUTHORIZED", Detail: "Unauthorized"})
		return domain.Identity{}, false
	}
	return identity, true
}
