package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-manager/infrastructure/logger"
	apperrors "social-manager/pkg/errors"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrReauthRequired):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case apperrors.Is(err, apperrors.ErrInvalidState):
		return http.StatusConflict
	case apperrors.Is(err, apperrors.ErrUnsupportedPlatform):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrConfiguration):
		return http.StatusPreconditionFailed
	case apperrors.Is(err, apperrors.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.GetLogger().WithField("path", ctx.FullPath()).WithError(err).Error("request failed")
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
