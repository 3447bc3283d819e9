package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/dberrors"
	"github.com/yigit/diasporahub/internal/pkg/filestorage"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// first match wins, so specific errors come before the generic ones they wrap
var errorMappings = []errorMapping{
	{apperrors.ErrUnknownCommunity, http.StatusNotFound, dto.ErrorCodeUnknownCommunity, "Unknown community"},
	{apperrors.ErrUnknownArea, http.StatusBadRequest, dto.ErrorCodeUnknownArea, "Area does not belong to the current community"},
	{apperrors.ErrThreadNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Thread not found"},
	{apperrors.ErrEventNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Event not found"},
	{apperrors.ErrPostNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Post not found"},
	{apperrors.ErrProfileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Profile not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrHandleTaken, http.StatusConflict, dto.ErrorCodeConflict, "Handle already taken"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Bad request"},
	{filestorage.ErrInvalidDataURL, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid avatar data"},
	{filestorage.ErrUnsupportedType, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unsupported avatar type"},
	{apperrors.ErrBackendUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeBackendDisabled, "Backend is not enabled"},
}

// HandleAPIError maps service errors onto the standard error envelope.
// Unknown errors become a generic 500 without internal details.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)

		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			if custom.Message != "" {
				detail.Message = custom.Message
			}
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
			if len(custom.Details) > 0 {
				detail = detail.WithDetails(custom.Details)
			}
		}

		c.AbortWithStatusJSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	if dberrors.IsDatabaseError(err) {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database error")))
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}
