// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/scope"
)

// bindJSON binds the request body and writes the validation error envelope
// on failure
func bindJSON(ctx *gin.Context, logger zerolog.Logger, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Invalid request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// bindScope reads the community, area, category and q query parameters
func bindScope(ctx *gin.Context, logger zerolog.Logger) (scope.Query, bool) {
	var q scope.Query
	if err := ctx.ShouldBindQuery(&q); err != nil {
		logger.Warn().Err(err).Msg("Invalid scope query")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return scope.Query{}, false
	}
	return q, true
}
