package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/services"
	"github.com/yigit/diasporahub/internal/middleware"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
)

// ProfileController handles the on-device profile and its backend copy
type ProfileController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile returns the on-device profile
// @Summary Get local profile
// @Tags profile
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=models.Profile}
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	profile, err := c.profileService.Get(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile replaces the on-device profile
// @Summary Update local profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.StructuredResponse{data=models.Profile}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}
	profile, err := c.profileService.Update(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(profile, "Profile saved"))
}

// GetRemoteProfile returns the signed-in user's backend profile
func (c *ProfileController) GetRemoteProfile(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	profile, err := c.profileService.GetRemote(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpsertRemoteProfile writes the signed-in user's backend profile
func (c *ProfileController) UpsertRemoteProfile(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	var req dto.RemoteProfileRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}
	profile, err := c.profileService.UpsertRemote(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(profile, "Profile saved"))
}

// SyncProfile pushes the on-device profile to the backend
// @Summary Sync profile to backend
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=models.RemoteProfile}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Backend disabled"
// @Router /me/profile/sync [post]
func (c *ProfileController) SyncProfile(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	profile, err := c.profileService.Sync(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", userID).Msg("Profile sync failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(profile, "Profile synced"))
}
