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

// LocationController serves the community registry and the location state
type LocationController struct {
	locationService services.LocationService
	logger          zerolog.Logger
}

// NewLocationController creates a new LocationController
func NewLocationController(locationService services.LocationService, logger zerolog.Logger) *LocationController {
	return &LocationController{
		locationService: locationService,
		logger:          logger,
	}
}

// ListCommunities searches the supported communities
// @Summary Search communities
// @Description Case-insensitive match on name, city and country. An empty query returns every community.
// @Tags communities
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} dto.StructuredResponse{data=[]models.Community}
// @Router /communities [get]
func (c *LocationController) ListCommunities(ctx *gin.Context) {
	communities := c.locationService.SearchCommunities(ctx.Query("q"))
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(communities))
}

// GetCommunity returns one community
// @Summary Get community
// @Tags communities
// @Produce json
// @Param id path string true "Community ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Community}
// @Failure 404 {object} dto.ErrorResponse "Unknown community"
// @Router /communities/{id} [get]
func (c *LocationController) GetCommunity(ctx *gin.Context) {
	community, ok := c.locationService.GetCommunity(ctx.Param("id"))
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnknownCommunity)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// GetLocation returns the current location state
// @Summary Get location state
// @Tags location
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.LocationResponse}
// @Router /location [get]
func (c *LocationController) GetLocation(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.locationService.Get(ctx.Request.Context())))
}

// SaveLocation confirms the user's location
// @Summary Confirm location
// @Description Stores the location and switches to the matching community when one exists
// @Tags location
// @Accept json
// @Produce json
// @Param request body dto.SaveLocationRequest true "Location"
// @Success 200 {object} dto.StructuredResponse{data=dto.LocationResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /location [put]
func (c *LocationController) SaveLocation(ctx *gin.Context) {
	var req dto.SaveLocationRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	resp, err := c.locationService.SaveLocation(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to save location")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Location saved"))
}

// ClearLocation forgets the confirmed location
// @Summary Clear location
// @Tags location
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.LocationResponse}
// @Router /location [delete]
func (c *LocationController) ClearLocation(ctx *gin.Context) {
	resp, err := c.locationService.ClearLocation(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to clear location")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Location cleared"))
}

// SetCommunity switches the selected community
// @Summary Select community
// @Tags location
// @Accept json
// @Produce json
// @Param request body dto.SetCommunityRequest true "Community"
// @Success 200 {object} dto.StructuredResponse{data=dto.LocationResponse}
// @Failure 404 {object} dto.ErrorResponse "Unknown community"
// @Router /location/community [put]
func (c *LocationController) SetCommunity(ctx *gin.Context) {
	var req dto.SetCommunityRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	resp, err := c.locationService.SetCommunity(ctx.Request.Context(), req.CommunityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SetArea narrows the current community to one area
// @Summary Select area
// @Tags location
// @Accept json
// @Produce json
// @Param request body dto.SetAreaRequest true "Area, or all"
// @Success 200 {object} dto.StructuredResponse{data=dto.LocationResponse}
// @Failure 400 {object} dto.ErrorResponse "Area does not belong to the community"
// @Router /location/area [put]
func (c *LocationController) SetArea(ctx *gin.Context) {
	var req dto.SetAreaRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	resp, err := c.locationService.SetArea(ctx.Request.Context(), req.AreaID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
