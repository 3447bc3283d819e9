package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/services"
	"github.com/yigit/diasporahub/internal/middleware"
)

// DirectoryController serves the read-only community listings:
// groups, students hub requests and marketplace offers
type DirectoryController struct {
	groupService       services.GroupService
	studentHubService  services.StudentHubService
	marketplaceService services.MarketplaceService
	logger             zerolog.Logger
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(
	groupService services.GroupService,
	studentHubService services.StudentHubService,
	marketplaceService services.MarketplaceService,
	logger zerolog.Logger,
) *DirectoryController {
	return &DirectoryController{
		groupService:       groupService,
		studentHubService:  studentHubService,
		marketplaceService: marketplaceService,
		logger:             logger,
	}
}

// ListGroups godoc
// @Summary List interest groups
// @Tags groups
// @Produce json
// @Param community query string false "Community ID"
// @Param area query string false "Area ID or all"
// @Param category query string false "Group category"
// @Param q query string false "Search text"
// @Success 200 {object} dto.StructuredResponse{data=dto.ListResponse[models.Group]}
// @Router /groups [get]
func (c *DirectoryController) ListGroups(ctx *gin.Context) {
	q, ok := bindScope(ctx, c.logger)
	if !ok {
		return
	}
	res, err := c.groupService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// ListHelpRequests godoc
// @Summary List students hub requests
// @Tags students
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.ListResponse[models.HelpRequest]}
// @Router /students/requests [get]
func (c *DirectoryController) ListHelpRequests(ctx *gin.Context) {
	q, ok := bindScope(ctx, c.logger)
	if !ok {
		return
	}
	res, err := c.studentHubService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// ListListings godoc
// @Summary List marketplace offers
// @Tags marketplace
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.ListResponse[models.Listing]}
// @Router /marketplace/listings [get]
func (c *DirectoryController) ListListings(ctx *gin.Context) {
	q, ok := bindScope(ctx, c.logger)
	if !ok {
		return
	}
	res, err := c.marketplaceService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}
