package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/services"
	"github.com/yigit/diasporahub/internal/middleware"
)

// FeedController handles community feed endpoints
type FeedController struct {
	feedService services.FeedService
	logger      zerolog.Logger
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService services.FeedService, logger zerolog.Logger) *FeedController {
	return &FeedController{
		feedService: feedService,
		logger:      logger,
	}
}

func (c *FeedController) ListPosts(ctx *gin.Context) {
	q, ok := bindScope(ctx, c.logger)
	if !ok {
		return
	}
	res, err := c.feedService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

func (c *FeedController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}
	post, err := c.feedService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// ToggleLike likes the post, or removes the like if already given
func (c *FeedController) ToggleLike(ctx *gin.Context) {
	post, err := c.feedService.ToggleLike(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

func (c *FeedController) DeletePost(ctx *gin.Context) {
	if err := c.feedService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Post deleted"))
}
