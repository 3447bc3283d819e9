package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/services"
	"github.com/yigit/diasporahub/internal/middleware"
)

// ThreadController handles message thread endpoints
type ThreadController struct {
	threadService services.ThreadService
	logger        zerolog.Logger
}

// NewThreadController creates a new ThreadController
func NewThreadController(threadService services.ThreadService, logger zerolog.Logger) *ThreadController {
	return &ThreadController{
		threadService: threadService,
		logger:        logger,
	}
}

// ListThreads returns the threads in scope
// @Summary List message threads
// @Tags threads
// @Produce json
// @Param community query string false "Community ID, defaults to the selected one"
// @Param area query string false "Area ID or all"
// @Param category query string false "Thread kind"
// @Param q query string false "Search text"
// @Success 200 {object} dto.StructuredResponse{data=dto.ListResponse[models.MessageThread]}
// @Router /threads [get]
func (c *ThreadController) ListThreads(ctx *gin.Context) {
	q, ok := bindScope(ctx, c.logger)
	if !ok {
		return
	}

	threads, err := c.threadService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(threads))
}

// CreateThread starts a conversation
// @Summary Create thread
// @Tags threads
// @Accept json
// @Produce json
// @Param request body dto.CreateThreadRequest true "Thread"
// @Success 201 {object} dto.StructuredResponse{data=models.StoredThread}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /threads [post]
func (c *ThreadController) CreateThread(ctx *gin.Context) {
	var req dto.CreateThreadRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	thread, err := c.threadService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(thread, "Thread created"))
}

// GetThread returns a thread with its messages
func (c *ThreadController) GetThread(ctx *gin.Context) {
	thread, err := c.threadService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}

// SendMessage appends a message to a thread
func (c *ThreadController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	msg, err := c.threadService.SendMessage(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg))
}
