package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/services"
	"github.com/yigit/diasporahub/internal/middleware"
)

const calendarContentType = "text/calendar; charset=utf-8"

// EventController handles local event endpoints
type EventController struct {
	eventService services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

func (c *EventController) ListEvents(ctx *gin.Context) {
	q, ok := bindScope(ctx, c.logger)
	if !ok {
		return
	}
	res, err := c.eventService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// CreateEvent adds an event to the selected community
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.StructuredResponse{data=models.LocalEvent}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(event, "Event created"))
}

func (c *EventController) GetEvent(ctx *gin.Context) {
	event, err := c.eventService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

func (c *EventController) DeleteEvent(ctx *gin.Context) {
	if err := c.eventService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Event deleted"))
}

// DownloadCalendar returns the event as an .ics attachment
// @Summary Export event to calendar
// @Tags events
// @Produce text/calendar
// @Param id path string true "Event ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/calendar.ics [get]
func (c *EventController) DownloadCalendar(ctx *gin.Context) {
	name, body, err := c.eventService.Calendar(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Data(http.StatusOK, calendarContentType, body)
}
