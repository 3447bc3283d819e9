package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models/dto"
)

// ChannelAuthorizer decides whether a parsed channel may be subscribed to
type ChannelAuthorizer func(kind, id string) bool

// Handler for WebSocket connections
type Handler struct {
	hub       *Hub
	authorize ChannelAuthorizer
	logger    zerolog.Logger
}

// NewHandler creates a new WebSocket handler. A nil authorizer accepts every
// well-formed channel.
func NewHandler(hub *Hub, authorize ChannelAuthorizer, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:       hub,
		authorize: authorize,
		logger:    logger,
	}
}

// HandleConnection upgrades GET /ws?channel=<name> and subscribes the client
func (h *Handler) HandleConnection(c *gin.Context) {
	channel := c.Query("channel")
	kind, id, err := ParseChannel(channel)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid channel").
			WithField("channel").
			WithDetails("channel must be settings, thread:<id> or community:<id>")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if h.authorize != nil && !h.authorize(kind, id) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Channel not found").WithField("channel")
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("channel", channel).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		channel: channel,
		logger:  h.logger,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("channel", channel).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
