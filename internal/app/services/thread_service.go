package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/app/repositories"
	"github.com/yigit/diasporahub/internal/app/scope"
	"github.com/yigit/diasporahub/internal/pkg/websocket"
)

// Event types published on thread channels
const EventThreadMessage = "thread.message"

// ThreadService defines the interface for message thread operations
type ThreadService interface {
	List(ctx context.Context, q scope.Query) (dto.ListResponse[models.MessageThread], error)
	Create(ctx context.Context, req *dto.CreateThreadRequest) (models.StoredThread, error)
	Get(ctx context.Context, id string) (models.StoredThread, error)
	SendMessage(ctx context.Context, threadID string, req *dto.SendMessageRequest) (models.Message, error)
}

type threadServiceImpl struct {
	threadRepo *repositories.ThreadRepository
	reg        *registry.Registry
	state      locationState
	events     publisher
	logger     zerolog.Logger
}

// NewThreadService creates a new ThreadService
func NewThreadService(
	threadRepo *repositories.ThreadRepository,
	reg *registry.Registry,
	state locationState,
	events publisher,
	logger zerolog.Logger,
) ThreadService {
	if events == nil {
		events = nopPublisher{}
	}
	return &threadServiceImpl{
		threadRepo: threadRepo,
		reg:        reg,
		state:      state,
		events:     events,
		logger:     logger,
	}
}

// List returns the threads in scope, most recent first as stored
func (s *threadServiceImpl) List(ctx context.Context, q scope.Query) (dto.ListResponse[models.MessageThread], error) {
	q, err := resolveScope(s.reg, s.state, q)
	if err != nil {
		return dto.ListResponse[models.MessageThread]{}, err
	}

	threads, err := s.threadRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list threads")
		return dto.ListResponse[models.MessageThread]{}, fmt.Errorf("error listing threads: %w", err)
	}

	return listResponse(scope.Filter(s.reg, threads, q, scope.Threads), q), nil
}

// Create starts a thread with no messages
func (s *threadServiceImpl) Create(ctx context.Context, req *dto.CreateThreadRequest) (models.StoredThread, error) {
	title, err := requireText("title", req.Title)
	if err != nil {
		return models.StoredThread{}, err
	}

	communityID, areaID, err := placement(s.reg, s.state, req.CommunityID, req.AreaID)
	if err != nil {
		return models.StoredThread{}, err
	}

	participants := make([]string, 0, len(req.Participants))
	for _, p := range req.Participants {
		if p = strings.TrimSpace(p); p != "" {
			participants = append(participants, p)
		}
	}

	thread, err := s.threadRepo.Create(ctx, models.MessageThread{
		Title:        title,
		Kind:         req.Kind,
		CommunityID:  communityID,
		AreaID:       areaID,
		Participants: participants,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("communityId", communityID).Msg("Failed to create thread")
		return models.StoredThread{}, err
	}

	s.logger.Info().
		Str("threadId", thread.ID).
		Str("communityId", communityID).
		Msg("Thread created")
	return thread, nil
}

// Get returns a thread with its messages
func (s *threadServiceImpl) Get(ctx context.Context, id string) (models.StoredThread, error) {
	return s.threadRepo.Get(ctx, id)
}

// SendMessage appends to a thread and notifies its subscribers
func (s *threadServiceImpl) SendMessage(ctx context.Context, threadID string, req *dto.SendMessageRequest) (models.Message, error) {
	author, err := requireText("author", req.Author)
	if err != nil {
		return models.Message{}, err
	}
	body, err := requireText("body", req.Body)
	if err != nil {
		return models.Message{}, err
	}

	msg, err := s.threadRepo.AppendMessage(ctx, threadID, models.Message{
		Author: author,
		Body:   body,
	})
	if err != nil {
		return models.Message{}, err
	}

	s.events.Publish(websocket.ThreadChannel(threadID), EventThreadMessage, msg)
	s.logger.Debug().Str("threadId", threadID).Str("messageId", msg.ID).Msg("Message appended")
	return msg, nil
}
