package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/app/repositories"
	"github.com/yigit/diasporahub/internal/app/scope"
	"github.com/yigit/diasporahub/internal/pkg/websocket"
)

// Event types published on community channels
const EventPostCreated = "post.created"

// FeedService defines the interface for community feed operations
type FeedService interface {
	List(ctx context.Context, q scope.Query) (dto.ListResponse[models.Post], error)
	Create(ctx context.Context, req *dto.CreatePostRequest) (models.Post, error)
	ToggleLike(ctx context.Context, id string) (models.Post, error)
	Delete(ctx context.Context, id string) error
}

type feedServiceImpl struct {
	postRepo *repositories.PostRepository
	reg      *registry.Registry
	state    locationState
	events   publisher
	logger   zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(
	postRepo *repositories.PostRepository,
	reg *registry.Registry,
	state locationState,
	events publisher,
	logger zerolog.Logger,
) FeedService {
	if events == nil {
		events = nopPublisher{}
	}
	return &feedServiceImpl{
		postRepo: postRepo,
		reg:      reg,
		state:    state,
		events:   events,
		logger:   logger,
	}
}

func (s *feedServiceImpl) List(ctx context.Context, q scope.Query) (dto.ListResponse[models.Post], error) {
	q, err := resolveScope(s.reg, s.state, q)
	if err != nil {
		return dto.ListResponse[models.Post]{}, err
	}
	// posts carry no category
	q.Category = ""

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list posts")
		return dto.ListResponse[models.Post]{}, fmt.Errorf("error listing posts: %w", err)
	}
	return listResponse(scope.Filter(s.reg, posts, q, scope.Posts), q), nil
}

// Create publishes a post to the top of the community feed
func (s *feedServiceImpl) Create(ctx context.Context, req *dto.CreatePostRequest) (models.Post, error) {
	author, err := requireText("author", req.Author)
	if err != nil {
		return models.Post{}, err
	}
	body, err := requireText("body", req.Body)
	if err != nil {
		return models.Post{}, err
	}

	communityID, areaID, err := placement(s.reg, s.state, req.CommunityID, req.AreaID)
	if err != nil {
		return models.Post{}, err
	}

	post, err := s.postRepo.Create(ctx, models.Post{
		Author:      author,
		Body:        body,
		CommunityID: communityID,
		AreaID:      areaID,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create post")
		return models.Post{}, err
	}

	s.events.Publish(websocket.CommunityChannel(communityID), EventPostCreated, post)
	return post, nil
}

func (s *feedServiceImpl) ToggleLike(ctx context.Context, id string) (models.Post, error) {
	return s.postRepo.ToggleLike(ctx, id)
}

func (s *feedServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("postId", id).Msg("Post deleted")
	return nil
}
