package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
)

const postsKey = "posts"

// PostRepository persists the community feed on the device
type PostRepository struct {
	posts collection[models.Post]
	now   func() time.Time
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(kv *kvstore.Store) *PostRepository {
	return &PostRepository{
		posts: collection[models.Post]{kv: kv, key: postsKey},
		now:   time.Now,
	}
}

// List returns posts newest first
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	return r.posts.load(ctx)
}

// Create puts a new post at the top of the feed
func (r *PostRepository) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = uuid.NewString()
	p.Likes = 0
	p.LikedByMe = false
	p.CreatedAt = r.now().UTC()
	err := r.posts.update(ctx, func(items []models.Post) ([]models.Post, error) {
		return append([]models.Post{p}, items...), nil
	})
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// ToggleLike flips the user's like and adjusts the counter
func (r *PostRepository) ToggleLike(ctx context.Context, id string) (models.Post, error) {
	var toggled models.Post
	err := r.posts.update(ctx, func(items []models.Post) ([]models.Post, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if items[i].LikedByMe {
				items[i].LikedByMe = false
				if items[i].Likes > 0 {
					items[i].Likes--
				}
			} else {
				items[i].LikedByMe = true
				items[i].Likes++
			}
			toggled = items[i]
			return items, nil
		}
		return nil, apperrors.ErrPostNotFound
	})
	if err != nil {
		return models.Post{}, err
	}
	return toggled, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.posts.update(ctx, func(items []models.Post) ([]models.Post, error) {
		for i, p := range items {
			if p.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperrors.ErrPostNotFound
	})
}

// Seed stores the given posts if the device has none yet
func (r *PostRepository) Seed(ctx context.Context, posts []models.Post) (bool, error) {
	return r.posts.seed(ctx, posts)
}
