package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
)

const threadsKey = "threads"

// ThreadRepository persists message threads and their messages on the device
type ThreadRepository struct {
	threads collection[models.StoredThread]
	now     func() time.Time
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(kv *kvstore.Store) *ThreadRepository {
	return &ThreadRepository{
		threads: collection[models.StoredThread]{kv: kv, key: threadsKey},
		now:     time.Now,
	}
}

// Create stores a new thread with no messages, newest first
func (r *ThreadRepository) Create(ctx context.Context, meta models.MessageThread) (models.StoredThread, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Participants == nil {
		meta.Participants = []string{}
	}
	meta.UpdatedAt = r.now().UTC()
	created := models.StoredThread{MessageThread: meta, Messages: []models.Message{}}

	err := r.threads.update(ctx, func(items []models.StoredThread) ([]models.StoredThread, error) {
		for _, t := range items {
			if t.ID == meta.ID {
				return nil, apperrors.NewConflictError("thread already exists")
			}
		}
		return append([]models.StoredThread{created}, items...), nil
	})
	if err != nil {
		return models.StoredThread{}, err
	}
	return created, nil
}

// Get returns one thread with its messages
func (r *ThreadRepository) Get(ctx context.Context, id string) (models.StoredThread, error) {
	items, err := r.threads.load(ctx)
	if err != nil {
		return models.StoredThread{}, err
	}
	for _, t := range items {
		if t.ID == id {
			if t.Messages == nil {
				t.Messages = []models.Message{}
			}
			return t, nil
		}
	}
	return models.StoredThread{}, apperrors.ErrThreadNotFound
}

// List returns thread metadata in stored order
func (r *ThreadRepository) List(ctx context.Context) ([]models.MessageThread, error) {
	items, err := r.threads.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.MessageThread, 0, len(items))
	for _, t := range items {
		out = append(out, t.MessageThread)
	}
	return out, nil
}

// AppendMessage adds msg to the end of the thread and refreshes its preview
func (r *ThreadRepository) AppendMessage(ctx context.Context, threadID string, msg models.Message) (models.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.ThreadID = threadID
	msg.SentAt = r.now().UTC()

	err := r.threads.update(ctx, func(items []models.StoredThread) ([]models.StoredThread, error) {
		for i := range items {
			if items[i].ID != threadID {
				continue
			}
			items[i].Messages = append(items[i].Messages, msg)
			items[i].Preview = msg.Body
			items[i].UpdatedAt = msg.SentAt
			return items, nil
		}
		return nil, apperrors.ErrThreadNotFound
	})
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// Seed stores the given threads if the device has none yet
func (r *ThreadRepository) Seed(ctx context.Context, threads []models.StoredThread) (bool, error) {
	return r.threads.seed(ctx, threads)
}
