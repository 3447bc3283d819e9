package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
)

// LocalRepositories are backed by the on-device key-value store
type LocalRepositories struct {
	ThreadRepository  *ThreadRepository
	ProfileRepository *ProfileRepository
	EventRepository   *EventRepository
	PostRepository    *PostRepository
}

// NewLocalRepositories initializes the device-local repositories
func NewLocalRepositories(kv *kvstore.Store) *LocalRepositories {
	return &LocalRepositories{
		ThreadRepository:  NewThreadRepository(kv),
		ProfileRepository: NewProfileRepository(kv),
		EventRepository:   NewEventRepository(kv),
		PostRepository:    NewPostRepository(kv),
	}
}

// BackendRepositories talk to the hosted Postgres backend
type BackendRepositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	RemoteProfileRepository *RemoteProfileRepository
}

// NewBackendRepositories initializes the backend repositories
func NewBackendRepositories(db *pgxpool.Pool) *BackendRepositories {
	return &BackendRepositories{
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		RemoteProfileRepository: NewRemoteProfileRepository(db),
	}
}
