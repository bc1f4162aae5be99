package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracklist/internal/models"
)

// InMemoryRepository stores playlists in-memory for tests and local runs.
type InMemoryRepository struct {
	mu        sync.RWMutex
	playlists map[primitive.ObjectID]*models.Playlist
	order     []primitive.ObjectID
}

// NewInMemoryRepository returns an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		playlists: make(map[primitive.ObjectID]*models.Playlist),
	}
}

// List returns every playlist in insertion order.
func (r *InMemoryRepository) List(_ context.Context) ([]*models.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Playlist, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.playlists[id].Clone())
	}
	return result, nil
}

// Get returns a playlist by id.
func (r *InMemoryRepository) Get(_ context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	playlist, ok := r.playlists[id]
	if !ok {
		return nil, ErrPlaylistNotFound
	}
	return playlist.Clone(), nil
}

// Create persists a playlist.
func (r *InMemoryRepository) Create(_ context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	doc, err := prepare(playlist)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.playlists[doc.ID] = doc
	r.order = append(r.order, doc.ID)

	return doc.Clone(), nil
}

// Delete removes a playlist by id and returns it.
func (r *InMemoryRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, ok := r.playlists[id]
	if !ok {
		return nil, ErrPlaylistNotFound
	}
	delete(r.playlists, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return playlist, nil
}

// Ping always succeeds.
func (r *InMemoryRepository) Ping(_ context.Context) error {
	return nil
}
