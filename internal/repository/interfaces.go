package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracklist/internal/models"
)

var (
	// ErrPlaylistNotFound is returned when a playlist cannot be located.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrInvalidPlaylist is returned when a playlist violates the stored schema.
	ErrInvalidPlaylist = errors.New("invalid playlist")
)

// PlaylistRepository defines storage operations for playlists.
type PlaylistRepository interface {
	List(ctx context.Context) ([]*models.Playlist, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	Create(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	Ping(ctx context.Context) error
}

// prepare enforces the schema shared by every backend and assigns a fresh id.
func prepare(playlist *models.Playlist) (*models.Playlist, error) {
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist is required", ErrInvalidPlaylist)
	}
	doc := playlist.Clone()
	doc.ApplyDefaults()
	if doc.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPlaylist)
	}
	doc.ID = primitive.NewObjectID()
	return doc, nil
}
