package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracklist/internal/models"
	"tracklist/internal/repository"
)

// PlaylistService coordinates playlist operations.
type PlaylistService struct {
	repo repository.PlaylistRepository
}

// New creates a PlaylistService.
func New(repo repository.PlaylistRepository) *PlaylistService {
	return &PlaylistService{repo: repo}
}

// List returns all playlists.
func (s *PlaylistService) List(ctx context.Context) ([]*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Get returns a playlist by id.
func (s *PlaylistService) Get(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Create stores a new playlist.
func (s *PlaylistService) Create(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validatePlaylist(playlist); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, playlist)
}

// Delete removes a playlist and returns what was deleted.
func (s *PlaylistService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, id)
}

// Ping reports whether the backing store is reachable.
func (s *PlaylistService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// validatePlaylist checks the fields the store requires. Songs and tags may
// be empty.
func validatePlaylist(playlist *models.Playlist) error {
	if playlist == nil {
		return fmt.Errorf("%w: playlist is required", repository.ErrInvalidPlaylist)
	}
	if strings.TrimSpace(playlist.Name) == "" {
		return fmt.Errorf("%w: name is required", repository.ErrInvalidPlaylist)
	}
	for i, song := range playlist.Songs {
		if utf8.RuneCountInString(song) > maxEntryLength {
			return fmt.Errorf("%w: song %d exceeds %d characters", repository.ErrInvalidPlaylist, i, maxEntryLength)
		}
	}
	for i, tag := range playlist.Tags {
		if utf8.RuneCountInString(tag) > maxEntryLength {
			return fmt.Errorf("%w: tag %d exceeds %d characters", repository.ErrInvalidPlaylist, i, maxEntryLength)
		}
	}
	return nil
}

const maxEntryLength = 512
