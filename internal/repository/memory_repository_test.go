package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracklist/internal/models"
)

func TestInMemoryRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	created, err := repo.Create(ctx, &models.Playlist{
		Name:  "Road Trip",
		Songs: []string{"Song A by Artist X"},
		Tags:  []string{"rock", "driving"},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatalf("expected generated id")
	}
	if created.ImageURL != models.DefaultImageURL {
		t.Fatalf("expected default image, got %q", created.ImageURL)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "Road Trip" {
		t.Fatalf("unexpected name %q", got.Name)
	}

	deleted, err := repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("deleted %s, want %s", deleted.ID.Hex(), created.ID.Hex())
	}

	if _, err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound on second delete, got %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound after delete, got %v", err)
	}
}

func TestInMemoryRepositoryCreateRequiresName(t *testing.T) {
	repo := NewInMemoryRepository()

	for _, playlist := range []*models.Playlist{nil, {Name: "   "}} {
		if _, err := repo.Create(context.Background(), playlist); !errors.Is(err, ErrInvalidPlaylist) {
			t.Fatalf("expected ErrInvalidPlaylist, got %v", err)
		}
	}

	list, _ := repo.List(context.Background())
	if len(list) != 0 {
		t.Fatalf("invalid playlists were stored: %d", len(list))
	}
}

func TestInMemoryRepositoryListOrderAndIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	names := []string{"one", "two", "three"}
	for _, name := range names {
		if _, err := repo.Create(ctx, &models.Playlist{Name: name}); err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != len(names) {
		t.Fatalf("expected %d playlists, got %d", len(names), len(list))
	}
	for i, playlist := range list {
		if playlist.Name != names[i] {
			t.Fatalf("position %d: got %q, want %q", i, playlist.Name, names[i])
		}
	}

	list[0].Name = "mutated"
	again, _ := repo.Get(ctx, list[0].ID)
	if again.Name != "one" {
		t.Fatalf("caller mutation leaked into repository")
	}
}

func TestInMemoryRepositoryConcurrentDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	created, err := repo.Create(ctx, &models.Playlist{Name: "contested"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		notFound int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Delete(ctx, created.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrPlaylistNotFound):
				notFound++
			}
		}()
	}
	wg.Wait()

	if success != 1 || notFound != 7 {
		t.Fatalf("expected exactly one successful delete, got %d success / %d not found", success, notFound)
	}
}

func TestInMemoryRepositoryUnknownID(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Get(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}
