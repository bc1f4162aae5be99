package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracklist/internal/models"
)

// PostgresRepository persists playlists in PostgreSQL. Songs and tags are
// TEXT[] columns; ids keep the ObjectID hex form so that every backend
// accepts the same identifiers.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repository backed by PostgreSQL.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// List returns all playlists in insertion order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Playlist, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, image_url, songs, tags
		FROM playlists
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]*models.Playlist, 0)
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// Get returns a single playlist.
func (r *PostgresRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, image_url, songs, tags
		FROM playlists
		WHERE id = $1`, id.Hex())
	playlist, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return playlist, nil
}

// Create persists a playlist.
func (r *PostgresRepository) Create(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	doc, err := prepare(playlist)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO playlists (id, name, image_url, songs, tags)
		VALUES ($1, $2, $3, $4, $5)`,
		doc.ID.Hex(), doc.Name, doc.ImageURL, pq.Array(doc.Songs), pq.Array(doc.Tags),
	); err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	return doc, nil
}

// Delete removes a playlist and returns the deleted row.
func (r *PostgresRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM playlists
		WHERE id = $1
		RETURNING id, name, image_url, songs, tags`, id.Hex())
	playlist, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete playlist: %w", err)
	}
	return playlist, nil
}

// Ping checks the connection pool.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanPlaylist(row rowScanner) (*models.Playlist, error) {
	var (
		playlist models.Playlist
		rawID    string
	)
	if err := row.Scan(&rawID, &playlist.Name, &playlist.ImageURL, pq.Array(&playlist.Songs), pq.Array(&playlist.Tags)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan playlist: %w", err)
	}
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan playlist id %q: %w", rawID, err)
	}
	playlist.ID = id
	normalize(&playlist)
	return &playlist, nil
}
