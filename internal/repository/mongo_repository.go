package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"tracklist/internal/models"
)

// CollectionName is the MongoDB collection holding playlists.
const CollectionName = "playlists"

// versionKey is the schema version marker written on every document.
// It is never part of the API projection.
const versionKey = "__v"

// MongoRepository persists playlists in a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a repository backed by the given collection.
func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// playlistDocument is the stored shape: the API model plus the version marker.
type playlistDocument struct {
	models.Playlist `bson:",inline"`
	Version         int32 `bson:"__v"`
}

var withoutVersion = bson.D{{Key: versionKey, Value: 0}}

// List returns every playlist with the version marker projected out.
func (r *MongoRepository) List(ctx context.Context) ([]*models.Playlist, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(withoutVersion))
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer cursor.Close(ctx)

	playlists := make([]*models.Playlist, 0)
	for cursor.Next(ctx) {
		var playlist models.Playlist
		if err := cursor.Decode(&playlist); err != nil {
			return nil, fmt.Errorf("decode playlist: %w", err)
		}
		normalize(&playlist)
		playlists = append(playlists, &playlist)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// Get returns a single playlist.
func (r *MongoRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}, options.FindOne().SetProjection(withoutVersion)).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	normalize(&playlist)
	return &playlist, nil
}

// Create inserts a playlist and returns it with its generated id.
func (r *MongoRepository) Create(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	doc, err := prepare(playlist)
	if err != nil {
		return nil, err
	}

	if _, err := r.coll.InsertOne(ctx, playlistDocument{Playlist: *doc}); err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	return doc, nil
}

// Delete removes a playlist and returns the deleted document.
func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}, options.FindOneAndDelete().SetProjection(withoutVersion)).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete playlist: %w", err)
	}
	normalize(&playlist)
	return &playlist, nil
}

// Ping checks that the primary is reachable.
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// normalize patches documents written by older clients that omitted
// optional fields.
func normalize(playlist *models.Playlist) {
	if playlist.Songs == nil {
		playlist.Songs = []string{}
	}
	if playlist.Tags == nil {
		playlist.Tags = []string{}
	}
	if playlist.ImageURL == "" {
		playlist.ImageURL = models.DefaultImageURL
	}
}
