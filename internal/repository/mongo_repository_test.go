package repository

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"tracklist/internal/models"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func playlistDoc(id primitive.ObjectID, name string, songs, tags []string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "imageUrl", Value: models.DefaultImageURL},
		{Key: "songs", Value: songs},
		{Key: "tags", Value: tags},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepository(mt.Coll)

		got, err := repo.Create(context.Background(), &models.Playlist{
			Name:  "Road Trip",
			Songs: []string{"Song A by Artist X"},
			Tags:  []string{"rock", "driving"},
		})
		if err != nil {
			mt.Fatalf("Create error: %v", err)
		}
		if got.ID.IsZero() {
			mt.Fatalf("expected generated id")
		}
		if got.ImageURL != models.DefaultImageURL {
			mt.Fatalf("expected default image, got %q", got.ImageURL)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "insert" {
			mt.Fatalf("expected insert command, got %+v", started)
		}
		doc := started.Command.Lookup("documents").Array().Index(0).Value().Document()
		if v, err := doc.LookupErr(versionKey); err != nil || v.Int32() != 0 {
			mt.Fatalf("expected %s marker on stored document, got %v (%v)", versionKey, v, err)
		}
	})

	mt.Run("create rejects missing name", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		if _, err := repo.Create(context.Background(), &models.Playlist{}); !errors.Is(err, ErrInvalidPlaylist) {
			mt.Fatalf("expected ErrInvalidPlaylist, got %v", err)
		}
	})

	mt.Run("create surfaces write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewMongoRepository(mt.Coll)
		if _, err := repo.Create(context.Background(), &models.Playlist{Name: "dup"}); err == nil {
			mt.Fatalf("expected error")
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		ns := namespace(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				playlistDoc(first, "Road Trip", []string{"Song A by Artist X"}, []string{"rock"})),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch,
				bson.D{{Key: "_id", Value: second}, {Key: "name", Value: "Legacy"}}),
		)
		repo := NewMongoRepository(mt.Coll)

		list, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("List error: %v", err)
		}
		if len(list) != 2 {
			mt.Fatalf("expected 2 playlists, got %d", len(list))
		}
		if list[0].ID != first || list[0].Songs[0] != "Song A by Artist X" {
			mt.Fatalf("unexpected first playlist %+v", list[0])
		}
		legacy := list[1]
		if legacy.Songs == nil || legacy.Tags == nil || legacy.ImageURL != models.DefaultImageURL {
			mt.Fatalf("expected defaults on legacy document, got %+v", legacy)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "find" {
			mt.Fatalf("expected find command, got %+v", started)
		}
		projection := started.Command.Lookup("projection").Document()
		if v, err := projection.LookupErr(versionKey); err != nil || v.Int32() != 0 {
			mt.Fatalf("expected %s excluded from projection, got %v", versionKey, projection)
		}
	})

	mt.Run("get", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			playlistDoc(id, "Road Trip", []string{}, []string{"rock", "driving"})))
		repo := NewMongoRepository(mt.Coll)

		got, err := repo.Get(context.Background(), id)
		if err != nil {
			mt.Fatalf("Get error: %v", err)
		}
		if got.ID != id || len(got.Tags) != 2 {
			mt.Fatalf("unexpected playlist %+v", got)
		}
	})

	mt.Run("get not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := NewMongoRepository(mt.Coll)

		if _, err := repo.Get(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrPlaylistNotFound) {
			mt.Fatalf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: playlistDoc(id, "Road Trip", []string{}, []string{})},
		})
		repo := NewMongoRepository(mt.Coll)

		deleted, err := repo.Delete(context.Background(), id)
		if err != nil {
			mt.Fatalf("Delete error: %v", err)
		}
		if deleted.ID != id {
			mt.Fatalf("deleted %s, want %s", deleted.ID.Hex(), id.Hex())
		}
	})

	mt.Run("delete not found", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})
		repo := NewMongoRepository(mt.Coll)

		if _, err := repo.Delete(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrPlaylistNotFound) {
			mt.Fatalf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	mt.Run("list command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad projection",
		}))
		repo := NewMongoRepository(mt.Coll)

		if _, err := repo.List(context.Background()); err == nil {
			mt.Fatalf("expected error")
		}
	})
}
