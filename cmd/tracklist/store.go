package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tracklist/internal/config"
	"tracklist/internal/database"
	"tracklist/internal/repository"
)

// openStore connects the configured backend once. The returned func
// releases the connection and must be called on shutdown.
func openStore(ctx context.Context, cfg *config.Config) (repository.PlaylistRepository, func(), error) {
	backoff := database.DefaultBackoff
	backoff.MaxWait = cfg.Store.ConnectTimeout

	switch cfg.Store.Backend {
	case config.BackendMongo:
		client, err := database.ConnectMongo(ctx, cfg.Mongo.URI, backoff)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")
		coll := client.Database(cfg.Mongo.Database).Collection(repository.CollectionName)
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("Disconnect MongoDB")
			}
		}
		return repository.NewMongoRepository(coll), closeFn, nil

	case config.BackendPostgres:
		db, err := database.OpenPostgres(ctx, cfg.Database.URL, backoff)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("Connected to PostgreSQL")
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("Close PostgreSQL")
			}
		}
		return repository.NewPostgresRepository(db), closeFn, nil

	case config.BackendMemory:
		log.Warn().Msg("Using in-memory playlist store; data is lost on restart")
		return repository.NewInMemoryRepository(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
