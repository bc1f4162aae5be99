package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tracklist/internal/models"
	"tracklist/internal/repository"
)

type seedSong struct {
	Track  string
	Artist string
}

type seedPlaylist struct {
	Name  string
	Songs []seedSong
	Tags  string
}

var demoPlaylists = []seedPlaylist{
	{
		Name: "Late Night Trip Hop",
		Songs: []seedSong{
			{Track: "Teardrop", Artist: "Massive Attack"},
			{Track: "Glory Box", Artist: "Portishead"},
			{Track: "Les Nuits", Artist: "Nightmares on Wax"},
		},
		Tags: "trip hop, downtempo, night",
	},
	{
		Name: "Warm Electronics",
		Songs: []seedSong{
			{Track: "Roygbiv", Artist: "Boards of Canada"},
			{Track: "Kerala", Artist: "Bonobo"},
			{Track: "Says", Artist: "Nils Frahm"},
		},
		Tags: "electronic, ambient",
	},
	{
		Name: "Road Trip",
		Songs: []seedSong{
			{Track: "Paranoid Android", Artist: "Radiohead"},
			{Track: "Them Changes", Artist: "Thundercat"},
		},
		Tags: "rock, driving",
	},
}

// seedDemoPlaylists inserts the demo playlists into an empty store.
func seedDemoPlaylists(ctx context.Context, repo repository.PlaylistRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing playlists: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("playlists", len(existing)).Msg("Store not empty, skipping demo seed")
		return nil
	}

	for _, seed := range demoPlaylists {
		songs := make([]string, 0, len(seed.Songs))
		for _, song := range seed.Songs {
			songs = append(songs, models.FormatSong(song.Track, song.Artist))
		}

		if _, err := repo.Create(ctx, &models.Playlist{
			Name:  seed.Name,
			Songs: songs,
			Tags:  models.ParseTags(seed.Tags),
		}); err != nil {
			return fmt.Errorf("seed playlist %q: %w", seed.Name, err)
		}
	}

	log.Info().Int("playlists", len(demoPlaylists)).Msg("Seeded demo playlists")
	return nil
}
