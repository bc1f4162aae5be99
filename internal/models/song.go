package models

import "strings"

const songSeparator = " by "

// FormatSong renders a recommendation entry the way playlists store them,
// e.g. "Teardrop by Massive Attack".
func FormatSong(track, artist string) string {
	track = strings.TrimSpace(track)
	artist = strings.TrimSpace(artist)
	if artist == "" {
		return track
	}
	return track + songSeparator + artist
}

// ParseSong splits an entry produced by FormatSong. Track names may themselves
// contain " by ", so the split happens on the last separator.
func ParseSong(entry string) (track, artist string) {
	entry = strings.TrimSpace(entry)
	idx := strings.LastIndex(entry, songSeparator)
	if idx < 0 {
		return entry, ""
	}
	return strings.TrimSpace(entry[:idx]), strings.TrimSpace(entry[idx+len(songSeparator):])
}
