package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultImageURL is the placeholder artwork used when a playlist has no image.
const DefaultImageURL = "/headphones.png"

// Playlist captures a named, tagged list of song recommendations.
type Playlist struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	ImageURL string             `json:"imageUrl" bson:"imageUrl"`
	Songs    []string           `json:"songs" bson:"songs"`
	Tags     []string           `json:"tags" bson:"tags"`
}

// ApplyDefaults fills optional fields so that a stored playlist never carries
// a blank image or nil song/tag sequences. Song and tag entries are kept
// exactly as submitted.
func (p *Playlist) ApplyDefaults() {
	p.Name = strings.TrimSpace(p.Name)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	if p.ImageURL == "" {
		p.ImageURL = DefaultImageURL
	}
	if p.Songs == nil {
		p.Songs = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// Clone returns a deep copy of the playlist.
func (p *Playlist) Clone() *Playlist {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Songs = append(make([]string, 0, len(p.Songs)), p.Songs...)
	clone.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	return &clone
}
