package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"tracklist/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// createPlaylistRequest is the accepted body of POST /api/playlist.
// playlistName is an older alias for name.
type createPlaylistRequest struct {
	Name         string         `json:"name" validate:"required,max=200"`
	PlaylistName string         `json:"playlistName,omitempty" validate:"omitempty,max=200"`
	ImageURL     string         `json:"imageUrl,omitempty" validate:"omitempty,max=2048"`
	Songs        []string       `json:"songs" validate:"max=500,dive,max=512"`
	Tags         models.TagList `json:"tags" validate:"max=100,dive,max=512"`
}

func (req *createPlaylistRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = strings.TrimSpace(req.PlaylistName)
	}
	req.ImageURL = strings.TrimSpace(req.ImageURL)
}

func (req *createPlaylistRequest) playlist() *models.Playlist {
	return &models.Playlist{
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Songs:    req.Songs,
		Tags:     []string(req.Tags),
	}
}

// decodeCreateRequest parses and validates the request body. On failure it
// returns client-facing details alongside the error.
func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (*createPlaylistRequest, []string, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	dec.DisallowUnknownFields()

	var req createPlaylistRequest
	if err := dec.Decode(&req); err != nil {
		return nil, []string{"body must be a JSON object with name, imageUrl, songs and tags"}, fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return nil, []string{"body must contain a single JSON object"}, errors.New("trailing data after body")
	}

	req.normalize()
	if err := validate.Struct(&req); err != nil {
		return nil, validationDetails(err), err
	}
	return &req, nil, nil
}

func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			details = append(details, fmt.Sprintf("%s exceeds maximum of %s", fe.Field(), fe.Param()))
		default:
			details = append(details, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return details
}
