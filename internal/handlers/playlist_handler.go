package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracklist/internal/logging"
	"tracklist/internal/models"
	"tracklist/internal/repository"
)

// Response messages. Existing front-ends match on these strings.
const (
	msgCreated         = "Recommendation added"
	msgCreateFailed    = "Error"
	msgListFailed      = "Error retrieving playlists."
	msgInvalidID       = "Invalid ID format"
	msgInvalidBody     = "Invalid request body"
	msgNotFound        = "Playlist not found"
	msgGetFailed       = "Failed to fetch playlist"
	msgItemNotFound    = "Item not found"
	msgDeleted         = "Item deleted successfully"
	msgDeleteFailed    = "Failed to delete item"
	maxRequestBodySize = 1 << 20
)

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	List(ctx context.Context) ([]*models.Playlist, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	Create(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	Ping(ctx context.Context) error
}

// PlaylistHandler wires HTTP endpoints to the playlist service.
type PlaylistHandler struct {
	svc PlaylistService
}

// New creates a PlaylistHandler.
func New(svc PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// Register mounts playlist routes on the given router.
func (h *PlaylistHandler) Register(router *mux.Router) {
	router.HandleFunc("/playlist", h.list).Methods(http.MethodGet)
	router.HandleFunc("/playlist", h.create).Methods(http.MethodPost)
	router.HandleFunc("/playlist/{id}", h.get).Methods(http.MethodGet)
	router.HandleFunc("/playlist/{id}", h.delete).Methods(http.MethodDelete)
}

type messageResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type createResponse struct {
	Message string           `json:"message"`
	Artist  *models.Playlist `json:"artist"`
}

func (h *PlaylistHandler) list(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.svc.List(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("Error retrieving playlists")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgListFailed})
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (h *PlaylistHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	playlist, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse{Message: msgNotFound})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Str("playlist_id", id.Hex()).Msg("Error fetching playlist by ID")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgGetFailed})
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (h *PlaylistHandler) create(w http.ResponseWriter, r *http.Request) {
	req, details, err := decodeCreateRequest(w, r)
	if err != nil {
		logging.WithContext(r.Context()).Debug().Err(err).Msg("Rejected playlist request")
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidBody, Details: details})
		return
	}

	created, err := h.svc.Create(r.Context(), req.playlist())
	if err != nil {
		if errors.Is(err, repository.ErrInvalidPlaylist) {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidBody, Details: []string{err.Error()}})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("Error adding playlist")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgCreateFailed})
		return
	}

	logging.WithContext(r.Context()).Info().Str("playlist_id", created.ID.Hex()).Msg("Playlist created")
	writeJSON(w, http.StatusCreated, createResponse{Message: msgCreated, Artist: created})
}

func (h *PlaylistHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse{Message: msgItemNotFound})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Str("playlist_id", id.Hex()).Msg("Error deleting playlist")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgDeleteFailed})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgDeleted})
}

// Health reports 200 when the store answers a ping.
func (h *PlaylistHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.svc.Ping(ctx); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Msg("Health check failed")
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidID})
		return primitive.NilObjectID, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
