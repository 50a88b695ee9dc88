package score

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/domain/user"
	"github.com/instiprop/instiprop-api/internal/pkg/response"
)

// UserDirectory resolves integer unique ids to accounts
type UserDirectory interface {
	GetByUniqueID(ctx context.Context, uniqueID int64) (*user.User, error)
}

// Handler handles score HTTP requests
type Handler struct {
	service *Service
	users   UserDirectory
}

// NewHandler creates score handler
func NewHandler(service *Service, users UserDirectory) *Handler {
	return &Handler{service: service, users: users}
}

// Get handles GET /profile/score/{userId}. An unknown unique id and a known
// user with no score row yet are distinct 404s.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	u, err := h.users.GetByUniqueID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to look up user for score")
		response.InternalError(w)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	sc, err := h.service.Get(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUser):
			response.BadRequest(w, "Invalid user ID")
		case errors.Is(err, ErrScoreNotFound):
			response.NotFound(w, "Score not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, sc)
}
