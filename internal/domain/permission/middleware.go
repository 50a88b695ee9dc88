package permission

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/middleware"
	"github.com/instiprop/instiprop-api/internal/pkg/response"
)

// RequirePermission returns middleware that checks the authenticated user's
// effective permission set for a permission title.
func RequirePermission(service *Service, title string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := middleware.GetUserID(r.Context())
			if userID == uuid.Nil {
				response.Unauthorized(w, "unauthorized")
				return
			}

			ok, err := service.UserHasPermission(r.Context(), userID, title)
			if err != nil {
				log.Error().Err(err).
					Str("user_id", userID.String()).
					Str("permission", title).
					Msg("Permission check failed")
				response.InternalError(w)
				return
			}

			if !ok {
				response.Forbidden(w, "Permission denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
