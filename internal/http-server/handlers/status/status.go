package status

import (
	"HotelCS/entity"
	"HotelCS/internal/lib/api/response"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// UserStatus reports whether a user is online, checked under both roles
// because guest and agent id spaces are independent.
func UserStatus(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")
		if userID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user id is required"))
			return
		}

		guestOnline := handler.IsOnline(userID, entity.RoleGuest)
		agentOnline := handler.IsOnline(userID, entity.RoleAgent)

		render.JSON(w, r, response.Ok(entity.UserStatusResponse{
			UserID:        userID,
			IsGuestOnline: guestOnline,
			IsAgentOnline: agentOnline,
			IsOnline:      guestOnline || agentOnline,
		}))
	}
}
