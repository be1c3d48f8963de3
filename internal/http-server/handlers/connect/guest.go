package connect

import (
	"HotelCS/entity"
	"HotelCS/internal/lib/api/response"
	"HotelCS/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Guest hands a guest frontend the URL and token for its notification
// socket.
func Guest(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.connect")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req := &entity.GuestConnectRequest{}
		if err := render.Bind(r, req); err != nil {
			logger.Warn("invalid guest connect request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		resp := handler.IssueConnection(req.GuestID, entity.RoleGuest)
		logger.Info("guest connection issued", slog.String("guest_id", req.GuestID))

		render.JSON(w, r, response.Ok(resp))
	}
}
