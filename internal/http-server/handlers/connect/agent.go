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

// Agent hands an agent frontend the URL and token for its notification
// socket.
func Agent(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.connect")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req := &entity.AgentConnectRequest{}
		if err := render.Bind(r, req); err != nil {
			logger.Warn("invalid agent connect request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		resp := handler.IssueConnection(req.UserID, entity.RoleAgent)
		logger.Info("agent connection issued", slog.String("user_id", req.UserID))

		render.JSON(w, r, response.Ok(resp))
	}
}
