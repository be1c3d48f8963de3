package status

import (
	"HotelCS/entity"
	"HotelCS/internal/lib/api/response"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// OnlineStats reports aggregate connection counts for operational
// visibility.
func OnlineStats(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(entity.OnlineStatsResponse{
			OnlineGuestCount:     handler.CountOnline(entity.RoleGuest),
			OnlineAgentCount:     handler.CountOnline(entity.RoleAgent),
			TotalConnectionCount: handler.CountTotal(),
		}))
	}
}
