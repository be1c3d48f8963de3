package webhook

import (
	"HotelCS/internal/lib/api/response"
	"HotelCS/internal/lib/sl"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Chatwoot accepts webhook deliveries from the Chatwoot instance. Upstream
// delivery is fire-and-forget, so the answer is always an opaque envelope:
// undecodable bodies get a 400, everything else is accepted regardless of
// whether the event ends up being routed.
func Chatwoot(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.webhook")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logger.Warn("failed to decode webhook body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		handler.ProcessWebhook(payload)

		render.JSON(w, r, response.Ok("accepted"))
	}
}
