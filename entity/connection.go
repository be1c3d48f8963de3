package entity

import (
	"HotelCS/internal/lib/validate"
	"net/http"
)

// AgentConnectRequest asks for WebSocket connection credentials for an agent.
type AgentConnectRequest struct {
	UserID string `json:"user_id" validate:"required,min=1"`
}

func (r *AgentConnectRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}

// GuestConnectRequest asks for WebSocket connection credentials for a guest.
type GuestConnectRequest struct {
	GuestID string `json:"guest_id" validate:"required,min=1"`
}

func (r *GuestConnectRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}

// ConnectionResponse carries everything a client needs to open the
// notification socket.
type ConnectionResponse struct {
	WsURL    string `json:"wsUrl"`
	WsToken  string `json:"wsToken"`
	UserID   string `json:"userId"`
	UserType Role   `json:"userType"`
}

// UserStatusResponse reports a user's online state per role.
type UserStatusResponse struct {
	UserID        string `json:"userId"`
	IsGuestOnline bool   `json:"isGuestOnline"`
	IsAgentOnline bool   `json:"isAgentOnline"`
	IsOnline      bool   `json:"isOnline"`
}

// OnlineStatsResponse reports aggregate connection counts.
type OnlineStatsResponse struct {
	OnlineGuestCount     int `json:"onlineGuestCount"`
	OnlineAgentCount     int `json:"onlineAgentCount"`
	TotalConnectionCount int `json:"totalConnectionCount"`
}
