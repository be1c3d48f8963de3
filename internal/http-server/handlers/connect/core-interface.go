package connect

import "HotelCS/entity"

// Core issues connection credentials for the notification socket.
type Core interface {
	IssueConnection(identity string, role entity.Role) entity.ConnectionResponse
}
