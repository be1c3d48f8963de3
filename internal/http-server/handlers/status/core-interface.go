package status

import "HotelCS/entity"

// Core exposes the session registry's read side for status endpoints.
type Core interface {
	IsOnline(identity string, role entity.Role) bool
	CountOnline(role entity.Role) int
	CountTotal() int
}
