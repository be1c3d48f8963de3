package entity

import "fmt"

// Role classifies a connected user as a hotel guest or a support agent.
type Role string

const (
	RoleGuest Role = "guest"
	RoleAgent Role = "agent"
)

// ParseRole converts an externally supplied role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGuest:
		return RoleGuest, nil
	case RoleAgent:
		return RoleAgent, nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}
