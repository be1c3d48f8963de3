package wstoken

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"HotelCS/entity"
)

func TestIssueAndValidate(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	token := Issue("A1", entity.RoleAgent, t0)

	claims, err := Validate(token, 24*time.Hour, t0.Add(23*time.Hour))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Identity != "A1" {
		t.Fatalf("expected identity A1, got %q", claims.Identity)
	}
	if claims.Role != entity.RoleAgent {
		t.Fatalf("expected agent role, got %q", claims.Role)
	}
	if !claims.IssuedAt.Equal(t0) {
		t.Fatalf("expected issuedAt %v, got %v", t0, claims.IssuedAt)
	}
}

func TestValidate_ExpiredWindow(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	token := Issue("G1", entity.RoleGuest, t0)

	_, err := Validate(token, 24*time.Hour, t0.Add(24*time.Hour+time.Second))
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"too few fields", base64.RawURLEncoding.EncodeToString([]byte("A1:agent"))},
		{"too many fields", base64.RawURLEncoding.EncodeToString([]byte("A:1:agent:123"))},
		{"bad role", base64.RawURLEncoding.EncodeToString([]byte("A1:admin:123"))},
		{"bad timestamp", base64.RawURLEncoding.EncodeToString([]byte("A1:agent:soon"))},
		{"empty identity", base64.RawURLEncoding.EncodeToString([]byte(":agent:123"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.token, 24*time.Hour, time.Now())
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
