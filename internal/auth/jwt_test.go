package auth

import (
	"testing"

	"stockdesk-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	secret := "test-secret-at-least-32-characters!!"
	user := &models.User{ID: 42, Email: "ops@example.com", Role: models.RoleManager}

	signed, err := GenerateToken(secret, user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims := &JWTCustomClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("ParseWithClaims: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("token must be valid")
	}
	if claims.UserID != 42 || claims.Email != "ops@example.com" || claims.Role != models.RoleManager {
		t.Errorf("claims round trip mismatch: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Error("expiry and issued-at must be set")
	}

	// A different secret must not verify.
	_, err = jwt.ParseWithClaims(signed, &JWTCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("some-other-secret-32-characters!!!!"), nil
	})
	if err == nil {
		t.Error("token signed with another secret must fail verification")
	}
}
