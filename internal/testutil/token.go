package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/startlistclub/flightjournal/internal/domain"
)

// SignToken issues an HS256 access token for the given user and roles
func SignToken(t *testing.T, secret, userID string, roles ...string) string {
	t.Helper()
	claims := domain.JournalClaims{
		UserID: userID,
		Name:   "Test " + userID,
		Roles:  roles,
		ClubID: "test-club",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
