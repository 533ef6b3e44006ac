package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// JournalClaims represents the custom JWT claims issued to club members
type JournalClaims struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name,omitempty"`
	Roles  []string `json:"roles"`
	ClubID string   `json:"club_id"`
	jwt.RegisteredClaims
}
