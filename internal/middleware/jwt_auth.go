package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/startlistclub/flightjournal/internal/domain"
)

// Context keys for storing token claims
const (
	UserIDKey   = "userID"
	UserNameKey = "userName"
	RolesKey    = "roles"
	ClubIDKey   = "club_id"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

// VerifyToken validates the HS256 bearer token and stores its claims in Locals
func VerifyToken(jwtSecret string) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return []byte(jwtSecret), nil }

	return func(c *fiber.Ctx) error {
		raw, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !found || raw == "" {
			return unauthorized(c, "Missing authorization token")
		}

		claims := &domain.JournalClaims{}
		token, err := parser.ParseWithClaims(raw, claims, keyFunc)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}
		if !token.Valid || claims.UserID == "" {
			return unauthorized(c, "Invalid token claims")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserNameKey, claims.Name)
		c.Locals(RolesKey, claims.Roles)
		c.Locals(ClubIDKey, claims.ClubID)
		return c.Next()
	}
}

// AuthorizeRole lets the request through when the token carries any of allowedRoles
func AuthorizeRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		held, ok := c.Locals(RolesKey).([]string)
		if !ok {
			return unauthorized(c, "No roles found in token")
		}
		if slices.ContainsFunc(held, func(role string) bool { return slices.Contains(allowedRoles, role) }) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "Insufficient permissions",
			"required_roles": allowedRoles,
		})
	}
}

// GetUserID returns the authenticated user id, "" before VerifyToken ran
func GetUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

// GetClubID returns the club the token was issued for
func GetClubID(c *fiber.Ctx) string {
	id, _ := c.Locals(ClubIDKey).(string)
	return id
}
