package middleware

import (
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/startlistclub/flightjournal/internal/i18n"
	"github.com/startlistclub/flightjournal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func authApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", VerifyToken(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c) + "@" + GetClubID(c))
	})
	app.Get("/instructors", VerifyToken(testSecret), AuthorizeRole(domain.RoleInstructor), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestVerifyToken(t *testing.T) {
	app := authApp()

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JournalClaims{
		UserID:           "p1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JournalClaims{Roles: []string{"pilot"}}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, domain.JournalClaims{UserID: "p1", Roles: []string{"pilot"}}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", fiber.StatusUnauthorized},
		{"no scheme", testutil.SignToken(t, testSecret, "p1", domain.RolePilot), fiber.StatusUnauthorized},
		{"other algorithm", "Bearer " + hs512, fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + testutil.SignToken(t, "other", "p1", domain.RolePilot), fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"no user id", "Bearer " + noUser, fiber.StatusUnauthorized},
		{"valid", "Bearer " + testutil.SignToken(t, testSecret, "p1", domain.RolePilot), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "p1@test-club", string(body))
			}
		})
	}
}

func TestAuthorizeRole(t *testing.T) {
	app := authApp()

	req := httptest.NewRequest("GET", "/instructors", nil)
	req.Header.Set("Authorization", "Bearer "+testutil.SignToken(t, testSecret, "p1", domain.RolePilot))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/instructors", nil)
	req.Header.Set("Authorization", "Bearer "+testutil.SignToken(t, testSecret, "i1", domain.RolePilot, domain.RoleInstructor))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIdempotencyMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	var calls int32
	app := fiber.New()
	app.Post("/records", func(c *fiber.Ctx) error {
		c.Locals(UserIDKey, "i1")
		return c.Next()
	}, IdempotencyMiddleware(client, time.Hour), func(c *fiber.Ctx) error {
		n := atomic.AddInt32(&calls, 1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": n})
	})

	send := func(correlationID string) (int, string, string) {
		req := httptest.NewRequest("POST", "/records", nil)
		if correlationID != "" {
			req.Header.Set("X-Correlation-ID", correlationID)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body), resp.Header.Get("X-Idempotent-Replay")
	}

	status, body, replay := send("abc")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `{"call":1}`, body)
	assert.Empty(t, replay)

	// the response is stored asynchronously
	require.Eventually(t, func() bool {
		return mr.Exists("idempotency:i1:abc")
	}, 2*time.Second, 10*time.Millisecond)

	status, body, replay = send("abc")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `{"call":1}`, body)
	assert.Equal(t, "true", replay)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, body, _ = send("")
	assert.JSONEq(t, `{"call":2}`, body)
}

func TestLocale(t *testing.T) {
	bundle, err := i18n.LoadEmbedded()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", Locale(bundle), func(c *fiber.Ctx) error {
		return c.SendString(GetLocale(c))
	})

	tests := []struct {
		target, header, want string
	}{
		{"/", "", "en-US"},
		{"/", "da,en;q=0.5", "da-DK"},
		{"/?lang=da-DK", "en-US", "da-DK"},
		{"/?lang=en", "da", "en-US"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.target, nil)
		if tt.header != "" {
			req.Header.Set("Accept-Language", tt.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tt.want, string(body), tt.target+" "+tt.header)
		assert.Equal(t, tt.want, resp.Header.Get("Content-Language"))
	}
}
