package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "inkwell_session"
	sessionLifetime   = 7 * 24 * time.Hour
)

// issueSession signs a session token for the user and sets it as an
// HttpOnly cookie. source labels the metrics counter ("register"/"login").
func (s *Server) issueSession(c *fiber.Ctx, userID uint, source string) error {
	token, err := s.signSessionToken(userID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HTTPOnly: true,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	observability.SessionsIssued.WithLabelValues(source).Inc()
	return nil
}

// signSessionToken creates the signed session token for the given user ID.
func (s *Server) signSessionToken(userID uint) (string, error) {
	if s.config.SessionSecret == "" {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "inkwell",
		"exp": now.Add(sessionLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SessionSecret))
}

// clearSession revokes the current session token and expires the cookie.
func (s *Server) clearSession(c *fiber.Ctx) {
	if token := c.Cookies(sessionCookieName); token != "" {
		s.revokeSessionToken(c.Context(), token)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}

// revokeSessionToken records the token's jti in Redis until the token would
// have expired on its own. Without Redis, clearing the cookie is the best
// we can do.
func (s *Server) revokeSessionToken(ctx context.Context, tokenString string) {
	if s.redis == nil {
		return
	}

	claims, err := s.parseSessionClaims(tokenString)
	if err != nil {
		return
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}

	ttl := sessionLifetime
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return
	}

	if err := s.redis.Set(ctx, revocationKey(jti), "1", ttl).Err(); err != nil {
		observability.RedisErrors.WithLabelValues("set").Inc()
	}
}

// currentUserID resolves the session cookie to a user ID, or 0 for an
// anonymous request. A revoked or malformed token counts as anonymous.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}

	tokenString := c.Cookies(sessionCookieName)
	if tokenString == "" {
		return 0
	}

	claims, err := s.parseSessionClaims(tokenString)
	if err != nil {
		return 0
	}

	if jti, _ := claims["jti"].(string); jti != "" && s.redis != nil {
		revoked, redisErr := s.redis.Exists(c.Context(), revocationKey(jti)).Result()
		if redisErr != nil {
			observability.RedisErrors.WithLabelValues("exists").Inc()
		} else if revoked > 0 {
			return 0
		}
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0
	}
	return uint(userID)
}

func (s *Server) parseSessionClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}

func revocationKey(jti string) string {
	return fmt.Sprintf("session:revoked:%s", jti)
}

// LoadSession resolves the session cookie once per request, storing the
// user ID and the loaded user in Locals for handlers and templates.
func (s *Server) LoadSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := s.currentUserID(c)
		if userID == 0 {
			return c.Next()
		}

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			// Stale session for a deleted user; treat as anonymous.
			return c.Next()
		}

		c.Locals("userID", userID)
		c.Locals("currentUser", user)

		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}
