package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// SessionCookie is the name of the cookie that carries the session token.
const SessionCookie = "primex_session"

// ErrInvalidSession is returned by Parse for a missing, expired, tampered or
// foreign token.
var ErrInvalidSession = errors.New("invalid or expired session")

// SessionManager issues and verifies signed session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewSessionManager creates a manager signing with secret. An empty secret
// is replaced by a random one, which invalidates sessions on restart.
func NewSessionManager(secret string, ttl time.Duration, logger *slog.Logger) (*SessionManager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		key = []byte(base64.RawURLEncoding.EncodeToString(buf))
		logger.Warn("SESSION_SECRET is not set; using ephemeral in-memory secret")
	}
	return &SessionManager{secret: key, ttl: ttl, clock: clockwork.NewRealClock()}, nil
}

// TTL returns how long issued sessions stay valid.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for a logged-in session.
func (m *SessionManager) Issue(s Session) (string, error) {
	if !s.LoggedIn {
		return "", errors.New("cannot issue token for a logged-out session")
	}
	now := m.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   s.Username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a token and returns the session it carries.
func (m *SessionManager) Parse(tokenString string) (Session, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clock.Now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidSession
	}
	if claims.Subject == "" {
		return Session{}, ErrInvalidSession
	}
	return Session{LoggedIn: true, Username: claims.Subject}, nil
}
