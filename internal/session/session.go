package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Authenticator mints and validates browsing-session tokens. A session id
// scopes the cart's storage key; no user identity is involved.
type Authenticator interface {
	NewSessionID() string
	GenerateToken(sessionID string) (string, error)
	ValidateToken(token string) (string, error)
}

type JWTAuthenticator struct {
	secret string
	iss    string
	exp    time.Duration
}

func NewJWTAuthenticator(secret, iss string, exp time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, iss: iss, exp: exp}
}

func (a *JWTAuthenticator) NewSessionID() string {
	return uuid.NewString()
}

// GenerateToken signs a session token carrying the session id as subject.
func (a *JWTAuthenticator) GenerateToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"exp": time.Now().Add(a.exp).Unix(),
		"iat": time.Now().Unix(),
		"nbf": time.Now().Unix(),
		"iss": a.iss,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.secret))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ValidateToken checks the signature and expiry and returns the session id.
func (a *JWTAuthenticator) ValidateToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}
	sessionID, err := claims.GetSubject()
	if err != nil || sessionID == "" {
		return "", fmt.Errorf("session token has no subject")
	}
	return sessionID, nil
}
