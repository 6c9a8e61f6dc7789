package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenEnvKey is where the CLI expects the bearer credential.
const DefaultTokenEnvKey = "ARGUEHUB_TOKEN"

// TokenSource supplies the opaque bearer credential consumed once at connect
// time. The second return is false when no credential is available, which
// callers treat as a precondition failure.
type TokenSource interface {
	Token() (string, bool)
}

type staticTokenSource struct {
	token string
}

func (s staticTokenSource) Token() (string, bool) {
	return s.token, s.token != ""
}

// Static wraps a literal token string.
func Static(token string) TokenSource {
	return staticTokenSource{token: token}
}

type envTokenSource struct {
	key string
}

func (s envTokenSource) Token() (string, bool) {
	value := os.Getenv(s.key)
	return value, value != ""
}

// FromEnv reads the token from the environment on every lookup. An empty key
// falls back to DefaultTokenEnvKey.
func FromEnv(key string) TokenSource {
	if key == "" {
		key = DefaultTokenEnvKey
	}
	return envTokenSource{key: key}
}

// CheckNotExpired rejects a JWT already past its exp claim. The signature is
// not verified here; only the server holds the secret and remains the
// authority. Tokens without an exp claim pass, and so do opaque non-JWT
// tokens, since the server will reject anything invalid at the handshake.
func CheckNotExpired(tokenString string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if now.After(exp.Time) {
		return fmt.Errorf("token expired at %s", exp.Time.Format(time.RFC3339))
	}
	return nil
}
