package query

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opmodel/mfe/internal/output"
)

// TokenFunc supplies a bearer token. An empty token means no Authorization header.
type TokenFunc func(ctx context.Context) (string, error)

// StaticToken always returns token.
func StaticToken(token string) TokenFunc {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// FileToken reads the locally persisted token from path on every call.
// A missing file means no token.
func FileToken(path string) TokenFunc {
	return func(context.Context) (string, error) {
		if path == "" {
			return "", nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", nil
			}
			return "", fmt.Errorf("reading token file: %w", err)
		}
		token := strings.TrimSpace(string(data))
		warnIfExpired(token)
		return token, nil
	}
}

// warnIfExpired logs a warning when token is a JWT past its exp claim.
// The token is still sent; the backend stays the authority.
func warnIfExpired(token string) {
	if token == "" {
		return
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		// Opaque token.
		return
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		output.Warn("persisted auth token has expired", "expired_at", claims.ExpiresAt.Format(time.RFC3339))
	}
}

// TokenExpiry returns the exp claim of a JWT, if present.
func TokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
