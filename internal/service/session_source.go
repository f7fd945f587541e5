package service

import (
	"context"

	"comicdash/internal/platform/authclient"
)

type ctxKey int

const tokenKey ctxKey = 0

// WithToken stashes the request's bearer token so the session source can see
// it downstream of the middleware.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token the middleware attached, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// SessionSource adapts the auth client to the store's SessionSource: the
// "current session" is whatever bearer token rode in on the request context.
type SessionSource struct {
	auth *authclient.Client
}

func NewSessionSource(auth *authclient.Client) *SessionSource {
	return &SessionSource{auth: auth}
}

// CurrentUserID resolves the context's token to an auth user id. A missing or
// rejected token means "no session" (ok=false), not an error.
func (s *SessionSource) CurrentUserID(ctx context.Context) (string, bool, error) {
	token, ok := TokenFromContext(ctx)
	if !ok {
		return "", false, nil
	}
	user, err := s.auth.GetUser(ctx, token)
	if err != nil {
		if authclient.IsUnauthorized(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return user.ID, true, nil
}
