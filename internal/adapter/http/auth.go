package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/neomorfeo/homebase/internal/domain"
)

type contextKey string

const actorKey = contextKey("actor")

// Claims are the token claims issued by the identity provider.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Authenticator resolves bearer tokens into actors.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an Authenticator verifying HS256 tokens signed with secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Actor verifies the token and returns the actor it names. Unknown roles are dropped.
func (a *Authenticator) Actor(token string) (domain.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Actor{}, fmt.Errorf("parsing token: %w", err)
	}
	if claims.Subject == "" {
		return domain.Actor{}, errors.New("token has no subject")
	}

	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, s := range claims.Roles {
		if r, ok := domain.ParseRole(strings.ToLower(s)); ok {
			roles = append(roles, r)
		}
	}
	return domain.NewActor(claims.Subject, roles...), nil
}

// Middleware rejects requests without a valid bearer token and stores the
// resolved actor in the request context.
func (a *Authenticator) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		actor, err := a.Actor(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token expired"
			}
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, msg)
			return
		}

		next(huma.WithValue(ctx, actorKey, actor))
	}
}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the actor stored by Middleware. The zero Actor carries no
// roles, so every guard rejects it.
func ActorFrom(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(actorKey).(domain.Actor)
	return actor
}
