package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/senyabanana/talentlink-service/internal/logger"
	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

type actorKey struct{}

// Claims - claims токена, выданного провайдером идентификации.
// Subject содержит ID пользователя.
type Claims struct {
	IsClient     bool `json:"is_client"`
	IsFreelancer bool `json:"is_freelancer"`
	IsStaff      bool `json:"is_staff"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токен и кладет models.Actor в контекст запроса.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "authorization header missing or invalid")
				return
			}

			claims, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
			if err != nil {
				logger.FromContext(r.Context()).Warn("invalid token", "error", err)
				utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid token")
				return
			}

			actor := models.Actor{
				ID:           claims.Subject,
				IsClient:     claims.IsClient,
				IsFreelancer: claims.IsFreelancer,
				IsStaff:      claims.IsStaff,
			}
			ctx := WithActor(r.Context(), actor)
			ctx = logger.WithUserID(ctx, actor.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseToken проверяет подпись HS256 и возвращает claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// ActorFromContext возвращает пользователя, положенного в контекст Auth.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(models.Actor)
	return actor, ok
}

// WithActor кладет пользователя в контекст.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}
