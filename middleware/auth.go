package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

const jwtClaimTokenID = "jti"

// TokenChecker сообщает, отозван ли токен с данным jti (logout).
type TokenChecker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticate проверяет Bearer токен (HS256) и кладёт его claims в контекст запроса.
// С checker != nil отклоняет токены без jti и отозванные токены.
func Authenticate(jwtSecret []byte, checker TokenChecker) func(http.Handler) http.Handler {
	return authenticate(jwtSecret, checker, bearerToken)
}

// AuthenticateWebSocket - то же, но токен можно передать и в ?token=,
// браузерный WebSocket не умеет слать заголовок Authorization.
func AuthenticateWebSocket(jwtSecret []byte, checker TokenChecker) func(http.Handler) http.Handler {
	return authenticate(jwtSecret, checker, func(r *http.Request) string {
		if token := bearerToken(r); token != "" {
			return token
		}
		return strings.TrimSpace(r.URL.Query().Get("token"))
	})
}

func bearerToken(r *http.Request) string {
	tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(tokenString)
}

func authenticate(jwtSecret []byte, checker TokenChecker, extract func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extract(r)
			if tokenString == "" {
				unauthenticated(w)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return jwtSecret, nil
			})
			if err != nil || !token.Valid {
				unauthenticated(w)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			if _, err = GetUserIDFromContext(ctx); err != nil {
				unauthenticated(w)
				return
			}

			if checker != nil {
				tokenID, _ := claims[jwtClaimTokenID].(string)
				if tokenID == "" {
					unauthenticated(w)
					return
				}
				revoked, err := checker.IsTokenRevoked(ctx, tokenID)
				if err != nil {
					slog.ErrorContext(ctx, "Failed to check token revocation", slog.Any("error", err))
					writeMessage(w, http.StatusInternalServerError, "Server Error")
					return
				}
				if revoked {
					unauthenticated(w)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID кладёт в контекст claims с указанным пользователем.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userContextKey, jwt.MapClaims{jwtClaimUserID: float64(userID)})
}

// GetTokenFromContext возвращает jti и срок действия текущего токена.
func GetTokenFromContext(ctx context.Context) (string, time.Time, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", time.Time{}, errNoClaims
	}
	tokenID, _ := claims[jwtClaimTokenID].(string)
	if tokenID == "" {
		return "", time.Time{}, errors.New("token has no jti claim")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", time.Time{}, errors.New("token has no exp claim")
	}
	return tokenID, time.Unix(int64(exp), 0), nil
}

func unauthenticated(w http.ResponseWriter) {
	writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
