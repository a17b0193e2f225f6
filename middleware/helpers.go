package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
)

const jwtClaimUserID = "user_id"

var errNoClaims = errors.New("user claims not found in context")

// GetUserIDFromContext достаёт id пользователя из claims, положенных Authenticate.
// jwt.MapClaims декодирует числа как float64, строковый id тоже принимается.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errNoClaims
	}

	var userID int
	switch v := claims[jwtClaimUserID].(type) {
	case nil:
		return 0, fmt.Errorf("token has no %q claim", jwtClaimUserID)
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%q claim is not an integer: %v", jwtClaimUserID, v)
		}
		userID = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%q claim is not numeric: %w", jwtClaimUserID, err)
		}
		userID = parsed
	default:
		return 0, fmt.Errorf("unexpected type %T for %q claim", v, jwtClaimUserID)
	}

	if userID <= 0 {
		return 0, fmt.Errorf("invalid user id %d in %q claim", userID, jwtClaimUserID)
	}
	return userID, nil
}
