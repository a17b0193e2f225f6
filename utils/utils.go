package utils

import (
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost - стоимость хеширования паролей; тесты понижают её до bcrypt.MinCost.
var BcryptCost = bcrypt.DefaultCost

const (
	ClaimUserID  = "user_id"
	ClaimTokenID = "jti"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsValidEmail принимает только голый адрес вида local@domain, без display name.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// GenerateJWT выпускает HS256 токен с claims user_id, jti, iat и exp.
// jti нужен для отзыва токена при logout.
func GenerateJWT(secret []byte, userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		ClaimUserID:  userID,
		ClaimTokenID: uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
