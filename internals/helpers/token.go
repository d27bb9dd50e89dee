package helper

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"specsnexus_backend/internals/configs"
)

const AccessTokenTTL = 30 * time.Minute

// CreateAccessToken mints an HS256 access token for the given subject.
// role is "member" or "officer"; the auth middlewares enforce it.
func CreateAccessToken(subjectID uint, role string) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("missing JWT secret")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(subjectID), 10),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
