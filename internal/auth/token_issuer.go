package auth

import (
	"strconv"
	"time"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long issued admin tokens stay valid.
const TokenTTL = 24 * time.Hour

// TokenIssuer signs JWT access tokens for admin surface logins. Tokens carry
// the "uid" and "role" claims the auth middleware requires.
type TokenIssuer struct {
	signedKey    []byte
	signedMethod jwt.SigningMethod
}

// NewTokenIssuer creates a token issuer signing with HMAC-SHA256.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		signedKey:    []byte(secret),
		signedMethod: jwt.SigningMethodHS256,
	}
}

// Issue signs a token for the given user. Returns the token string and its
// lifetime in seconds.
func (g *TokenIssuer) Issue(user *models.User) (string, int64, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":  strconv.FormatUint(uint64(user.ID), 10),
		"role": user.Role,
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(g.signedMethod, claims)
	signed, err := token.SignedString(g.signedKey)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(TokenTTL.Seconds()), nil
}
