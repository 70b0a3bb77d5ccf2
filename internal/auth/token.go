package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of issued tokens.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned by Verify for every rejected token. Callers
// never learn whether a token was malformed, forged, or expired.
var ErrInvalidToken = errors.New("invalid token")

// ClaimSet is the identity payload embedded in a token.
type ClaimSet struct {
	UserID   int64
	Username string
	Email    string
}

type tokenClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed identity tokens with a shared secret.
type Codec struct {
	secret []byte
}

// NewCodec builds a Codec from the configured secret. An empty secret is a
// configuration fault; callers should treat it as fatal at startup.
func NewCodec(secret string) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth secret is required")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Issue signs the claim set into a token expiring TokenTTL from now.
func (c *Codec) Issue(claims ClaimSet) (string, error) {
	if claims.UserID <= 0 {
		return "", errors.New("claim set requires a positive user id")
	}
	if strings.TrimSpace(claims.Username) == "" || strings.TrimSpace(claims.Email) == "" {
		return "", errors.New("claim set requires username and email")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses and validates a token, returning the embedded claim set.
// Any failure, structural or cryptographic, collapses to ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (ClaimSet, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return ClaimSet{}, ErrInvalidToken
	}

	if claims.UserID <= 0 || claims.Username == "" || claims.Email == "" {
		return ClaimSet{}, ErrInvalidToken
	}

	return ClaimSet{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
