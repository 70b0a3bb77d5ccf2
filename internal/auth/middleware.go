package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// bearerPrefix is matched case-sensitively, trailing space included.
const bearerPrefix = "Bearer "

type gateState int

const (
	stateNoHeader gateState = iota
	stateMalformedHeader
	stateTokenRejected
	stateAuthenticated
)

// RequireAuth gates a route group on a valid bearer token. Requests without
// one are rejected with 401 before any handler runs.
func RequireAuth(codec *Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, state := resolve(c, codec)
		switch state {
		case stateNoHeader:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization required"})
		case stateMalformedHeader:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "malformed authorization header"})
		case stateTokenRejected:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
		case stateAuthenticated:
			setIdentity(c, identity)
			c.Next()
		}
	}
}

// OptionalAuth attaches an identity when a valid bearer token is presented
// and otherwise lets the request through anonymous. It never rejects.
func OptionalAuth(codec *Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, state := resolve(c, codec); state == stateAuthenticated {
			setIdentity(c, identity)
		}
		c.Next()
	}
}

// resolve reads the Authorization header and classifies the request. It is
// the single evaluation path shared by both gate policies; verification
// happens at most once per request and the result is never cached.
func resolve(c *gin.Context, codec *Codec) (Identity, gateState) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return Identity{}, stateNoHeader
	}

	token := header[len(bearerPrefix):]
	if strings.TrimSpace(token) == "" {
		return Identity{}, stateMalformedHeader
	}

	claims, err := codec.Verify(token)
	if err != nil {
		return Identity{}, stateTokenRejected
	}

	return Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, stateAuthenticated
}
