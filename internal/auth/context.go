package auth

import "github.com/gin-gonic/gin"

// identityKey is the gin context key the gate stores identities under. It is
// unexported so handlers go through IdentityFrom instead of the raw context.
const identityKey = "listinghub/auth.identity"

// Identity is the verified per-request identity handed to route handlers.
// FullName and EmailVerified are enrichment fields; the gate leaves them
// zero-valued and downstream code may fill them from the account store.
type Identity struct {
	ID            int64
	Username      string
	Email         string
	FullName      string
	EmailVerified bool
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity attached by the gate, if any. The second
// return is false for anonymous requests.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
