package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, secret string) *Codec {
	t.Helper()
	codec, err := NewCodec(secret)
	require.NoError(t, err)
	return codec
}

// issueExpired signs a claim set whose expiry is already in the past, using
// the codec's own secret and claim layout.
func issueExpired(t *testing.T, codec *Codec, claims ClaimSet) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := token.SignedString(codec.secret)
	require.NoError(t, err)
	return signed
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "round-trip-secret")
	want := ClaimSet{UserID: 42, Username: "jmartin", Email: "j.martin@example.com"}

	tok, err := codec.Issue(want)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := codec.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCodecVerifyIdempotent(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "idempotent-secret")
	claims := ClaimSet{UserID: 7, Username: "a", Email: "a@example.com"}

	tok, err := codec.Issue(claims)
	require.NoError(t, err)

	first, err := codec.Verify(tok)
	require.NoError(t, err)
	second, err := codec.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCodecIssueRejectsIllFormedClaims(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "issue-secret")

	cases := []struct {
		name   string
		claims ClaimSet
	}{
		{"zero user id", ClaimSet{Username: "u", Email: "u@example.com"}},
		{"negative user id", ClaimSet{UserID: -1, Username: "u", Email: "u@example.com"}},
		{"empty username", ClaimSet{UserID: 1, Email: "u@example.com"}},
		{"empty email", ClaimSet{UserID: 1, Username: "u"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Issue(tc.claims)
			require.Error(t, err)
		})
	}
}

func TestCodecVerifyExpired(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "expired-secret")
	tok := issueExpired(t, codec, ClaimSet{UserID: 3, Username: "old", Email: "old@example.com"})

	_, err := codec.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestCodec(t, "right-secret")
	verifier := newTestCodec(t, "wrong-secret")

	tok, err := issuer.Issue(ClaimSet{UserID: 9, Username: "u", Email: "u@example.com"})
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecVerifyGarbage(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "garbage-secret")

	for _, tok := range []string{"", "not.a.jwt", "a.b", "....", "Bearer abc"} {
		_, err := codec.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestCodecVerifyMissingClaimFields(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "fields-secret")

	// properly signed and unexpired, but with an empty claim set
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(codec.secret)
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewCodecEmptySecret(t *testing.T) {
	t.Parallel()

	for _, secret := range []string{"", "   "} {
		_, err := NewCodec(secret)
		require.Error(t, err)
	}
}
