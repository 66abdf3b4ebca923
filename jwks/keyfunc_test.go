package jwks_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andyle182810/apicaller/jwks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyID = "session-signing-key"

type keySetServer struct {
	*httptest.Server

	hits atomic.Int32
}

func newSigningKey(t *testing.T) (*rsa.PrivateKey, jwk.Set) { //nolint:ireturn
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	publicKey, err := jwk.Import(privateKey.PublicKey)
	require.NoError(t, err)

	require.NoError(t, publicKey.Set(jwk.KeyIDKey, testKeyID))
	require.NoError(t, publicKey.Set(jwk.AlgorithmKey, "RS256"))
	require.NoError(t, publicKey.Set(jwk.KeyUsageKey, "sig"))

	keySet := jwk.NewSet()
	require.NoError(t, keySet.AddKey(publicKey))

	return privateKey, keySet
}

func newKeySetServer(t *testing.T, keySet jwk.Set) *keySetServer {
	t.Helper()

	srv := &keySetServer{} //nolint:exhaustruct
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		srv.hits.Add(1)

		w.Header().Set("Content-Type", "application/json")

		payload, err := json.Marshal(keySet)
		assert.NoError(t, err)

		_, err = w.Write(payload)
		assert.NoError(t, err)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func signSessionToken(t *testing.T, key *rsa.PrivateKey, kid string, expiresIn time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user-42",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	token.Header["kid"] = kid

	signed, err := token.SignedString(key)
	require.NoError(t, err)

	return signed
}

func TestNew_RequiresURLs(t *testing.T) {
	t.Parallel()

	kf, err := jwks.New(t.Context(), nil)
	require.ErrorIs(t, err, jwks.ErrNoURLs)
	require.Nil(t, kf)
}

func TestNew_FetchesKeySet(t *testing.T) {
	t.Parallel()

	_, keySet := newSigningKey(t)
	srv := newKeySetServer(t, keySet)

	kf, err := jwks.New(t.Context(), []string{srv.URL}, jwks.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.NotNil(t, kf)
	require.Equal(t, []string{srv.URL}, kf.URLs())
	require.GreaterOrEqual(t, srv.hits.Load(), int32(1))
}

func TestNew_ToleratesMalformedKeySet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"invalid": "response"}`))
	}))
	t.Cleanup(srv.Close)

	kf, err := jwks.New(t.Context(), []string{srv.URL}, jwks.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.NotNil(t, kf)
}

func TestNew_WithOptions(t *testing.T) {
	t.Parallel()

	_, keySet := newSigningKey(t)
	srv := newKeySetServer(t, keySet)

	kf, err := jwks.New(t.Context(), []string{srv.URL},
		jwks.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}), //nolint:exhaustruct
		jwks.WithLogger(zerolog.Nop()),
		jwks.WithRateLimitBurst(10),
		jwks.WithRefreshTimeout(15*time.Second),
		jwks.WithRefreshInterval(30*time.Minute),
		jwks.WithRateLimitWaitMax(time.Second),
	)
	require.NoError(t, err)
	require.NotNil(t, kf)
}

func TestKeyFunc_VerifiesSessionToken(t *testing.T) {
	t.Parallel()

	privateKey, keySet := newSigningKey(t)
	srv := newKeySetServer(t, keySet)

	kf, err := jwks.New(t.Context(), []string{srv.URL}, jwks.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	parsed, err := jwt.Parse(signSessionToken(t, privateKey, testKeyID, time.Hour), kf.Keyfunc.Keyfunc)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	subject, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "user-42", subject)
}

func TestKeyFunc_RejectsForeignKey(t *testing.T) {
	t.Parallel()

	_, keySet := newSigningKey(t)
	srv := newKeySetServer(t, keySet)

	kf, err := jwks.New(t.Context(), []string{srv.URL}, jwks.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	foreignKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = jwt.Parse(signSessionToken(t, foreignKey, testKeyID, time.Hour), kf.Keyfunc.Keyfunc)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestKeyFunc_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	privateKey, keySet := newSigningKey(t)
	srv := newKeySetServer(t, keySet)

	kf, err := jwks.New(t.Context(), []string{srv.URL}, jwks.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	_, err = jwt.Parse(signSessionToken(t, privateKey, testKeyID, -time.Minute), kf.Keyfunc.Keyfunc)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}
