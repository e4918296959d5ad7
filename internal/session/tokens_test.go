package session

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestParseLegacyArtifact(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want TokenSource
	}{
		{"structured", b64(`{"accessToken":"a","refreshToken":"r"}`), StructuredTokens{AccessToken: "a", RefreshToken: "r"}},
		{"structured access only", b64(`{"accessToken":"a"}`), StructuredTokens{AccessToken: "a"}},
		{"structured wrong types", b64(`{"accessToken":5}`), StructuredTokens{}},
		{"json string", b64(`"bare-token"`), OpaqueToken("bare-token")},
		{"not base64", "raw.jwt.value", OpaqueToken("raw.jwt.value")},
		{"base64 but not json", b64("plain"), OpaqueToken(b64("plain"))},
		{"json null", b64("null"), OpaqueToken(b64("null"))},
		{"json number", b64("42"), StructuredTokens{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLegacyArtifact(tc.raw))
		})
	}
}

func TestResolveTokensPrefersStructuredSession(t *testing.T) {
	store := NewMemoryStore(nil)
	require.NoError(t, store.Set(context.Background(), &Session{UserID: "1", AccessToken: "a", RefreshToken: "r"}, 0))

	assert.Equal(t, Tokens{AccessToken: "a", RefreshToken: "r"}, ResolveTokens(context.Background(), store))
}

func TestResolveTokensSessionWithoutTokens(t *testing.T) {
	store := NewMemoryStore(nil)
	require.NoError(t, store.Set(context.Background(), &Session{UserID: "1"}, 0))

	assert.Equal(t, Tokens{}, ResolveTokens(context.Background(), store))
}

func TestResolveTokensLegacyFallback(t *testing.T) {
	ctx := context.Background()

	store := NewMemoryStore(nil)
	store.SetRaw(b64(`{"accessToken":"a","refreshToken":"r"}`))
	assert.Equal(t, Tokens{AccessToken: "a", RefreshToken: "r"}, ResolveTokens(ctx, store))

	store.SetRaw(b64(`"opaque"`))
	assert.Equal(t, Tokens{AccessToken: "opaque"}, ResolveTokens(ctx, store))

	store.SetRaw("eyJhbGciOi.raw-token")
	assert.Equal(t, Tokens{AccessToken: "eyJhbGciOi.raw-token"}, ResolveTokens(ctx, store))
}

func TestResolveTokensNoCookie(t *testing.T) {
	assert.Equal(t, Tokens{}, ResolveTokens(context.Background(), NewMemoryStore(nil)))
	assert.Equal(t, Tokens{}, ResolveTokens(context.Background(), nil))
}

func TestResolveTokensIgnoresSignedArtifactFromOtherSecret(t *testing.T) {
	oldCodec, err := NewSignedCodec("old-secret", true)
	require.NoError(t, err)
	artifact, err := oldCodec.Encode(&Session{UserID: "1", Email: "a@b.co", AccessToken: "a", RefreshToken: "r"})
	require.NoError(t, err)

	codec, err := NewSignedCodec("new-secret", true)
	require.NoError(t, err)
	store := NewMemoryStore(codec)
	store.SetRaw(artifact)

	assert.Nil(t, store.Get(context.Background()))
	assert.Equal(t, Tokens{}, ResolveTokens(context.Background(), store))
}

func TestResolveTokensIgnoresTamperedSignedArtifact(t *testing.T) {
	codec, err := NewSignedCodec("secret", true)
	require.NoError(t, err)
	artifact, err := codec.Encode(&Session{UserID: "1", AccessToken: "a"})
	require.NoError(t, err)
	forged, err := LegacyCodec{}.Encode(&Session{UserID: "2", Role: RoleAdmin, AccessToken: "a"})
	require.NoError(t, err)
	payload := strings.TrimRight(strings.NewReplacer("+", "-", "/", "_").Replace(forged), "=")
	_, sig, _ := strings.Cut(artifact, ".")

	store := NewMemoryStore(codec)
	store.SetRaw(payload + "." + sig)
	assert.Equal(t, Tokens{}, ResolveTokens(context.Background(), store))
}

func TestResolveTokensRefusedLegacySession(t *testing.T) {
	legacy, err := LegacyCodec{}.Encode(&Session{UserID: "1", AccessToken: "a", RefreshToken: "r"})
	require.NoError(t, err)

	strict, err := NewSignedCodec("secret", false)
	require.NoError(t, err)
	store := NewMemoryStore(strict)
	store.SetRaw(legacy)
	assert.Nil(t, store.Get(context.Background()))
	assert.Equal(t, Tokens{}, ResolveTokens(context.Background(), store))

	// Token-only cookies from older releases still resolve.
	store.SetRaw(b64(`{"accessToken":"a","refreshToken":"r"}`))
	assert.Equal(t, Tokens{AccessToken: "a", RefreshToken: "r"}, ResolveTokens(context.Background(), store))
	store.SetRaw("eyJhbGciOi.raw-token")
	assert.Equal(t, Tokens{AccessToken: "eyJhbGciOi.raw-token"}, ResolveTokens(context.Background(), store))
}

func TestSignedCodecOwns(t *testing.T) {
	codec, err := NewSignedCodec("secret", false)
	require.NoError(t, err)
	artifact, err := codec.Encode(&Session{UserID: "1"})
	require.NoError(t, err)

	assert.True(t, codec.Owns(artifact))
	assert.True(t, codec.Owns(b64(`{"userId":"1"}`)))
	assert.False(t, codec.Owns(b64(`{"accessToken":"a"}`)))
	assert.False(t, codec.Owns("header.payload.signature"))
	assert.False(t, codec.Owns("eyJhbGciOi.raw-token"))

	lenient, err := NewSignedCodec("secret", true)
	require.NoError(t, err)
	assert.False(t, lenient.Owns(b64(`{"userId":"1"}`)))
}
