package session

import (
	"context"
	"encoding/json"
)

// Tokens are the backend credentials attached to authenticated calls.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// TokenSource is what a legacy cookie value turned out to contain.
// It is either StructuredTokens or OpaqueToken.
type TokenSource interface {
	Tokens() Tokens
	tokenSource()
}

// StructuredTokens is a base64 JSON object carrying named tokens.
type StructuredTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Tokens implements TokenSource.
func (s StructuredTokens) Tokens() Tokens {
	return Tokens{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken}
}

func (StructuredTokens) tokenSource() {}

// OpaqueToken is a bare access token, either stored as a base64 JSON string
// or as the raw cookie value itself.
type OpaqueToken string

// Tokens implements TokenSource.
func (o OpaqueToken) Tokens() Tokens {
	return Tokens{AccessToken: string(o)}
}

func (OpaqueToken) tokenSource() {}

// ParseLegacyArtifact classifies a raw cookie value written by older releases.
func ParseLegacyArtifact(raw string) TokenSource {
	data, err := decodeStdBase64(raw)
	if err != nil {
		return OpaqueToken(raw)
	}
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return OpaqueToken(raw)
	}
	switch v := probe.(type) {
	case string:
		return OpaqueToken(v)
	case map[string]any:
		var st StructuredTokens
		st.AccessToken, _ = v["accessToken"].(string)
		st.RefreshToken, _ = v["refreshToken"].(string)
		return st
	case nil:
		return OpaqueToken(raw)
	default:
		return StructuredTokens{}
	}
}

// artifactOwner is implemented by codecs that recognise their own artifacts
// after decoding has failed (wrong key, tampering, refused format).
type artifactOwner interface {
	Owns(raw string) bool
}

// codecStore is implemented by stores that expose their codec.
type codecStore interface {
	Codec() Codec
}

// ResolveTokens finds the tokens for the current caller. A decoded session is
// authoritative. Only when the cookie does not decode as a session is it
// classified as a legacy token artifact, and never when the store's codec
// owns the value: a rejected session artifact is not a bearer token.
func ResolveTokens(ctx context.Context, store Store) Tokens {
	if store == nil {
		return Tokens{}
	}
	if sess := store.Get(ctx); sess != nil {
		return Tokens{AccessToken: sess.AccessToken, RefreshToken: sess.RefreshToken}
	}
	raw, ok := store.Raw(ctx)
	if !ok {
		return Tokens{}
	}
	if cs, ok := store.(codecStore); ok {
		if owner, ok := cs.Codec().(artifactOwner); ok && owner.Owns(raw) {
			return Tokens{}
		}
	}
	return ParseLegacyArtifact(raw).Tokens()
}
