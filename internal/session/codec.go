package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Codec converts sessions to and from their cookie representation.
type Codec interface {
	Encode(sess *Session) (string, error)
	Decode(artifact string) (*Session, error)
}

// LegacyCodec is the plain base64(JSON) format issued by earlier releases.
// It is reversible but carries no integrity protection.
type LegacyCodec struct{}

// Encode serialises the session and base64 encodes it.
func (LegacyCodec) Encode(sess *Session) (string, error) {
	if err := sess.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("session: marshal: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. Any structural problem yields ErrMalformedArtifact.
func (LegacyCodec) Decode(artifact string) (*Session, error) {
	data, err := decodeStdBase64(artifact)
	if err != nil {
		return nil, ErrMalformedArtifact
	}
	return unmarshalSession(data)
}

// SignedCodec appends an HMAC-SHA256 signature to the encoded payload:
// base64url(json) "." base64url(mac).
type SignedCodec struct {
	secret       []byte
	acceptLegacy bool
}

// NewSignedCodec builds a SignedCodec. When acceptLegacy is set, unsigned
// artifacts from LegacyCodec still decode so existing cookies survive an upgrade.
func NewSignedCodec(secret string, acceptLegacy bool) (*SignedCodec, error) {
	if secret == "" {
		return nil, errors.New("session: signing secret required")
	}
	return &SignedCodec{secret: []byte(secret), acceptLegacy: acceptLegacy}, nil
}

// Encode serialises and signs the session.
func (c *SignedCodec) Encode(sess *Session) (string, error) {
	if err := sess.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("session: marshal: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(data)
	return payload + "." + base64.RawURLEncoding.EncodeToString(c.sign(payload)), nil
}

// Decode verifies the signature and returns the embedded session.
func (c *SignedCodec) Decode(artifact string) (*Session, error) {
	payload, sig, ok := strings.Cut(artifact, ".")
	if !ok {
		// The standard base64 alphabet has no '.', so this can only be a legacy artifact.
		if c.acceptLegacy {
			return LegacyCodec{}.Decode(artifact)
		}
		return nil, ErrMalformedArtifact
	}
	received, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, ErrMalformedArtifact
	}
	if !hmac.Equal(received, c.sign(payload)) {
		return nil, ErrSignatureMismatch
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrMalformedArtifact
	}
	return unmarshalSession(data)
}

// Owns reports whether raw was issued in a session format this codec
// controls, even when it no longer decodes: a signed artifact
// (base64url payload, a single '.', a SHA-256 sized signature), or a legacy
// session document the codec has been told to refuse.
func (c *SignedCodec) Owns(raw string) bool {
	payload, sig, ok := strings.Cut(raw, ".")
	if ok {
		if strings.Contains(sig, ".") {
			return false
		}
		mac, err := base64.RawURLEncoding.DecodeString(sig)
		if err != nil || len(mac) != sha256.Size {
			return false
		}
		_, err = base64.RawURLEncoding.DecodeString(payload)
		return err == nil
	}
	return !c.acceptLegacy && isLegacySessionDocument(raw)
}

func (c *SignedCodec) sign(payload string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(payload))
	return mac.Sum(nil)
}

// NewCodec picks a codec by name: "legacy" or "signed" (the default).
func NewCodec(name, secret string, acceptLegacy bool) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy":
		return LegacyCodec{}, nil
	case "", "signed":
		return NewSignedCodec(secret, acceptLegacy)
	default:
		return nil, fmt.Errorf("session: unknown codec %q", name)
	}
}

func unmarshalSession(data []byte) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, ErrMalformedArtifact
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// isLegacySessionDocument reports whether raw is base64 JSON carrying a
// userId, i.e. a whole session rather than a bare token cookie.
func isLegacySessionDocument(raw string) bool {
	data, err := decodeStdBase64(raw)
	if err != nil {
		return false
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	_, ok := doc["userId"]
	return ok
}

// decodeStdBase64 accepts padded and unpadded standard base64.
func decodeStdBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrMalformedArtifact
	}
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
