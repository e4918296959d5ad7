package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/niyo-hr/niyo-web/internal/session"
)

// SessionCmd groups the cookie helpers.
type SessionCmd struct {
	Encode SessionEncodeCmd `cmd:"" help:"Print a session cookie value for a principal"`
	Decode SessionDecodeCmd `cmd:"" help:"Decode a session cookie value"`
}

// CodecFlags selects the cookie codec.
type CodecFlags struct {
	Codec        string `help:"Cookie codec (signed or legacy)." default:"signed" enum:"signed,legacy" env:"SESSION_CODEC"`
	Secret       string `help:"Session signing secret." env:"SESSION_SECRET"`
	AcceptLegacy bool   `help:"Accept unsigned legacy cookies when decoding." default:"true" negatable:"" env:"SESSION_ACCEPT_LEGACY"`
}

func (f CodecFlags) codec() (session.Codec, error) {
	return session.NewCodec(f.Codec, f.Secret, f.AcceptLegacy)
}

// SessionEncodeCmd builds a cookie value, mainly for local testing against a backend.
type SessionEncodeCmd struct {
	CodecFlags `embed:""`

	UserID       string        `name:"user-id" help:"Principal id." required:""`
	Email        string        `help:"Principal email."`
	Role         string        `help:"Principal role, as sent by the backend." default:"employee"`
	Name         string        `help:"Display name."`
	Organization string        `help:"Organization id."`
	AccessToken  string        `name:"access-token" help:"Backend access token."`
	RefreshToken string        `name:"refresh-token" help:"Backend refresh token."`
	MaxAge       time.Duration `name:"max-age" help:"Cookie lifetime, printed for reference." default:"168h"`
}

func (c *SessionEncodeCmd) Run(ctx context.Context, globals *Globals) error {
	codec, err := c.codec()
	if err != nil {
		return err
	}
	value, err := codec.Encode(&session.Session{
		UserID:         c.UserID,
		Email:          c.Email,
		Role:           c.Role,
		Name:           c.Name,
		OrganizationID: c.Organization,
		AccessToken:    c.AccessToken,
		RefreshToken:   c.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	globals.logger().Debug("encoded session", "codec", c.Codec, "max_age", c.MaxAge)
	_, err = fmt.Fprintf(globals.out(), "%s=%s; Max-Age=%d\n", session.CookieName, value, int(c.MaxAge/time.Second))
	return err
}

// SessionDecodeCmd prints the principal carried by a cookie value.
type SessionDecodeCmd struct {
	CodecFlags `embed:""`

	Value string `arg:"" help:"Cookie value."`
}

func (c *SessionDecodeCmd) Run(ctx context.Context, globals *Globals) error {
	codec, err := c.codec()
	if err != nil {
		return err
	}
	sess, err := codec.Decode(c.Value)
	if err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	enc := json.NewEncoder(globals.out())
	enc.SetIndent("", "  ")
	return enc.Encode(sess)
}
