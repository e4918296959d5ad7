package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niyo-hr/niyo-web/internal/session"
)

func TestSessionEncodeDecode(t *testing.T) {
	var out bytes.Buffer
	globals := &Globals{Out: &out}
	flags := CodecFlags{Codec: "signed", Secret: "s3cret", AcceptLegacy: true}

	enc := &SessionEncodeCmd{CodecFlags: flags, UserID: "1", Email: "a@b.co", Role: session.RoleAdmin, AccessToken: "A"}
	require.NoError(t, enc.Run(context.Background(), globals))

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, session.CookieName+"="))
	value := strings.TrimPrefix(strings.SplitN(line, ";", 2)[0], session.CookieName+"=")

	out.Reset()
	dec := &SessionDecodeCmd{CodecFlags: flags, Value: value}
	require.NoError(t, dec.Run(context.Background(), globals))

	var sess session.Session
	require.NoError(t, json.Unmarshal(out.Bytes(), &sess))
	assert.Equal(t, "1", sess.UserID)
	assert.Equal(t, "A", sess.AccessToken)
}

func TestSessionEncodeAcceptsAnyRole(t *testing.T) {
	var cli struct {
		Session SessionCmd `cmd:""`
	}
	parser, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"session", "encode", "--codec=legacy", "--user-id=1", "--role=manager"})
	require.NoError(t, err)
	assert.Equal(t, "manager", cli.Session.Encode.Role)

	var out bytes.Buffer
	require.NoError(t, cli.Session.Encode.Run(context.Background(), &Globals{Out: &out}))
	value := strings.TrimPrefix(strings.SplitN(strings.TrimSpace(out.String()), ";", 2)[0], session.CookieName+"=")
	sess, err := session.LegacyCodec{}.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "manager", sess.Role)
}

func TestSessionDecodeRejectsForeignSignature(t *testing.T) {
	var out bytes.Buffer
	globals := &Globals{Out: &out}
	enc := &SessionEncodeCmd{CodecFlags: CodecFlags{Codec: "signed", Secret: "one"}, UserID: "1"}
	require.NoError(t, enc.Run(context.Background(), globals))
	value := strings.TrimPrefix(strings.SplitN(strings.TrimSpace(out.String()), ";", 2)[0], session.CookieName+"=")

	dec := &SessionDecodeCmd{CodecFlags: CodecFlags{Codec: "signed", Secret: "two"}, Value: value}
	assert.Error(t, dec.Run(context.Background(), &Globals{Out: &bytes.Buffer{}}))
}

func TestSessionEncodeRequiresSecretForSignedCodec(t *testing.T) {
	enc := &SessionEncodeCmd{CodecFlags: CodecFlags{Codec: "signed"}, UserID: "1"}
	assert.Error(t, enc.Run(context.Background(), &Globals{Out: &bytes.Buffer{}}))
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	cmd := &PingCmd{BaseURL: srv.URL, Timeout: 2 * time.Second}
	require.NoError(t, cmd.Run(context.Background(), &Globals{Out: &out}))
	assert.Contains(t, out.String(), "answered 204")
}

func TestPingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cmd := &PingCmd{BaseURL: url, Timeout: 2 * time.Second}
	assert.Error(t, cmd.Run(context.Background(), &Globals{Out: &bytes.Buffer{}}))
}
