package srp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

const testSalt = "0123456789abcdef0123456789abcdef"

func TestRFC5054Deriver(t *testing.T) {
	ctx := context.Background()
	p := newParams(t, srp.SHA256, srp.Group2048)
	d := srp.RFC5054Deriver{Params: p}

	x1, err := d.PrivateKey(ctx, testSalt, "alice", "password123")
	require.NoError(t, err)
	x2, err := d.PrivateKey(ctx, testSalt, "alice", "password123")
	require.NoError(t, err)

	assert.Equal(t, x1, x2)
	assert.Len(t, x1, 2*p.HashLen())

	other, err := d.PrivateKey(ctx, testSalt, "bob", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, x1, other)

	_, err = d.PrivateKey(ctx, "salt", "alice", "password123")
	assert.ErrorIs(t, err, protocol.ErrEncoding)
}

func TestPBKDF2Deriver(t *testing.T) {
	ctx := context.Background()
	p := newParams(t, srp.SHA256, srp.Group2048)
	d := srp.PBKDF2Deriver{Params: p, Iterations: 1000}

	x1, err := d.PrivateKey(ctx, testSalt, "alice", "password123")
	require.NoError(t, err)
	x2, err := d.PrivateKey(ctx, testSalt, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, x1, x2)
	assert.Len(t, x1, 2*p.HashLen())

	rfc, err := srp.RFC5054Deriver{Params: p}.PrivateKey(ctx, testSalt, "alice", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, rfc, x1)

	fewer, err := srp.PBKDF2Deriver{Params: p, Iterations: 999}.PrivateKey(ctx, testSalt, "alice", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, x1, fewer)

	otherUser, err := d.PrivateKey(ctx, testSalt, "bob", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, x1, otherUser)
}

func TestPBKDF2Deriver_Errors(t *testing.T) {
	ctx := context.Background()
	p := newParams(t, srp.SHA256, srp.Group1024)

	_, err := srp.PBKDF2Deriver{Params: p, Iterations: -1}.PrivateKey(ctx, testSalt, "alice", "pw")
	assert.ErrorIs(t, err, protocol.ErrConfiguration)

	_, err = srp.PBKDF2Deriver{Params: p, Iterations: 1}.PrivateKey(ctx, "zz", "alice", "pw")
	assert.ErrorIs(t, err, protocol.ErrEncoding)
}

func TestPBKDF2Deriver_Handshake(t *testing.T) {
	ctx := context.Background()
	p := newParams(t, srp.SHA512, srp.Group3072)
	client := srp.NewClient(p)
	server := srp.NewServer(p)
	d := srp.PBKDF2Deriver{Params: p, Iterations: 1000}

	salt, err := client.GenerateSalt()
	require.NoError(t, err)
	x, err := d.PrivateKey(ctx, salt, "alice", "hunter2")
	require.NoError(t, err)
	v, err := client.DeriveVerifier(x)
	require.NoError(t, err)

	clientEph, err := client.GenerateEphemeral()
	require.NoError(t, err)
	serverEph, err := server.GenerateEphemeral(v)
	require.NoError(t, err)

	login, err := d.PrivateKey(ctx, salt, "alice", "hunter2")
	require.NoError(t, err)

	clientSession, err := client.DeriveSession(ctx, clientEph.Secret, serverEph.Public, salt, "alice", login)
	require.NoError(t, err)
	serverSession, err := server.DeriveSession(ctx, serverEph.Secret, clientEph.Public, salt, "alice", v, clientSession.Proof)
	require.NoError(t, err)

	assert.Equal(t, clientSession.Key, serverSession.Key)
	assert.NoError(t, client.VerifySession(ctx, clientEph.Public, clientSession, serverSession.Proof))
}
