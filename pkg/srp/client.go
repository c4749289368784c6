package srp

import (
	"context"

	"github.com/fzdarsky/srp6a/pkg/modint"
	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// Client is the password-holding side of the handshake.
// It keeps no per-handshake state and is safe for concurrent use.
type Client struct {
	params *Params
	opts   options
}

// NewClient creates a Client over params.
func NewClient(params *Params, opts ...Option) *Client {
	return &Client{
		params: params,
		opts:   newOptions(opts),
	}
}

// Params returns the parameter set the client was built with.
func (c *Client) Params() *Params {
	return c.params
}

// GenerateSalt returns HashLen random bytes as hex.
func (c *Client) GenerateSalt() (string, error) {
	s, err := c.params.randomSecret()
	if err != nil {
		return "", err
	}
	return s.Hex(), nil
}

// DeriveVerifier returns v = g^x mod N for the private key x.
func (c *Client) DeriveVerifier(privateKey string) (string, error) {
	x, err := decodeHex("private key", privateKey)
	if err != nil {
		return "", err
	}
	p := c.params
	return p.g.ModPow(x, p.n).Hex(), nil
}

// GenerateEphemeral draws a fresh secret a and returns it with A = g^a mod N.
func (c *Client) GenerateEphemeral() (protocol.Ephemeral, error) {
	a, err := c.params.randomSecret()
	if err != nil {
		logFailure(c.opts.logger, protocol.PartyClient, "generate_ephemeral", err)
		return protocol.Ephemeral{}, err
	}

	return protocol.Ephemeral{
		Secret: a.Hex(),
		Public: c.publicEphemeral(a).Hex(),
	}, nil
}

// PublicEphemeral recomputes A from an existing secret a.
func (c *Client) PublicEphemeral(secret string) (string, error) {
	a, err := decodeHex("client secret ephemeral", secret)
	if err != nil {
		return "", err
	}
	return c.publicEphemeral(a).Hex(), nil
}

func (c *Client) publicEphemeral(a modint.Int) modint.Int {
	return c.params.g.ModPow(a, c.params.n)
}

// DeriveSession computes the shared key K and the client proof M1 from the
// server's public ephemeral B. The returned Session.Proof is M1, to be sent to
// the server. A B equal to 0 mod N is rejected with Party protocol.PartyServer.
func (c *Client) DeriveSession(
	ctx context.Context,
	secret, serverPublic, salt, username, privateKey string,
) (protocol.Session, error) {
	session, err := c.deriveSession(ctx, secret, serverPublic, salt, username, privateKey)
	if err != nil {
		logFailure(c.opts.logger, protocol.PartyClient, "derive_session", err)
		return protocol.Session{}, err
	}

	c.opts.logger.Debug("SRP client session derived", map[string]any{
		"hash_algorithm": string(c.params.alg),
		"prime_group":    string(c.params.group),
	})
	return session, nil
}

func (c *Client) deriveSession(
	ctx context.Context,
	secret, serverPublic, salt, username, privateKey string,
) (protocol.Session, error) {
	p := c.params

	a, err := decodeHex("client secret ephemeral", secret)
	if err != nil {
		return protocol.Session{}, err
	}
	B, err := decodeHex("server public ephemeral", serverPublic)
	if err != nil {
		return protocol.Session{}, err
	}
	salted, err := decodeHex("salt", salt)
	if err != nil {
		return protocol.Session{}, err
	}
	x, err := decodeHex("private key", privateKey)
	if err != nil {
		return protocol.Session{}, err
	}

	if B.Mod(p.n).IsZero() {
		return protocol.Session{}, protocol.NewInvalidPublicEphemeralError(protocol.PartyServer, "B mod N == 0")
	}
	if B.BitLen() > p.width*8 {
		return protocol.Session{}, protocol.NewInvalidPublicEphemeralError(protocol.PartyServer, "B is wider than N")
	}

	A := c.publicEphemeral(a)

	u, err := p.scramble(ctx, A, B)
	if err != nil {
		return protocol.Session{}, err
	}

	// S = (B - k*g^x)^(a + u*x) mod N
	kgx := p.k.Multiply(p.g.ModPow(x, p.n))
	S := B.ModSub(kgx, p.n).ModPow(a.Add(u.Multiply(x)), p.n)

	K, M, err := p.keyAndProof(ctx, S, A, B, salted, username)
	if err != nil {
		return protocol.Session{}, err
	}

	return protocol.Session{
		Key:   K.Hex(),
		Proof: M.Hex(),
	}, nil
}

// VerifySession checks the server proof P against H(A, M1, K) computed from
// the client's own public ephemeral and session. A mismatch is reported with
// Party protocol.PartyServer.
func (c *Client) VerifySession(ctx context.Context, clientPublic string, session protocol.Session, serverProof string) error {
	err := c.verifySession(ctx, clientPublic, session, serverProof)
	if err != nil {
		logFailure(c.opts.logger, protocol.PartyClient, "verify_session", err)
	}
	return err
}

func (c *Client) verifySession(ctx context.Context, clientPublic string, session protocol.Session, serverProof string) error {
	p := c.params

	A, err := decodeHex("client public ephemeral", clientPublic)
	if err != nil {
		return err
	}
	M, err := decodeHex("client session proof", session.Proof)
	if err != nil {
		return err
	}
	K, err := decodeHex("session key", session.Key)
	if err != nil {
		return err
	}
	actual, err := decodeHex("server session proof", serverProof)
	if err != nil {
		return err
	}

	expected, err := p.serverProof(ctx, A, M, K)
	if err != nil {
		return err
	}

	if !p.proofMatches(expected, actual) {
		return protocol.NewInvalidSessionProofError(protocol.PartyServer)
	}
	return nil
}
