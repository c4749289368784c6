package srp

import (
	"context"

	"github.com/fzdarsky/srp6a/pkg/modint"
	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// Server is the verifier-holding side of the handshake.
// It keeps no per-handshake state and is safe for concurrent use.
type Server struct {
	params *Params
	opts   options
}

// NewServer creates a Server over params.
func NewServer(params *Params, opts ...Option) *Server {
	return &Server{
		params: params,
		opts:   newOptions(opts),
	}
}

// Params returns the parameter set the server was built with.
func (s *Server) Params() *Params {
	return s.params
}

// GenerateEphemeral draws a fresh secret b and returns it with B = (k*v + g^b) mod N.
// The verifier is only hex-decoded; a bogus verifier surfaces later as a proof mismatch.
func (s *Server) GenerateEphemeral(verifier string) (protocol.Ephemeral, error) {
	v, err := decodeHex("verifier", verifier)
	if err != nil {
		return protocol.Ephemeral{}, err
	}

	b, err := s.params.randomSecret()
	if err != nil {
		logFailure(s.opts.logger, protocol.PartyServer, "generate_ephemeral", err)
		return protocol.Ephemeral{}, err
	}

	return protocol.Ephemeral{
		Secret: b.Hex(),
		Public: s.publicEphemeral(b, v).Hex(),
	}, nil
}

// PublicEphemeral recomputes B from an existing secret b and verifier.
func (s *Server) PublicEphemeral(secret, verifier string) (string, error) {
	b, err := decodeHex("server secret ephemeral", secret)
	if err != nil {
		return "", err
	}
	v, err := decodeHex("verifier", verifier)
	if err != nil {
		return "", err
	}
	return s.publicEphemeral(b, v).Hex(), nil
}

// publicEphemeral computes B = (k*v + g^b) mod N.
func (s *Server) publicEphemeral(b, v modint.Int) modint.Int {
	p := s.params
	return p.k.Multiply(v).Add(p.g.ModPow(b, p.n)).Mod(p.n)
}

// DeriveSession verifies the client's proof M1 and, on success, returns the
// shared key K and the server proof P = H(A, M1, K).
//
// B is recomputed from secret and verifier, so the verifier must not change
// between GenerateEphemeral and DeriveSession for the same handshake.
// Failures caused by the client's input are *protocol.Error values with
// Party set to protocol.PartyClient.
func (s *Server) DeriveSession(
	ctx context.Context,
	secret, clientPublic, salt, username, verifier, clientProof string,
) (protocol.Session, error) {
	session, err := s.deriveSession(ctx, secret, clientPublic, salt, username, verifier, clientProof)
	if err != nil {
		logFailure(s.opts.logger, protocol.PartyServer, "derive_session", err)
		return protocol.Session{}, err
	}

	s.opts.logger.Debug("SRP server session derived", map[string]any{
		"hash_algorithm": string(s.params.alg),
		"prime_group":    string(s.params.group),
	})
	return session, nil
}

func (s *Server) deriveSession(
	ctx context.Context,
	secret, clientPublic, salt, username, verifier, clientProof string,
) (protocol.Session, error) {
	p := s.params

	b, err := decodeHex("server secret ephemeral", secret)
	if err != nil {
		return protocol.Session{}, err
	}
	A, err := decodeHex("client public ephemeral", clientPublic)
	if err != nil {
		return protocol.Session{}, err
	}
	salted, err := decodeHex("salt", salt)
	if err != nil {
		return protocol.Session{}, err
	}
	v, err := decodeHex("verifier", verifier)
	if err != nil {
		return protocol.Session{}, err
	}
	proof, err := decodeHex("client session proof", clientProof)
	if err != nil {
		return protocol.Session{}, err
	}

	B := s.publicEphemeral(b, v)

	if A.Mod(p.n).IsZero() {
		return protocol.Session{}, protocol.NewInvalidPublicEphemeralError(protocol.PartyClient, "A mod N == 0")
	}
	if A.BitLen() > p.width*8 {
		return protocol.Session{}, protocol.NewInvalidPublicEphemeralError(protocol.PartyClient, "A is wider than N")
	}

	u, err := p.scramble(ctx, A, B)
	if err != nil {
		return protocol.Session{}, err
	}

	// S = (A * v^u mod N)^b mod N
	S := A.Multiply(v.ModPow(u, p.n)).Mod(p.n).ModPow(b, p.n)

	K, M, err := p.keyAndProof(ctx, S, A, B, salted, username)
	if err != nil {
		return protocol.Session{}, err
	}

	if !p.proofMatches(M, proof) {
		return protocol.Session{}, protocol.NewInvalidSessionProofError(protocol.PartyClient)
	}

	P, err := p.serverProof(ctx, A, M, K)
	if err != nil {
		return protocol.Session{}, err
	}

	return protocol.Session{
		Key:   K.Hex(),
		Proof: P.Hex(),
	}, nil
}
