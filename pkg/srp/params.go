// Package srp implements the SRP-6a password-authenticated key exchange (RFC 5054 arithmetic).
//
// A Params value is derived once per (hash algorithm, prime group) pair and
// shared read-only by any number of Server and Client values. All public
// operations take and return lowercase hex strings.
package srp

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/fzdarsky/srp6a/pkg/modint"
	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// Operand is a hash input. modint.Int and Text implement it.
type Operand interface {
	Bytes() []byte
}

// Text is a raw string hash operand. It is NFKC-normalized and encoded as UTF-8.
type Text string

// Bytes implements Operand.
func (t Text) Bytes() []byte {
	return []byte(norm.NFKC.String(string(t)))
}

// Params is the immutable parameter set {N, g, k, H, PAD} for one hash algorithm and prime group.
type Params struct {
	alg      HashAlgorithm
	group    PrimeGroup
	provider Provider
	n        modint.Int
	g        modint.Int
	k        modint.Int
	hashLen  int
	width    int
}

// NewParams derives the parameter set for alg and group. It computes
// k = H(PAD(N), PAD(g)) through provider.
func NewParams(ctx context.Context, provider Provider, alg HashAlgorithm, group PrimeGroup) (*Params, error) {
	if provider == nil {
		return nil, protocol.NewConfigurationError("crypto provider is required")
	}
	if !alg.Valid() {
		return nil, protocol.NewConfigurationError(fmt.Sprintf("unknown hash algorithm %q", alg))
	}
	grp, ok := groups[group]
	if !ok {
		return nil, protocol.NewConfigurationError(fmt.Sprintf("unknown prime group %q", group))
	}

	p := &Params{
		alg:      alg,
		group:    group,
		provider: provider,
		n:        grp.n,
		g:        grp.g,
		hashLen:  alg.Size(),
		width:    (grp.n.BitLen() + 7) / 8,
	}

	paddedN, err := p.Pad(p.n)
	if err != nil {
		return nil, err
	}
	paddedG, err := p.Pad(p.g)
	if err != nil {
		return nil, err
	}
	if p.k, err = p.Hash(ctx, paddedN, paddedG); err != nil {
		return nil, fmt.Errorf("failed to compute multiplier k: %w", err)
	}

	return p, nil
}

// HashAlgorithm returns the hash algorithm name.
func (p *Params) HashAlgorithm() HashAlgorithm { return p.alg }

// PrimeGroup returns the prime group name.
func (p *Params) PrimeGroup() PrimeGroup { return p.group }

// N returns the safe prime.
func (p *Params) N() modint.Int { return p.n }

// G returns the generator.
func (p *Params) G() modint.Int { return p.g }

// K returns the multiplier k = H(PAD(N), PAD(g)).
func (p *Params) K() modint.Int { return p.k }

// HashLen returns the hash output length in bytes.
func (p *Params) HashLen() int { return p.hashLen }

// Width returns the byte length of N, the width PAD pads to.
func (p *Params) Width() int { return p.width }

// Provider returns the crypto provider the parameter set was built with.
func (p *Params) Provider() Provider { return p.provider }

// Pad left-zero-pads x to the byte length of N.
func (p *Params) Pad(x modint.Int) (modint.Int, error) {
	return x.Pad(p.width)
}

// Hash returns H over the byte concatenation of ops. The result keeps the
// full digest width, leading zero bytes included.
func (p *Params) Hash(ctx context.Context, ops ...Operand) (modint.Int, error) {
	var buf bytes.Buffer
	for _, op := range ops {
		buf.Write(op.Bytes())
	}

	digest, err := p.provider.Digest(ctx, p.alg, buf.Bytes())
	if err != nil {
		return modint.Zero, protocol.NewProviderError(fmt.Sprintf("%s digest failed", p.alg), err)
	}
	if len(digest) != p.hashLen {
		return modint.Zero, protocol.NewProviderError(
			fmt.Sprintf("%s digest returned %d bytes, want %d", p.alg, len(digest), p.hashLen), nil)
	}

	return modint.FromBytes(digest), nil
}

// Info returns a printable description of the parameter set.
func (p *Params) Info() protocol.GroupInfo {
	return protocol.GroupInfo{
		HashAlgorithm: string(p.alg),
		PrimeGroup:    string(p.group),
		N:             p.n.Hex(),
		G:             p.g.Hex(),
		K:             p.k.Hex(),
		HashBytes:     p.hashLen,
		PadBytes:      p.width,
	}
}

// randomSecret draws a fresh ephemeral secret of HashLen bytes.
func (p *Params) randomSecret() (modint.Int, error) {
	x, err := modint.Random(p.provider, p.hashLen)
	if err != nil {
		return modint.Zero, protocol.NewProviderError("random secret generation failed", err)
	}
	return x, nil
}

// decodeHex decodes a hex argument, naming it in the error.
func decodeHex(name, s string) (modint.Int, error) {
	x, err := modint.FromHex(s)
	if err != nil {
		return modint.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	return x, nil
}
