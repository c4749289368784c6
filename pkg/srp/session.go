package srp

import (
	"context"
	"crypto/subtle"

	"golang.org/x/sync/errgroup"

	"github.com/fzdarsky/srp6a/pkg/modint"
)

// scramble computes u = H(PAD(A), PAD(B)).
func (p *Params) scramble(ctx context.Context, A, B modint.Int) (modint.Int, error) {
	paddedA, err := p.Pad(A)
	if err != nil {
		return modint.Zero, err
	}
	paddedB, err := p.Pad(B)
	if err != nil {
		return modint.Zero, err
	}
	return p.Hash(ctx, paddedA, paddedB)
}

// keyAndProof derives K = H(S) and M = H(H(N) xor H(g), H(I), s, A, B, K).
// The four independent hashes run concurrently.
func (p *Params) keyAndProof(ctx context.Context, S, A, B, salt modint.Int, username string) (K, M modint.Int, err error) {
	var hN, hG, hI modint.Int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		K, err = p.Hash(gctx, S)
		return err
	})
	g.Go(func() (err error) {
		hN, err = p.Hash(gctx, p.n)
		return err
	})
	g.Go(func() (err error) {
		hG, err = p.Hash(gctx, p.g)
		return err
	})
	g.Go(func() (err error) {
		hI, err = p.Hash(gctx, Text(username))
		return err
	})
	if err := g.Wait(); err != nil {
		return modint.Zero, modint.Zero, err
	}

	// Same hash function on both sides, so the lengths always agree.
	hNG, err := hN.Xor(hG)
	if err != nil {
		return modint.Zero, modint.Zero, err
	}

	M, err = p.Hash(ctx, hNG, hI, salt, A, B, K)
	if err != nil {
		return modint.Zero, modint.Zero, err
	}

	return K, M, nil
}

// serverProof computes P = H(A, M, K).
func (p *Params) serverProof(ctx context.Context, A, M, K modint.Int) (modint.Int, error) {
	return p.Hash(ctx, A, M, K)
}

// proofMatches compares a received proof against the expected one in constant
// time over the hash width. A proof that does not fit the width never matches.
func (p *Params) proofMatches(expected, actual modint.Int) bool {
	want, err := expected.PaddedBytes(p.hashLen)
	if err != nil {
		return false
	}
	got, err := actual.PaddedBytes(p.hashLen)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}
