package srp

import (
	"context"
	"crypto/rand"
	"fmt"
)

//go:generate go tool mockgen -destination=srpmock/provider.go -package=srpmock github.com/fzdarsky/srp6a/pkg/srp Provider

// Provider is the platform crypto capability used by the SRP engine:
// a hash function keyed by algorithm and a secure random byte source.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Digest hashes data with the named algorithm.
	Digest(ctx context.Context, alg HashAlgorithm, data []byte) ([]byte, error)
	// RandomBytes returns n cryptographically strong random bytes.
	RandomBytes(n int) ([]byte, error)
}

// SystemProvider implements Provider with the in-process hash implementations
// from the algorithm table and crypto/rand.
type SystemProvider struct{}

// NewSystemProvider returns the default in-process Provider.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{}
}

// Digest implements Provider.
func (*SystemProvider) Digest(_ context.Context, alg HashAlgorithm, data []byte) ([]byte, error) {
	a, ok := algorithms[alg]
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm %q", alg)
	}

	h := a.new()
	h.Write(data)
	return h.Sum(nil), nil
}

// RandomBytes implements Provider.
func (*SystemProvider) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}
