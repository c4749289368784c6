package srp

import (
	"context"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/fzdarsky/srp6a/pkg/modint"
	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// PrivateKeyDeriver turns a password into the private key x.
// Only the client ever runs it. The same deriver must be used at
// registration and at login.
type PrivateKeyDeriver interface {
	PrivateKey(ctx context.Context, salt, username, password string) (string, error)
}

// RFC5054Deriver computes x = H(s, H(I ":" p)), the RFC 5054 derivation.
type RFC5054Deriver struct {
	Params *Params
}

// PrivateKey implements PrivateKeyDeriver.
func (d RFC5054Deriver) PrivateKey(ctx context.Context, salt, username, password string) (string, error) {
	s, err := decodeHex("salt", salt)
	if err != nil {
		return "", err
	}

	inner, err := d.Params.Hash(ctx, Text(username+":"+password))
	if err != nil {
		return "", err
	}

	x, err := d.Params.Hash(ctx, s, inner)
	if err != nil {
		return "", err
	}
	return x.Hex(), nil
}

// DefaultPBKDF2Iterations is the iteration count used when PBKDF2Deriver.Iterations is zero.
const DefaultPBKDF2Iterations = 310000

// PBKDF2Deriver stretches the password with PBKDF2 keyed by the parameter
// set's hash: x = PBKDF2(p, s || H(I), iterations, HashLen).
// The hash runs in-process regardless of the Params provider.
type PBKDF2Deriver struct {
	Params     *Params
	Iterations int
}

// PrivateKey implements PrivateKeyDeriver.
func (d PBKDF2Deriver) PrivateKey(ctx context.Context, salt, username, password string) (string, error) {
	s, err := decodeHex("salt", salt)
	if err != nil {
		return "", err
	}

	iterations := d.Iterations
	if iterations == 0 {
		iterations = DefaultPBKDF2Iterations
	}
	if iterations < 0 {
		return "", protocol.NewConfigurationError(fmt.Sprintf("invalid PBKDF2 iteration count %d", iterations))
	}

	alg, ok := algorithms[d.Params.alg]
	if !ok {
		return "", protocol.NewConfigurationError(fmt.Sprintf("unknown hash algorithm %q", d.Params.alg))
	}

	hI, err := d.Params.Hash(ctx, Text(username))
	if err != nil {
		return "", err
	}

	pbkdfSalt := append(s.Bytes(), hI.Bytes()...)
	key := pbkdf2.Key(Text(password).Bytes(), pbkdfSalt, iterations, d.Params.hashLen, alg.new)

	return modint.FromBytes(key).Hex(), nil
}
