// Package modint provides the immutable arbitrary-precision integer used by the SRP-6a algebra.
//
// An Int optionally remembers a byte width. The width is taken from the
// input when a value is decoded from hex or bytes, or set explicitly by
// padding, and is honoured by Hex and Bytes so that leading zero bytes
// survive a round-trip. Arithmetic results carry no width and encode at
// their natural length. Equality compares numeric values only.
package modint

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// Int is an immutable non-negative integer. The zero value is 0.
type Int struct {
	v     *big.Int
	width int
}

// ByteSource supplies cryptographically strong random bytes.
type ByteSource interface {
	RandomBytes(n int) ([]byte, error)
}

var (
	// Zero is the integer 0.
	Zero = Int{}
	// One is the integer 1.
	One = FromInt64(1)
)

// FromInt64 returns x as an Int. Negative inputs are mapped to their absolute value.
func FromInt64(x int64) Int {
	v := big.NewInt(x)
	return Int{v: v.Abs(v)}
}

// FromBig returns a copy of x as an Int. Negative inputs are mapped to their absolute value.
func FromBig(x *big.Int) Int {
	if x == nil {
		return Zero
	}
	return Int{v: new(big.Int).Abs(x)}
}

// FromBytes interprets b as a big-endian unsigned integer. The width is len(b).
func FromBytes(b []byte) Int {
	return Int{v: new(big.Int).SetBytes(b), width: len(b)}
}

// FromHex decodes a hex string (either case, no prefix, odd digit counts allowed).
// The width is the number of bytes the digits occupy.
func FromHex(s string) (Int, error) {
	if s == "" {
		return Zero, protocol.NewEncodingError("empty hex string", nil)
	}
	for i, r := range s {
		if !isHexDigit(r) {
			return Zero, protocol.NewEncodingError(fmt.Sprintf("invalid hex character %q at offset %d", r, i), nil)
		}
	}

	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return Zero, protocol.NewEncodingError("invalid hex string", nil)
	}

	return Int{v: v, width: (len(s) + 1) / 2}, nil
}

// MustFromHex is like FromHex but panics on malformed input. Intended for constants.
func MustFromHex(s string) Int {
	x, err := FromHex(strings.Join(strings.Fields(s), ""))
	if err != nil {
		panic(err)
	}
	return x
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// Random draws n random bytes from src and interprets them as a big-endian integer.
// No modular reduction is applied.
func Random(src ByteSource, n int) (Int, error) {
	if n <= 0 {
		return Zero, fmt.Errorf("random integer length must be positive, got %d", n)
	}

	b, err := src.RandomBytes(n)
	if err != nil {
		return Zero, fmt.Errorf("failed to read random bytes: %w", err)
	}
	if len(b) != n {
		return Zero, fmt.Errorf("random source returned %d bytes, want %d", len(b), n)
	}

	return FromBytes(b), nil
}

func (x Int) big() *big.Int {
	if x.v == nil {
		return new(big.Int)
	}
	return x.v
}

// Big returns a copy of x as a *big.Int.
func (x Int) Big() *big.Int {
	return new(big.Int).Set(x.big())
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return Int{v: new(big.Int).Add(x.big(), y.big())}
}

// Multiply returns x * y.
func (x Int) Multiply(y Int) Int {
	return Int{v: new(big.Int).Mul(x.big(), y.big())}
}

// Mod returns x mod m. m must be positive.
func (x Int) Mod(m Int) Int {
	return Int{v: new(big.Int).Mod(x.big(), m.big())}
}

// ModSub returns (x - y) mod m in [0, m). m must be positive.
func (x Int) ModSub(y, m Int) Int {
	d := new(big.Int).Sub(x.big(), y.big())
	return Int{v: d.Mod(d, m.big())}
}

// ModPow returns x^e mod m. m must be positive.
func (x Int) ModPow(e, m Int) Int {
	return Int{v: new(big.Int).Exp(x.big(), e.big(), m.big())}
}

// Equal reports whether x and y have the same numeric value.
func (x Int) Equal(y Int) bool {
	return x.big().Cmp(y.big()) == 0
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	return x.big().Cmp(y.big())
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool {
	return x.big().Sign() == 0
}

// BitLen returns the number of significant bits of x.
func (x Int) BitLen() int {
	return x.big().BitLen()
}

// ByteLen returns the encoded byte length of x: its width if set, otherwise
// the minimal number of bytes (at least 1).
func (x Int) ByteLen() int {
	if n := naturalLen(x.big()); n > x.width {
		return n
	}
	return x.width
}

func naturalLen(v *big.Int) int {
	if n := (v.BitLen() + 7) / 8; n > 0 {
		return n
	}
	return 1
}

// Xor returns the byte-wise XOR of x and y. Both must have the same ByteLen.
// The result has the same width.
func (x Int) Xor(y Int) (Int, error) {
	if x.ByteLen() != y.ByteLen() {
		return Zero, protocol.NewEncodingError(
			fmt.Sprintf("xor operands differ in length: %d and %d bytes", x.ByteLen(), y.ByteLen()), nil)
	}

	xb, yb := x.Bytes(), y.Bytes()
	out := make([]byte, len(xb))
	for i := range out {
		out[i] = xb[i] ^ yb[i]
	}

	return FromBytes(out), nil
}

// Bytes returns the big-endian encoding of x, ByteLen bytes long.
func (x Int) Bytes() []byte {
	return x.big().FillBytes(make([]byte, x.ByteLen()))
}

// PaddedBytes returns x left-zero-padded to exactly length bytes.
// It fails if x does not fit.
func (x Int) PaddedBytes(length int) ([]byte, error) {
	if n := (x.big().BitLen() + 7) / 8; n > length {
		return nil, protocol.NewEncodingError(
			fmt.Sprintf("value needs %d bytes, exceeds padding length %d", n, length), nil)
	}
	return x.big().FillBytes(make([]byte, length)), nil
}

// Pad returns x with its width set to length bytes.
func (x Int) Pad(length int) (Int, error) {
	b, err := x.PaddedBytes(length)
	if err != nil {
		return Zero, err
	}
	return FromBytes(b), nil
}

// Hex returns the lowercase hex encoding of x, two digits per byte, no prefix.
func (x Int) Hex() string {
	return fmt.Sprintf("%x", x.Bytes())
}

// String implements fmt.Stringer.
func (x Int) String() string {
	return x.Hex()
}
