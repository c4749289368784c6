package modint_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/modint"
	"github.com/fzdarsky/srp6a/pkg/protocol"
)

type fixedSource struct {
	b   []byte
	err error
}

func (f fixedSource) RandomBytes(int) ([]byte, error) { return f.b, f.err }

func TestFromHex(t *testing.T) {
	tests := []struct {
		in      string
		hex     string
		byteLen int
	}{
		{in: "0", hex: "00", byteLen: 1},
		{in: "00", hex: "00", byteLen: 1},
		{in: "abc", hex: "0abc", byteLen: 2},
		{in: "ABCD", hex: "abcd", byteLen: 2},
		{in: "0001", hex: "0001", byteLen: 2},
		{in: "000000ff", hex: "000000ff", byteLen: 4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			x, err := modint.FromHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, x.Hex())
			assert.Equal(t, tt.byteLen, x.ByteLen())
			assert.Len(t, x.Bytes(), tt.byteLen)
		})
	}
}

func TestFromHex_Rejects(t *testing.T) {
	for _, in := range []string{"", "0x12", "-12", "+12", "12 34", "g1", "12\n"} {
		t.Run(in, func(t *testing.T) {
			_, err := modint.FromHex(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, protocol.ErrEncoding)
		})
	}
}

func TestMustFromHex(t *testing.T) {
	x := modint.MustFromHex("0102 0304\n0506")
	assert.Equal(t, "010203040506", x.Hex())

	assert.Panics(t, func() { modint.MustFromHex("xyz") })
}

func TestFromBytes_KeepsWidth(t *testing.T) {
	x := modint.FromBytes([]byte{0, 0, 1})
	assert.Equal(t, "000001", x.Hex())
	assert.True(t, x.Equal(modint.One))

	assert.Equal(t, "00", modint.FromBytes(nil).Hex())
}

func TestArithmetic(t *testing.T) {
	seven := modint.FromInt64(7)
	five := modint.FromInt64(5)
	eleven := modint.FromInt64(11)

	assert.Equal(t, int64(12), seven.Add(five).Big().Int64())
	assert.Equal(t, int64(35), seven.Multiply(five).Big().Int64())
	assert.Equal(t, int64(2), seven.Multiply(five).Mod(eleven).Big().Int64())
	assert.Equal(t, int64(9), five.ModSub(seven, eleven).Big().Int64())
	assert.Equal(t, int64(2), seven.ModSub(five, eleven).Big().Int64())
	assert.Equal(t, int64(10), seven.ModPow(five, eleven).Big().Int64())

	assert.True(t, modint.Zero.IsZero())
	assert.True(t, eleven.Mod(eleven).IsZero())
	assert.Equal(t, -1, five.Cmp(seven))
	assert.Equal(t, 0, five.Cmp(modint.FromBig(big.NewInt(5))))
	assert.Equal(t, 4, eleven.BitLen())
}

func TestArithmetic_DropsWidth(t *testing.T) {
	x := modint.MustFromHex("00000001")
	assert.Equal(t, "02", x.Add(modint.One).Hex())
}

func TestFromBig_Copies(t *testing.T) {
	b := big.NewInt(42)
	x := modint.FromBig(b)
	b.SetInt64(1)

	assert.Equal(t, int64(42), x.Big().Int64())
	assert.True(t, modint.FromBig(nil).IsZero())
}

func TestXor(t *testing.T) {
	a := modint.MustFromHex("f00f")
	b := modint.MustFromHex("0ff0")

	x, err := a.Xor(b)
	require.NoError(t, err)
	assert.Equal(t, "ffff", x.Hex())

	same, err := a.Xor(a)
	require.NoError(t, err)
	assert.Equal(t, "0000", same.Hex())

	_, err = a.Xor(modint.MustFromHex("ff"))
	assert.ErrorIs(t, err, protocol.ErrEncoding)
}

func TestPaddedBytes(t *testing.T) {
	x := modint.FromInt64(0x0102)

	b, err := x.PaddedBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1, 2}, b)

	_, err = x.PaddedBytes(1)
	assert.ErrorIs(t, err, protocol.ErrEncoding)

	padded, err := modint.MustFromHex("00000102").Pad(2)
	require.NoError(t, err)
	assert.Equal(t, "0102", padded.Hex())
}

func TestRandom(t *testing.T) {
	x, err := modint.Random(fixedSource{b: []byte{0, 0, 7}}, 3)
	require.NoError(t, err)
	assert.Equal(t, "000007", x.Hex())

	_, err = modint.Random(fixedSource{b: []byte{1}}, 3)
	assert.Error(t, err)

	_, err = modint.Random(fixedSource{err: errors.New("entropy exhausted")}, 3)
	assert.ErrorContains(t, err, "entropy exhausted")

	_, err = modint.Random(fixedSource{}, 0)
	assert.Error(t, err)
}
