package srp_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fzdarsky/srp6a/pkg/modint"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
	"github.com/fzdarsky/srp6a/pkg/srp/srpmock"
)

func TestNewParams_AllGroups(t *testing.T) {
	generators := map[srp.PrimeGroup]int64{
		srp.Group1024: 2,
		srp.Group1536: 2,
		srp.Group2048: 2,
		srp.Group3072: 5,
		srp.Group4096: 5,
		srp.Group6144: 5,
		srp.Group8192: 19,
	}
	bits := map[srp.PrimeGroup]int{
		srp.Group1024: 1024,
		srp.Group1536: 1536,
		srp.Group2048: 2048,
		srp.Group3072: 3072,
		srp.Group4096: 4096,
		srp.Group6144: 6144,
		srp.Group8192: 8192,
	}

	require.Len(t, srp.Groups(), len(generators))

	for _, group := range srp.Groups() {
		t.Run(string(group), func(t *testing.T) {
			p := newParams(t, srp.SHA256, group)

			assert.Equal(t, bits[group], p.N().BitLen())
			assert.Equal(t, bits[group]/8, p.Width())
			assert.Equal(t, 1, int(p.N().Big().Bit(0)), "N must be odd")
			assert.True(t, p.G().Equal(modint.FromInt64(generators[group])))
			assert.Equal(t, 32, p.HashLen())
			assert.Equal(t, srp.SHA256, p.HashAlgorithm())
			assert.Equal(t, group, p.PrimeGroup())
		})
	}
}

func TestNewParams_MultiplierPadsBothOperands(t *testing.T) {
	p := newParams(t, srp.SHA256, srp.Group2048)

	nBytes := p.N().Bytes()
	gBytes := make([]byte, len(nBytes))
	gBytes[len(gBytes)-1] = 2

	h := sha256.New()
	h.Write(nBytes)
	h.Write(gBytes)

	assert.Equal(t, h.Sum(nil), p.K().Bytes())
}

func TestNewParams_RFC5054Multiplier(t *testing.T) {
	p := newParams(t, srp.SHA1, srp.Group1024)

	expected := modint.MustFromHex("7556AA04 5AEF2CDD 07ABAF0F 665C3E81 8913186F")
	assert.True(t, p.K().Equal(expected), "k = %s", p.K().Hex())
}

func TestNewParams_ConfigurationErrors(t *testing.T) {
	ctx := context.Background()
	provider := srp.NewSystemProvider()

	tests := []struct {
		name     string
		provider srp.Provider
		alg      srp.HashAlgorithm
		group    srp.PrimeGroup
	}{
		{name: "unknown algorithm", provider: provider, alg: "MD5", group: srp.Group2048},
		{name: "unknown group", provider: provider, alg: srp.SHA256, group: "512"},
		{name: "empty names", provider: provider, alg: "", group: ""},
		{name: "nil provider", provider: nil, alg: srp.SHA256, group: srp.Group2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srp.NewParams(ctx, tt.provider, tt.alg, tt.group)
			require.Error(t, err)
			assert.ErrorIs(t, err, protocol.ErrConfiguration)
		})
	}
}

func TestAlgorithms(t *testing.T) {
	sizes := map[srp.HashAlgorithm]int{
		srp.SHA1:       20,
		srp.SHA256:     32,
		srp.SHA384:     48,
		srp.SHA512:     64,
		srp.SHA3_256:   32,
		srp.SHA3_512:   64,
		srp.BLAKE2b512: 64,
	}

	assert.Len(t, srp.Algorithms(), len(sizes))

	provider := srp.NewSystemProvider()
	for alg, size := range sizes {
		t.Run(string(alg), func(t *testing.T) {
			assert.True(t, alg.Valid())
			assert.Equal(t, size, alg.Size())

			digest, err := provider.Digest(context.Background(), alg, []byte("abc"))
			require.NoError(t, err)
			assert.Len(t, digest, size)
		})
	}

	assert.False(t, srp.HashAlgorithm("SHA-0").Valid())
	assert.Equal(t, 0, srp.HashAlgorithm("SHA-0").Size())
}

func TestParams_Pad(t *testing.T) {
	p := newParams(t, srp.SHA256, srp.Group2048)

	tests := []struct {
		name string
		x    modint.Int
	}{
		{name: "zero", x: modint.Zero},
		{name: "generator", x: p.G()},
		{name: "single byte", x: modint.FromInt64(0xff)},
		{name: "N minus one", x: p.N().ModSub(modint.One, p.N())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			padded, err := p.Pad(tt.x)
			require.NoError(t, err)
			assert.Len(t, padded.Bytes(), p.Width())
			assert.True(t, padded.Equal(tt.x))
		})
	}

	t.Run("xor of padded values", func(t *testing.T) {
		a, err := p.Pad(modint.FromInt64(12345))
		require.NoError(t, err)
		b, err := p.Pad(p.G())
		require.NoError(t, err)

		x, err := a.Xor(b)
		require.NoError(t, err)
		assert.Len(t, x.Bytes(), p.Width())
	})

	t.Run("too wide", func(t *testing.T) {
		_, err := p.Pad(p.N().Multiply(p.N()))
		assert.ErrorIs(t, err, protocol.ErrEncoding)
	})
}

func TestParams_HashKeepsLeadingZeros(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := srpmock.NewMockProvider(ctrl)

	digest := make([]byte, 32)
	digest[31] = 0x01

	provider.EXPECT().
		Digest(gomock.Any(), srp.SHA256, gomock.Any()).
		Return(digest, nil).
		Times(2)

	p, err := srp.NewParams(context.Background(), provider, srp.SHA256, srp.Group1024)
	require.NoError(t, err)

	h, err := p.Hash(context.Background(), srp.Text("alice"))
	require.NoError(t, err)
	assert.Len(t, h.Hex(), 64)
	assert.Equal(t, 32, h.ByteLen())
}

func TestParams_HashConcatenatesOperands(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := srpmock.NewMockProvider(ctrl)
	system := srp.NewSystemProvider()

	var seen [][]byte
	provider.EXPECT().
		Digest(gomock.Any(), srp.SHA256, gomock.Any()).
		DoAndReturn(func(ctx context.Context, alg srp.HashAlgorithm, data []byte) ([]byte, error) {
			seen = append(seen, bytes.Clone(data))
			return system.Digest(ctx, alg, data)
		}).
		Times(2)

	p, err := srp.NewParams(context.Background(), provider, srp.SHA256, srp.Group1024)
	require.NoError(t, err)

	_, err = p.Hash(context.Background(), modint.MustFromHex("00ab"), srp.Text("cd"))
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Len(t, seen[0], 2*p.Width(), "k hashes PAD(N) || PAD(g)")
	assert.Equal(t, []byte{0x00, 0xab, 'c', 'd'}, seen[1])
}

func TestParams_ProviderFailures(t *testing.T) {
	t.Run("digest error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := srpmock.NewMockProvider(ctrl)
		provider.EXPECT().
			Digest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("hsm unavailable"))

		_, err := srp.NewParams(context.Background(), provider, srp.SHA256, srp.Group2048)
		require.Error(t, err)
		assert.ErrorIs(t, err, protocol.ErrProvider)
		assert.Contains(t, err.Error(), "hsm unavailable")

		_, peer := protocol.IsPeerError(err)
		assert.False(t, peer)
	})

	t.Run("digest length mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := srpmock.NewMockProvider(ctrl)
		provider.EXPECT().
			Digest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(make([]byte, 20), nil)

		_, err := srp.NewParams(context.Background(), provider, srp.SHA256, srp.Group2048)
		assert.ErrorIs(t, err, protocol.ErrProvider)
	})
}

func TestText_NormalizesNFKC(t *testing.T) {
	// U+FB01 LATIN SMALL LIGATURE FI decomposes to "fi" under NFKC.
	assert.Equal(t, []byte("fish"), srp.Text("\ufb01sh").Bytes())
	// U+0065 U+0301 composes to U+00E9.
	assert.Equal(t, []byte("\u00e9"), srp.Text("e\u0301").Bytes())
}

func TestParams_Info(t *testing.T) {
	p := newParams(t, srp.SHA512, srp.Group3072)
	info := p.Info()

	assert.Equal(t, "SHA-512", info.HashAlgorithm)
	assert.Equal(t, "3072", info.PrimeGroup)
	assert.Equal(t, "05", info.G)
	assert.Equal(t, 64, info.HashBytes)
	assert.Equal(t, 384, info.PadBytes)
	assert.Len(t, info.N, 768)
	assert.Len(t, info.K, 128)
}
