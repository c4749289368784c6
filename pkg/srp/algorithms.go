package srp

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is a legacy RFC 5054 option, selected explicitly by callers
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"slices"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm names a supported hash function.
type HashAlgorithm string

// Supported hash algorithms.
const (
	SHA1       HashAlgorithm = "SHA-1"
	SHA256     HashAlgorithm = "SHA-256"
	SHA384     HashAlgorithm = "SHA-384"
	SHA512     HashAlgorithm = "SHA-512"
	SHA3_256   HashAlgorithm = "SHA3-256"
	SHA3_512   HashAlgorithm = "SHA3-512"
	BLAKE2b512 HashAlgorithm = "BLAKE2b-512"
)

type algorithm struct {
	size int
	new  func() hash.Hash
}

var algorithms = map[HashAlgorithm]algorithm{
	SHA1:       {size: sha1.Size, new: sha1.New},
	SHA256:     {size: sha256.Size, new: sha256.New},
	SHA384:     {size: sha512.Size384, new: sha512.New384},
	SHA512:     {size: sha512.Size, new: sha512.New},
	SHA3_256:   {size: 32, new: sha3.New256},
	SHA3_512:   {size: 64, new: sha3.New512},
	BLAKE2b512: {size: blake2b.Size, new: newBLAKE2b512},
}

func newBLAKE2b512() hash.Hash {
	// New512 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New512(nil)
	return h
}

// Size returns the digest length in bytes, or 0 if the algorithm is unknown.
func (a HashAlgorithm) Size() int {
	return algorithms[a].size
}

// Valid reports whether a is in the algorithm table.
func (a HashAlgorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

// Algorithms returns the supported hash algorithm names, sorted.
func Algorithms() []HashAlgorithm {
	names := make([]HashAlgorithm, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
