// Package digest names the hash algorithms a direct URL record may carry and
// computes hex digests for archives when a new record is written.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Guaranteed lists the algorithm names every conformant installer must support.
// An archive record should carry at least one of them.
var Guaranteed = map[string]bool{
	"blake2b":   true,
	"blake2s":   true,
	"md5":       true,
	"sha1":      true,
	"sha224":    true,
	"sha256":    true,
	"sha384":    true,
	"sha3_224":  true,
	"sha3_256":  true,
	"sha3_384":  true,
	"sha3_512":  true,
	"sha512":    true,
	"shake_128": true,
	"shake_256": true,
}

// constructors covers the guaranteed algorithms that need no extra parameters.
// shake_128 and shake_256 require an output length and are left out.
var constructors = map[string]func() hash.Hash{
	"md5":      md5.New,
	"sha1":     sha1.New,
	"sha224":   sha256.New224,
	"sha256":   sha256.New,
	"sha384":   sha512.New384,
	"sha512":   sha512.New,
	"sha3_224": sha3.New224,
	"sha3_256": sha3.New256,
	"sha3_384": sha3.New384,
	"sha3_512": sha3.New512,
	"blake2b": func() hash.Hash {
		h, _ := blake2b.New512(nil) // only fails for keys longer than 64 bytes
		return h
	},
	"blake2s": func() hash.Hash {
		h, _ := blake2s.New256(nil)
		return h
	},
}

// IsGuaranteed reports whether name is in the guaranteed set.
func IsGuaranteed(name string) bool {
	return Guaranteed[name]
}

// Supported reports whether New can construct a hasher for name.
func Supported(name string) bool {
	_, ok := constructors[name]
	return ok
}

// Names returns the algorithms New supports, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a hasher for the named algorithm.
func New(name string) (hash.Hash, error) {
	fn, ok := constructors[name]
	if !ok {
		if Guaranteed[name] {
			return nil, fmt.Errorf("hash algorithm '%s' requires a digest length and cannot be computed", name)
		}
		return nil, fmt.Errorf("unsupported hash algorithm '%s' — supported: %v", name, Names())
	}
	return fn(), nil
}

// Reader computes hex digests of r for every named algorithm in a single pass.
func Reader(r io.Reader, algorithms ...string) (map[string]string, error) {
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("at least one hash algorithm is required")
	}

	hashers := make(map[string]hash.Hash, len(algorithms))
	writers := make([]io.Writer, 0, len(algorithms))
	for _, name := range algorithms {
		if _, dup := hashers[name]; dup {
			continue
		}
		h, err := New(name)
		if err != nil {
			return nil, err
		}
		hashers[name] = h
		writers = append(writers, h)
	}

	if _, err := io.Copy(io.MultiWriter(writers...), r); err != nil {
		return nil, fmt.Errorf("hashing: %w", err)
	}

	out := make(map[string]string, len(hashers))
	for name, h := range hashers {
		out[name] = hex.EncodeToString(h.Sum(nil))
	}
	return out, nil
}

// File computes hex digests of the file at path.
func File(path string, algorithms ...string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sums, err := Reader(f, algorithms...)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}
	return sums, nil
}
