package incremental

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/minio/highwayhash"
)

// ContentHash computes the file-change tracker's persisted content
// fingerprint: the first 8 bytes of a SHA-256 digest, lowercase hex — a
// 16-character string. SHA-256 is used here, rather than a third-party
// hash, because this exact digest algorithm and truncation is the
// persisted wire format other tooling may read back; swapping it for a
// faster non-cryptographic hash would break that contract.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

var fastHashKey = []byte("GDLANGINCREMENTALFASTHASHKEY0001")

// FastHash computes a 64-bit fingerprint used for quick in-memory
// comparisons the call-site delta updater runs far more often than a full
// content hash (comparing two method bodies byte-for-byte): highwayhash is
// fast enough to run per method on every re-parse without the SHA-256
// persistence contract ContentHash carries.
func FastHash(data []byte) uint64 {
	h, err := highwayhash.New64(fastHashKey)
	if err != nil {
		// highwayhash.New64 only fails on a key of the wrong length; the
		// package-level key above is fixed and correct.
		panic(err)
	}
	_, _ = h.Write(data)
	return h.Sum64()
}
