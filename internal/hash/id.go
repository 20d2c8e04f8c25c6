// Package hash provides the xxHash64 primitive used for non-wire content
// fingerprints (codec.Fingerprint). The dictionary builder does not use it;
// it deduplicates ids with Go maps keyed by Id.
//
// It is not part of the wire format: the GRC-20 grammar addresses
// dictionary entries by Id equality, not by hash. xxHash64 is used purely
// as a fast, collision-resistant-enough diagnostic digest.
package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of data.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String computes the xxHash64 of s without allocating a byte copy.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}
