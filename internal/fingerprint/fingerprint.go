// Package fingerprint computes a stable, non-cryptographic identifier for a
// class descriptor's field table, stored as descriptor.Descriptor.Fingerprint.
// Neither the dump CLI nor the metrics labels use it. It is never part of
// the wire contract itself.
package fingerprint

import "github.com/cespare/xxhash/v2"

// Of hashes the class name together with its sorted (index, tag) pairs so
// that two descriptors with the same fields in the same order produce the
// same fingerprint regardless of process.
func Of(className string, indexTagPairs []byte) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(className)
	_, _ = h.Write(indexTagPairs)

	return h.Sum64()
}
