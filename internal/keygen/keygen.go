// Package keygen derives fixed-length storage keys from logical keys.
package keygen

import (
	"crypto/sha512"
	"encoding/hex"
	"strconv"
)

// Key maps (generation, logical key) to the storage key: the lowercase hex
// SHA-512 digest of "g<generation>:<logicalKey>" (128 hex characters).
// Equal inputs always produce equal keys; changing the generation moves the
// whole keyspace, which is the sole invalidation mechanism.
func Key(generation int64, logicalKey string) string {
	preimage := "g" + strconv.FormatInt(generation, 10) + ":" + logicalKey
	sum := sha512.Sum512([]byte(preimage))
	return hex.EncodeToString(sum[:])
}
