package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// RestaurantIDLen is the length of a deterministic restaurant id: the first
// 16 hex characters of the SHA256 of the normalized name and address.
const RestaurantIDLen = 16

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// RestaurantID derives a stable restaurant id from its name and address, so
// re-submitting the same place is idempotent. Case and surrounding whitespace
// are normalized; everything else is taken verbatim.
func RestaurantID(name, address string) string {
	key := normalize(name) + "|" + normalize(address)
	return SHA256Hex(key)[:RestaurantIDLen]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
