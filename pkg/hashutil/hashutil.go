package hashutil

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// shortDigestLength is the number of hex characters shown to humans.
const shortDigestLength = 12

// HashBytes returns the hex encoded BLAKE3-256 digest of data.
func HashBytes(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortDigest returns the first 12 hex characters of the BLAKE3 digest of text.
// It identifies a cached puzzle input in listings.
func ShortDigest(text string) string {
	return HashBytes([]byte(text))[:shortDigestLength]
}
