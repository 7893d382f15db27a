package contenthash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Prefix marks the hash algorithm of stored hashes.
const Prefix = "sha256:"

// Hasher provides deterministic content hashing
type Hasher struct{}

// New creates a new Hasher
func New() *Hasher {
	return &Hasher{}
}

// HashFields hashes a document's title and content. The title is length
// prefixed so that moving text between the fields changes the hash.
func (h *Hasher) HashFields(title, content string) string {
	sum := sha256.New()
	var lenBuf [8]byte
	n := uint64(len(title))
	for i := range lenBuf {
		lenBuf[i] = byte(n >> (8 * i))
	}
	sum.Write(lenBuf[:])
	sum.Write([]byte(title))
	sum.Write([]byte(content))
	return Prefix + hex.EncodeToString(sum.Sum(nil))
}

// HashString is a helper for simple string hashing
func (h *Hasher) HashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return Prefix + hex.EncodeToString(hash[:])
}
