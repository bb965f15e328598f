package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader carries the hex HMAC-SHA256 of a request body.
const HashHeader = "HashSHA256"

// Hasher computes keyed HMAC-SHA256 digests. Hash instances are pooled to
// keep allocations off the request path.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher keyed with hashKey.
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the HMAC-SHA256 digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()
	mac.Write(data)
	sum := mac.Sum(nil)
	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// SumHex returns the hex-encoded digest of data.
func (h *Hasher) SumHex(data []byte) string {
	return hex.EncodeToString(h.Sum(data))
}

// Verify reports whether signature is the hex digest of data. The comparison
// runs in constant time.
func (h *Hasher) Verify(data []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(h.Sum(data), expected)
}
