package keys

import (
	crand "crypto/rand"
	"math/rand"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PublicIDLength is the size of the routing id every battle gets.
const PublicIDLength = 8

// ChallengeCodeLength is the size of PvP challenge codes players share.
const ChallengeCodeLength = 8

// NewCode returns a short random identifier drawn from an upper-case
// alphanumeric alphabet. Codes end up in URLs and chat messages, so they
// come from crypto/rand; the math/rand fallback only matters when the
// system entropy source is unreadable.
func NewCode(length int) string {
	b := make([]byte, length)
	if _, err := crand.Read(b); err != nil {
		for i := range b {
			b[i] = codeCharset[rand.Intn(len(codeCharset))]
		}
		return string(b)
	}
	for i := range b {
		b[i] = codeCharset[int(b[i])%len(codeCharset)]
	}
	return string(b)
}
