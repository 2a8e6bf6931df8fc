package crypto

import (
	"crypto/rand"
	"math"
)

const (
	idAlphabet string = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	idSize     int    = 22 // 22 * 6 = 132 bits of entropy (uuid is 128 bits)
)

// alphabet length is 64, so the 6-bit mask covers every index exactly
const idMask = 63

// NewID generates a url-safe random identifier, nanoid style.
// Used for session record IDs, not for secrets; secrets go through
// GenerateTokenPair.
func NewID() (string, error) {
	step := int(math.Ceil(1.6 * float64(idMask*idSize) / float64(len(idAlphabet))))

	id := make([]byte, idSize)
	buffer := make([]byte, step)

	for position := 0; position < idSize; {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}

		for i := 0; i < step && position < idSize; i++ {
			index := buffer[i] & byte(idMask)
			if int(index) < len(idAlphabet) {
				id[position] = idAlphabet[index]
				position++
			}
		}
	}

	return string(id), nil
}
