package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// maxOrderCode keeps order codes inside the 53-bit range payment gateways
// accept as a JSON number.
const maxOrderCode = 1<<53 - 1

// GenerateOrderCode returns a random positive numeric code for a payment order.
func GenerateOrderCode() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	code := int64(binary.BigEndian.Uint64(b[:]) % maxOrderCode)
	if code == 0 {
		code = 1
	}
	return code, nil
}
