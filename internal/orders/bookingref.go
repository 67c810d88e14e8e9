package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	BookingRefPrefix = "EVT-"
	bookingRefLength = 8
	// No 0/O or 1/I so references survive being read aloud or retyped.
	bookingRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NewBookingRef returns a random reference such as "EVT-7KQ2M9XD". The prefix
// and letters keep it distinct from numeric payment references.
func NewBookingRef() (string, error) {
	buf := make([]byte, bookingRefLength)
	max := big.NewInt(int64(len(bookingRefAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		buf[i] = bookingRefAlphabet[n.Int64()]
	}
	return BookingRefPrefix + string(buf), nil
}
