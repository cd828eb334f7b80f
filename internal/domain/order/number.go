package order

import (
	"crypto/rand"
	"time"
)

// orderNumberPrefix is the customer-facing prefix on all order numbers
const orderNumberPrefix = "CMD"

// suffix alphabet omits 0/O and 1/I to keep the number readable over the phone
const suffixAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const suffixLength = 6

// GenerateOrderNumber produces a human-presentable unique order number,
// e.g. "CMD-20260830-7F3K2A". The date part makes numbers roughly
// sortable; the random suffix avoids guessable sequences. Uniqueness is
// ultimately guaranteed by the database constraint, with the caller
// retrying on collision.
func GenerateOrderNumber(now time.Time) (string, error) {
	buf := make([]byte, suffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = suffixAlphabet[int(buf[i])%len(suffixAlphabet)]
	}
	return orderNumberPrefix + "-" + now.Format("20060102") + "-" + string(buf), nil
}
