// Package daily implements the once-a-day challenge: every player gets an
// adversarial game of the same, date-derived word length.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// index returns HMAC(salt, YYYY-MM-DD) mod n.
func index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// LengthFor picks the day's word length from lengths. Lengths shorter than
// minLength are skipped; if none qualify, all lengths are used. It returns
// 0 when lengths is empty.
func LengthFor(date time.Time, salt string, lengths []int, minLength int) int {
	pool := make([]int, 0, len(lengths))
	for _, n := range lengths {
		if n >= minLength {
			pool = append(pool, n)
		}
	}
	if len(pool) == 0 {
		pool = lengths
	}
	if len(pool) == 0 {
		return 0
	}
	return pool[index(date, salt, len(pool))]
}
