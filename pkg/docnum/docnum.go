package docnum

import (
	"crypto/rand"
	"time"
)

// Document numbers are human-readable codes: prefix + 8-digit date +
// random digit suffix. Uniqueness is enforced by the storage unique
// index, not here; callers retry with a fresh candidate on collision.

// NKB returns NKB + YYYYMMDD + 6 random digits.
func NKB(t time.Time) string { return "NKB" + t.UTC().Format("20060102") + digits(6) }

// SPK returns SPK + YYYYMMDD + 4 random digits.
func SPK(t time.Time) string { return "SPK" + t.UTC().Format("20060102") + digits(4) }

func digits(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	out := make([]byte, n)
	for i, v := range b {
		out[i] = '0' + v%10
	}
	return string(out)
}
