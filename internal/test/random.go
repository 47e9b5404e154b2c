package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	seededMu  sync.Mutex
	seededRng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns an alphanumeric string with a length inside
// the inclusive bounds. Equal bounds give an exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	seededMu.Lock()
	defer seededMu.Unlock()

	length := minLen + seededRng.Intn(maxLen-minLen+1)
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(alphanumeric[seededRng.Intn(len(alphanumeric))])
	}
	return b.String()
}
