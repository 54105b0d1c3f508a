package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomEmail returns a unique email address for test isolation.
func RandomEmail() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("user-%s@example.com", hex.EncodeToString(b))
}
