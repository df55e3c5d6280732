// internal/pkg/reference/reference.go
// Package reference generates human-readable identifiers such as order numbers.
package reference

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const tokenLength = 9

// New returns "<prefix>-<unix millis>-<9 char random token>", e.g.
// ORD-1718031234567-4f9c2a1be.
func New(prefix string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), token)
}
