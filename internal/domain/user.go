package domain

import (
	"time"
)

// User represents a storefront account.
//
// Password holds the deterministic sha256 hex digest of the password, never
// the plaintext. The digest is included in responses because the storefront
// client expects it; see the design notes for why this is flagged rather
// than redacted.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
