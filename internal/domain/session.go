package domain

import (
	"crypto/subtle"
	"strings"
	"time"
)

type Address string

func (a Address) String() string {
	return string(a)
}

func (a Address) IsZero() bool {
	return strings.TrimSpace(string(a)) == ""
}

// Session is the signed-in state of the client. The secret never leaves
// memory.
type Session struct {
	Authenticated bool
	Address       Address
	Username      string
	Secret        Secret
}

func (s Session) Validate() error {
	if s.Authenticated && s.Address.IsZero() {
		return ErrInvalidSession
	}

	return nil
}

func (s Session) HasSecret() bool {
	return !s.Secret.IsZero()
}

// Secret wraps the ledger-signing passphrase so it cannot be printed or
// logged by accident.
type Secret struct {
	value string
}

func NewSecret(value string) Secret {
	return Secret{value: value}
}

func (s Secret) Reveal() string {
	return s.value
}

func (s Secret) IsZero() bool {
	return s.value == ""
}

func (s Secret) Equal(other Secret) bool {
	return subtle.ConstantTimeCompare([]byte(s.value), []byte(other.value)) == 1
}

func (s Secret) String() string {
	if s.IsZero() {
		return ""
	}

	return "[redacted]"
}

func (s Secret) GoString() string {
	return s.String()
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Profile is the only session state persisted across runs.
type Profile struct {
	Address   Address
	Username  string
	UpdatedAt time.Time
}

func (p Profile) IsZero() bool {
	return p.Address.IsZero()
}
