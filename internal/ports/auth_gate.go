package ports

import "github.com/bnema/pft-wallet-cli/internal/domain"

// AuthGate is the read side of the active account marker. Generation
// advances on every account switch and sign-out.
type AuthGate interface {
	IsAuthenticated() bool
	Generation() uint64
	IsCurrentAccount(address domain.Address) bool
	// Subscribe registers listener for account switches; listeners run
	// synchronously after the generation advanced.
	Subscribe(listener func(domain.Session)) (unsubscribe func())
}
