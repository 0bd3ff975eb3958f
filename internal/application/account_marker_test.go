package application

import (
	"testing"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccountMarkerSwitchAdvancesGenerationAndNotifies(t *testing.T) {
	marker := NewAccountMarker()
	assert.False(t, marker.IsAuthenticated())
	assert.Equal(t, uint64(0), marker.Generation())

	var seen []domain.Session
	unsubscribe := marker.Subscribe(func(session domain.Session) {
		// Listeners run outside the lock and may read the marker.
		assert.Equal(t, session, marker.Session())
		seen = append(seen, session)
	})

	gen := marker.Switch(domain.Session{Authenticated: true, Address: "rA", Username: "alice", Secret: domain.NewSecret("pw")})
	assert.Equal(t, uint64(1), gen)
	assert.True(t, marker.IsCurrentAccount("rA"))
	assert.False(t, marker.IsCurrentAccount("rB"))
	assert.True(t, marker.Session().Secret.IsZero(), "secret is never retained")

	marker.Switch(domain.Session{})
	assert.Equal(t, uint64(2), marker.Generation())
	assert.False(t, marker.IsAuthenticated())
	assert.False(t, marker.IsCurrentAccount("rA"))

	unsubscribe()
	marker.Switch(domain.Session{Authenticated: true, Address: "rB"})
	assert.Equal(t, uint64(3), marker.Generation())

	assert.Len(t, seen, 2)
	assert.Equal(t, domain.Address("rA"), seen[0].Address)
	assert.False(t, seen[1].Authenticated)
}

func TestAccountMarkerZeroAddressIsSignedOut(t *testing.T) {
	marker := NewAccountMarker()
	marker.Switch(domain.Session{Authenticated: true, Username: "ghost"})

	assert.Equal(t, domain.Session{}, marker.Session())
	assert.False(t, marker.IsCurrentAccount(""))
}
