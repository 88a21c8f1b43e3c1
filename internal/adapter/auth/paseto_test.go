package auth_test

import (
	"testing"

	"aidanwoods.dev/go-paseto"
	"github.com/sliceline/pizzaorders/internal/adapter/auth"
	"github.com/sliceline/pizzaorders/internal/adapter/config"
	"github.com/sliceline/pizzaorders/internal/core/domain"
	"github.com/sliceline/pizzaorders/internal/core/port"
	"github.com/stretchr/testify/assert"
)

func TestPasetoAccess_RoundTrip(t *testing.T) {
	access, err := auth.New(&config.Auth{})
	assert.NoError(t, err)

	token, err := access.CreateToken(&port.AccessPayload{
		Subject:      "admin",
		Capabilities: []string{port.CapabilityManageOrders},
	})
	assert.NoError(t, err)

	payload, err := access.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", payload.Subject)
	assert.True(t, payload.Has(port.CapabilityManageOrders))
	assert.False(t, payload.Has("orders:delete"))
}

func TestPasetoAccess_SharedKey(t *testing.T) {
	keyHex := paseto.NewV4SymmetricKey().ExportHex()

	// The issuer and the verifier are separate instances configured with
	// the same key, as the upstream auth service and this one would be.
	issuer, err := auth.New(&config.Auth{TokenKey: keyHex})
	assert.NoError(t, err)
	verifier, err := auth.New(&config.Auth{TokenKey: keyHex})
	assert.NoError(t, err)

	token, err := issuer.CreateToken(&port.AccessPayload{
		Subject:      "admin",
		Capabilities: []string{port.CapabilityManageOrders},
	})
	assert.NoError(t, err)

	payload, err := verifier.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", payload.Subject)
	assert.True(t, payload.Has(port.CapabilityManageOrders))
}

func TestPasetoAccess_BadKey(t *testing.T) {
	_, err := auth.New(&config.Auth{TokenKey: "not-hex"})
	assert.Error(t, err)
}

func TestPasetoAccess_BadToken(t *testing.T) {
	access, err := auth.New(&config.Auth{})
	assert.NoError(t, err)

	_, err = access.VerifyToken("v4.local.garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
