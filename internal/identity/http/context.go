// Package http provides HTTP middleware for caller authentication.
package http

import (
	"context"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// callerKey is a context key type for storing the authenticated caller address.
type callerKey struct{}

// WithCallerAddress stores the authenticated caller address in the context.
// This is called by the authentication middleware after successful credential
// validation.
func WithCallerAddress(ctx context.Context, address ledgerDomain.Address) context.Context {
	return context.WithValue(ctx, callerKey{}, address)
}

// GetCallerAddress retrieves the authenticated caller address from the context.
// Returns (address, true) if present, or ("", false) if no caller was set.
func GetCallerAddress(ctx context.Context) (ledgerDomain.Address, bool) {
	address, ok := ctx.Value(callerKey{}).(ledgerDomain.Address)
	return address, ok
}
