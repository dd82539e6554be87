// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"
	"time"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// MintCapabilityResponse contains the result of minting a capability.
// SECURITY: The token is a bearer instrument; anyone holding it can derive
// the signer for the address while its delegation record exists.
type MintCapabilityResponse struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Token   string `json:"token"`
	Label   string `json:"label,omitempty"`
}

// StoredCapabilityResponse represents a stored capability in API responses.
type StoredCapabilityResponse struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Token     string    `json:"token"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MapStoredCapabilityToResponse converts a stored capability to an API response.
func MapStoredCapabilityToResponse(stored *ledgerDomain.StoredCapability) StoredCapabilityResponse {
	return StoredCapabilityResponse{
		ID:        stored.ID.String(),
		Address:   stored.Address.String(),
		Token:     stored.Token,
		Label:     stored.Label,
		CreatedAt: stored.CreatedAt,
	}
}

// ListCapabilitiesResponse represents a paginated list of stored capabilities.
type ListCapabilitiesResponse struct {
	Data []StoredCapabilityResponse `json:"data"`
}

// MapStoredCapabilitiesToListResponse converts stored capabilities to a list API response.
func MapStoredCapabilitiesToListResponse(
	capabilities []*ledgerDomain.StoredCapability,
) ListCapabilitiesResponse {
	responses := make([]StoredCapabilityResponse, 0, len(capabilities))
	for _, stored := range capabilities {
		responses = append(responses, MapStoredCapabilityToResponse(stored))
	}
	return ListCapabilitiesResponse{
		Data: responses,
	}
}

// DeriveSignerResponse contains the result of redeeming a capability token.
// PublicKey and Signature are base64-encoded; Signature is empty when no
// payload was supplied.
type DeriveSignerResponse struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature,omitempty"`
}

// MapDeriveSignerToResponse converts a derive signer output to an API response.
func MapDeriveSignerToResponse(output *ledgerDomain.DeriveSignerOutput) DeriveSignerResponse {
	response := DeriveSignerResponse{
		Address:   output.Address.String(),
		PublicKey: base64.StdEncoding.EncodeToString(output.PublicKey),
	}
	if len(output.Signature) > 0 {
		response.Signature = base64.StdEncoding.EncodeToString(output.Signature)
	}
	return response
}
