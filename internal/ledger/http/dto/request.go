// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/delegate/internal/validation"
)

// MintCapabilityRequest contains the parameters for minting a signer capability.
// The capability is always bound to the authenticated caller's address.
type MintCapabilityRequest struct {
	Label string `json:"label"`
}

// Validate checks if the mint capability request is valid.
func (r *MintCapabilityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Label,
			validation.Length(0, 255),
		),
	)
}

// DeriveSignerRequest contains the parameters for redeeming a capability token.
// Payload is optional base64-encoded data to sign with the derived key.
type DeriveSignerRequest struct {
	Token   string `json:"token"`
	Payload string `json:"payload"`
}

// Validate checks if the derive signer request is valid.
func (r *DeriveSignerRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
		validation.Field(&r.Payload,
			customValidation.Base64,
		),
	)
}
