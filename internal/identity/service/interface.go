// Package service provides credential secret generation and verification.
//
// Secrets are generated from a CSPRNG and stored only as Argon2id hashes.
package service

// SecretService defines operations for credential secret generation and validation.
type SecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns both the plain text secret (to be shared with the caller) and
	// the hashed version (to be stored in the database).
	//
	// The plain secret is only available at generation time.
	GenerateSecret() (plainSecret string, hashedSecret string, error error)

	// HashSecret hashes a plain text secret using a secure hashing algorithm.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret compares a plain text secret against a hashed secret in
	// constant time. Returns true if they match.
	CompareSecret(plainSecret string, hashedSecret string) bool
}
