// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Credential represents the token set obtained from the identity provider
// through the OAuth implicit grant. It is owned by the credential store;
// other components hold at most a transient copy.
type Credential struct {
	AccessToken string `json:"accessToken"` // Opaque bearer token presented on every API call.
	InstanceURL string `json:"instanceUrl"` // Base URL of the tenant instance the token is valid for.
	// RefreshToken is rarely present in the implicit grant; it is stored
	// when returned but never exchanged (expiry forces a fresh login).
	RefreshToken string    `json:"refreshToken,omitempty"`
	IssuedAt     time.Time `json:"issuedAt"`
	ExpiresAt    time.Time `json:"expiresAt"` // Past this instant the credential must be treated as absent.
}

// Valid reports whether the credential is still usable at the given instant.
func (c *Credential) Valid(now time.Time) bool {
	if c == nil || c.AccessToken == "" || c.InstanceURL == "" {
		return false
	}

	return now.Before(c.ExpiresAt)
}
