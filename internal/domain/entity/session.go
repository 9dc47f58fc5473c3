package entity

import "time"

// SessionPhase is the authentication phase of the session state machine.
type SessionPhase string

const (
	PhaseUnauthenticated SessionPhase = "unauthenticated"
	PhaseAuthenticated   SessionPhase = "authenticated"
)

// BackendMode identifies which data client is active for the session.
type BackendMode string

const (
	ModeLive      BackendMode = "live"
	ModeSynthetic BackendMode = "synthetic"
)

// SessionState is the derived session descriptor. It is never persisted;
// it is recomputed from the credential store and configuration on start
// and updated by the session controller's transitions.
type SessionState struct {
	Phase SessionPhase `json:"phase"`
	Mode  BackendMode  `json:"mode,omitempty"` // Meaningful only while authenticated.

	// InstanceURL and ExpiresAt describe the live credential backing the
	// session; both are empty in synthetic mode.
	InstanceURL string    `json:"instanceUrl,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitzero"`
}

// Authenticated reports whether the session may issue data operations.
func (s *SessionState) Authenticated() bool {
	return s != nil && s.Phase == PhaseAuthenticated
}
