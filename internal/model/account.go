package model

import "time"

// IdentityID uniquely identifies an account across the system.
// It is a canonical 8-4-4-4-12 lowercase hex UUID string.
type IdentityID string

// AccountKind distinguishes how an account's identity was established.
// The values are part of the external launcher's accounts.json contract.
type AccountKind string

const (
	// AccountAnonymous is a locally-derived, credential-less account.
	AccountAnonymous AccountKind = "Offline"
	// AccountFederated is an account issued by an external identity provider.
	AccountFederated AccountKind = "MSA"
)

// Display name length bounds enforced at the input boundary
const (
	MinDisplayNameLength = 3
	MaxDisplayNameLength = 16
)

// AccountRecord is one materialized entry in the external profile store
type AccountRecord struct {
	Kind        AccountKind
	IdentityID  IdentityID
	DisplayName string
	Credential  string // empty for anonymous accounts, bearer token for federated
	IssuedAt    time.Time
}

// ValidateDisplayName checks the display name length bounds.
// Runs before any orchestration or provider flow is started.
func ValidateDisplayName(name string) error {
	n := len([]rune(name))
	if n < MinDisplayNameLength || n > MaxDisplayNameLength {
		return ErrInvalidDisplayName
	}
	return nil
}

// LaunchDirective carries what the external launcher needs to start an instance
type LaunchDirective struct {
	InstanceName string
	IdentityID   IdentityID
	DisplayName  string
}
