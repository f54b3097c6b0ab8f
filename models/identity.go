package models

import "time"

// IdentityType - the credential shape behind an identity
type IdentityType string

const (
	SharedCredential IdentityType = "SHARED_CREDENTIAL"
	ServiceAccount   IdentityType = "SERVICE_ACCOUNT"
)

// IsValid - identity type enum check
func (t IdentityType) IsValid() bool {
	return t == SharedCredential || t == ServiceAccount
}

// IdentityUsage - which endpoint family owns the identity
type IdentityUsage string

const (
	UsageAgency      IdentityUsage = "agency"
	UsageIntegration IdentityUsage = "integration"
)

// Identity - a reusable agency-held identity that items can bind to.
// SecretRef points at stored credential material when the identity was
// created with one, so PAM checkouts against it can serve a password.
type Identity struct {
	ID          string        `json:"id"`
	Name        string        `json:"name" validate:"required,min=2,max=128"`
	Type        IdentityType  `json:"type" validate:"required"`
	Identifier  string        `json:"identifier" validate:"required"` // email or username
	Usage       IdentityUsage `json:"usage"`
	PlatformKey string        `json:"platformId,omitempty"` // empty = usable on any platform
	SecretRef   string        `json:"secretRef,omitempty"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// APIIdentity - POST /agency-identities and /integration-identities payload
type APIIdentity struct {
	Name          string       `json:"name" validate:"required,min=2,max=128"`
	Type          IdentityType `json:"type" validate:"required"`
	Identifier    string       `json:"identifier" validate:"required"`
	PlatformKey   string       `json:"platformId"`
	InitialSecret string       `json:"initialSecret,omitempty"`
	IsActive      *bool        `json:"isActive"`
}

// IdentityFilter - list query filters
type IdentityFilter struct {
	Usage       IdentityUsage
	PlatformKey string
	IsActive    string // "", "true", "false"
}

// Matches - applies the filter to one identity
func (f *IdentityFilter) Matches(id *Identity) bool {
	if f.Usage != "" && id.Usage != f.Usage {
		return false
	}
	if f.PlatformKey != "" && id.PlatformKey != "" && id.PlatformKey != f.PlatformKey {
		return false
	}
	if f.IsActive == "true" && !id.IsActive {
		return false
	}
	if f.IsActive == "false" && id.IsActive {
		return false
	}
	return true
}
