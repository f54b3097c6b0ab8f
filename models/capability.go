package models

// AccessItemType - the access pattern family an item provisions
type AccessItemType string

const (
	NamedInvite       AccessItemType = "NAMED_INVITE"
	GroupAccess       AccessItemType = "GROUP_ACCESS"
	SharedAccount     AccessItemType = "SHARED_ACCOUNT"
	SharedAccountPAM  AccessItemType = "SHARED_ACCOUNT_PAM"
	PartnerDelegation AccessItemType = "PARTNER_DELEGATION"
)

// AccessItemTypes - all item types the server knows
var AccessItemTypes = []AccessItemType{
	NamedInvite,
	GroupAccess,
	SharedAccount,
	SharedAccountPAM,
	PartnerDelegation,
}

// IsValid - checks the item type against the known set
func (t AccessItemType) IsValid() bool {
	for i := range AccessItemTypes {
		if AccessItemTypes[i] == t {
			return true
		}
	}
	return false
}

// IsPamManaged - shared-credential item types that carry PAM configuration
func (t AccessItemType) IsPamManaged() bool {
	return t == SharedAccount || t == SharedAccountPAM
}

// PamOwnership - who administratively controls the underlying credential
type PamOwnership string

const (
	AgencyOwned PamOwnership = "AGENCY_OWNED"
	ClientOwned PamOwnership = "CLIENT_OWNED"
)

// IsValid - ownership enum check
func (o PamOwnership) IsValid() bool {
	return o == AgencyOwned || o == ClientOwned
}

// IdentityPurpose - how the bound identity is used
type IdentityPurpose string

const (
	HumanInteractive          IdentityPurpose = "HUMAN_INTERACTIVE"
	IntegrationNonInteractive IdentityPurpose = "INTEGRATION_NON_INTERACTIVE"
)

// IsValid - purpose enum check
func (p IdentityPurpose) IsValid() bool {
	return p == HumanInteractive || p == IntegrationNonInteractive
}

// PamIdentityStrategy - how an agency-owned identity gets provisioned
type PamIdentityStrategy string

const (
	StaticAgencyIdentity    PamIdentityStrategy = "STATIC_AGENCY_IDENTITY"
	ClientDedicatedIdentity PamIdentityStrategy = "CLIENT_DEDICATED_IDENTITY"
)

// IsValid - strategy enum check
func (s PamIdentityStrategy) IsValid() bool {
	return s == StaticAgencyIdentity || s == ClientDedicatedIdentity
}

// HumanIdentityStrategy - who receives a named invite
type HumanIdentityStrategy string

const (
	AgencyGroup     HumanIdentityStrategy = "AGENCY_GROUP"
	IndividualUsers HumanIdentityStrategy = "INDIVIDUAL_USERS"
	ClientDedicated HumanIdentityStrategy = "CLIENT_DEDICATED"
)

// IsValid - human strategy enum check
func (s HumanIdentityStrategy) IsValid() bool {
	return s == AgencyGroup || s == IndividualUsers || s == ClientDedicated
}

// PamIdentityType - the shape of a client-dedicated identity
type PamIdentityType string

const (
	IdentityMailbox PamIdentityType = "MAILBOX"
	IdentityGroup   PamIdentityType = "GROUP"
)

// IsValid - identity type enum check
func (t PamIdentityType) IsValid() bool {
	return t == IdentityMailbox || t == IdentityGroup
}

// PamRecommendation - how strongly a platform discourages shared credentials
type PamRecommendation string

const (
	PamRecommended    PamRecommendation = "recommended"
	PamNotRecommended PamRecommendation = "not_recommended"
	PamBreakGlassOnly PamRecommendation = "break_glass_only"
)

// Action - an automated operation dispatched through a platform connector
type Action string

const (
	ActionGrant  Action = "grant"
	ActionVerify Action = "verify"
	ActionRevoke Action = "revoke"
)

// CapabilityContext - optional PAM configuration context for capability resolution.
// Both fields empty means "unknown configuration" and resolves like CLIENT_OWNED.
type CapabilityContext struct {
	PamOwnership    PamOwnership    `json:"pamOwnership,omitempty"`
	IdentityPurpose IdentityPurpose `json:"identityPurpose,omitempty"`
}

// ResolvedCapabilities - the four automation booleans plus the manual fallback flag
type ResolvedCapabilities struct {
	ClientOAuthSupported   bool `json:"clientOAuthSupported"`
	CanGrantAccess         bool `json:"canGrantAccess"`
	CanVerifyAccess        bool `json:"canVerifyAccess"`
	CanRevokeAccess        bool `json:"canRevokeAccess"`
	RequiresEvidenceUpload bool `json:"requiresEvidenceUpload"`
}

// ForAction - picks the boolean guarding a dispatched action
func (c ResolvedCapabilities) ForAction(action Action) bool {
	switch action {
	case ActionGrant:
		return c.CanGrantAccess
	case ActionVerify:
		return c.CanVerifyAccess
	case ActionRevoke:
		return c.CanRevokeAccess
	}
	return false
}

// ActionPayload - request body of grant-access/verify-access/revoke-access
type ActionPayload struct {
	AccessToken     string          `json:"accessToken"`
	Target          string          `json:"target"`
	Role            string          `json:"role"`
	Identity        string          `json:"identity"`
	AccessItemType  AccessItemType  `json:"accessItemType"`
	PamOwnership    PamOwnership    `json:"pamOwnership,omitempty"`
	IdentityPurpose IdentityPurpose `json:"identityPurpose,omitempty"`
}

// Context - the capability context carried inside an action payload
func (p *ActionPayload) Context() *CapabilityContext {
	if p.PamOwnership == "" && p.IdentityPurpose == "" {
		return nil
	}
	return &CapabilityContext{
		PamOwnership:    p.PamOwnership,
		IdentityPurpose: p.IdentityPurpose,
	}
}

// ActionResult - connector outcome returned to the caller on success
type ActionResult struct {
	Action   Action         `json:"action"`
	Platform string         `json:"platform"`
	Target   string         `json:"target"`
	Identity string         `json:"identity"`
	Role     string         `json:"role,omitempty"`
	Granted  bool           `json:"granted,omitempty"`
	Verified bool           `json:"verified,omitempty"`
	Revoked  bool           `json:"revoked,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}
