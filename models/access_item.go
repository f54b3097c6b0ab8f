package models

import "time"

// AccessPattern - derived, read-only classification of an item
type AccessPattern string

const (
	PatternNamedInvite       AccessPattern = "named_invite"
	PatternGroupAccess       AccessPattern = "group_access"
	PatternSharedAccount     AccessPattern = "shared_account"
	PatternSharedAccountPAM  AccessPattern = "shared_account_pam"
	PatternPartnerDelegation AccessPattern = "partner_delegation"
)

// Label - human form of an access pattern
func (p AccessPattern) Label() string {
	switch p {
	case PatternNamedInvite:
		return "Named Invite"
	case PatternGroupAccess:
		return "Group Access"
	case PatternSharedAccount:
		return "Shared Account"
	case PatternSharedAccountPAM:
		return "Shared Account (PAM)"
	case PatternPartnerDelegation:
		return "Partner Delegation"
	}
	return string(p)
}

// PamConfig - derived, read-only summary of an item's PAM posture
type PamConfig struct {
	Ownership               PamOwnership        `json:"ownership,omitempty"`
	IdentityStrategy        PamIdentityStrategy `json:"identityStrategy,omitempty"`
	AgencyIdentityEmail     string              `json:"agencyIdentityEmail,omitempty"`
	NamingTemplate          string              `json:"namingTemplate,omitempty"`
	CheckoutDurationMinutes *int                `json:"checkoutDurationMinutes,omitempty"`
	RotationPolicy          string              `json:"rotationPolicy,omitempty"`
	ApprovalRequired        bool                `json:"approvalRequired,omitempty"`
}

// APIAccessItem - create/update payload for an access item. PAM fields may
// arrive at the top level or buried inside the legacy agencyConfigJson blob;
// Normalize hoists them so the rule engine sees one shape.
type APIAccessItem struct {
	ItemType                   AccessItemType        `json:"itemType" validate:"required"`
	Label                      string                `json:"label"`
	Role                       string                `json:"role"`
	SortOrder                  int                   `json:"sortOrder"`
	AgencyData                 map[string]any        `json:"agencyData"`
	AgencyConfigJSON           map[string]any        `json:"agencyConfigJson"` // legacy alias of agencyData
	ClientInstructions         string                `json:"clientInstructions"`
	PamOwnership               PamOwnership          `json:"pamOwnership,omitempty"`
	IdentityPurpose            IdentityPurpose       `json:"identityPurpose,omitempty"`
	PamIdentityStrategy        PamIdentityStrategy   `json:"pamIdentityStrategy,omitempty"`
	AgencyIdentityID           string                `json:"agencyIdentityId,omitempty"`
	IntegrationIdentityID      string                `json:"integrationIdentityId,omitempty"`
	PamIdentityType            PamIdentityType       `json:"pamIdentityType,omitempty"`
	PamNamingTemplate          string                `json:"pamNamingTemplate,omitempty"`
	PamCheckoutDurationMinutes *int                  `json:"pamCheckoutDurationMinutes,omitempty"`
	PamRotationPolicy          string                `json:"pamRotationPolicy,omitempty"`
	PamApprovalRequired        bool                  `json:"pamApprovalRequired,omitempty"`
	PamConfirmation            bool                  `json:"pamConfirmation,omitempty"`
	HumanIdentityStrategy      HumanIdentityStrategy `json:"humanIdentityStrategy,omitempty"`
	AgencyGroupEmail           string                `json:"agencyGroupEmail,omitempty"`
}

// pam keys that may ride inside agencyConfigJson instead of the top level
var pamConfigKeys = []string{
	"pamOwnership", "identityPurpose", "pamIdentityStrategy", "agencyIdentityId",
	"integrationIdentityId", "pamIdentityType", "pamNamingTemplate",
	"pamCheckoutDurationMinutes", "pamRotationPolicy", "pamApprovalRequired",
	"pamConfirmation", "humanIdentityStrategy", "agencyGroupEmail",
}

// Normalize - merges agencyConfigJson into agencyData and hoists the PAM keys
// out of the blob into the typed fields (top-level values win)
func (a *APIAccessItem) Normalize() {
	if a.AgencyData == nil {
		a.AgencyData = make(map[string]any)
	}
	for k, v := range a.AgencyConfigJSON {
		if _, ok := a.AgencyData[k]; !ok {
			a.AgencyData[k] = v
		}
	}
	a.AgencyConfigJSON = nil
	for _, key := range pamConfigKeys {
		raw, ok := a.AgencyData[key]
		if !ok {
			continue
		}
		delete(a.AgencyData, key)
		switch key {
		case "pamOwnership":
			if a.PamOwnership == "" {
				a.PamOwnership = PamOwnership(toString(raw))
			}
		case "identityPurpose":
			if a.IdentityPurpose == "" {
				a.IdentityPurpose = IdentityPurpose(toString(raw))
			}
		case "pamIdentityStrategy":
			if a.PamIdentityStrategy == "" {
				a.PamIdentityStrategy = PamIdentityStrategy(toString(raw))
			}
		case "agencyIdentityId":
			if a.AgencyIdentityID == "" {
				a.AgencyIdentityID = toString(raw)
			}
		case "integrationIdentityId":
			if a.IntegrationIdentityID == "" {
				a.IntegrationIdentityID = toString(raw)
			}
		case "pamIdentityType":
			if a.PamIdentityType == "" {
				a.PamIdentityType = PamIdentityType(toString(raw))
			}
		case "pamNamingTemplate":
			if a.PamNamingTemplate == "" {
				a.PamNamingTemplate = toString(raw)
			}
		case "pamCheckoutDurationMinutes":
			if a.PamCheckoutDurationMinutes == nil {
				if n, ok := toInt(raw); ok {
					a.PamCheckoutDurationMinutes = &n
				}
			}
		case "pamRotationPolicy":
			if a.PamRotationPolicy == "" {
				a.PamRotationPolicy = toString(raw)
			}
		case "pamApprovalRequired":
			if b, ok := raw.(bool); ok {
				a.PamApprovalRequired = a.PamApprovalRequired || b
			}
		case "pamConfirmation":
			if b, ok := raw.(bool); ok {
				a.PamConfirmation = a.PamConfirmation || b
			}
		case "humanIdentityStrategy":
			if a.HumanIdentityStrategy == "" {
				a.HumanIdentityStrategy = HumanIdentityStrategy(toString(raw))
			}
		case "agencyGroupEmail":
			if a.AgencyGroupEmail == "" {
				a.AgencyGroupEmail = toString(raw)
			}
		}
	}
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// HasIdentityProvisioningFields - true when any agency-side identity field is
// set; CLIENT_OWNED items must not carry these
func (a *APIAccessItem) HasIdentityProvisioningFields() bool {
	return a.IdentityPurpose != "" ||
		a.PamIdentityStrategy != "" ||
		a.PamNamingTemplate != "" ||
		a.PamIdentityType != "" ||
		a.PamCheckoutDurationMinutes != nil ||
		a.AgencyIdentityID != "" ||
		a.IntegrationIdentityID != ""
}

// AccessItem - a configured offer of access under an agency platform
type AccessItem struct {
	ID                         string                `json:"id"`
	AgencyPlatformID           string                `json:"agencyPlatformId"`
	PlatformKey                string                `json:"platformKey"`
	ItemType                   AccessItemType        `json:"itemType"`
	Label                      string                `json:"label"`
	Role                       string                `json:"role,omitempty"`
	AccessPattern              AccessPattern         `json:"accessPattern"`
	PatternLabel               string                `json:"patternLabel"`
	SortOrder                  int                   `json:"sortOrder"`
	AgencyData                 map[string]any        `json:"agencyData,omitempty"`
	PamOwnership               PamOwnership          `json:"pamOwnership,omitempty"`
	IdentityPurpose            IdentityPurpose       `json:"identityPurpose,omitempty"`
	PamIdentityStrategy        PamIdentityStrategy   `json:"pamIdentityStrategy,omitempty"`
	AgencyIdentityID           string                `json:"agencyIdentityId,omitempty"`
	IntegrationIdentityID      string                `json:"integrationIdentityId,omitempty"`
	PamIdentityType            PamIdentityType       `json:"pamIdentityType,omitempty"`
	PamNamingTemplate          string                `json:"pamNamingTemplate,omitempty"`
	PamCheckoutDurationMinutes *int                  `json:"pamCheckoutDurationMinutes,omitempty"`
	PamRotationPolicy          string                `json:"pamRotationPolicy,omitempty"`
	PamApprovalRequired        bool                  `json:"pamApprovalRequired,omitempty"`
	HumanIdentityStrategy      HumanIdentityStrategy `json:"humanIdentityStrategy,omitempty"`
	AgencyGroupEmail           string                `json:"agencyGroupEmail,omitempty"`
	PamConfig                  *PamConfig            `json:"pamConfig,omitempty"`
	ClientInstructions         string                `json:"clientInstructions,omitempty"`
	CreatedAt                  time.Time             `json:"createdAt"`
	UpdatedAt                  time.Time             `json:"updatedAt"`
}

// Context - the capability context a stored item carries; nil when the item
// has no PAM configuration at all
func (a *AccessItem) Context() *CapabilityContext {
	if a.PamOwnership == "" && a.IdentityPurpose == "" {
		return nil
	}
	return &CapabilityContext{
		PamOwnership:    a.PamOwnership,
		IdentityPurpose: a.IdentityPurpose,
	}
}

// Pattern - derives the access pattern from item type + pam posture
func (a *APIAccessItem) Pattern() AccessPattern {
	switch a.ItemType {
	case NamedInvite:
		return PatternNamedInvite
	case GroupAccess:
		return PatternGroupAccess
	case PartnerDelegation:
		return PatternPartnerDelegation
	case SharedAccountPAM:
		return PatternSharedAccountPAM
	case SharedAccount:
		if a.PamOwnership == AgencyOwned {
			return PatternSharedAccountPAM
		}
		return PatternSharedAccount
	}
	return AccessPattern(a.ItemType)
}
