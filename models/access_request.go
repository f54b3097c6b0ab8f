package models

import "time"

// RequestItemStatus - lifecycle of one item inside an access request
type RequestItemStatus string

const (
	RequestItemPending   RequestItemStatus = "pending"
	RequestItemSubmitted RequestItemStatus = "submitted"
	RequestItemValidated RequestItemStatus = "validated"
)

// OnboardingTokenLength - random portion of an onboarding token
const OnboardingTokenLength = 32

// OnboardingToken - the tokenized onboarding credential handed to a client;
// the b64 form of this struct is the opaque token in portal links
type OnboardingToken struct {
	Server string `json:"server"`
	Value  string `json:"value"`
}

// AccessRequestItem - one requested piece of access inside a request
type AccessRequestItem struct {
	ItemID               string            `json:"itemId"`
	PlatformKey          string            `json:"platformKey"`
	ItemType             AccessItemType    `json:"itemType"`
	Label                string            `json:"label"`
	Role                 string            `json:"role,omitempty"`
	AccessPattern        AccessPattern     `json:"accessPattern"`
	PatternLabel         string            `json:"patternLabel"`
	Status               RequestItemStatus `json:"status"`
	ValidatedAt          *time.Time        `json:"validatedAt,omitempty"`
	ValidatedBy          string            `json:"validatedBy,omitempty"`
	ClientProvidedTarget string            `json:"clientProvidedTarget,omitempty"`
	ResolvedIdentity     string            `json:"resolvedIdentity,omitempty"`
	PamUsername          string            `json:"pamUsername,omitempty"`
	PamSecretRef         string            `json:"pamSecretRef,omitempty"`
	EvidenceNote         string            `json:"evidenceNote,omitempty"`
}

// AccessRequest - an ordered bundle of access items sent to one client
type AccessRequest struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"clientId"`
	TokenValue  string              `json:"value"`           // random portion, looked up by the portal
	Token       string              `json:"token,omitempty"` // b64 OnboardingToken
	Status      RequestItemStatus   `json:"status"`
	Items       []AccessRequestItem `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
	RefreshedAt *time.Time          `json:"refreshedAt,omitempty"`
}

// AllValidated - whether every item has been validated
func (r *AccessRequest) AllValidated() bool {
	if len(r.Items) == 0 {
		return false
	}
	for i := range r.Items {
		if r.Items[i].Status != RequestItemValidated {
			return false
		}
	}
	return true
}

// FindItem - item lookup by id, nil when absent
func (r *AccessRequest) FindItem(itemID string) *AccessRequestItem {
	for i := range r.Items {
		if r.Items[i].ItemID == itemID {
			return &r.Items[i]
		}
	}
	return nil
}

// FindItemByPlatform - legacy lookup used by validate calls that still send a
// platformId instead of an itemId; first match wins
func (r *AccessRequest) FindItemByPlatform(platformKey string) *AccessRequestItem {
	for i := range r.Items {
		if r.Items[i].PlatformKey == platformKey {
			return &r.Items[i]
		}
	}
	return nil
}

// APIAccessRequest - POST /access-requests payload; ItemIDs is the current
// form, PlatformIDs the legacy shorthand converted to default items
type APIAccessRequest struct {
	ClientID    string   `json:"clientId" validate:"required"`
	ItemIDs     []string `json:"itemIds"`
	PlatformIDs []string `json:"platformIds"`
}

// ValidateItemParams - POST /access-requests/{id}/validate payload
type ValidateItemParams struct {
	ItemID     string `json:"itemId"`
	PlatformID string `json:"platformId"` // legacy
	Note       string `json:"note"`
}

// OnboardingItem - the client-safe projection of a request item: capability
// flags resolved, agency internals stripped
type OnboardingItem struct {
	ItemID        string               `json:"itemId"`
	PlatformKey   string               `json:"platformKey"`
	DisplayName   string               `json:"displayName"`
	LogoPath      string               `json:"logoPath,omitempty"`
	BrandColor    string               `json:"brandColor,omitempty"`
	ItemType      AccessItemType       `json:"itemType"`
	Label         string               `json:"label"`
	Role          string               `json:"role,omitempty"`
	PatternLabel  string               `json:"patternLabel"`
	Status        RequestItemStatus    `json:"status"`
	Capabilities  ResolvedCapabilities `json:"capabilities"`
	Instructions  []InstructionStep    `json:"instructions,omitempty"`
	TargetFields  []FieldSpec          `json:"targetFields,omitempty"`
}

// OnboardingView - GET /onboarding/{token} response
type OnboardingView struct {
	RequestID  string           `json:"requestId"`
	AgencyName string           `json:"agencyName"`
	ClientName string           `json:"clientName"`
	Status     RequestItemStatus `json:"status"`
	Items      []OnboardingItem `json:"items"`
}

// SubmitCredentialsParams - POST /onboarding/{token}/items/{itemId}/submit-credentials
type SubmitCredentialsParams struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Target   string `json:"target"`
	Notes    string `json:"notes"`
}

// AttestParams - POST /onboarding/{token}/items/{itemId}/attest; the manual
// evidence path used when no automated verify exists
type AttestParams struct {
	AttestedBy   string `json:"attestedBy"`
	Target       string `json:"target"`
	EvidenceNote string `json:"evidenceNote"`
}

// OnboardingStatusUpdate - pushed over the portal websocket whenever an item
// moves through its lifecycle
type OnboardingStatusUpdate struct {
	RequestID     string            `json:"requestId"`
	ItemID        string            `json:"itemId"`
	ItemStatus    RequestItemStatus `json:"itemStatus"`
	RequestStatus RequestItemStatus `json:"requestStatus"`
}
