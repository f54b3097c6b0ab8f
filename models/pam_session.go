package models

import "time"

// PamSessionStatus - lease lifecycle
type PamSessionStatus string

const (
	SessionActive   PamSessionStatus = "active"
	SessionReturned PamSessionStatus = "returned"
	SessionExpired  PamSessionStatus = "expired"
)

// PamSession - one checkout lease over a shared credential. Credential
// material is revealed in the checkout response only, never on list reads.
type PamSession struct {
	ID              string           `json:"id"`
	AccessRequestID string           `json:"accessRequestId"`
	ItemID          string           `json:"itemId"`
	PlatformKey     string           `json:"platformKey"`
	Username        string           `json:"username"`
	SecretRef       string           `json:"secretRef"`
	CheckedOutAt    time.Time        `json:"checkedOutAt"`
	CheckedOutBy    string           `json:"checkedOutBy,omitempty"`
	ExpiresAt       time.Time        `json:"expiresAt"`
	CheckedInAt     *time.Time       `json:"checkedInAt,omitempty"`
	Status          PamSessionStatus `json:"status"`
}

// IsActive - an unexpired, unreturned lease
func (s *PamSession) IsActive() bool {
	return s.Status == SessionActive && time.Now().Before(s.ExpiresAt)
}

// PamSecret - stored credential material referenced by a secretRef
type PamSecret struct {
	Ref       string    `json:"ref"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Target    string    `json:"target,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CheckoutParams - POST checkout payload
type CheckoutParams struct {
	CheckedOutBy string `json:"checkedOutBy"`
	Reason       string `json:"reason"`
}

// CheckoutResponse - the one place credential material crosses the wire
type CheckoutResponse struct {
	Session  PamSession `json:"session"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	Target   string     `json:"target,omitempty"`
}

/// PamItemView - GET /pam/items row: every PAM-managed request item and
// whether something currently holds its lease
type PamItemView struct {
	AccessRequestID string         `json:"accessRequestId"`
	ItemID          string         `json:"itemId"`
	PlatformKey     string         `json:"platformKey"`
	Label           string         `json:"label"`
	ItemType        AccessItemType `json:"itemType"`
	PamUsername     string         `json:"pamUsername,omitempty"`
	HasSecret       bool           `json:"hasSecret"`
	ActiveSession   *PamSession    `json:"activeSession,omitempty"`
}
