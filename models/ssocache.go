package models

import "time"

// DefaultExpDuration - the default expiration time of SsoState
const DefaultExpDuration = time.Minute * 5

// SsoState - holds SSO sign-in session data. Connector OAuth flows
// reuse the same cache and record the platform the state was minted for,
// plus the request item the resulting connection should attach to.
type SsoState struct {
	Value       string    `json:"value"`
	PlatformKey string    `json:"platformkey,omitempty"`
	RedirectURL string    `json:"redirecturl,omitempty"`
	RequestID   string    `json:"requestid,omitempty"`
	ItemID      string    `json:"itemid,omitempty"`
	Expiration  time.Time `json:"expiration"`
}

// SsoState.IsExpired - tells if an SsoState is expired or not
func (s *SsoState) IsExpired() bool {
	return time.Now().After(s.Expiration)
}
