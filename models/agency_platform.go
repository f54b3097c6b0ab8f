package models

import "time"

// AgencyPlatform - a platform the agency has switched on for client onboarding,
// holding its ordered access items
type AgencyPlatform struct {
	ID          string       `json:"id"`
	PlatformKey string       `json:"platformId"`
	DisplayName string       `json:"displayName,omitempty"`
	IsEnabled   bool         `json:"isEnabled"`
	Items       []AccessItem `json:"items"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// APIAgencyPlatform - POST /agency/platforms payload
type APIAgencyPlatform struct {
	PlatformKey string `json:"platformId" validate:"required"`
	DisplayName string `json:"displayName"`
	IsEnabled   *bool  `json:"isEnabled"`
}

// DefaultItem - the item used when an access request is created via the legacy
// platformIds shorthand: the first enabled platform's first item by sort order
func (ap *AgencyPlatform) DefaultItem() *AccessItem {
	if len(ap.Items) == 0 {
		return nil
	}
	def := &ap.Items[0]
	for i := range ap.Items {
		if ap.Items[i].SortOrder < def.SortOrder {
			def = &ap.Items[i]
		}
	}
	return def
}
