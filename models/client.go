package models

import "time"

// Client - an agency's customer being onboarded
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required,min=2,max=128"`
	ContactEmail string    `json:"contactEmail" validate:"omitempty,email"`
	CompanyURL   string    `json:"companyUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// APIClient - POST /clients payload
type APIClient struct {
	Name         string `json:"name" validate:"required,min=2,max=128"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	CompanyURL   string `json:"companyUrl"`
}

// ConfiguredApp - a platform switched on for one specific client
type ConfiguredApp struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	PlatformKey string    `json:"platformKey"`
	IsEnabled   bool      `json:"isEnabled"`
	CreatedAt   time.Time `json:"createdAt"`
}

// APIConfiguredApp - POST /clients/{id}/configured-apps payload
type APIConfiguredApp struct {
	PlatformKey string `json:"platformKey" validate:"required"`
}
