package models

import "time"

// OAuthConnection - a client-side platform OAuth grant captured during
// onboarding. Tokens are stored with the record; API responses use
// ReturnOAuthConnection so they never leave the server.
type OAuthConnection struct {
	ID           string    `json:"id"`
	PlatformKey  string    `json:"platformKey"`
	RequestID    string    `json:"requestId,omitempty"`
	ItemID       string    `json:"itemId,omitempty"`
	AccountEmail string    `json:"accountEmail,omitempty"`
	AccessToken  string    `json:"accesstoken"`
	RefreshToken string    `json:"refreshtoken,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsExpired - whether the access token needs a refresh
func (c *OAuthConnection) IsExpired() bool {
	return !c.Expiry.IsZero() && time.Now().After(c.Expiry)
}

// ReturnOAuthConnection - token-free view of a connection
type ReturnOAuthConnection struct {
	ID           string    `json:"id"`
	PlatformKey  string    `json:"platformKey"`
	RequestID    string    `json:"requestId,omitempty"`
	ItemID       string    `json:"itemId,omitempty"`
	AccountEmail string    `json:"accountEmail,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToReturnConnection - strips token material for API responses
func (c *OAuthConnection) ToReturnConnection() ReturnOAuthConnection {
	return ReturnOAuthConnection{
		ID:           c.ID,
		PlatformKey:  c.PlatformKey,
		RequestID:    c.RequestID,
		ItemID:       c.ItemID,
		AccountEmail: c.AccountEmail,
		Expiry:       c.Expiry,
		Scopes:       c.Scopes,
		CreatedAt:    c.CreatedAt,
	}
}

// OAuthStartParams - POST /oauth/{platformKey}/start payload
type OAuthStartParams struct {
	RequestID   string `json:"requestId"`
	ItemID      string `json:"itemId"`
	RedirectURI string `json:"redirectUri"`
}

// OAuthStartResponse - provider URL plus the state the callback must echo
type OAuthStartResponse struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
}

// OAuthCallbackParams - POST /oauth/{platformKey}/callback payload
type OAuthCallbackParams struct {
	State string `json:"state" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// OAuthRefreshParams - POST /oauth/{platformKey}/refresh payload
type OAuthRefreshParams struct {
	ConnectionID string `json:"connectionId" validate:"required"`
}

// FetchAccountsParams - POST /oauth/{platformKey}/fetch-accounts payload;
// either a stored connection or a raw token works
type FetchAccountsParams struct {
	ConnectionID string `json:"connectionId"`
	AccessToken  string `json:"accessToken"`
}

// PlatformAccount - one selectable account/property/container upstream
type PlatformAccount struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Kind        string `json:"kind,omitempty"`
}
