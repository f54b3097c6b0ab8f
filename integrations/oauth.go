package integrations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

const oauth_exchange_timeout = 15 * time.Second

// ErrOauthNotConfigured - no provider credentials are present for the platform
var ErrOauthNotConfigured = errors.New("oauth is not configured for this platform")

// connectorScopes - the scopes each google-backed connector asks for
func connectorScopes(platformKey string) []string {
	switch platformKey {
	case ga4_connector_name:
		return []string{"https://www.googleapis.com/auth/analytics.manage.users"}
	case gtm_connector_name:
		return []string{"https://www.googleapis.com/auth/tagmanager.manage.users"}
	case gsc_connector_name:
		return []string{"https://www.googleapis.com/auth/webmasters.readonly"}
	default:
		return nil
	}
}

// connectorOAuthConfig - builds the oauth2 config for one platform connector
func connectorOAuthConfig(platformKey, redirectURL string) (*oauth2.Config, error) {
	scopes := connectorScopes(platformKey)
	if scopes == nil {
		return nil, fmt.Errorf("the %s connector has no oauth flow", platformKey)
	}
	clientID, clientSecret, defaultRedirect := servercfg.GetGoogleProviderInfo()
	if clientID == "" || clientSecret == "" {
		return nil, ErrOauthNotConfigured
	}
	if redirectURL == "" {
		redirectURL = defaultRedirect
	}
	if redirectURL == "" {
		redirectURL = servercfg.GetAPIConnString() + "/api/oauth/" + platformKey + "/callback"
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}, nil
}

// StartOAuth - mints a state, caches the flow details and returns the
// provider URL the client browser should visit
func StartOAuth(platformKey string, params *models.OAuthStartParams) (*models.OAuthStartResponse, error) {
	config, err := connectorOAuthConfig(platformKey, params.RedirectURI)
	if err != nil {
		return nil, err
	}
	state := logic.RandomString(16)
	if err := logic.SetConnectorState(&models.SsoState{
		Value:       state,
		PlatformKey: platformKey,
		RedirectURL: config.RedirectURL,
		RequestID:   params.RequestID,
		ItemID:      params.ItemID,
	}); err != nil {
		return nil, err
	}
	return &models.OAuthStartResponse{
		AuthURL: config.AuthCodeURL(state, oauth2.AccessTypeOffline),
		State:   state,
	}, nil
}

// CompleteOAuth - exchanges the callback code and stores the resulting
// connection; the state must match the one minted by StartOAuth
func CompleteOAuth(platformKey string, params *models.OAuthCallbackParams) (*models.OAuthConnection, error) {
	cached, ok := logic.ConsumeConnectorState(params.State)
	if !ok {
		return nil, fmt.Errorf("invalid OAuth state")
	}
	if cached.PlatformKey != platformKey {
		return nil, fmt.Errorf("OAuth state was minted for platform %s", cached.PlatformKey)
	}
	config, err := connectorOAuthConfig(platformKey, cached.RedirectURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), oauth_exchange_timeout)
	defer cancel()
	token, err := config.Exchange(ctx, params.Code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %s", err.Error())
	}

	connection := models.OAuthConnection{
		ID:           uuid.NewString(),
		PlatformKey:  platformKey,
		RequestID:    cached.RequestID,
		ItemID:       cached.ItemID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		Scopes:       config.Scopes,
		CreatedAt:    time.Now().UTC(),
	}
	if err := logic.UpsertOAuthConnection(&connection); err != nil {
		return nil, err
	}
	return &connection, nil
}

// RefreshConnection - trades the refresh token for a fresh access token and
// updates the stored connection
func RefreshConnection(platformKey, connectionID string) (*models.OAuthConnection, error) {
	connection, err := logic.GetOAuthConnection(connectionID)
	if err != nil {
		return nil, fmt.Errorf("connection %s not found", connectionID)
	}
	if connection.PlatformKey != platformKey {
		return nil, fmt.Errorf("connection %s belongs to platform %s", connectionID, connection.PlatformKey)
	}
	if connection.RefreshToken == "" {
		return nil, fmt.Errorf("connection %s has no refresh token", connectionID)
	}
	config, err := connectorOAuthConfig(platformKey, "")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), oauth_exchange_timeout)
	defer cancel()
	source := config.TokenSource(ctx, &oauth2.Token{
		RefreshToken: connection.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	})
	token, err := source.Token()
	if err != nil {
		return nil, &UpstreamError{
			Status:  401,
			Message: "token refresh was rejected: credentials revoked or expired",
		}
	}

	connection.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		connection.RefreshToken = token.RefreshToken
	}
	connection.Expiry = token.Expiry
	if err := logic.UpsertOAuthConnection(&connection); err != nil {
		return nil, err
	}
	return &connection, nil
}

// ResolveAccessToken - picks the bearer token for an account listing call: a
// raw token wins, otherwise the stored connection supplies one, refreshed
// when stale
func ResolveAccessToken(platformKey string, params *models.FetchAccountsParams) (string, error) {
	if params.AccessToken != "" {
		return params.AccessToken, nil
	}
	if params.ConnectionID == "" {
		return "", fmt.Errorf("either accessToken or connectionId is required")
	}
	connection, err := logic.GetOAuthConnection(params.ConnectionID)
	if err != nil {
		return "", fmt.Errorf("connection %s not found", params.ConnectionID)
	}
	if connection.IsExpired() && connection.RefreshToken != "" {
		refreshed, err := RefreshConnection(platformKey, params.ConnectionID)
		if err != nil {
			return "", err
		}
		return refreshed.AccessToken, nil
	}
	return connection.AccessToken, nil
}
