// Package integrations holds the platform connectors that perform automated
// grant, verify and revoke calls against upstream marketing APIs. Every call
// here runs after the capability gate has approved it.
package integrations

import (
	"fmt"

	"github.com/grantlink/grantlink/models"
)

// == consts ==
const (
	grant_access   = "grantaccess"
	verify_access  = "verifyaccess"
	revoke_access  = "revokeaccess"
	fetch_accounts = "fetchaccounts"

	ga4_connector_name = "ga4"
	gtm_connector_name = "google-tag-manager"
	gsc_connector_name = "google-search-console"
)

// UpstreamError - an error surfaced by a platform API, carrying the status
// the caller should relay
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func getConnectorFunctions(platformKey string) map[string]interface{} {
	switch platformKey {
	case ga4_connector_name:
		return ga4_functions
	case gtm_connector_name:
		return gtm_functions
	case gsc_connector_name:
		return gsc_functions
	default:
		return nil
	}
}

// HasConnector - whether an implemented connector backs the platform
func HasConnector(platformKey string) bool {
	return getConnectorFunctions(platformKey) != nil
}

// RunAction - dispatches an approved action to the platform connector
func RunAction(platformKey string, action models.Action, payload *models.ActionPayload) (*models.ActionResult, error) {
	functions := getConnectorFunctions(platformKey)
	if functions == nil {
		return nil, fmt.Errorf("the %s connector is pending", platformKey)
	}
	var fnKey string
	switch action {
	case models.ActionGrant:
		fnKey = grant_access
	case models.ActionVerify:
		fnKey = verify_access
	case models.ActionRevoke:
		fnKey = revoke_access
	default:
		return nil, fmt.Errorf("unknown action %s", action)
	}
	fn, ok := functions[fnKey]
	if !ok {
		return nil, fmt.Errorf("platform %s does not support %s", platformKey, action)
	}
	return fn.(func(*models.ActionPayload) (*models.ActionResult, error))(payload)
}

// FetchAccounts - lists the selectable accounts upstream with a bearer token
func FetchAccounts(platformKey, accessToken string) ([]models.PlatformAccount, error) {
	functions := getConnectorFunctions(platformKey)
	if functions == nil {
		return nil, fmt.Errorf("the %s connector is pending", platformKey)
	}
	fn, ok := functions[fetch_accounts]
	if !ok {
		return nil, fmt.Errorf("platform %s cannot list accounts", platformKey)
	}
	return fn.(func(string) ([]models.PlatformAccount, error))(accessToken)
}
