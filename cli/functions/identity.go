package functions

import (
	"net/http"
	"net/url"

	"github.com/grantlink/grantlink/models"
)

func identityRoute(base string, filter *models.IdentityFilter) string {
	qs := url.Values{}
	if filter != nil {
		if filter.PlatformKey != "" {
			qs.Set("platformId", filter.PlatformKey)
		}
		if filter.IsActive != "" {
			qs.Set("isActive", filter.IsActive)
		}
	}
	if len(qs) > 0 {
		return base + "?" + qs.Encode()
	}
	return base
}

// GetAgencyIdentities - fetch agency identities, optionally filtered
func GetAgencyIdentities(filter *models.IdentityFilter) *[]models.Identity {
	return request[[]models.Identity](http.MethodGet, identityRoute("/api/agency-identities", filter), nil)
}

// CreateAgencyIdentity - register an agency identity
func CreateAgencyIdentity(payload *models.APIIdentity) *models.Identity {
	return request[models.Identity](http.MethodPost, "/api/agency-identities", payload)
}

// GetIntegrationIdentities - fetch integration identities, optionally filtered
func GetIntegrationIdentities(filter *models.IdentityFilter) *[]models.Identity {
	return request[[]models.Identity](http.MethodGet, identityRoute("/api/integration-identities", filter), nil)
}

// CreateIntegrationIdentity - register an integration identity
func CreateIntegrationIdentity(payload *models.APIIdentity) *models.Identity {
	return request[models.Identity](http.MethodPost, "/api/integration-identities", payload)
}
