package functions

import (
	"net/http"
	"net/url"

	"github.com/grantlink/grantlink/models"
)

// GetPlatforms - fetch catalog platforms, optionally filtered
func GetPlatforms(filter *models.PlatformFilter) *[]models.Platform {
	qs := url.Values{}
	if filter != nil {
		if filter.ClientFacing != "" {
			qs.Set("clientFacing", filter.ClientFacing)
		}
		if filter.Tier != "" {
			qs.Set("tier", filter.Tier)
		}
		if filter.Domain != "" {
			qs.Set("domain", filter.Domain)
		}
		if filter.Search != "" {
			qs.Set("search", filter.Search)
		}
	}
	route := "/api/platforms"
	if len(qs) > 0 {
		route += "?" + qs.Encode()
	}
	return request[[]models.Platform](http.MethodGet, route, nil)
}

// CreatePlatform - add a custom platform to the catalog
func CreatePlatform(payload *models.APIPlatform) *models.Platform {
	return request[models.Platform](http.MethodPost, "/api/platforms", payload)
}
