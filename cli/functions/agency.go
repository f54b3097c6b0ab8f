package functions

import (
	"net/http"

	"github.com/grantlink/grantlink/models"
)

// GetAgencyPlatforms - fetch all platforms the agency has switched on
func GetAgencyPlatforms() *[]models.AgencyPlatform {
	return request[[]models.AgencyPlatform](http.MethodGet, "/api/agency/platforms", nil)
}

// GetAgencyPlatform - fetch one agency platform with its items
func GetAgencyPlatform(platformID string) *models.AgencyPlatform {
	return request[models.AgencyPlatform](http.MethodGet, "/api/agency/platforms/"+platformID, nil)
}

// CreateAgencyPlatform - switch a platform on for the agency
func CreateAgencyPlatform(payload *models.APIAgencyPlatform) *models.AgencyPlatform {
	return request[models.AgencyPlatform](http.MethodPost, "/api/agency/platforms", payload)
}

// DeleteAgencyPlatform - remove an agency platform and its items
func DeleteAgencyPlatform(platformID string) *string {
	return request[string](http.MethodDelete, "/api/agency/platforms/"+platformID, nil)
}

// ToggleAgencyPlatform - flip an agency platform on or off
func ToggleAgencyPlatform(platformID string) *models.AgencyPlatform {
	return request[models.AgencyPlatform](http.MethodPatch, "/api/agency/platforms/"+platformID+"/toggle", nil)
}

// CreateAccessItem - add an access item to an agency platform
func CreateAccessItem(platformID string, payload *models.APIAccessItem) *models.AccessItem {
	return request[models.AccessItem](http.MethodPost, "/api/agency/platforms/"+platformID+"/items", payload)
}

// UpdateAccessItem - update an access item
func UpdateAccessItem(platformID, itemID string, payload *models.APIAccessItem) *models.AccessItem {
	return request[models.AccessItem](http.MethodPut, "/api/agency/platforms/"+platformID+"/items/"+itemID, payload)
}

// DeleteAccessItem - remove an access item
func DeleteAccessItem(platformID, itemID string) *string {
	return request[string](http.MethodDelete, "/api/agency/platforms/"+platformID+"/items/"+itemID, nil)
}
