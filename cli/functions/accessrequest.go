package functions

import (
	"net/http"

	"github.com/grantlink/grantlink/models"
)

// GetAccessRequests - fetch all access requests
func GetAccessRequests() *[]models.AccessRequest {
	return request[[]models.AccessRequest](http.MethodGet, "/api/access-requests", nil)
}

// GetAccessRequest - fetch a single access request
func GetAccessRequest(requestID string) *models.AccessRequest {
	return request[models.AccessRequest](http.MethodGet, "/api/access-requests/"+requestID, nil)
}

// CreateAccessRequest - create an access request for a client
func CreateAccessRequest(payload *models.APIAccessRequest) *models.AccessRequest {
	return request[models.AccessRequest](http.MethodPost, "/api/access-requests", payload)
}

// DeleteAccessRequest - delete an access request
func DeleteAccessRequest(requestID string) *string {
	return request[string](http.MethodDelete, "/api/access-requests/"+requestID, nil)
}

// ValidateRequestItem - mark one item on a request as validated
func ValidateRequestItem(requestID string, payload *models.ValidateItemParams) *models.AccessRequest {
	return request[models.AccessRequest](http.MethodPost, "/api/access-requests/"+requestID+"/validate", payload)
}

// RefreshRequestToken - rotate the onboarding token of a request
func RefreshRequestToken(requestID string) *models.AccessRequest {
	return request[models.AccessRequest](http.MethodPost, "/api/access-requests/"+requestID+"/refresh", nil)
}
