package functions

import (
	"net/http"

	"github.com/grantlink/grantlink/models"
)

// GetPamSessions - fetch all checkout sessions
func GetPamSessions() *[]models.PamSession {
	return request[[]models.PamSession](http.MethodGet, "/api/pam/sessions", nil)
}

// GetPamItems - fetch every PAM-managed request item and its lease state
func GetPamItems() *[]models.PamItemView {
	return request[[]models.PamItemView](http.MethodGet, "/api/pam/items", nil)
}

// CheckoutCredential - acquire the lease on an item's shared credential
func CheckoutCredential(requestID, itemID string, payload *models.CheckoutParams) *models.CheckoutResponse {
	return request[models.CheckoutResponse](http.MethodPost, "/api/pam/"+requestID+"/items/"+itemID+"/checkout", payload)
}

// CheckinCredential - release the lease on an item's shared credential
func CheckinCredential(requestID, itemID string) *models.PamSession {
	return request[models.PamSession](http.MethodPost, "/api/pam/"+requestID+"/items/"+itemID+"/checkin", nil)
}
