package functions

import (
	"net/http"

	"github.com/grantlink/grantlink/models"
)

// GetClients - fetch all clients
func GetClients() *[]models.Client {
	return request[[]models.Client](http.MethodGet, "/api/clients", nil)
}

// GetClient - fetch a single client
func GetClient(clientID string) *models.Client {
	return request[models.Client](http.MethodGet, "/api/clients/"+clientID, nil)
}

// CreateClient - create a client
func CreateClient(payload *models.APIClient) *models.Client {
	return request[models.Client](http.MethodPost, "/api/clients", payload)
}

// DeleteClient - delete a client
func DeleteClient(clientID string) *string {
	return request[string](http.MethodDelete, "/api/clients/"+clientID, nil)
}

// GetConfiguredApps - fetch the platforms switched on for a client
func GetConfiguredApps(clientID string) *[]models.ConfiguredApp {
	return request[[]models.ConfiguredApp](http.MethodGet, "/api/clients/"+clientID+"/configured-apps", nil)
}

// CreateConfiguredApp - switch a platform on for a client
func CreateConfiguredApp(clientID, platformKey string) *models.ConfiguredApp {
	return request[models.ConfiguredApp](http.MethodPost, "/api/clients/"+clientID+"/configured-apps", &models.APIConfiguredApp{PlatformKey: platformKey})
}

// ToggleConfiguredApp - flip a configured app on or off
func ToggleConfiguredApp(appID string) *models.ConfiguredApp {
	return request[models.ConfiguredApp](http.MethodPost, "/api/configured-apps/"+appID+"/toggle", nil)
}

// DeleteConfiguredApp - remove a configured app
func DeleteConfiguredApp(appID string) *string {
	return request[string](http.MethodDelete, "/api/configured-apps/"+appID, nil)
}
