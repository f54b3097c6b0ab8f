package functions

import (
	"net/http"

	"github.com/grantlink/grantlink/models"
)

// LoginWithUserAndPassword - authenticates against the server and returns the
// issued token response
func LoginWithUserAndPassword(username, password string) *models.SuccessfulUserLoginResponse {
	authParams := &models.UserAuthParams{UserName: username, Password: password}
	return request[models.SuccessfulUserLoginResponse](http.MethodPost, "/api/users/adm/authenticate", authParams)
}
