package auth

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

// == consts ==
const (
	init_provider        = "initprovider"
	get_user_info        = "getuserinfo"
	handle_callback      = "handlecallback"
	handle_login         = "handlelogin"
	verify_user          = "verifyuser"
	google_provider_name = "google"
	oidc_provider_name   = "oidc"

	auth_key = "grantlink_auth"
)

var auth_provider *oauth2.Config

func getCurrentAuthFunctions() map[string]interface{} {
	var authInfo = servercfg.GetAuthProviderInfo()
	var authProvider = authInfo[0]
	switch authProvider {
	case google_provider_name:
		return google_functions
	case oidc_provider_name:
		return oidc_functions
	default:
		return nil
	}
}

// InitializeAuthProvider - initializes the auth provider if any is present
func InitializeAuthProvider() string {
	var functions = getCurrentAuthFunctions()
	if functions == nil {
		return ""
	}
	var _, err = FetchPassValue(logic.RandomString(64))
	if err != nil {
		logger.Log(0, err.Error())
		return ""
	}
	var authInfo = servercfg.GetAuthProviderInfo()
	var serverConn = servercfg.GetAPIConnString()
	logger.Log(0, "setting oauth secret")

	if authInfo[0] == oidc_provider_name {
		functions[init_provider].(func(string, string, string, string))(serverConn+"/api/oauth/callback", authInfo[1], authInfo[2], authInfo[3])
		return authInfo[0]
	}

	functions[init_provider].(func(string, string, string))(serverConn+"/api/oauth/callback", authInfo[1], authInfo[2])
	return authInfo[0]
}

// HandleAuthCallback - handles oauth callback
func HandleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if auth_provider == nil {
		handleOauthNotConfigured(w)
		return
	}
	var functions = getCurrentAuthFunctions()
	if functions == nil {
		return
	}
	functions[handle_callback].(func(http.ResponseWriter, *http.Request))(w, r)
}

// HandleAuthLogin - handles oauth login
func HandleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if auth_provider == nil {
		handleOauthNotConfigured(w)
		return
	}
	var functions = getCurrentAuthFunctions()
	if functions == nil {
		return
	}
	functions[handle_login].(func(http.ResponseWriter, *http.Request))(w, r)
}

// IsOauthUser - returns nil if the user was created via oauth sign-in
func IsOauthUser(user *models.User) error {
	var currentValue, err = FetchPassValue("")
	if err != nil {
		return err
	}
	var bCryptErr = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentValue))
	return bCryptErr
}

// FetchPassValue - fetches the effective password for oauth users, seeding it
// on first call
func FetchPassValue(newValue string) (string, error) {

	type valueHolder struct {
		Value string `json:"value" bson:"value"`
	}
	var b, cryptErr = json.Marshal(&valueHolder{Value: newValue})
	if cryptErr != nil {
		return "", cryptErr
	}

	var data, err = logic.FetchAuthSecret(auth_key, string(b))
	if err != nil {
		return "", err
	}
	var newValueHolder valueHolder
	var unmarshErr = json.Unmarshal([]byte(data), &newValueHolder)
	if unmarshErr != nil {
		return "", unmarshErr
	}
	return newValueHolder.Value, nil
}

// == private methods ==

func addUser(email string) error {
	var hasAdmin, err = logic.HasAdmin()
	if err != nil {
		logger.Log(1, "error checking for admin users when adding oauth user", email, "; user not added")
		return err
	}
	var newPass, fetchErr = FetchPassValue("")
	if fetchErr != nil {
		return fetchErr
	}
	var newUser = models.User{
		UserName: email,
		Password: newPass,
	}
	if !hasAdmin { // first oauth signin becomes the admin
		newUser.IsAdmin = true
		err = logic.CreateAdmin(&newUser)
	} else {
		err = logic.CreateUser(&newUser)
	}
	if err != nil {
		logger.Log(1, "error creating user", email, "; user not added")
		return err
	}
	return nil
}
