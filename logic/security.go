package logic

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

const (
	// MasterUser - the username attached to master key requests
	MasterUser       = "masteradministrator"
	Forbidden_Msg    = "forbidden"
	Unauthorized_Msg = "unauthorized"
)

var (
	Forbidden_Err    = errors.New(Forbidden_Msg)
	Unauthorized_Err = errors.New(Unauthorized_Msg)
)

// SecurityCheck - Check if user has appropriate permissions.
// When no master key is configured and no admin user has been created the
// server is considered unconfigured and requests pass through, so a fresh
// install can be driven entirely over the API.
func SecurityCheck(reqAdmin bool, next http.Handler) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		if !authEnforced() {
			r.Header.Set("user", MasterUser)
			r.Header.Set("ismaster", "yes")
			next.ServeHTTP(w, r)
			return
		}
		r.Header.Set("ismaster", "no")
		bearerToken := r.Header.Get("Authorization")
		username, err := UserPermissions(reqAdmin, bearerToken)
		if err != nil {
			errType := "unauthorized"
			if errors.Is(err, Forbidden_Err) {
				errType = "forbidden"
			}
			ReturnErrorResponse(w, r, FormatError(err, errType))
			return
		}
		if username == MasterUser {
			r.Header.Set("ismaster", "yes")
		}
		r.Header.Set("user", username)
		next.ServeHTTP(w, r)
	}
}

// UserPermissions - checks token stuff
func UserPermissions(reqAdmin bool, token string) (string, error) {
	var tokenSplit = strings.Split(token, " ")
	var authToken = ""

	if len(tokenSplit) < 2 {
		return "", Unauthorized_Err
	} else {
		authToken = tokenSplit[1]
	}
	if authenticateMaster(authToken) {
		return MasterUser, nil
	}
	username, isadmin, err := VerifyUserToken(authToken)
	if err != nil {
		return username, Unauthorized_Err
	}
	if reqAdmin && !isadmin {
		return username, Forbidden_Err
	}

	return username, nil
}

// authenticateMaster - compares against the configured master key
func authenticateMaster(tokenString string) bool {
	return tokenString == servercfg.GetMasterKey() && servercfg.GetMasterKey() != ""
}

// authEnforced - auth kicks in once a master key is configured or an admin exists
func authEnforced() bool {
	if servercfg.GetMasterKey() != "" {
		return true
	}
	hasadmin, err := HasAdmin()
	if err != nil {
		return false
	}
	return hasadmin
}

// ContinueIfUserMatch - middleware that only continues if the request is for the logged-in user
func ContinueIfUserMatch(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var errorResponse = models.ErrorResponse{
			Code: http.StatusForbidden, Message: Forbidden_Msg,
		}
		var params = mux.Vars(r)
		var requestedUser = params["username"]
		if requestedUser == "" {
			requestedUser, _ = url.QueryUnescape(r.URL.Query().Get("username"))
		}
		if r.Header.Get("ismaster") != "yes" && requestedUser != r.Header.Get("user") {
			ReturnErrorResponse(w, r, errorResponse)
			return
		}
		next.ServeHTTP(w, r)
	}
}
