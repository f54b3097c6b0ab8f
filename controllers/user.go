package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/auth"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
)

func userHandlers(r *mux.Router) {
	r.HandleFunc("/api/users/adm/hasadmin", hasAdmin).Methods(http.MethodGet)
	r.HandleFunc("/api/users/adm/createadmin", createAdmin).Methods(http.MethodPost)
	r.HandleFunc("/api/users/adm/authenticate", authenticateUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{username}", logic.SecurityCheck(false, logic.ContinueIfUserMatch(http.HandlerFunc(updateUser)))).Methods(http.MethodPut)
	r.HandleFunc("/api/users/{username}/adm", logic.SecurityCheck(true, http.HandlerFunc(updateUserAdm))).Methods(http.MethodPut)
	r.HandleFunc("/api/users/{username}", logic.SecurityCheck(true, http.HandlerFunc(createUser))).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{username}", logic.SecurityCheck(true, http.HandlerFunc(deleteUser))).Methods(http.MethodDelete)
	r.HandleFunc("/api/users/{username}", logic.SecurityCheck(false, logic.ContinueIfUserMatch(http.HandlerFunc(getUser)))).Methods(http.MethodGet)
	r.HandleFunc("/api/users", logic.SecurityCheck(true, http.HandlerFunc(getUsers))).Methods(http.MethodGet)
}

// swagger:route POST /api/users/adm/authenticate users authenticateUser
//
// User authenticates using username and password and retrieves a JWT for
// authorization.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func authenticateUser(response http.ResponseWriter, request *http.Request) {
	var authRequest models.UserAuthParams

	decoder := json.NewDecoder(request.Body)
	decoderErr := decoder.Decode(&authRequest)
	defer request.Body.Close()
	if decoderErr != nil {
		logger.Log(0, "error decoding request body: ", decoderErr.Error())
		logic.ReturnErrorResponse(response, request, logic.FormatError(decoderErr, "badrequest"))
		return
	}
	username := authRequest.UserName
	jwt, err := logic.VerifyAuthRequest(authRequest)
	if err != nil {
		logger.Log(0, username, "user validation failed: ", err.Error())
		logic.ReturnErrorResponse(response, request, logic.FormatError(err, "unauthorized"))
		return
	}
	if jwt == "" {
		// very unlikely that err is nil and no jwt returned, but handle it anyways
		logger.Log(0, username, "jwt token is empty")
		logic.ReturnErrorResponse(response, request, logic.FormatError(errors.New("no token returned"), "internal"))
		return
	}

	logger.Log(2, username, "was authenticated")
	logic.ReturnSuccessResponseWithJson(response, request, models.SuccessfulUserLoginResponse{
		UserName:  username,
		AuthToken: jwt,
	}, "authenticated user "+username)
}

// swagger:route GET /api/users/adm/hasadmin users hasAdmin
//
// Checks whether the server has an admin.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func hasAdmin(w http.ResponseWriter, r *http.Request) {
	hasadmin, err := logic.HasAdmin()
	if err != nil {
		logger.Log(0, "failed to check for admin: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, hasadmin, "checked for admin")
}

// swagger:route GET /api/users/{username} users getUser
//
// Get an individual user.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func getUser(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	usernameFetched := params["username"]
	user, err := logic.GetUser(usernameFetched)
	if err != nil {
		logger.Log(0, usernameFetched, "failed to fetch user: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched user", usernameFetched)
	logic.ReturnSuccessResponseWithJson(w, r, models.ReturnUser{
		UserName: user.UserName,
		IsAdmin:  user.IsAdmin,
	}, "fetched user "+usernameFetched)
}

// swagger:route GET /api/users users getUsers
//
// Get all users.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := logic.GetUsers()
	if err != nil {
		logger.Log(0, "failed to fetch users: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logic.SortUsers(users)
	logger.Log(2, r.Header.Get("user"), "fetched users")
	logic.ReturnSuccessResponseWithJson(w, r, users, "fetched users")
}

// swagger:route POST /api/users/adm/createadmin users createAdmin
//
// Creates the first admin. Fails once an admin exists.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func createAdmin(w http.ResponseWriter, r *http.Request) {
	var admin models.User

	err := json.NewDecoder(r.Body).Decode(&admin)
	if err != nil {
		logger.Log(0, admin.UserName, "error decoding request body: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	if err = logic.CreateAdmin(&admin); err != nil {
		logger.Log(0, admin.UserName, "failed to create admin: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logger.Log(1, admin.UserName, "was made a new admin")
	logic.ReturnSuccessResponseWithJson(w, r, models.ReturnUser{
		UserName: admin.UserName,
		IsAdmin:  true,
	}, "created admin "+admin.UserName)
}

// swagger:route POST /api/users/{username} users createUser
//
// Create a user.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func createUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		logger.Log(0, user.UserName, "error decoding request body: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	user.UserName = mux.Vars(r)["username"]
	if err = logic.CreateUser(&user); err != nil {
		logger.Log(0, user.UserName, "error creating new user: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logger.Log(1, user.UserName, "was created")
	logic.ReturnCreatedResponseWithJson(w, r, models.ReturnUser{
		UserName: user.UserName,
		IsAdmin:  user.IsAdmin,
	}, "created user "+user.UserName)
}

// swagger:route PUT /api/users/{username} users updateUser
//
// Update a user. SSO-managed users cannot change their password here.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func updateUser(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	username := params["username"]
	user, err := logic.GetUser(username)
	if err != nil {
		logger.Log(0, username, "failed to update user info: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	if auth.IsOauthUser(&user) == nil {
		err := fmt.Errorf("cannot update user info for oauth user %s", username)
		logger.Log(0, err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "forbidden"))
		return
	}
	var userchange models.User
	err = json.NewDecoder(r.Body).Decode(&userchange)
	if err != nil {
		logger.Log(0, username, "error decoding request body: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	// self-service never grants admin
	userchange.IsAdmin = user.IsAdmin
	updated, err := logic.UpdateUser(&userchange, &user)
	if err != nil {
		logger.Log(0, username, "failed to update user info: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logger.Log(1, username, "was updated")
	logic.ReturnSuccessResponseWithJson(w, r, models.ReturnUser{
		UserName: updated.UserName,
		IsAdmin:  updated.IsAdmin,
	}, "updated user "+username)
}

// swagger:route PUT /api/users/{username}/adm users updateUserAdm
//
// Updates the given admin user's info (as long as the user is an admin).
//
//		Schemes: https
//
// 		Security:
//   		oauth
func updateUserAdm(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	username := params["username"]
	user, err := logic.GetUser(username)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	var userchange models.User
	err = json.NewDecoder(r.Body).Decode(&userchange)
	if err != nil {
		logger.Log(0, username, "error decoding request body: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	if !user.IsAdmin {
		logger.Log(0, username, "not an admin user")
		logic.ReturnErrorResponse(w, r, logic.FormatError(errors.New("not an admin user"), "badrequest"))
		return
	}
	updated, err := logic.UpdateUser(&userchange, &user)
	if err != nil {
		logger.Log(0, username, "failed to update user (admin) info: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logger.Log(1, username, "was updated (admin)")
	logic.ReturnSuccessResponseWithJson(w, r, models.ReturnUser{
		UserName: updated.UserName,
		IsAdmin:  updated.IsAdmin,
	}, "updated admin "+username)
}

// swagger:route DELETE /api/users/{username} users deleteUser
//
// Delete a user.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func deleteUser(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	username := params["username"]

	success, err := logic.DeleteUser(username)
	if err != nil {
		logger.Log(0, username, "failed to delete user: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	} else if !success {
		err := errors.New("delete unsuccessful")
		logger.Log(0, username, err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}

	logger.Log(1, username, "was deleted")
	logic.ReturnSuccessResponse(w, r, username+" deleted.")
}
