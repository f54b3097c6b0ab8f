package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
)

func clientHandlers(r *mux.Router) {
	r.HandleFunc("/api/clients", logic.SecurityCheck(false, http.HandlerFunc(getClients))).Methods(http.MethodGet)
	r.HandleFunc("/api/clients", logic.SecurityCheck(false, http.HandlerFunc(createClient))).Methods(http.MethodPost)
	r.HandleFunc("/api/clients/{clientid}", logic.SecurityCheck(false, http.HandlerFunc(getClient))).Methods(http.MethodGet)
	r.HandleFunc("/api/clients/{clientid}", logic.SecurityCheck(true, http.HandlerFunc(deleteClient))).Methods(http.MethodDelete)
	r.HandleFunc("/api/clients/{clientid}/configured-apps", logic.SecurityCheck(false, http.HandlerFunc(getConfiguredApps))).Methods(http.MethodGet)
	r.HandleFunc("/api/clients/{clientid}/configured-apps", logic.SecurityCheck(false, http.HandlerFunc(createConfiguredApp))).Methods(http.MethodPost)
	r.HandleFunc("/api/configured-apps/{appid}/toggle", logic.SecurityCheck(false, http.HandlerFunc(toggleConfiguredApp))).Methods(http.MethodPost)
	r.HandleFunc("/api/configured-apps/{appid}", logic.SecurityCheck(true, http.HandlerFunc(deleteConfiguredApp))).Methods(http.MethodDelete)
}

// swagger:route GET /api/clients clients getClients
//
// Lists all clients.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: clientSliceResponse
func getClients(w http.ResponseWriter, r *http.Request) {
	clients, err := logic.GetClients()
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch clients:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched clients")
	logic.ReturnSuccessResponseWithJson(w, r, clients, "fetched clients")
}

// swagger:route POST /api/clients clients createClient
//
// Creates a client.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				201: clientResponse
func createClient(w http.ResponseWriter, r *http.Request) {
	var payload models.APIClient
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	client, err := logic.CreateClient(&payload)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to create client:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "created client", client.Name)
	logic.ReturnCreatedResponseWithJson(w, r, client, "created client "+client.Name)
}

// swagger:route GET /api/clients/{clientid} clients getClient
//
// Fetches one client.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: clientResponse
func getClient(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientid"]
	client, err := logic.GetClient(clientID)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, client, "fetched client "+clientID)
}

// swagger:route DELETE /api/clients/{clientid} clients deleteClient
//
// Deletes a client and its configured apps.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: successResponse
func deleteClient(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientid"]
	if err := logic.DeleteClient(clientID); err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to delete client:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "deleted client", clientID)
	logic.ReturnSuccessResponse(w, r, "deleted client "+clientID)
}

// swagger:route GET /api/clients/{clientid}/configured-apps clients getConfiguredApps
//
// Lists a client's configured apps.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: configuredAppSliceResponse
func getConfiguredApps(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientid"]
	if _, err := logic.GetClient(clientID); err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	apps, err := logic.GetConfiguredApps(clientID)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, apps, "fetched configured apps for "+clientID)
}

// swagger:route POST /api/clients/{clientid}/configured-apps clients createConfiguredApp
//
// Switches a platform on for a client. One row per client and platform,
// duplicates are rejected.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				201: configuredAppResponse
func createConfiguredApp(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientid"]
	var payload models.APIConfiguredApp
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	app, err := logic.CreateConfiguredApp(clientID, &payload)
	if err != nil {
		errType := "badrequest"
		if errors.Is(err, logic.ErrConfiguredAppExists) {
			errType = "conflict"
		}
		logger.Log(0, r.Header.Get("user"), "failed to configure app:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}
	logger.Log(1, r.Header.Get("user"), "configured app", app.PlatformKey, "for client", clientID)
	logic.ReturnCreatedResponseWithJson(w, r, app, "configured app for "+clientID)
}

// swagger:route POST /api/configured-apps/{appid}/toggle clients toggleConfiguredApp
//
// Flips a configured app's enabled flag.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: configuredAppResponse
func toggleConfiguredApp(w http.ResponseWriter, r *http.Request) {
	appID := mux.Vars(r)["appid"]
	app, err := logic.ToggleConfiguredApp(appID)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "toggled configured app", appID)
	logic.ReturnSuccessResponseWithJson(w, r, app, "toggled configured app "+appID)
}

// swagger:route DELETE /api/configured-apps/{appid} clients deleteConfiguredApp
//
// Removes a configured app.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: successResponse
func deleteConfiguredApp(w http.ResponseWriter, r *http.Request) {
	appID := mux.Vars(r)["appid"]
	if err := logic.DeleteConfiguredApp(appID); err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "deleted configured app", appID)
	logic.ReturnSuccessResponse(w, r, "deleted configured app "+appID)
}
