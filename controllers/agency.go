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

func agencyHandlers(r *mux.Router) {
	r.HandleFunc("/api/agency/platforms", logic.SecurityCheck(false, http.HandlerFunc(getAgencyPlatforms))).Methods(http.MethodGet)
	r.HandleFunc("/api/agency/platforms", logic.SecurityCheck(false, http.HandlerFunc(createAgencyPlatform))).Methods(http.MethodPost)
	r.HandleFunc("/api/agency/platforms/{platformid}", logic.SecurityCheck(false, http.HandlerFunc(getAgencyPlatform))).Methods(http.MethodGet)
	r.HandleFunc("/api/agency/platforms/{platformid}", logic.SecurityCheck(true, http.HandlerFunc(deleteAgencyPlatform))).Methods(http.MethodDelete)
	r.HandleFunc("/api/agency/platforms/{platformid}/toggle", logic.SecurityCheck(false, http.HandlerFunc(toggleAgencyPlatform))).Methods(http.MethodPatch)
	r.HandleFunc("/api/agency/platforms/{platformid}/items", logic.SecurityCheck(false, http.HandlerFunc(createAccessItem))).Methods(http.MethodPost)
	r.HandleFunc("/api/agency/platforms/{platformid}/items/{itemid}", logic.SecurityCheck(false, http.HandlerFunc(updateAccessItem))).Methods(http.MethodPut)
	r.HandleFunc("/api/agency/platforms/{platformid}/items/{itemid}", logic.SecurityCheck(true, http.HandlerFunc(deleteAccessItem))).Methods(http.MethodDelete)
}

// swagger:route GET /api/agency/platforms agency getAgencyPlatforms
//
// Lists the platforms the agency has switched on, with their access items.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: agencyPlatformSliceResponse
func getAgencyPlatforms(w http.ResponseWriter, r *http.Request) {
	agencyPlatforms, err := logic.GetAgencyPlatforms()
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch agency platforms:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched agency platforms")
	logic.ReturnSuccessResponseWithJson(w, r, agencyPlatforms, "fetched agency platforms")
}

// swagger:route POST /api/agency/platforms agency createAgencyPlatform
//
// Switches a catalog platform on for the agency. Adding the same platform
// twice is a conflict.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				201: agencyPlatformResponse
func createAgencyPlatform(w http.ResponseWriter, r *http.Request) {
	var payload models.APIAgencyPlatform
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	agencyPlatform, err := logic.CreateAgencyPlatform(&payload)
	if err != nil {
		errType := "badrequest"
		if errors.Is(err, logic.ErrAgencyPlatformExists) {
			errType = "conflict"
		}
		logger.Log(0, r.Header.Get("user"), "failed to create agency platform:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}
	logger.Log(1, r.Header.Get("user"), "enabled agency platform", agencyPlatform.PlatformKey)
	logic.ReturnCreatedResponseWithJson(w, r, agencyPlatform, "enabled agency platform "+agencyPlatform.PlatformKey)
}

// swagger:route GET /api/agency/platforms/{platformid} agency getAgencyPlatform
//
// Fetches one agency platform.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: agencyPlatformResponse
func getAgencyPlatform(w http.ResponseWriter, r *http.Request) {
	platformID := mux.Vars(r)["platformid"]
	agencyPlatform, err := logic.GetAgencyPlatform(platformID)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, agencyPlatform, "fetched agency platform "+platformID)
}

// swagger:route DELETE /api/agency/platforms/{platformid} agency deleteAgencyPlatform
//
// Switches a platform off for the agency and drops its items.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: successResponse
func deleteAgencyPlatform(w http.ResponseWriter, r *http.Request) {
	platformID := mux.Vars(r)["platformid"]
	if err := logic.DeleteAgencyPlatform(platformID); err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to delete agency platform:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "deleted agency platform", platformID)
	logic.ReturnSuccessResponse(w, r, "deleted agency platform "+platformID)
}

// swagger:route PATCH /api/agency/platforms/{platformid}/toggle agency toggleAgencyPlatform
//
// Flips an agency platform's enabled flag.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: agencyPlatformResponse
func toggleAgencyPlatform(w http.ResponseWriter, r *http.Request) {
	platformID := mux.Vars(r)["platformid"]
	agencyPlatform, err := logic.ToggleAgencyPlatform(platformID)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "toggled agency platform", platformID)
	logic.ReturnSuccessResponseWithJson(w, r, agencyPlatform, "toggled agency platform "+platformID)
}

// swagger:route POST /api/agency/platforms/{platformid}/items agency createAccessItem
//
// Adds an access item to an agency platform. The item rule engine rejects
// payloads that violate the platform's manifest.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				201: accessItemResponse
func createAccessItem(w http.ResponseWriter, r *http.Request) {
	platformID := mux.Vars(r)["platformid"]
	var payload models.APIAccessItem
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	item, err := logic.CreateAccessItem(platformID, &payload)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to create access item:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "created access item", item.ID, "on", platformID)
	logic.ReturnCreatedResponseWithJson(w, r, item, "created access item "+item.ID)
}

// swagger:route PUT /api/agency/platforms/{platformid}/items/{itemid} agency updateAccessItem
//
// Replaces an access item. The same validation rules as create apply.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: accessItemResponse
func updateAccessItem(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	platformID := params["platformid"]
	itemID := params["itemid"]
	var payload models.APIAccessItem
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	item, err := logic.UpdateAccessItem(platformID, itemID, &payload)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to update access item:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "updated access item", itemID)
	logic.ReturnSuccessResponseWithJson(w, r, item, "updated access item "+itemID)
}

// swagger:route DELETE /api/agency/platforms/{platformid}/items/{itemid} agency deleteAccessItem
//
// Removes an access item from an agency platform.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: successResponse
func deleteAccessItem(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	platformID := params["platformid"]
	itemID := params["itemid"]
	if err := logic.DeleteAccessItem(platformID, itemID); err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "deleted access item", itemID)
	logic.ReturnSuccessResponse(w, r, "deleted access item "+itemID)
}
