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

func platformHandlers(r *mux.Router) {
	r.HandleFunc("/api/platforms", logic.SecurityCheck(false, http.HandlerFunc(getPlatforms))).Methods(http.MethodGet)
	r.HandleFunc("/api/platforms", logic.SecurityCheck(true, http.HandlerFunc(createPlatform))).Methods(http.MethodPost)
}

// swagger:route GET /api/platforms platforms getPlatforms
//
// Lists the platform catalog, filterable by clientFacing, tier and domain,
// with optional fuzzy search over key and display name.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: platformSliceResponse
func getPlatforms(w http.ResponseWriter, r *http.Request) {
	filter := models.PlatformFilter{
		ClientFacing: r.URL.Query().Get("clientFacing"),
		Tier:         r.URL.Query().Get("tier"),
		Domain:       r.URL.Query().Get("domain"),
		Search:       r.URL.Query().Get("search"),
	}
	platforms, err := logic.GetPlatforms(&filter)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch platforms:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched platforms")
	logic.ReturnSuccessResponseWithJson(w, r, platforms, "fetched platforms")
}

// swagger:route POST /api/platforms platforms createPlatform
//
// Adds a custom platform to the catalog.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				201: platformResponse
func createPlatform(w http.ResponseWriter, r *http.Request) {
	var payload models.APIPlatform
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	platform, err := logic.CreatePlatform(&payload)
	if err != nil {
		errType := "badrequest"
		if errors.Is(err, logic.ErrPlatformExists) {
			errType = "conflict"
		}
		logger.Log(0, r.Header.Get("user"), "failed to create platform:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}
	logger.Log(1, r.Header.Get("user"), "created platform", platform.PlatformKey)
	logic.ReturnCreatedResponseWithJson(w, r, platform, "created platform "+platform.PlatformKey)
}
