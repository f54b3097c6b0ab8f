package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/mq"
)

func identityHandlers(r *mux.Router) {
	r.HandleFunc("/api/agency-identities", logic.SecurityCheck(false, http.HandlerFunc(getAgencyIdentities))).Methods(http.MethodGet)
	r.HandleFunc("/api/agency-identities", logic.SecurityCheck(false, http.HandlerFunc(createAgencyIdentity))).Methods(http.MethodPost)
	r.HandleFunc("/api/integration-identities", logic.SecurityCheck(false, http.HandlerFunc(getIntegrationIdentities))).Methods(http.MethodGet)
	r.HandleFunc("/api/integration-identities", logic.SecurityCheck(false, http.HandlerFunc(createIntegrationIdentity))).Methods(http.MethodPost)
}

// swagger:route GET /api/agency-identities identities getAgencyIdentities
//
// Lists agency identities, filterable by platformId and isActive.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: identitySliceResponse
func getAgencyIdentities(w http.ResponseWriter, r *http.Request) {
	listIdentities(w, r, models.UsageAgency)
}

// swagger:route POST /api/agency-identities identities createAgencyIdentity
//
// Creates an agency identity. An initial secret is parked in the credential
// store and only its reference is kept.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				201: identityResponse
func createAgencyIdentity(w http.ResponseWriter, r *http.Request) {
	createIdentity(w, r, models.UsageAgency)
}

// swagger:route GET /api/integration-identities identities getIntegrationIdentities
//
// Lists integration identities, filterable by platformId and isActive.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: identitySliceResponse
func getIntegrationIdentities(w http.ResponseWriter, r *http.Request) {
	listIdentities(w, r, models.UsageIntegration)
}

// swagger:route POST /api/integration-identities identities createIntegrationIdentity
//
// Creates an integration identity.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				201: identityResponse
func createIntegrationIdentity(w http.ResponseWriter, r *http.Request) {
	createIdentity(w, r, models.UsageIntegration)
}

func listIdentities(w http.ResponseWriter, r *http.Request, usage models.IdentityUsage) {
	filter := models.IdentityFilter{
		Usage:       usage,
		PlatformKey: r.URL.Query().Get("platformId"),
		IsActive:    r.URL.Query().Get("isActive"),
	}
	identities, err := logic.GetIdentities(&filter)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch identities:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched", string(usage), "identities")
	logic.ReturnSuccessResponseWithJson(w, r, identities, "fetched identities")
}

func createIdentity(w http.ResponseWriter, r *http.Request, usage models.IdentityUsage) {
	var payload models.APIIdentity
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	identity, err := logic.CreateIdentity(usage, &payload)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to create identity:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}

	go func() {
		if err := mq.PublishAuditEvent(models.EventTopics.IdentityCreated, "identity-created",
			r.Header.Get("user"), identity.ID, identity.PlatformKey, map[string]any{
				"usage": string(usage),
				"name":  identity.Name,
			}); err != nil {
			logger.Log(1, "failed to publish identity created event:", err.Error())
		}
	}()

	logger.Log(1, r.Header.Get("user"), "created", string(usage), "identity", identity.Name)
	logic.ReturnCreatedResponseWithJson(w, r, identity, "created identity "+identity.ID)
}
