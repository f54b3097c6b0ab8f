package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/email"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/mq"
	"github.com/grantlink/grantlink/servercfg"
)

func accessRequestHandlers(r *mux.Router) {
	r.HandleFunc("/api/access-requests", logic.SecurityCheck(false, http.HandlerFunc(getAccessRequests))).Methods(http.MethodGet)
	r.HandleFunc("/api/access-requests", logic.SecurityCheck(false, http.HandlerFunc(createAccessRequest))).Methods(http.MethodPost)
	r.HandleFunc("/api/access-requests/{requestid}", logic.SecurityCheck(false, http.HandlerFunc(getAccessRequest))).Methods(http.MethodGet)
	r.HandleFunc("/api/access-requests/{requestid}", logic.SecurityCheck(true, http.HandlerFunc(deleteAccessRequest))).Methods(http.MethodDelete)
	r.HandleFunc("/api/access-requests/{requestid}/validate", logic.SecurityCheck(false, http.HandlerFunc(validateRequestItem))).Methods(http.MethodPost)
	r.HandleFunc("/api/access-requests/{requestid}/refresh", logic.SecurityCheck(false, http.HandlerFunc(refreshRequestToken))).Methods(http.MethodPost)
}

// swagger:route GET /api/access-requests accessRequests getAccessRequests
//
// Lists all access requests.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: accessRequestSliceResponse
func getAccessRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := logic.GetAccessRequests()
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch access requests:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched access requests")
	logic.ReturnSuccessResponseWithJson(w, r, requests, "fetched access requests")
}

// swagger:route POST /api/access-requests accessRequests createAccessRequest
//
// Creates an access request for a client from item ids or the legacy
// platformIds shorthand, mints its onboarding token, and mails the portal
// link when SMTP is configured.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				201: accessRequestResponse
func createAccessRequest(w http.ResponseWriter, r *http.Request) {
	var payload models.APIAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	if payload.ClientID == "" {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("clientId is required"), "badrequest"))
		return
	}
	request, err := logic.CreateAccessRequest(&payload)
	if err != nil {
		errType := "badrequest"
		if strings.Contains(err.Error(), "not found") {
			errType = "notfound"
		}
		logger.Log(0, r.Header.Get("user"), "failed to create access request:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}

	go func() {
		if err := mq.PublishAuditEvent(models.EventTopics.RequestCreated, "access-request-created",
			r.Header.Get("user"), request.ID, "", map[string]any{
				"clientId": request.ClientID,
				"items":    len(request.Items),
			}); err != nil {
			logger.Log(1, "failed to publish request created event:", err.Error())
		}
	}()
	go sendOnboardingInvite(request)

	logger.Log(1, r.Header.Get("user"), "created access request", request.ID)
	logic.ReturnCreatedResponseWithJson(w, r, request, "created access request "+request.ID)
}

// sendOnboardingInvite - mails the portal link to the client contact; silent
// when SMTP is not configured or the client has no usable address
func sendOnboardingInvite(request *models.AccessRequest) {
	client, err := logic.GetClient(request.ClientID)
	if err != nil {
		return
	}
	sender := email.GetClient()
	if sender == nil || !email.IsValid(strings.ToLower(client.ContactEmail)) {
		return
	}
	portalURL := servercfg.GetFrontendURL() + "/onboarding/" + request.Token
	notification := email.Notification{
		RecipientMail: client.ContactEmail,
		RecipientName: client.Name,
		ProductName:   "GrantLink",
	}
	invite := email.OnboardingInviteMail{
		BodyBuilder: &email.PlainButtonedBodyBuilder{},
		AgencyName:  servercfg.GetAgencyName(),
		ClientName:  client.Name,
		PortalURL:   portalURL,
	}
	if err := sender.SendEmail(context.Background(), notification, invite); err != nil {
		logger.Log(1, "failed to send onboarding invite for request", request.ID, err.Error())
		return
	}
	logger.Log(2, "sent onboarding invite to", client.ContactEmail)
}

// swagger:route GET /api/access-requests/{requestid} accessRequests getAccessRequest
//
// Fetches one access request with its items and token.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: accessRequestResponse
func getAccessRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestid"]
	request, err := logic.GetAccessRequest(requestID)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	if err := logic.TokenizeRequest(&request, servercfg.GetAPIHost()); err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, request, "fetched access request "+requestID)
}

// swagger:route DELETE /api/access-requests/{requestid} accessRequests deleteAccessRequest
//
// Deletes an access request.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: successResponse
func deleteAccessRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestid"]
	if err := logic.DeleteAccessRequest(requestID); err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "deleted access request", requestID)
	logic.ReturnSuccessResponse(w, r, "deleted access request "+requestID)
}

// swagger:route POST /api/access-requests/{requestid}/validate accessRequests validateRequestItem
//
// Marks one item of a request validated, by itemId or the legacy platformId.
// Validating the same item twice is a conflict.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: accessRequestResponse
func validateRequestItem(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestid"]
	var params models.ValidateItemParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	if params.ItemID == "" && params.PlatformID == "" {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("itemId is required"), "badrequest"))
		return
	}
	request, err := logic.ValidateRequestItem(requestID, &params, r.Header.Get("user"))
	if err != nil {
		errType := "notfound"
		if errors.Is(err, logic.RequestErrors.AlreadyValidated) {
			errType = "conflict"
		}
		logger.Log(0, r.Header.Get("user"), "failed to validate request item:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}

	go func() {
		if err := mq.PublishAuditEvent(models.EventTopics.ItemValidated, "request-item-validated",
			r.Header.Get("user"), requestID, params.PlatformID, map[string]any{
				"itemId": params.ItemID,
			}); err != nil {
			logger.Log(1, "failed to publish item validated event:", err.Error())
		}
	}()
	itemID := params.ItemID
	if itemID == "" {
		if item := request.FindItemByPlatform(params.PlatformID); item != nil {
			itemID = item.ItemID
		}
	}
	notifyOnboardingWatchers(request, itemID)

	logger.Log(1, r.Header.Get("user"), "validated item on request", requestID)
	logic.ReturnSuccessResponseWithJson(w, r, request, "validated item on request "+requestID)
}

// swagger:route POST /api/access-requests/{requestid}/refresh accessRequests refreshRequestToken
//
// Rotates the onboarding token of a request. Old portal links stop working.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: accessRequestResponse
func refreshRequestToken(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestid"]
	request, err := logic.RefreshRequestToken(requestID)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(1, r.Header.Get("user"), "refreshed token for request", requestID)
	logic.ReturnSuccessResponseWithJson(w, r, request, "refreshed token for request "+requestID)
}
