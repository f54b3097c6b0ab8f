package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/mq"
)

func pamHandlers(r *mux.Router) {
	r.HandleFunc("/api/pam/{requestid}/items/{itemid}/checkout", logic.SecurityCheck(false, http.HandlerFunc(checkoutCredential))).Methods(http.MethodPost)
	r.HandleFunc("/api/pam/{requestid}/items/{itemid}/checkin", logic.SecurityCheck(false, http.HandlerFunc(checkinCredential))).Methods(http.MethodPost)
	r.HandleFunc("/api/pam/sessions", logic.SecurityCheck(false, http.HandlerFunc(getPamSessions))).Methods(http.MethodGet)
	r.HandleFunc("/api/pam/items", logic.SecurityCheck(false, http.HandlerFunc(getPamItems))).Methods(http.MethodGet)
}

// swagger:route POST /api/pam/{requestid}/items/{itemid}/checkout pam checkoutCredential
//
// Opens an exclusive lease on a shared credential and reveals the material.
// A second checkout while the lease is live is a conflict.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: checkoutResponse
func checkoutCredential(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	requestID := params["requestid"]
	itemID := params["itemid"]
	var body models.CheckoutParams
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	if body.CheckedOutBy == "" {
		body.CheckedOutBy = r.Header.Get("user")
	}
	checkout, err := logic.CheckoutCredential(requestID, itemID, &body)
	if err != nil {
		errType := "notfound"
		switch {
		case errors.Is(err, logic.PamErrors.LeaseHeld):
			errType = "conflict"
		case errors.Is(err, logic.PamErrors.NotPamManaged), errors.Is(err, logic.PamErrors.NoSecret):
			errType = "badrequest"
		}
		logger.Log(0, r.Header.Get("user"), "failed credential checkout:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}

	go func() {
		if err := mq.PublishAuditEvent(models.EventTopics.PamCheckout, "credential-checkout",
			body.CheckedOutBy, itemID, checkout.Session.PlatformKey, map[string]any{
				"requestId": requestID,
				"sessionId": checkout.Session.ID,
				"expiresAt": checkout.Session.ExpiresAt,
			}); err != nil {
			logger.Log(1, "failed to publish checkout event:", err.Error())
		}
	}()

	logger.Log(1, r.Header.Get("user"), "checked out credential for item", itemID)
	logic.ReturnSuccessResponseWithJson(w, r, checkout, "checked out credential for item "+itemID)
}

// swagger:route POST /api/pam/{requestid}/items/{itemid}/checkin pam checkinCredential
//
// Returns the live lease on an item. Checking in an already returned lease
// is a conflict.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: pamSessionResponse
func checkinCredential(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	requestID := params["requestid"]
	itemID := params["itemid"]

	active, err := logic.GetActiveSessionForItem(itemID)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	if active == nil || active.AccessRequestID != requestID {
		logger.Log(1, r.Header.Get("user"), "checkin without a live lease on item", itemID)
		logic.ReturnErrorResponse(w, r, logic.FormatError(logic.PamErrors.AlreadyReturned, "conflict"))
		return
	}
	session, err := logic.CheckinCredential(active.ID)
	if err != nil {
		errType := "notfound"
		if errors.Is(err, logic.PamErrors.AlreadyReturned) {
			errType = "conflict"
		}
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}

	go func() {
		if err := mq.PublishAuditEvent(models.EventTopics.PamCheckin, "credential-checkin",
			r.Header.Get("user"), itemID, session.PlatformKey, map[string]any{
				"requestId": requestID,
				"sessionId": session.ID,
			}); err != nil {
			logger.Log(1, "failed to publish checkin event:", err.Error())
		}
	}()

	logger.Log(1, r.Header.Get("user"), "checked in credential for item", itemID)
	logic.ReturnSuccessResponseWithJson(w, r, session, "checked in credential for item "+itemID)
}

// swagger:route GET /api/pam/sessions pam getPamSessions
//
// Lists credential lease sessions, newest first.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: pamSessionSliceResponse
func getPamSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := logic.GetPamSessions()
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch pam sessions:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched pam sessions")
	logic.ReturnSuccessResponseWithJson(w, r, sessions, "fetched pam sessions")
}

// swagger:route GET /api/pam/items pam getPamItems
//
// Lists every PAM-managed request item with its secret and lease state.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: pamItemSliceResponse
func getPamItems(w http.ResponseWriter, r *http.Request) {
	items, err := logic.GetPamItems()
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch pam items:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched pam items")
	logic.ReturnSuccessResponseWithJson(w, r, items, "fetched pam items")
}
