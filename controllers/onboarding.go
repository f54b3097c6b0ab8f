package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
	"github.com/skip2/go-qrcode"
)

var onboardingUpgrader = websocket.Upgrader{} // use default options

// watchers of a request's portal, keyed by request id
var (
	onboardingWatchers = make(map[string][]chan models.OnboardingStatusUpdate)
	watcherMutex       sync.Mutex
)

func onboardingHandlers(r *mux.Router) {
	r.HandleFunc("/api/onboarding/{token}", http.HandlerFunc(getOnboardingView)).Methods(http.MethodGet)
	r.HandleFunc("/api/onboarding/{token}/items/{itemid}/submit-credentials", http.HandlerFunc(submitOnboardingCredentials)).Methods(http.MethodPost)
	r.HandleFunc("/api/onboarding/{token}/items/{itemid}/attest", http.HandlerFunc(attestOnboardingAccess)).Methods(http.MethodPost)
	r.HandleFunc("/api/onboarding/{token}/qr", http.HandlerFunc(getOnboardingQR)).Methods(http.MethodGet)
	r.HandleFunc("/api/onboarding/{token}/ws", http.HandlerFunc(onboardingStatusSocket)).Methods(http.MethodGet)
}

// swagger:route GET /api/onboarding/{token} onboarding getOnboardingView
//
// Returns the client-facing portal view for an onboarding token. The token is
// the only authentication on this route.
//
//			Schemes: https
//
//			Responses:
//				200: onboardingViewResponse
func getOnboardingView(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	view, err := logic.GetOnboardingView(token)
	if err != nil {
		logger.Log(1, "rejected onboarding token:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(2, "served onboarding view for request", view.RequestID)
	logic.ReturnSuccessResponseWithJson(w, r, view, "fetched onboarding view")
}

// swagger:route POST /api/onboarding/{token}/items/{itemid}/submit-credentials onboarding submitOnboardingCredentials
//
// Accepts shared-account credentials from the client portal. The secret goes
// to the credential store, never into the request record.
//
//			Schemes: https
//
//			Responses:
//				200: onboardingViewResponse
func submitOnboardingCredentials(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	token := params["token"]
	itemID := params["itemid"]
	var body models.SubmitCredentialsParams
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log(0, "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	request, err := logic.SubmitCredentials(token, itemID, &body)
	if err != nil {
		errType := "badrequest"
		if errors.Is(err, logic.RequestErrors.NoRequestFound) || errors.Is(err, logic.RequestErrors.NoItemFound) {
			errType = "notfound"
		}
		logger.Log(1, "failed credential submission:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}
	notifyOnboardingWatchers(request, itemID)

	view, err := logic.GetOnboardingView(token)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(1, "client submitted credentials for item", itemID, "on request", request.ID)
	logic.ReturnSuccessResponseWithJson(w, r, view, "submitted credentials for item "+itemID)
}

// swagger:route POST /api/onboarding/{token}/items/{itemid}/attest onboarding attestOnboardingAccess
//
// Records the client's manual attestation that access was granted, the
// evidence path for platforms without automated verification.
//
//			Schemes: https
//
//			Responses:
//				200: onboardingViewResponse
func attestOnboardingAccess(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	token := params["token"]
	itemID := params["itemid"]
	var body models.AttestParams
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log(0, "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	request, err := logic.AttestAccess(token, itemID, &body)
	if err != nil {
		errType := "badrequest"
		if errors.Is(err, logic.RequestErrors.NoRequestFound) || errors.Is(err, logic.RequestErrors.NoItemFound) {
			errType = "notfound"
		} else if errors.Is(err, logic.RequestErrors.AlreadyValidated) {
			errType = "conflict"
		}
		logger.Log(1, "failed attestation:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}
	notifyOnboardingWatchers(request, itemID)

	view, err := logic.GetOnboardingView(token)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logger.Log(1, "client attested access for item", itemID, "on request", request.ID)
	logic.ReturnSuccessResponseWithJson(w, r, view, "attested access for item "+itemID)
}

// swagger:route GET /api/onboarding/{token}/qr onboarding getOnboardingQR
//
// Returns a PNG QR code of the portal link, for handing off to a phone.
//
//			Schemes: https
//
//			Responses:
//				200: byteArrayResponse
func getOnboardingQR(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if _, err := logic.DeTokenizeRequest(token); err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	portalURL := servercfg.GetFrontendURL() + "/onboarding/" + token
	bytes, err := qrcode.Encode(portalURL, qrcode.Medium, 220)
	if err != nil {
		logger.Log(1, "failed to encode qr code: ", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(bytes); err != nil {
		logger.Log(1, "response writer error (qr) ", err.Error())
	}
}

// swagger:route GET /api/onboarding/{token}/ws onboarding onboardingStatusSocket
//
// Upgrades to a websocket that pushes item status changes while the agency
// dashboard or the portal has the request open.
//
//			Schemes: https
//
//			Responses:
//				200: byteArrayResponse
func onboardingStatusSocket(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	request, err := logic.DeTokenizeRequest(token)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	conn, err := onboardingUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log(0, fmt.Sprintf("error occurred starting onboarding ws for a client [%v]", err))
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	defer conn.Close()

	updates := subscribeOnboarding(request.ID)
	defer unsubscribeOnboarding(request.ID, updates)

	// the portal never sends anything meaningful; the read loop only
	// surfaces disconnects
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	for {
		select {
		case <-done:
			return
		case update := <-updates:
			if err := conn.WriteJSON(update); err != nil {
				logger.Log(2, "onboarding ws write failed:", err.Error())
				return
			}
		}
	}
}

func subscribeOnboarding(requestID string) chan models.OnboardingStatusUpdate {
	updates := make(chan models.OnboardingStatusUpdate, 8)
	watcherMutex.Lock()
	onboardingWatchers[requestID] = append(onboardingWatchers[requestID], updates)
	watcherMutex.Unlock()
	return updates
}

func unsubscribeOnboarding(requestID string, updates chan models.OnboardingStatusUpdate) {
	watcherMutex.Lock()
	defer watcherMutex.Unlock()
	watchers := onboardingWatchers[requestID]
	for i := range watchers {
		if watchers[i] == updates {
			onboardingWatchers[requestID] = append(watchers[:i], watchers[i+1:]...)
			break
		}
	}
	if len(onboardingWatchers[requestID]) == 0 {
		delete(onboardingWatchers, requestID)
	}
}

// notifyOnboardingWatchers - fans the item's new status out to every open
// socket; slow consumers are skipped rather than blocked on
func notifyOnboardingWatchers(request *models.AccessRequest, itemID string) {
	item := request.FindItem(itemID)
	if item == nil {
		return
	}
	update := models.OnboardingStatusUpdate{
		RequestID:     request.ID,
		ItemID:        itemID,
		ItemStatus:    item.Status,
		RequestStatus: request.Status,
	}
	watcherMutex.Lock()
	defer watcherMutex.Unlock()
	for _, watcher := range onboardingWatchers[request.ID] {
		select {
		case watcher <- update:
		default:
		}
	}
}
