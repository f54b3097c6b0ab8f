package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/auth"
	"github.com/grantlink/grantlink/integrations"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
)

func oauthHandlers(r *mux.Router) {
	r.HandleFunc("/api/oauth/sso/login", auth.HandleAuthLogin).Methods(http.MethodGet)
	r.HandleFunc("/api/oauth/sso/callback", auth.HandleAuthCallback).Methods(http.MethodGet)
	r.HandleFunc("/api/oauth/{platformkey}/start", logic.SecurityCheck(false, http.HandlerFunc(startPlatformOAuth))).Methods(http.MethodPost)
	r.HandleFunc("/api/oauth/{platformkey}/callback", logic.SecurityCheck(false, http.HandlerFunc(completePlatformOAuth))).Methods(http.MethodPost)
	r.HandleFunc("/api/oauth/{platformkey}/callback", http.HandlerFunc(completePlatformOAuthRedirect)).Methods(http.MethodGet)
	r.HandleFunc("/api/oauth/{platformkey}/refresh", logic.SecurityCheck(false, http.HandlerFunc(refreshPlatformConnection))).Methods(http.MethodPost)
	r.HandleFunc("/api/oauth/{platformkey}/fetch-accounts", logic.SecurityCheck(false, http.HandlerFunc(fetchPlatformAccounts))).Methods(http.MethodPost)
	r.HandleFunc("/api/oauth/{platformkey}/{action:grant-access|verify-access|revoke-access}", logic.SecurityCheck(false, http.HandlerFunc(runPlatformAction))).Methods(http.MethodPost)
	r.HandleFunc("/api/oauth/connections", logic.SecurityCheck(false, http.HandlerFunc(getOAuthConnections))).Methods(http.MethodGet)
}

// actionFromPath - the three action routes share one handler
var actionFromPath = map[string]models.Action{
	"grant-access":  models.ActionGrant,
	"verify-access": models.ActionVerify,
	"revoke-access": models.ActionRevoke,
}

// swagger:route POST /api/oauth/{platformkey}/start oauth startPlatformOAuth
//
// Mints the provider consent URL and a one-time state for a platform
// connector handshake.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: oauthStartResponse
func startPlatformOAuth(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	var params models.OAuthStartParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && err != io.EOF {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	start, err := integrations.StartOAuth(platformKey, &params)
	if err != nil {
		errType := "badrequest"
		if errors.Is(err, integrations.ErrOauthNotConfigured) {
			errType = "unsupported"
		}
		logger.Log(0, r.Header.Get("user"), "failed to start oauth:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}
	logger.Log(2, r.Header.Get("user"), "started oauth handshake for", platformKey)
	logic.ReturnSuccessResponseWithJson(w, r, start, "started oauth for "+platformKey)
}

// swagger:route POST /api/oauth/{platformkey}/callback oauth completePlatformOAuth
//
// Exchanges the provider code for tokens and persists the connection.
// State and platform must match the start call.
//
//			Schemes: https
//
//			Responses:
//				200: oauthConnectionResponse
func completePlatformOAuth(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	var params models.OAuthCallbackParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	finishPlatformOAuth(w, r, platformKey, &params)
}

// completePlatformOAuthRedirect - browsers land here straight from the
// provider, so state and code arrive as query parameters
func completePlatformOAuthRedirect(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	params := models.OAuthCallbackParams{
		State: r.URL.Query().Get("state"),
		Code:  r.URL.Query().Get("code"),
	}
	finishPlatformOAuth(w, r, platformKey, &params)
}

func finishPlatformOAuth(w http.ResponseWriter, r *http.Request, platformKey string, params *models.OAuthCallbackParams) {
	if params.State == "" || params.Code == "" {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("state and code are required"), "badrequest"))
		return
	}
	connection, err := integrations.CompleteOAuth(platformKey, params)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to complete oauth:", err.Error())
		logic.ReturnErrorResponse(w, r, platformActionError(err))
		return
	}
	logger.Log(1, r.Header.Get("user"), "completed oauth handshake for", platformKey)
	logic.ReturnSuccessResponseWithJson(w, r, connection.ToReturnConnection(), "completed oauth for "+platformKey)
}

// swagger:route POST /api/oauth/{platformkey}/refresh oauth refreshPlatformConnection
//
// Refreshes a stored connection's access token.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: oauthConnectionResponse
func refreshPlatformConnection(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	var params models.OAuthRefreshParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	if params.ConnectionID == "" {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("connectionId is required"), "badrequest"))
		return
	}
	connection, err := integrations.RefreshConnection(platformKey, params.ConnectionID)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to refresh connection:", err.Error())
		logic.ReturnErrorResponse(w, r, platformActionError(err))
		return
	}
	logger.Log(1, r.Header.Get("user"), "refreshed connection", params.ConnectionID)
	logic.ReturnSuccessResponseWithJson(w, r, connection.ToReturnConnection(), "refreshed connection "+params.ConnectionID)
}

// swagger:route POST /api/oauth/{platformkey}/fetch-accounts oauth fetchPlatformAccounts
//
// Lists the accounts, properties or containers the connected principal can
// reach upstream, for target selection.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: platformAccountSliceResponse
func fetchPlatformAccounts(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	var params models.FetchAccountsParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	accessToken, err := integrations.ResolveAccessToken(platformKey, &params)
	if err != nil {
		logic.ReturnErrorResponse(w, r, platformActionError(err))
		return
	}
	accounts, err := integrations.FetchAccounts(platformKey, accessToken)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch accounts:", err.Error())
		logic.ReturnErrorResponse(w, r, platformActionError(err))
		return
	}
	logger.Log(2, r.Header.Get("user"), "fetched upstream accounts for", platformKey)
	logic.ReturnSuccessResponseWithJson(w, r, accounts, "fetched accounts for "+platformKey)
}

// swagger:route POST /api/oauth/{platformkey}/grant-access oauth runPlatformAction
//
// Runs a gated connector action. The capability gate answers before any
// upstream call: unsupported combinations get 501, pending connectors get
// 501, and only then does the request leave the server.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: actionResultResponse
func runPlatformAction(w http.ResponseWriter, r *http.Request) {
	var vars = mux.Vars(r)
	platformKey := vars["platformkey"]
	action := actionFromPath[vars["action"]]

	var payload models.ActionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}

	if _, err := logic.CheckActionAllowed(platformKey, action, &payload); err != nil {
		errType := "badrequest"
		switch {
		case errors.Is(err, logic.ErrActionUnsupported):
			errType = "unsupported"
		case errors.Is(err, logic.ErrConnectorPending):
			errType = "pending"
		case strings.Contains(err.Error(), "no plugin found"):
			errType = "notfound"
		}
		logger.Log(1, r.Header.Get("user"), "blocked", string(action), "on", platformKey+":", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, errType))
		return
	}

	result, err := integrations.RunAction(platformKey, action, &payload)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "upstream", string(action), "failed on", platformKey+":", err.Error())
		logic.ReturnErrorResponse(w, r, platformActionError(err))
		return
	}
	logger.Log(1, r.Header.Get("user"), "ran", string(action), "on", platformKey, "for", payload.Identity)
	logic.ReturnSuccessResponseWithJson(w, r, result, "ran "+string(action)+" on "+platformKey)
}

// swagger:route GET /api/oauth/connections oauth getOAuthConnections
//
// Lists stored platform connections without token material.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: oauthConnectionSliceResponse
func getOAuthConnections(w http.ResponseWriter, r *http.Request) {
	connections, err := logic.GetOAuthConnections()
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "internal"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, connections, "fetched oauth connections")
}

// platformActionError - upstream failures keep the status the provider
// answered with; everything else is a bad request
func platformActionError(err error) models.ErrorResponse {
	var upstream *integrations.UpstreamError
	if errors.As(err, &upstream) {
		return models.ErrorResponse{Code: upstream.Status, Message: upstream.Message}
	}
	return logic.FormatError(err, "badrequest")
}
