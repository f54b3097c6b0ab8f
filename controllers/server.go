package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/mq"
	"github.com/grantlink/grantlink/servercfg"
)

func serverHandlers(r *mux.Router) {
	r.HandleFunc("/api/server/health", http.HandlerFunc(getHealth)).Methods(http.MethodGet)
	r.HandleFunc("/api/server/version", http.HandlerFunc(getVersion)).Methods(http.MethodGet)
	r.HandleFunc("/api/server/getconfig", logic.SecurityCheck(true, http.HandlerFunc(getConfig))).Methods(http.MethodGet)
	r.HandleFunc("/api/server/usage", logic.SecurityCheck(false, http.HandlerFunc(getUsage))).Methods(http.MethodGet)
}

// swagger:route GET /api/server/health server getHealth
//
// Liveness view of the server plus its database and broker links.
//
//		Schemes: https
func getHealth(w http.ResponseWriter, r *http.Request) {
	health := models.ServerHealth{
		Status:   "ok",
		Database: "disconnected",
		Broker:   "disconnected",
	}
	if database.IsConnected() {
		health.Database = "connected"
	}
	if mq.IsConnected() {
		health.Broker = "connected"
	}
	logic.ReturnSuccessResponseWithJson(w, r, health, "server is up")
}

// swagger:route GET /api/server/version server getVersion
//
// Get the running server version and the oldest cli it supports.
//
//		Schemes: https
func getVersion(w http.ResponseWriter, r *http.Request) {
	logic.ReturnSuccessResponseWithJson(w, r, models.ServerVersion{
		Version:       servercfg.GetVersion(),
		MinCliVersion: logic.MinCliVersion,
	}, "fetched server version")
}

// swagger:route GET /api/server/getconfig server getConfig
//
// Get the server configuration with secrets redacted.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func getConfig(w http.ResponseWriter, r *http.Request) {
	scfg := servercfg.GetServerConfig()
	logic.ReturnSuccessResponseWithJson(w, r, scfg, "fetched server config")
}

// swagger:route GET /api/server/usage server getUsage
//
// Rough object counts for the dashboard landing page.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func getUsage(w http.ResponseWriter, r *http.Request) {
	type usage struct {
		Platforms       int `json:"platforms"`
		AgencyPlatforms int `json:"agency_platforms"`
		Clients         int `json:"clients"`
		AccessRequests  int `json:"access_requests"`
		Identities      int `json:"identities"`
		PamSessions     int `json:"pam_sessions"`
		Users           int `json:"users"`
	}
	var serverUsage usage
	if platforms, err := logic.GetPlatforms(nil); err == nil {
		serverUsage.Platforms = len(platforms)
	}
	if agencyPlatforms, err := logic.GetAgencyPlatforms(); err == nil {
		serverUsage.AgencyPlatforms = len(agencyPlatforms)
	}
	if clients, err := logic.GetClients(); err == nil {
		serverUsage.Clients = len(clients)
	}
	if requests, err := logic.GetAccessRequests(); err == nil {
		serverUsage.AccessRequests = len(requests)
	}
	if identities, err := logic.GetIdentities(nil); err == nil {
		serverUsage.Identities = len(identities)
	}
	if sessions, err := logic.GetPamSessions(); err == nil {
		serverUsage.PamSessions = len(sessions)
	}
	if users, err := logic.GetUsers(); err == nil {
		serverUsage.Users = len(users)
	}
	logic.ReturnSuccessResponseWithJson(w, r, serverUsage, "fetched server usage")
}
