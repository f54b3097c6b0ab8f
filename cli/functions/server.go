package functions

import (
	"net/http"

	cfg "github.com/grantlink/grantlink/config"
	"github.com/grantlink/grantlink/models"
)

// GetServerHealth - fetch the liveness view
func GetServerHealth() *models.ServerHealth {
	return request[models.ServerHealth](http.MethodGet, "/api/server/health", nil)
}

// GetServerVersion - fetch the running version and the oldest supported cli
func GetServerVersion() *models.ServerVersion {
	return request[models.ServerVersion](http.MethodGet, "/api/server/version", nil)
}

// GetServerConfig - fetch the redacted server configuration
func GetServerConfig() *cfg.ServerConfig {
	return request[cfg.ServerConfig](http.MethodGet, "/api/server/getconfig", nil)
}

// GetServerUsage - fetch rough object counts
func GetServerUsage() *map[string]int {
	return request[map[string]int](http.MethodGet, "/api/server/usage", nil)
}

// GetLogs - fetch server logs
func GetLogs() string {
	return requestRaw("/api/logs")
}
