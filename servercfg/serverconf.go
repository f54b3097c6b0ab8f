package servercfg

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/grantlink/grantlink/config"
)

// Version - the running server version, set from main at startup
var Version = "dev"

// SetVersion - set version of grantlink
func SetVersion(v string) {
	Version = v
}

// GetVersion - version of grantlink
func GetVersion() string {
	return Version
}

// GetServerConfig - gets the server config into memory from file or env
func GetServerConfig() config.ServerConfig {
	var cfg config.ServerConfig
	cfg.APIConnString = GetAPIConnString()
	cfg.APIHost = GetAPIHost()
	cfg.APIPort = GetAPIPort()
	cfg.MasterKey = "(hidden)"
	cfg.AllowedOrigin = GetAllowedOrigin()
	cfg.RestBackend = "off"
	if IsRestBackend() {
		cfg.RestBackend = "on"
	}
	cfg.MessageQueueBackend = "off"
	if IsMessageQueueBackend() {
		cfg.MessageQueueBackend = "on"
	}
	cfg.Broker = GetBrokerEndpoint()
	cfg.Database = GetDB()
	cfg.Version = GetVersion()

	// == auth config ==
	var authInfo = GetAuthProviderInfo()
	cfg.AuthProvider = authInfo[0]
	cfg.ClientID = authInfo[1]
	cfg.ClientSecret = "(hidden)"
	cfg.FrontendURL = GetFrontendURL()
	cfg.PortalURL = GetPortalURL()
	cfg.AgencyName = GetAgencyName()
	cfg.Telemetry = Telemetry()
	cfg.Server = GetServer()
	cfg.Verbosity = GetVerbosity()
	cfg.DefaultCheckoutMinutes = GetDefaultCheckoutMinutes()
	cfg.Environment = GetEnvironment()
	return cfg
}

// GetJwtValidityDuration - returns the JWT validity duration in seconds
func GetJwtValidityDuration() time.Duration {
	var defaultDuration = time.Duration(24) * time.Hour
	if os.Getenv("JWT_VALIDITY_DURATION") != "" {
		t, err := strconv.Atoi(os.Getenv("JWT_VALIDITY_DURATION"))
		if err != nil {
			return defaultDuration
		}
		return time.Duration(t) * time.Second
	} else if config.Config.Server.JwtValidityDuration != 0 {
		return time.Duration(config.Config.Server.JwtValidityDuration) * time.Second
	}
	return defaultDuration
}

// GetFrontendURL - gets the agency dashboard url
func GetFrontendURL() string {
	var frontend = ""
	if os.Getenv("FRONTEND_URL") != "" {
		frontend = os.Getenv("FRONTEND_URL")
	} else if config.Config.Server.FrontendURL != "" {
		frontend = config.Config.Server.FrontendURL
	}
	return frontend
}

// GetPortalURL - gets the client onboarding portal url
func GetPortalURL() string {
	var portal = ""
	if os.Getenv("PORTAL_URL") != "" {
		portal = os.Getenv("PORTAL_URL")
	} else if config.Config.Server.PortalURL != "" {
		portal = config.Config.Server.PortalURL
	} else {
		portal = GetFrontendURL()
	}
	return portal
}

// GetAgencyName - display name of the agency running this server
func GetAgencyName() string {
	name := "your agency"
	if os.Getenv("AGENCY_NAME") != "" {
		name = os.Getenv("AGENCY_NAME")
	} else if config.Config.Server.AgencyName != "" {
		name = config.Config.Server.AgencyName
	}
	return name
}

// GetAPIConnString - gets the api connections string
func GetAPIConnString() string {
	conn := ""
	if os.Getenv("SERVER_API_CONN_STRING") != "" {
		conn = os.Getenv("SERVER_API_CONN_STRING")
	} else if config.Config.Server.APIConnString != "" {
		conn = config.Config.Server.APIConnString
	}
	return conn
}

// GetDB - gets the database type
func GetDB() string {
	database := "sqlite"
	if os.Getenv("DATABASE") != "" {
		database = os.Getenv("DATABASE")
	} else if config.Config.Server.Database != "" {
		database = config.Config.Server.Database
	}
	return database
}

// GetAPIHost - gets the api host
func GetAPIHost() string {
	serverhost := "127.0.0.1"
	if os.Getenv("SERVER_HTTP_HOST") != "" {
		serverhost = os.Getenv("SERVER_HTTP_HOST")
	} else if config.Config.Server.APIHost != "" {
		serverhost = config.Config.Server.APIHost
	} else if os.Getenv("SERVER_HOST") != "" {
		serverhost = os.Getenv("SERVER_HOST")
	}
	return serverhost
}

// GetAPIPort - gets the api port
func GetAPIPort() string {
	apiport := "8090"
	if os.Getenv("API_PORT") != "" {
		apiport = os.Getenv("API_PORT")
	} else if config.Config.Server.APIPort != "" {
		apiport = config.Config.Server.APIPort
	}
	return apiport
}

// GetBrokerEndpoint - gets the message queue endpoint
func GetBrokerEndpoint() string {
	broker := ""
	if os.Getenv("BROKER_ENDPOINT") != "" {
		broker = os.Getenv("BROKER_ENDPOINT")
	} else if config.Config.Server.Broker != "" {
		broker = config.Config.Server.Broker
	}
	return broker
}

// GetMasterKey - gets the configured master key of server
func GetMasterKey() string {
	key := ""
	if os.Getenv("MASTER_KEY") != "" {
		key = os.Getenv("MASTER_KEY")
	} else if config.Config.Server.MasterKey != "" {
		key = config.Config.Server.MasterKey
	}
	return key
}

// GetAllowedOrigin - get the allowed origin
func GetAllowedOrigin() string {
	allowedorigin := "*"
	if os.Getenv("CORS_ALLOWED_ORIGIN") != "" {
		allowedorigin = os.Getenv("CORS_ALLOWED_ORIGIN")
	} else if config.Config.Server.AllowedOrigin != "" {
		allowedorigin = config.Config.Server.AllowedOrigin
	}
	return allowedorigin
}

// IsRestBackend - checks if rest is on or off
func IsRestBackend() bool {
	isrest := true
	if os.Getenv("REST_BACKEND") != "" {
		if os.Getenv("REST_BACKEND") == "off" {
			isrest = false
		}
	} else if config.Config.Server.RestBackend != "" {
		if config.Config.Server.RestBackend == "off" {
			isrest = false
		}
	}
	return isrest
}

// IsMessageQueueBackend - checks if audit events should be published to a broker
func IsMessageQueueBackend() bool {
	ismessagequeue := GetBrokerEndpoint() != ""
	if os.Getenv("MESSAGEQUEUE_BACKEND") != "" {
		ismessagequeue = os.Getenv("MESSAGEQUEUE_BACKEND") == "on"
	} else if config.Config.Server.MessageQueueBackend != "" {
		ismessagequeue = config.Config.Server.MessageQueueBackend == "on"
	}
	return ismessagequeue
}

// Telemetry - checks if telemetry data should be sent
func Telemetry() string {
	telemetry := "on"
	if os.Getenv("TELEMETRY") == "off" {
		telemetry = "off"
	}
	if config.Config.Server.Telemetry == "off" {
		telemetry = "off"
	}
	return telemetry
}

// GetServer - gets the server name
func GetServer() string {
	server := ""
	if os.Getenv("SERVER_NAME") != "" {
		server = os.Getenv("SERVER_NAME")
	} else if config.Config.Server.Server != "" {
		server = config.Config.Server.Server
	}
	return server
}

func GetVerbosity() int32 {
	var verbosity = 0
	var err error
	if os.Getenv("VERBOSITY") != "" {
		verbosity, err = strconv.Atoi(os.Getenv("VERBOSITY"))
		if err != nil {
			verbosity = 0
		}
	} else if config.Config.Server.Verbosity != 0 {
		verbosity = int(config.Config.Server.Verbosity)
	}
	if verbosity < 0 || verbosity > 4 {
		verbosity = 0
	}
	return int32(verbosity)
}

// GetSQLConn - get the sql connection string
func GetSQLConn() string {
	sqlconn := "http://"
	if os.Getenv("SQL_CONN") != "" {
		sqlconn = os.Getenv("SQL_CONN")
	} else if config.Config.Server.SQLConn != "" {
		sqlconn = config.Config.Server.SQLConn
	}
	return sqlconn
}

// GetDefaultCheckoutMinutes - the PAM lease length used when an item sets none
func GetDefaultCheckoutMinutes() int {
	minutes := 60
	if os.Getenv("DEFAULT_CHECKOUT_MINUTES") != "" {
		if m, err := strconv.Atoi(os.Getenv("DEFAULT_CHECKOUT_MINUTES")); err == nil && m > 0 {
			minutes = m
		}
	} else if config.Config.Server.DefaultCheckoutMinutes > 0 {
		minutes = config.Config.Server.DefaultCheckoutMinutes
	}
	return minutes
}

// GetAuthProviderInfo = gets the oauth provider info
func GetAuthProviderInfo() (pi []string) {
	var authProvider = ""

	defer func() {
		if authProvider == "oidc" {
			if os.Getenv("OIDC_ISSUER") != "" {
				pi = append(pi, os.Getenv("OIDC_ISSUER"))
			} else if config.Config.Server.OIDCIssuer != "" {
				pi = append(pi, config.Config.Server.OIDCIssuer)
			} else {
				pi = []string{"", "", ""}
			}
		}
	}()

	if os.Getenv("AUTH_PROVIDER") != "" && os.Getenv("CLIENT_ID") != "" && os.Getenv("CLIENT_SECRET") != "" {
		authProvider = strings.ToLower(os.Getenv("AUTH_PROVIDER"))
		if authProvider == "google" || authProvider == "oidc" {
			return []string{authProvider, os.Getenv("CLIENT_ID"), os.Getenv("CLIENT_SECRET")}
		} else {
			authProvider = ""
		}
	} else if config.Config.Server.AuthProvider != "" && config.Config.Server.ClientID != "" && config.Config.Server.ClientSecret != "" {
		authProvider = strings.ToLower(config.Config.Server.AuthProvider)
		if authProvider == "google" || authProvider == "oidc" {
			return []string{authProvider, config.Config.Server.ClientID, config.Config.Server.ClientSecret}
		}
	}
	return []string{"", "", ""}
}

// GetGoogleProviderInfo - client id, secret and redirect url for the google
// platform connectors (distinct from the dashboard sso provider)
func GetGoogleProviderInfo() (string, string, string) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		clientID = config.Config.Server.GoogleClientID
	}
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientSecret == "" {
		clientSecret = config.Config.Server.GoogleClientSecret
	}
	redirect := os.Getenv("GOOGLE_REDIRECT_URL")
	if redirect == "" {
		redirect = config.Config.Server.GoogleRedirectURL
	}
	return clientID, clientSecret, redirect
}

// GetMqPassword - fetches the MQ password
func GetMqPassword() string {
	password := ""
	if os.Getenv("MQ_PASSWORD") != "" {
		password = os.Getenv("MQ_PASSWORD")
	} else if config.Config.Server.MQPassword != "" {
		password = config.Config.Server.MQPassword
	}
	return password
}

// GetMqUserName - fetches the MQ username
func GetMqUserName() string {
	username := ""
	if os.Getenv("MQ_USERNAME") != "" {
		username = os.Getenv("MQ_USERNAME")
	} else if config.Config.Server.MQUserName != "" {
		username = config.Config.Server.MQUserName
	}
	return username
}

// GetEnvironment returns the environment the server is running in (e.g. dev, staging, prod...)
func GetEnvironment() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	if env := config.Config.Server.Environment; env != "" {
		return env
	}
	return ""
}
