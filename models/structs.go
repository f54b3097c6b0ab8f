package models

import (
	"strings"

	jwt "github.com/golang-jwt/jwt/v4"
)

// User struct - struct for Users
type User struct {
	UserName string `json:"username" bson:"username" validate:"min=3,max=40,in_charset|email"`
	Password string `json:"password" bson:"password" validate:"required,min=5"`
	IsAdmin  bool   `json:"isadmin" bson:"isadmin"`
}

// User.NameInCharSet - returns if name is in charset below or not
func (user *User) NameInCharSet() bool {
	charset := "abcdefghijklmnopqrstuvwxyz1234567890-."
	for _, char := range user.UserName {
		if !strings.Contains(charset, strings.ToLower(string(char))) {
			return false
		}
	}
	return true
}

// ReturnUser - return user struct
type ReturnUser struct {
	UserName string `json:"username"`
	IsAdmin  bool   `json:"isadmin"`
}

// UserAuthParams - user auth params struct
type UserAuthParams struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

// UserClaims - user claims struct
type UserClaims struct {
	IsAdmin  bool
	UserName string
	jwt.RegisteredClaims
}

// SuccessfulUserLoginResponse - successlogin struct
type SuccessfulUserLoginResponse struct {
	UserName  string `json:"username"`
	AuthToken string `json:"authtoken"`
}

// SuccessResponse is the wire envelope for 2xx responses
type SuccessResponse struct {
	Code    int         `json:"-"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the wire envelope for non-2xx responses
type ErrorResponse struct {
	Code    int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"error"`
}

// Telemetry - contains UUID of the server and timestamp of last send to posthog
type Telemetry struct {
	UUID          string `json:"uuid"`
	LastSend      int64  `json:"lastsend"`
	PlatformCount int    `json:"platformcount"`
}

// TelemetryData - telemetry data as gathered from the db
type TelemetryData struct {
	Platforms       int
	AgencyPlatforms int
	AccessItems     int
	Clients         int
	AccessRequests  int
	Identities      int
	PamSessions     int
	Users           int
	Version         string
}

// ServerVersion - the running version plus the oldest cli it will talk to
type ServerVersion struct {
	Version       string `json:"version"`
	MinCliVersion string `json:"min_cli_version"`
}

// ServerHealth - liveness view served on /api/server/health
type ServerHealth struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Broker   string `json:"broker"`
}
