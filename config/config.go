// Environment file for getting variables
// Reads from the config/environments/dev.yaml file by default
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// setting dev by default
func getEnv() string {
	env := os.Getenv("GRANTLINK_ENV")
	if len(env) == 0 {
		return "dev"
	}
	return env
}

// Config : application config stored as global variable
var Config *EnvironmentConfig = &EnvironmentConfig{}

// EnvironmentConfig - environment conf struct
type EnvironmentConfig struct {
	Server ServerConfig `yaml:"server"`
	SQL    SQLConfig    `yaml:"sql"`
	SMTP   SMTPConfig   `yaml:"smtp"`
}

// ServerConfig - server conf struct
type ServerConfig struct {
	APIConnString          string `yaml:"apiconn"`
	APIHost                string `yaml:"apihost"`
	APIPort                string `yaml:"apiport"`
	Broker                 string `yaml:"broker"`
	MQUserName             string `yaml:"mqusername"`
	MQPassword             string `yaml:"mqpassword"`
	MasterKey              string `yaml:"masterkey"`
	AllowedOrigin          string `yaml:"allowedorigin"`
	RestBackend            string `yaml:"restbackend"`
	MessageQueueBackend    string `yaml:"messagequeuebackend"`
	Version                string `yaml:"version"`
	SQLConn                string `yaml:"sqlconn"`
	Database               string `yaml:"database"`
	Verbosity              int32  `yaml:"verbosity"`
	AuthProvider           string `yaml:"authprovider"`
	OIDCIssuer             string `yaml:"oidcissuer"`
	ClientID               string `yaml:"clientid"`
	ClientSecret           string `yaml:"clientsecret"`
	FrontendURL            string `yaml:"frontendurl"`
	PortalURL              string `yaml:"portalurl"`
	AgencyName             string `yaml:"agencyname"`
	Telemetry              string `yaml:"telemetry"`
	Server                 string `yaml:"server"`
	GoogleClientID         string `yaml:"googleclientid"`
	GoogleClientSecret     string `yaml:"googleclientsecret"`
	GoogleRedirectURL      string `yaml:"googleredirecturl"`
	DefaultCheckoutMinutes int    `yaml:"default_checkout_minutes"`
	JwtValidityDuration    int    `yaml:"jwt_validity_duration"`
	Environment            string `yaml:"environment"`
}

// SQLConfig - Generic SQL Config
type SQLConfig struct {
	Host     string `yaml:"host"`
	Port     int32  `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       string `yaml:"db"`
	SSLMode  string `yaml:"sslmode"`
}

// SMTPConfig - outbound mail config
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// reading in the env file
func ReadConfig(absolutePath string) (*EnvironmentConfig, error) {
	if len(absolutePath) == 0 {
		absolutePath = fmt.Sprintf("environments/%s.yaml", getEnv())
	}
	f, err := os.Open(absolutePath)
	var cfg EnvironmentConfig
	if err != nil {
		return &cfg, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if decoder.Decode(&cfg) != nil {
		return &cfg, err
	}
	return &cfg, err
}
