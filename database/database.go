package database

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

// PLATFORMS_TABLE_NAME - platform catalog table
const PLATFORMS_TABLE_NAME = "platforms"

// AGENCY_PLATFORMS_TABLE_NAME - agency platform table
const AGENCY_PLATFORMS_TABLE_NAME = "agencyplatforms"

// ACCESS_ITEMS_TABLE_NAME - access item table
const ACCESS_ITEMS_TABLE_NAME = "accessitems"

// CLIENTS_TABLE_NAME - clients table
const CLIENTS_TABLE_NAME = "clients"

// CONFIGURED_APPS_TABLE_NAME - per-client configured app table
const CONFIGURED_APPS_TABLE_NAME = "configuredapps"

// ACCESS_REQUESTS_TABLE_NAME - access request table
const ACCESS_REQUESTS_TABLE_NAME = "accessrequests"

// IDENTITIES_TABLE_NAME - agency/integration identity table
const IDENTITIES_TABLE_NAME = "identities"

// PAM_SESSIONS_TABLE_NAME - PAM checkout session table
const PAM_SESSIONS_TABLE_NAME = "pamsessions"

// PAM_SECRETS_TABLE_NAME - stored PAM credential material
const PAM_SECRETS_TABLE_NAME = "pamsecrets"

// OAUTH_CONNECTIONS_TABLE_NAME - stored platform OAuth connections
const OAUTH_CONNECTIONS_TABLE_NAME = "oauthconnections"

// SSO_STATE_CACHE - holds sso session information
const SSO_STATE_CACHE = "ssostatecache"

// USERS_TABLE_NAME - users table
const USERS_TABLE_NAME = "users"

// SERVERCONF_TABLE_NAME - stores server conf
const SERVERCONF_TABLE_NAME = "serverconf"

// SERVER_UUID_TABLE_NAME - stores unique grantlink server data
const SERVER_UUID_TABLE_NAME = "serveruuid"

// SERVER_UUID_RECORD_KEY - telemetry thing
const SERVER_UUID_RECORD_KEY = "serveruuid"

// DATABASE_FILENAME - database file name
const DATABASE_FILENAME = "grantlink.db"

// GENERATED_TABLE_NAME - stores server generated k/v
const GENERATED_TABLE_NAME = "generated"

// == ERROR CONSTS ==

// NO_RECORD - no singular result found
const NO_RECORD = "no result found"

// NO_RECORDS - no results found
const NO_RECORDS = "could not find any records"

// == Constants ==

// INIT_DB - initialize db
const INIT_DB = "init"

// CREATE_TABLE - create table const
const CREATE_TABLE = "createtable"

// INSERT - insert into db const
const INSERT = "insert"

// DELETE - delete db record const
const DELETE = "delete"

// DELETE_ALL - delete a table const
const DELETE_ALL = "deleteall"

// FETCH_ALL - fetch table contents const
const FETCH_ALL = "fetchall"

// CLOSE_DB - graceful close of db const
const CLOSE_DB = "closedb"

var connected bool

func getCurrentDB() map[string]interface{} {
	switch servercfg.GetDB() {
	case "rqlite":
		return RQLITE_FUNCTIONS
	case "sqlite":
		return SQLITE_FUNCTIONS
	case "postgres":
		return PG_FUNCTIONS
	default:
		return SQLITE_FUNCTIONS
	}
}

// InitializeDatabase - initializes database
func InitializeDatabase() error {
	logger.Log(0, "connecting to", servercfg.GetDB())
	tperiod := time.Now().Add(10 * time.Second)
	for {
		if err := getCurrentDB()[INIT_DB].(func() error)(); err != nil {
			logger.Log(0, "unable to connect to db, retrying . . .")
			if time.Now().After(tperiod) {
				return err
			}
		} else {
			break
		}
		time.Sleep(2 * time.Second)
	}
	createTables()
	connected = true
	return initializeUUID()
}

// IsConnected - tells if the db was initialized successfully
func IsConnected() bool {
	return connected
}

func createTables() {
	createTable(PLATFORMS_TABLE_NAME)
	createTable(AGENCY_PLATFORMS_TABLE_NAME)
	createTable(ACCESS_ITEMS_TABLE_NAME)
	createTable(CLIENTS_TABLE_NAME)
	createTable(CONFIGURED_APPS_TABLE_NAME)
	createTable(ACCESS_REQUESTS_TABLE_NAME)
	createTable(IDENTITIES_TABLE_NAME)
	createTable(PAM_SESSIONS_TABLE_NAME)
	createTable(PAM_SECRETS_TABLE_NAME)
	createTable(OAUTH_CONNECTIONS_TABLE_NAME)
	createTable(SSO_STATE_CACHE)
	createTable(USERS_TABLE_NAME)
	createTable(SERVERCONF_TABLE_NAME)
	createTable(SERVER_UUID_TABLE_NAME)
	createTable(GENERATED_TABLE_NAME)
}

func createTable(tableName string) error {
	return getCurrentDB()[CREATE_TABLE].(func(string) error)(tableName)
}

// IsJSONString - checks if valid json
func IsJSONString(value string) bool {
	var jsonInt interface{}
	return json.Unmarshal([]byte(value), &jsonInt) == nil
}

// Insert - inserts object into db
func Insert(key string, value string, tableName string) error {
	if key != "" && value != "" && IsJSONString(value) {
		return getCurrentDB()[INSERT].(func(string, string, string) error)(key, value, tableName)
	} else {
		return errors.New("invalid insert " + key + " : " + value)
	}
}

// DeleteRecord - deletes a record from db
func DeleteRecord(tableName string, key string) error {
	return getCurrentDB()[DELETE].(func(string, string) error)(tableName, key)
}

// DeleteAllRecords - removes a table and remakes
func DeleteAllRecords(tableName string) error {
	err := getCurrentDB()[DELETE_ALL].(func(string) error)(tableName)
	if err != nil {
		return err
	}
	err = createTable(tableName)
	if err != nil {
		return err
	}
	return nil
}

// FetchRecord - fetches a record
func FetchRecord(tableName string, key string) (string, error) {
	results, err := FetchRecords(tableName)
	if err != nil {
		return "", err
	}
	if results[key] == "" {
		return "", errors.New(NO_RECORD)
	}
	return results[key], nil
}

// FetchRecords - fetches all records in given table
func FetchRecords(tableName string) (map[string]string, error) {
	return getCurrentDB()[FETCH_ALL].(func(string) (map[string]string, error))(tableName)
}

// initializeUUID - create a UUID record for server if none exists
func initializeUUID() error {
	records, err := FetchRecords(SERVER_UUID_TABLE_NAME)
	if err != nil {
		if !IsEmptyRecord(err) {
			return err
		}
	} else if len(records) > 0 {
		return nil
	}

	telemetry := models.Telemetry{
		UUID: uuid.NewString(),
	}
	telJSON, err := json.Marshal(&telemetry)
	if err != nil {
		return err
	}

	return Insert(SERVER_UUID_RECORD_KEY, string(telJSON), SERVER_UUID_TABLE_NAME)
}

// CloseDB - closes a database gracefully
func CloseDB() {
	getCurrentDB()[CLOSE_DB].(func())()
	connected = false
}
