package logic

import (
	"encoding/json"
	"time"

	"github.com/posthog/posthog-go"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

// posthog_pub_key - key for sending data to PostHog
const posthog_pub_key = "phc_yGdQ4Ir8amDGRe7KyPn5PkqJvhA4BW2vHTSWoJ93dVT"

// posthog_endpoint - endpoint of PostHog server
const posthog_endpoint = "https://app.posthog.com"

// sendTelemetry - gathers telemetry data and sends to posthog
func sendTelemetry() error {
	if servercfg.Telemetry() == "off" {
		return nil
	}

	var telRecord, err = fetchTelemetryRecord()
	if err != nil {
		return err
	}
	d, err := fetchTelemetryData()
	if err != nil {
		return err
	}
	client, err := posthog.NewWithConfig(posthog_pub_key, posthog.Config{Endpoint: posthog_endpoint})
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Enqueue(posthog.Capture{
		DistinctId: telRecord.UUID,
		Event:      "daily checkin",
		Properties: posthog.NewProperties().
			Set("platforms", d.Platforms).
			Set("agency platforms", d.AgencyPlatforms).
			Set("access items", d.AccessItems).
			Set("clients", d.Clients).
			Set("access requests", d.AccessRequests).
			Set("identities", d.Identities).
			Set("pam sessions", d.PamSessions).
			Set("users", d.Users).
			Set("version", d.Version),
	})
}

// fetchTelemetryData - fetches telemetry data: count of various object types in DB
func fetchTelemetryData() (models.TelemetryData, error) {
	var data models.TelemetryData

	data.Platforms = getDBLength(database.PLATFORMS_TABLE_NAME)
	data.AgencyPlatforms = getDBLength(database.AGENCY_PLATFORMS_TABLE_NAME)
	data.AccessItems = getDBLength(database.ACCESS_ITEMS_TABLE_NAME)
	data.Clients = getDBLength(database.CLIENTS_TABLE_NAME)
	data.AccessRequests = getDBLength(database.ACCESS_REQUESTS_TABLE_NAME)
	data.Identities = getDBLength(database.IDENTITIES_TABLE_NAME)
	data.PamSessions = getDBLength(database.PAM_SESSIONS_TABLE_NAME)
	data.Users = getDBLength(database.USERS_TABLE_NAME)
	data.Version = servercfg.GetVersion()
	return data, nil
}

// setTelemetryTimestamp - give the entry in the DB a new timestamp
func setTelemetryTimestamp(telRecord *models.Telemetry) error {
	lastsend := time.Now().Unix()
	var serverTelData = models.Telemetry{
		UUID:          telRecord.UUID,
		LastSend:      lastsend,
		PlatformCount: getDBLength(database.AGENCY_PLATFORMS_TABLE_NAME),
	}
	jsonObj, err := json.Marshal(&serverTelData)
	if err != nil {
		return err
	}
	err = database.Insert(database.SERVER_UUID_RECORD_KEY, string(jsonObj), database.SERVER_UUID_TABLE_NAME)
	return err
}

// fetchTelemetryRecord - get the existing UUID and timestamp from the DB
func fetchTelemetryRecord() (models.Telemetry, error) {
	var rawData string
	var telObj models.Telemetry
	var err error
	rawData, err = database.FetchRecord(database.SERVER_UUID_TABLE_NAME, database.SERVER_UUID_RECORD_KEY)
	if err != nil {
		return telObj, err
	}
	err = json.Unmarshal([]byte(rawData), &telObj)
	return telObj, err
}

// getDBLength - get length of DB to get count of objects
func getDBLength(dbname string) int {
	data, err := database.FetchRecords(dbname)
	if err != nil {
		return 0
	}
	return len(data)
}
