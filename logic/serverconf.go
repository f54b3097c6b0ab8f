package logic

import (
	"encoding/json"

	"github.com/grantlink/grantlink/database"
)

// database key for the signing secret in the serverconf table
const jwt_secret_key = "gl-jwt-secret"

type serverData struct {
	PrivateKey string `json:"privatekey,omitempty"`
}

// FetchJWTSecret - fetches jwt secret from db
func FetchJWTSecret() (string, error) {
	var dbData string
	var err error
	var fetchedData = serverData{}
	dbData, err = database.FetchRecord(database.SERVERCONF_TABLE_NAME, jwt_secret_key)
	if err != nil {
		return "", err
	}
	err = json.Unmarshal([]byte(dbData), &fetchedData)
	if err != nil {
		return "", err
	}
	return fetchedData.PrivateKey, nil
}

// StoreJWTSecret - stores server jwt secret if needed
func StoreJWTSecret(privateKey string) error {
	var newData = serverData{}
	var err error
	var data []byte
	newData.PrivateKey = privateKey
	data, err = json.Marshal(&newData)
	if err != nil {
		return err
	}
	return database.Insert(jwt_secret_key, string(data), database.SERVERCONF_TABLE_NAME)
}
