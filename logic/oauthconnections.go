package logic

import (
	"encoding/json"
	"sort"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
)

// UpsertOAuthConnection - stores a platform OAuth grant
func UpsertOAuthConnection(connection *models.OAuthConnection) error {
	data, err := json.Marshal(connection)
	if err != nil {
		return err
	}
	return database.Insert(connection.ID, string(data), database.OAUTH_CONNECTIONS_TABLE_NAME)
}

// GetOAuthConnection - fetches one connection with token material
func GetOAuthConnection(id string) (models.OAuthConnection, error) {
	var connection models.OAuthConnection
	record, err := database.FetchRecord(database.OAUTH_CONNECTIONS_TABLE_NAME, id)
	if err != nil {
		return connection, err
	}
	if err = json.Unmarshal([]byte(record), &connection); err != nil {
		return models.OAuthConnection{}, err
	}
	return connection, nil
}

// GetOAuthConnections - token-free listing, newest first
func GetOAuthConnections() ([]models.ReturnOAuthConnection, error) {
	connections := []models.ReturnOAuthConnection{}
	records, err := database.FetchRecords(database.OAUTH_CONNECTIONS_TABLE_NAME)
	if err != nil && !database.IsEmptyRecord(err) {
		return connections, err
	}
	for _, record := range records {
		var connection models.OAuthConnection
		if err := json.Unmarshal([]byte(record), &connection); err != nil {
			continue
		}
		connections = append(connections, connection.ToReturnConnection())
	}
	sort.Slice(connections, func(i, j int) bool {
		return connections[i].CreatedAt.After(connections[j].CreatedAt)
	})
	return connections, nil
}

// DeleteOAuthConnection - drops a stored grant
func DeleteOAuthConnection(id string) error {
	if _, err := GetOAuthConnection(id); err != nil {
		return err
	}
	return database.DeleteRecord(database.OAUTH_CONNECTIONS_TABLE_NAME, id)
}
