package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
)

// ErrConfiguredAppExists - the client already has this platform configured
var ErrConfiguredAppExists = errors.New("configured app already exists for this client and platform")

// CreateClient - stores a new client
func CreateClient(payload *models.APIClient) (*models.Client, error) {
	v := validator.New()
	if err := v.Struct(payload); err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			logger.Log(2, e.Error())
		}
		return nil, errors.New("invalid client payload")
	}

	client := models.Client{
		ID:           uuid.NewString(),
		Name:         payload.Name,
		ContactEmail: payload.ContactEmail,
		CompanyURL:   payload.CompanyURL,
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(&client)
	if err != nil {
		return nil, err
	}
	if err = database.Insert(client.ID, string(data), database.CLIENTS_TABLE_NAME); err != nil {
		return nil, err
	}
	logger.Log(1, "created client", client.Name)
	return &client, nil
}

// GetClient - fetches one client by id
func GetClient(id string) (models.Client, error) {
	var client models.Client
	record, err := database.FetchRecord(database.CLIENTS_TABLE_NAME, id)
	if err != nil {
		return client, err
	}
	if err = json.Unmarshal([]byte(record), &client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// GetClients - all clients, oldest first
func GetClients() ([]models.Client, error) {
	clients := []models.Client{}
	records, err := database.FetchRecords(database.CLIENTS_TABLE_NAME)
	if err != nil && !database.IsEmptyRecord(err) {
		return clients, err
	}
	for _, record := range records {
		var client models.Client
		if err := json.Unmarshal([]byte(record), &client); err != nil {
			continue
		}
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].CreatedAt.Before(clients[j].CreatedAt)
	})
	return clients, nil
}

// DeleteClient - removes a client and its configured apps
func DeleteClient(id string) error {
	if _, err := GetClient(id); err != nil {
		return err
	}
	apps, err := GetConfiguredApps(id)
	if err == nil {
		for i := range apps {
			if err := database.DeleteRecord(database.CONFIGURED_APPS_TABLE_NAME, apps[i].ID); err != nil {
				logger.Log(1, "failed to drop configured app", apps[i].ID, err.Error())
			}
		}
	}
	return database.DeleteRecord(database.CLIENTS_TABLE_NAME, id)
}

// CreateConfiguredApp - switches a platform on for a client; one row per
// (client, platform) pair
func CreateConfiguredApp(clientID string, payload *models.APIConfiguredApp) (*models.ConfiguredApp, error) {
	if _, err := GetClient(clientID); err != nil {
		return nil, fmt.Errorf("client %s not found", clientID)
	}
	if _, err := GetPlatform(payload.PlatformKey); err != nil {
		return nil, fmt.Errorf("unknown platform %s", payload.PlatformKey)
	}
	existing, err := GetConfiguredApps(clientID)
	if err == nil {
		for i := range existing {
			if existing[i].PlatformKey == payload.PlatformKey {
				return nil, ErrConfiguredAppExists
			}
		}
	}

	app := models.ConfiguredApp{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		PlatformKey: payload.PlatformKey,
		IsEnabled:   true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := upsertConfiguredApp(&app); err != nil {
		return nil, err
	}
	logger.Log(1, "configured app", app.PlatformKey, "for client", clientID)
	return &app, nil
}

// GetConfiguredApp - fetches one configured app by id
func GetConfiguredApp(id string) (models.ConfiguredApp, error) {
	var app models.ConfiguredApp
	record, err := database.FetchRecord(database.CONFIGURED_APPS_TABLE_NAME, id)
	if err != nil {
		return app, err
	}
	if err = json.Unmarshal([]byte(record), &app); err != nil {
		return models.ConfiguredApp{}, err
	}
	return app, nil
}

// GetConfiguredApps - a client's configured apps, oldest first
func GetConfiguredApps(clientID string) ([]models.ConfiguredApp, error) {
	apps := []models.ConfiguredApp{}
	records, err := database.FetchRecords(database.CONFIGURED_APPS_TABLE_NAME)
	if err != nil && !database.IsEmptyRecord(err) {
		return apps, err
	}
	for _, record := range records {
		var app models.ConfiguredApp
		if err := json.Unmarshal([]byte(record), &app); err != nil {
			continue
		}
		if app.ClientID != clientID {
			continue
		}
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.Before(apps[j].CreatedAt)
	})
	return apps, nil
}

// ToggleConfiguredApp - flips the enabled flag
func ToggleConfiguredApp(id string) (*models.ConfiguredApp, error) {
	app, err := GetConfiguredApp(id)
	if err != nil {
		return nil, err
	}
	app.IsEnabled = !app.IsEnabled
	if err := upsertConfiguredApp(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

// DeleteConfiguredApp - removes a configured app
func DeleteConfiguredApp(id string) error {
	if _, err := GetConfiguredApp(id); err != nil {
		return err
	}
	return database.DeleteRecord(database.CONFIGURED_APPS_TABLE_NAME, id)
}

func upsertConfiguredApp(app *models.ConfiguredApp) error {
	data, err := json.Marshal(app)
	if err != nil {
		return err
	}
	return database.Insert(app.ID, string(data), database.CONFIGURED_APPS_TABLE_NAME)
}
