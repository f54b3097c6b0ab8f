package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
)

func TestClients(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()

	t.Run("Invalid_Payload", func(t *testing.T) {
		_, err := CreateClient(&models.APIClient{Name: "x"})
		assert.NotNil(t, err)
	})
	t.Run("Create_And_Fetch", func(t *testing.T) {
		created, err := CreateClient(&models.APIClient{
			Name:         "Globex Corporation",
			ContactEmail: "hank@globex.example",
			CompanyURL:   "https://globex.example",
		})
		assert.Nil(t, err)
		found, err := GetClient(created.ID)
		assert.Nil(t, err)
		assert.Equal(t, created.Name, found.Name)
		assert.Equal(t, created.ContactEmail, found.ContactEmail)
	})
	t.Run("Delete", func(t *testing.T) {
		created, err := CreateClient(&models.APIClient{Name: "Short lived client"})
		assert.Nil(t, err)
		assert.Nil(t, DeleteClient(created.ID))
		_, err = GetClient(created.ID)
		assert.NotNil(t, err)
	})
}

func TestConfiguredApps(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()
	assert.Nil(t, SeedPlatforms())

	client, err := CreateClient(&models.APIClient{Name: "Initech Marketing"})
	assert.Nil(t, err)

	t.Run("Unknown_Client", func(t *testing.T) {
		_, err := CreateConfiguredApp("nosuch", &models.APIConfiguredApp{PlatformKey: "ga4"})
		assert.NotNil(t, err)
	})
	t.Run("Unknown_Platform", func(t *testing.T) {
		_, err := CreateConfiguredApp(client.ID, &models.APIConfiguredApp{PlatformKey: "nosuch"})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "unknown platform")
	})
	t.Run("Create", func(t *testing.T) {
		app, err := CreateConfiguredApp(client.ID, &models.APIConfiguredApp{PlatformKey: "ga4"})
		assert.Nil(t, err)
		assert.Equal(t, "ga4", app.PlatformKey)
		apps, err := GetConfiguredApps(client.ID)
		assert.Nil(t, err)
		assert.Len(t, apps, 1)
	})
	t.Run("Duplicate_Platform_Conflicts", func(t *testing.T) {
		_, err := CreateConfiguredApp(client.ID, &models.APIConfiguredApp{PlatformKey: "ga4"})
		assert.Equal(t, ErrConfiguredAppExists, err)
	})
	t.Run("Toggle", func(t *testing.T) {
		apps, err := GetConfiguredApps(client.ID)
		assert.Nil(t, err)
		assert.Len(t, apps, 1)
		wasEnabled := apps[0].IsEnabled
		toggled, err := ToggleConfiguredApp(apps[0].ID)
		assert.Nil(t, err)
		assert.Equal(t, !wasEnabled, toggled.IsEnabled)
	})
	t.Run("Delete_Frees_The_Platform", func(t *testing.T) {
		apps, err := GetConfiguredApps(client.ID)
		assert.Nil(t, err)
		assert.Len(t, apps, 1)
		assert.Nil(t, DeleteConfiguredApp(apps[0].ID))
		_, err = CreateConfiguredApp(client.ID, &models.APIConfiguredApp{PlatformKey: "ga4"})
		assert.Nil(t, err)
	})
}
