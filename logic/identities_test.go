package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
)

func TestCreateIdentity(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()
	defer database.DeleteAllRecords(database.IDENTITIES_TABLE_NAME)
	assert.Nil(t, SeedPlatforms())

	t.Run("Invalid_Type", func(t *testing.T) {
		_, err := CreateIdentity(models.UsageAgency, &models.APIIdentity{
			Name:       "Bad type",
			Type:       "PERSONAL_ACCOUNT",
			Identifier: "someone@agency.example",
		})
		assert.NotNil(t, err)
	})
	t.Run("Unknown_Platform", func(t *testing.T) {
		_, err := CreateIdentity(models.UsageAgency, &models.APIIdentity{
			Name:        "Bad platform",
			Type:        models.SharedCredential,
			Identifier:  "someone@agency.example",
			PlatformKey: "nosuch",
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "unknown platform")
	})
	t.Run("Create_Agency_Identity", func(t *testing.T) {
		identity, err := CreateIdentity(models.UsageAgency, &models.APIIdentity{
			Name:        "GA4 vault login",
			Type:        models.SharedCredential,
			Identifier:  "vault@agency.example",
			PlatformKey: "ga4",
		})
		assert.Nil(t, err)
		assert.True(t, identity.IsActive)
		assert.Equal(t, models.UsageAgency, identity.Usage)
		assert.Empty(t, identity.SecretRef)
	})
	t.Run("Initial_Secret_Is_Stored", func(t *testing.T) {
		identity, err := CreateIdentity(models.UsageAgency, &models.APIIdentity{
			Name:          "Seeded vault login",
			Type:          models.SharedCredential,
			Identifier:    "seeded@agency.example",
			InitialSecret: "correct-horse-battery",
		})
		assert.Nil(t, err)
		assert.NotEmpty(t, identity.SecretRef)
		secret, err := GetPamSecret(identity.SecretRef)
		assert.Nil(t, err)
		assert.Equal(t, "seeded@agency.example", secret.Username)
		assert.Equal(t, "correct-horse-battery", secret.Password)
	})
	t.Run("Usage_Filter", func(t *testing.T) {
		_, err := CreateIdentity(models.UsageIntegration, &models.APIIdentity{
			Name:       "Reporting robot",
			Type:       models.ServiceAccount,
			Identifier: "robot@project.iam.gserviceaccount.com",
		})
		assert.Nil(t, err)
		agency, err := GetIdentities(&models.IdentityFilter{Usage: models.UsageAgency})
		assert.Nil(t, err)
		for i := range agency {
			assert.Equal(t, models.UsageAgency, agency[i].Usage)
		}
		integration, err := GetIdentities(&models.IdentityFilter{Usage: models.UsageIntegration})
		assert.Nil(t, err)
		assert.Len(t, integration, 1)
	})
}
