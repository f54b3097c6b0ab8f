package logic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
)

// setupAgencyFixture - seeds the catalog, creates a client and enables GA4.
// The agency platform is shared between test functions so a second enable is
// tolerated.
func setupAgencyFixture(t *testing.T) (*models.Client, *models.AgencyPlatform) {
	t.Helper()
	assert.Nil(t, SeedPlatforms())
	client, err := CreateClient(&models.APIClient{
		Name:         "Acme Rockets",
		ContactEmail: "ops@acme.example",
	})
	assert.Nil(t, err)
	agencyPlatform, err := CreateAgencyPlatform(&models.APIAgencyPlatform{PlatformKey: "ga4"})
	if errors.Is(err, ErrAgencyPlatformExists) {
		existing, lookupErr := GetAgencyPlatformByKey("ga4")
		assert.Nil(t, lookupErr)
		agencyPlatform = &existing
	} else {
		assert.Nil(t, err)
	}
	return client, agencyPlatform
}

func TestCreateAccessRequest(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()

	client, agencyPlatform := setupAgencyFixture(t)
	item, err := CreateAccessItem(agencyPlatform.ID, &models.APIAccessItem{
		ItemType: models.NamedInvite,
		Label:    "Analytics reporting seat",
		Role:     "viewer",
	})
	assert.Nil(t, err)

	t.Run("No_Items", func(t *testing.T) {
		_, err := CreateAccessRequest(&models.APIAccessRequest{ClientID: client.ID})
		assert.NotNil(t, err)
		assert.Equal(t, RequestErrors.NoItems, err)
	})
	t.Run("Unknown_Client", func(t *testing.T) {
		_, err := CreateAccessRequest(&models.APIAccessRequest{
			ClientID: "nosuch",
			ItemIDs:  []string{item.ID},
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
	t.Run("Unknown_Item", func(t *testing.T) {
		_, err := CreateAccessRequest(&models.APIAccessRequest{
			ClientID: client.ID,
			ItemIDs:  []string{"nosuch"},
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "access item nosuch not found")
	})
	t.Run("By_Item_Ids", func(t *testing.T) {
		request, err := CreateAccessRequest(&models.APIAccessRequest{
			ClientID: client.ID,
			ItemIDs:  []string{item.ID},
		})
		assert.Nil(t, err)
		assert.Equal(t, models.RequestItemPending, request.Status)
		assert.Len(t, request.Items, 1)
		assert.Equal(t, item.ID, request.Items[0].ItemID)
		assert.Equal(t, "ga4", request.Items[0].PlatformKey)
		assert.Equal(t, models.PatternNamedInvite, request.Items[0].AccessPattern)
		assert.NotEmpty(t, request.Token)
	})
	t.Run("By_Legacy_Platform_Ids", func(t *testing.T) {
		request, err := CreateAccessRequest(&models.APIAccessRequest{
			ClientID:    client.ID,
			PlatformIDs: []string{"ga4"},
		})
		assert.Nil(t, err)
		assert.Len(t, request.Items, 1)
		assert.Equal(t, "ga4", request.Items[0].PlatformKey)
	})
	t.Run("Unconfigured_Platform", func(t *testing.T) {
		_, err := CreateAccessRequest(&models.APIAccessRequest{
			ClientID:    client.ID,
			PlatformIDs: []string{"meta-business"},
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "no agency platform configured")
	})
}

func TestOnboardingToken(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()

	client, agencyPlatform := setupAgencyFixture(t)
	item, err := CreateAccessItem(agencyPlatform.ID, &models.APIAccessItem{
		ItemType: models.NamedInvite,
		Label:    "Token round trip seat",
		Role:     "viewer",
	})
	assert.Nil(t, err)
	request, err := CreateAccessRequest(&models.APIAccessRequest{
		ClientID: client.ID,
		ItemIDs:  []string{item.ID},
	})
	assert.Nil(t, err)

	t.Run("B64_Token_Resolves", func(t *testing.T) {
		found, err := DeTokenizeRequest(request.Token)
		assert.Nil(t, err)
		assert.Equal(t, request.ID, found.ID)
	})
	t.Run("Raw_Token_Value_Resolves", func(t *testing.T) {
		found, err := DeTokenizeRequest(request.TokenValue)
		assert.Nil(t, err)
		assert.Equal(t, request.ID, found.ID)
	})
	t.Run("Empty_Token", func(t *testing.T) {
		_, err := DeTokenizeRequest("")
		assert.NotNil(t, err)
	})
	t.Run("Refresh_Rotates_Token", func(t *testing.T) {
		refreshed, err := RefreshRequestToken(request.ID)
		assert.Nil(t, err)
		assert.NotEqual(t, request.TokenValue, refreshed.TokenValue)
		assert.NotNil(t, refreshed.RefreshedAt)

		// the old link is dead, the new one works
		_, err = DeTokenizeRequest(request.TokenValue)
		assert.NotNil(t, err)
		found, err := DeTokenizeRequest(refreshed.Token)
		assert.Nil(t, err)
		assert.Equal(t, request.ID, found.ID)
	})
}

func TestValidateRequestItem(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()

	client, agencyPlatform := setupAgencyFixture(t)
	item, err := CreateAccessItem(agencyPlatform.ID, &models.APIAccessItem{
		ItemType: models.NamedInvite,
		Label:    "Validation seat",
		Role:     "viewer",
	})
	assert.Nil(t, err)
	request, err := CreateAccessRequest(&models.APIAccessRequest{
		ClientID: client.ID,
		ItemIDs:  []string{item.ID},
	})
	assert.Nil(t, err)

	t.Run("Unknown_Item", func(t *testing.T) {
		_, err := ValidateRequestItem(request.ID, &models.ValidateItemParams{ItemID: "nosuch"}, "ops@agency.example")
		assert.Equal(t, RequestErrors.NoItemFound, err)
	})
	t.Run("By_Item_Id", func(t *testing.T) {
		updated, err := ValidateRequestItem(request.ID, &models.ValidateItemParams{
			ItemID: item.ID,
			Note:   "screenshot checked",
		}, "ops@agency.example")
		assert.Nil(t, err)
		validated := updated.FindItem(item.ID)
		assert.Equal(t, models.RequestItemValidated, validated.Status)
		assert.Equal(t, "ops@agency.example", validated.ValidatedBy)
		assert.Equal(t, "screenshot checked", validated.EvidenceNote)
		assert.NotNil(t, validated.ValidatedAt)
		// the only item is validated, so the request is too
		assert.Equal(t, models.RequestItemValidated, updated.Status)
	})
	t.Run("Second_Validation_Conflicts", func(t *testing.T) {
		_, err := ValidateRequestItem(request.ID, &models.ValidateItemParams{ItemID: item.ID}, "ops@agency.example")
		assert.Equal(t, RequestErrors.AlreadyValidated, err)
	})
	t.Run("By_Legacy_Platform_Id", func(t *testing.T) {
		second, err := CreateAccessRequest(&models.APIAccessRequest{
			ClientID: client.ID,
			ItemIDs:  []string{item.ID},
		})
		assert.Nil(t, err)
		updated, err := ValidateRequestItem(second.ID, &models.ValidateItemParams{PlatformID: "ga4"}, "ops@agency.example")
		assert.Nil(t, err)
		assert.Equal(t, models.RequestItemValidated, updated.Items[0].Status)
	})
}
