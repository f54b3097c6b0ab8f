package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
)

func intPtr(v int) *int { return &v }

func TestValidateAccessItemBasics(t *testing.T) {
	ga4, _ := GetPlugin("ga4")
	snowflake, _ := GetPlugin("snowflake")
	t.Run("Invalid_Item_Type", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{ItemType: "WILDCARD"})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "invalid access item type")
	})
	t.Run("Unoffered_Item_Type", func(t *testing.T) {
		err := ValidateAccessItem(snowflake, &models.APIAccessItem{ItemType: models.NamedInvite})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "does not support item type")
	})
	t.Run("Unoffered_Role", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType: models.NamedInvite,
			Role:     "superuser",
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "not offered")
	})
	t.Run("Bad_Ownership_Enum", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:     models.SharedAccount,
			PamOwnership: "SHARED",
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "pamOwnership must be")
	})
	t.Run("Missing_Required_Agency_Field", func(t *testing.T) {
		googleAds, _ := GetPlugin("google-ads")
		err := ValidateAccessItem(googleAds, &models.APIAccessItem{
			ItemType: models.PartnerDelegation,
			Role:     "standard",
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "agencyData.managerAccountId is required")
	})
	t.Run("Required_Field_Via_Legacy_Blob", func(t *testing.T) {
		googleAds, _ := GetPlugin("google-ads")
		err := ValidateAccessItem(googleAds, &models.APIAccessItem{
			ItemType:         models.PartnerDelegation,
			Role:             "standard",
			AgencyConfigJSON: map[string]any{"managerAccountId": "123-456-7890"},
		})
		assert.Nil(t, err)
	})
}

func TestNamedInviteRules(t *testing.T) {
	ga4, _ := GetPlugin("ga4")
	t.Run("Agency_Group_Needs_Address", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:              models.NamedInvite,
			Role:                  "viewer",
			HumanIdentityStrategy: models.AgencyGroup,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "agencyGroupEmail is required")
	})
	t.Run("Agency_Group_With_Address", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:              models.NamedInvite,
			Role:                  "viewer",
			HumanIdentityStrategy: models.AgencyGroup,
			AgencyGroupEmail:      "analytics@agency.example",
		})
		assert.Nil(t, err)
	})
	t.Run("Dedicated_Identity_Not_An_Invite_Concept", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:              models.NamedInvite,
			Role:                  "viewer",
			HumanIdentityStrategy: models.ClientDedicated,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "CLIENT_DEDICATED is not supported")
	})
}

func TestClientOwnedRule(t *testing.T) {
	ga4, _ := GetPlugin("ga4")
	t.Run("Identity_Fields_Rejected", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:        models.SharedAccount,
			Role:            "viewer",
			PamOwnership:    models.ClientOwned,
			IdentityPurpose: models.HumanInteractive,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "client_owned items are administered by the client")
	})
	t.Run("Rejection_Is_Idempotent", func(t *testing.T) {
		payload := &models.APIAccessItem{
			ItemType: models.SharedAccount,
			Role:     "viewer",
			AgencyConfigJSON: map[string]any{
				"pamOwnership":        "CLIENT_OWNED",
				"pamIdentityStrategy": "STATIC_AGENCY_IDENTITY",
			},
		}
		first := ValidateAccessItem(ga4, payload)
		second := ValidateAccessItem(ga4, payload)
		assert.NotNil(t, first)
		assert.NotNil(t, second)
		assert.Equal(t, first.Error(), second.Error())
	})
	t.Run("Plain_Client_Owned_Passes", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:     models.SharedAccount,
			Role:         "viewer",
			PamOwnership: models.ClientOwned,
		})
		assert.Nil(t, err)
	})
}

func TestAgencyOwnedRules(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()
	defer database.DeleteAllRecords(database.IDENTITIES_TABLE_NAME)

	ga4, _ := GetPlugin("ga4")
	snowflake, _ := GetPlugin("snowflake")

	agencyIdentity, err := CreateIdentity(models.UsageAgency, &models.APIIdentity{
		Name:       "GA4 vault login",
		Type:       models.SharedCredential,
		Identifier: "analytics-vault@agency.example",
	})
	assert.Nil(t, err)
	integrationIdentity, err := CreateIdentity(models.UsageIntegration, &models.APIIdentity{
		Name:       "Reporting service account",
		Type:       models.ServiceAccount,
		Identifier: "reporting@project.iam.gserviceaccount.com",
	})
	assert.Nil(t, err)

	t.Run("Integration_Purpose_Needs_Identity_Ref", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:        models.SharedAccount,
			Role:            "viewer",
			PamOwnership:    models.AgencyOwned,
			IdentityPurpose: models.IntegrationNonInteractive,
			PamConfirmation: true,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "requires integrationIdentityId")
	})
	t.Run("Integration_Identity_Must_Exist", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:              models.SharedAccount,
			Role:                  "viewer",
			PamOwnership:          models.AgencyOwned,
			IdentityPurpose:       models.IntegrationNonInteractive,
			IntegrationIdentityID: "nosuch",
			PamConfirmation:       true,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
	t.Run("Integration_Identity_Resolves", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:              models.SharedAccount,
			Role:                  "viewer",
			PamOwnership:          models.AgencyOwned,
			IdentityPurpose:       models.IntegrationNonInteractive,
			IntegrationIdentityID: integrationIdentity.ID,
			PamConfirmation:       true,
		})
		assert.Nil(t, err)
	})
	t.Run("Static_Strategy_Needs_Identity_Ref", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:            models.SharedAccountPAM,
			Role:                "viewer",
			PamOwnership:        models.AgencyOwned,
			IdentityPurpose:     models.HumanInteractive,
			PamIdentityStrategy: models.StaticAgencyIdentity,
			PamConfirmation:     true,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "requires agencyIdentityId")
	})
	t.Run("Static_Strategy_Rejects_Naming_Template", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:            models.SharedAccountPAM,
			Role:                "viewer",
			PamOwnership:        models.AgencyOwned,
			IdentityPurpose:     models.HumanInteractive,
			PamIdentityStrategy: models.StaticAgencyIdentity,
			AgencyIdentityID:    agencyIdentity.ID,
			PamNamingTemplate:   "client-{{clientSlug}}@agency.example",
			PamConfirmation:     true,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "cannot be combined")
	})
	t.Run("Static_Strategy_Resolves", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:            models.SharedAccountPAM,
			Role:                "viewer",
			PamOwnership:        models.AgencyOwned,
			IdentityPurpose:     models.HumanInteractive,
			PamIdentityStrategy: models.StaticAgencyIdentity,
			AgencyIdentityID:    agencyIdentity.ID,
			PamConfirmation:     true,
		})
		assert.Nil(t, err)
	})
	t.Run("Dedicated_Strategy_Needs_Type_And_Template", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:            models.SharedAccountPAM,
			Role:                "viewer",
			PamOwnership:        models.AgencyOwned,
			IdentityPurpose:     models.HumanInteractive,
			PamIdentityStrategy: models.ClientDedicatedIdentity,
			PamConfirmation:     true,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "requires pamIdentityType")
	})
	t.Run("Group_Identity_Forbids_Checkout_Duration", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:                   models.SharedAccountPAM,
			Role:                       "viewer",
			PamOwnership:               models.AgencyOwned,
			IdentityPurpose:            models.HumanInteractive,
			PamIdentityStrategy:        models.ClientDedicatedIdentity,
			PamIdentityType:            models.IdentityGroup,
			PamNamingTemplate:          "client-{{clientSlug}}@agency.example",
			PamCheckoutDurationMinutes: intPtr(60),
			PamConfirmation:            true,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "MAILBOX identities only")
	})
	t.Run("Mailbox_Identity_Takes_Checkout_Duration", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:                   models.SharedAccountPAM,
			Role:                       "viewer",
			PamOwnership:               models.AgencyOwned,
			IdentityPurpose:            models.HumanInteractive,
			PamIdentityStrategy:        models.ClientDedicatedIdentity,
			PamIdentityType:            models.IdentityMailbox,
			PamNamingTemplate:          "client-{{clientSlug}}@agency.example",
			PamCheckoutDurationMinutes: intPtr(120),
			PamConfirmation:            true,
		})
		assert.Nil(t, err)
	})
	t.Run("Discouraging_Platform_Needs_Acknowledgement", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:        models.SharedAccount,
			Role:            "viewer",
			PamOwnership:    models.AgencyOwned,
			IdentityPurpose: models.HumanInteractive,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "acknowledge the risk")
	})
	t.Run("Recommending_Platform_Needs_No_Acknowledgement", func(t *testing.T) {
		err := ValidateAccessItem(snowflake, &models.APIAccessItem{
			ItemType:        models.SharedAccountPAM,
			Role:            "analyst",
			PamOwnership:    models.AgencyOwned,
			IdentityPurpose: models.HumanInteractive,
		})
		assert.Nil(t, err)
	})
}

// binding rules key on the purpose and strategy fields, so leaving
// pamOwnership off a payload does not let it skip them
func TestIdentityBindingWithoutOwnership(t *testing.T) {
	ga4, _ := GetPlugin("ga4")
	t.Run("Integration_Purpose_Still_Needs_Identity_Ref", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:        models.SharedAccount,
			Role:            "viewer",
			IdentityPurpose: models.IntegrationNonInteractive,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "requires integrationIdentityId")
	})
	t.Run("Dedicated_Strategy_Still_Needs_Template", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:            models.SharedAccount,
			Role:                "viewer",
			PamIdentityStrategy: models.ClientDedicatedIdentity,
			PamIdentityType:     models.IdentityGroup,
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "requires pamNamingTemplate")
	})
	t.Run("Group_Duration_Still_Rejected", func(t *testing.T) {
		err := ValidateAccessItem(ga4, &models.APIAccessItem{
			ItemType:                   models.SharedAccount,
			Role:                       "viewer",
			PamIdentityStrategy:        models.ClientDedicatedIdentity,
			PamIdentityType:            models.IdentityGroup,
			PamNamingTemplate:          "client-{{clientSlug}}@agency.example",
			PamCheckoutDurationMinutes: intPtr(120),
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "MAILBOX identities only")
	})
}
