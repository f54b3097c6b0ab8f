package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/models"
)

func TestBuildSchema(t *testing.T) {
	ga4, _ := GetPlugin("ga4")
	t.Run("Client_Target_Document", func(t *testing.T) {
		doc, err := BuildSchema(ga4, models.NamedInvite, models.SchemaClientTarget)
		assert.Nil(t, err)
		assert.Equal(t, "object", doc.Type)
		assert.Contains(t, doc.Required, "propertyId")
		assert.Equal(t, "string", doc.Properties["propertyId"].Type)
		assert.True(t, doc.AdditionalProperties)
	})
	t.Run("Agency_Config_Document_Carries_Enums", func(t *testing.T) {
		doc, err := BuildSchema(ga4, models.SharedAccount, models.SchemaAgencyConfig)
		assert.Nil(t, err)
		prop, ok := doc.Properties["pamOwnership"]
		assert.True(t, ok)
		assert.Contains(t, prop.Enum, "AGENCY_OWNED")
		assert.Contains(t, prop.Enum, "CLIENT_OWNED")
		assert.Equal(t, "number", doc.Properties["pamCheckoutDurationMinutes"].Type)
		assert.Equal(t, "boolean", doc.Properties["pamApprovalRequired"].Type)
	})
	t.Run("Unknown_Kind", func(t *testing.T) {
		_, err := BuildSchema(ga4, models.NamedInvite, "portal-config")
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "unknown schema kind")
	})
	t.Run("Unoffered_Item_Type", func(t *testing.T) {
		snowflake, _ := GetPlugin("snowflake")
		_, err := BuildSchema(snowflake, models.NamedInvite, models.SchemaClientTarget)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "does not offer")
	})
}

func TestValidateAgainstSchema(t *testing.T) {
	ga4, _ := GetPlugin("ga4")
	doc, err := BuildSchema(ga4, models.NamedInvite, models.SchemaClientTarget)
	assert.Nil(t, err)
	t.Run("Valid_Payload", func(t *testing.T) {
		result := ValidateAgainstSchema(doc, map[string]any{"propertyId": "313420998"})
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})
	t.Run("Missing_Required", func(t *testing.T) {
		result := ValidateAgainstSchema(doc, map[string]any{"accountId": "54516992"})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "propertyId is required")
	})
	t.Run("Empty_String_Counts_As_Missing", func(t *testing.T) {
		result := ValidateAgainstSchema(doc, map[string]any{"propertyId": ""})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "propertyId is required")
	})
	t.Run("Wrong_Type", func(t *testing.T) {
		result := ValidateAgainstSchema(doc, map[string]any{"propertyId": 313420998})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "propertyId must be of type string")
	})
	t.Run("Undeclared_Keys_Tolerated", func(t *testing.T) {
		result := ValidateAgainstSchema(doc, map[string]any{
			"propertyId": "313420998",
			"notes":      map[string]any{"free": "form"},
		})
		assert.True(t, result.Valid)
	})
	t.Run("Enum_Violation", func(t *testing.T) {
		agencyDoc, err := BuildSchema(ga4, models.SharedAccount, models.SchemaAgencyConfig)
		assert.Nil(t, err)
		result := ValidateAgainstSchema(agencyDoc, map[string]any{"pamOwnership": "SHARED"})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "pamOwnership must be one of")
	})
}

func TestSchemaDisjointness(t *testing.T) {
	t.Run("All_Registered_Plugins_Are_Disjoint", func(t *testing.T) {
		for _, manifest := range GetPlugins() {
			assert.Nil(t, checkSchemaDisjointness(manifest), manifest.PlatformKey)
		}
	})
	t.Run("Overlap_Is_Rejected", func(t *testing.T) {
		manifest := &models.PluginManifest{
			PlatformKey: "overlapping",
			SupportedAccessItemTypes: []models.AccessItemTypeSpec{
				{
					Type:               models.NamedInvite,
					AgencyConfigFields: []models.FieldSpec{{Name: "accountId", Type: "string"}},
					ClientTargetFields: []models.FieldSpec{{Name: "accountId", Type: "string", Required: true}},
				},
			},
		}
		err := checkSchemaDisjointness(manifest)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "both an agency and a client field")
	})
}
