package logic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/models"
)

func validActionPayload() *models.ActionPayload {
	return &models.ActionPayload{
		AccessToken:    "ya29.test-token",
		Target:         "313420998",
		Role:           "viewer",
		Identity:       "analyst@agency.example",
		AccessItemType: models.NamedInvite,
	}
}

func TestCheckActionAllowed(t *testing.T) {
	t.Run("Allows_Implemented_Connector", func(t *testing.T) {
		manifest, err := CheckActionAllowed("ga4", models.ActionGrant, validActionPayload())
		assert.Nil(t, err)
		assert.Equal(t, "ga4", manifest.PlatformKey)
	})
	t.Run("Incomplete_Payload", func(t *testing.T) {
		payload := validActionPayload()
		payload.Target = ""
		_, err := CheckActionAllowed("ga4", models.ActionGrant, payload)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "target is required")
	})
	t.Run("Unknown_Platform", func(t *testing.T) {
		_, err := CheckActionAllowed("nosuch", models.ActionGrant, validActionPayload())
		assert.NotNil(t, err)
	})
	t.Run("Shared_Account_Without_Context_Is_Unsupported", func(t *testing.T) {
		payload := validActionPayload()
		payload.AccessItemType = models.SharedAccount
		_, err := CheckActionAllowed("ga4", models.ActionGrant, payload)
		assert.NotNil(t, err)
		assert.True(t, errors.Is(err, ErrActionUnsupported))
	})
	t.Run("Shared_Account_With_Agency_Context_Passes_Gate", func(t *testing.T) {
		payload := validActionPayload()
		payload.AccessItemType = models.SharedAccount
		payload.PamOwnership = models.AgencyOwned
		payload.IdentityPurpose = models.HumanInteractive
		_, err := CheckActionAllowed("ga4", models.ActionGrant, payload)
		assert.Nil(t, err)
	})
	t.Run("Grant_On_Search_Console_Is_Unsupported", func(t *testing.T) {
		payload := validActionPayload()
		payload.Role = "restricted"
		_, err := CheckActionAllowed("google-search-console", models.ActionGrant, payload)
		assert.NotNil(t, err)
		assert.True(t, errors.Is(err, ErrActionUnsupported))
	})
	t.Run("Verify_On_Search_Console_Is_Allowed", func(t *testing.T) {
		payload := validActionPayload()
		payload.Role = "restricted"
		_, err := CheckActionAllowed("google-search-console", models.ActionVerify, payload)
		assert.Nil(t, err)
	})
	t.Run("Pending_Connector", func(t *testing.T) {
		payload := validActionPayload()
		payload.Role = "standard"
		_, err := CheckActionAllowed("google-ads", models.ActionGrant, payload)
		assert.NotNil(t, err)
		assert.True(t, errors.Is(err, ErrConnectorPending))
	})
	t.Run("Unoffered_Role", func(t *testing.T) {
		payload := validActionPayload()
		payload.Role = "superuser"
		_, err := CheckActionAllowed("ga4", models.ActionGrant, payload)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "not offered")
	})
}
