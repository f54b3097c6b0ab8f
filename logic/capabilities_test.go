package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/models"
)

func TestResolveCapabilities(t *testing.T) {
	ga4, err := GetPlugin("ga4")
	assert.Nil(t, err)
	t.Run("Named_Invite_Automates", func(t *testing.T) {
		caps := ResolveCapabilities(ga4, models.NamedInvite, nil)
		assert.True(t, caps.CanGrantAccess)
		assert.True(t, caps.CanVerifyAccess)
		assert.True(t, caps.CanRevokeAccess)
		assert.True(t, caps.ClientOAuthSupported)
		assert.False(t, caps.RequiresEvidenceUpload)
	})
	t.Run("Shared_Account_No_Context_Falls_To_Evidence", func(t *testing.T) {
		caps := ResolveCapabilities(ga4, models.SharedAccount, nil)
		assert.False(t, caps.CanGrantAccess)
		assert.False(t, caps.CanVerifyAccess)
		assert.False(t, caps.CanRevokeAccess)
		assert.False(t, caps.ClientOAuthSupported)
		assert.True(t, caps.RequiresEvidenceUpload)
	})
	t.Run("Agency_Owned_Human_Interactive_Automates", func(t *testing.T) {
		caps := ResolveCapabilities(ga4, models.SharedAccount, &models.CapabilityContext{
			PamOwnership:    models.AgencyOwned,
			IdentityPurpose: models.HumanInteractive,
		})
		assert.True(t, caps.CanGrantAccess)
		assert.True(t, caps.CanVerifyAccess)
		assert.True(t, caps.CanRevokeAccess)
		assert.False(t, caps.RequiresEvidenceUpload)
	})
	t.Run("Integration_Purpose_Stays_Manual", func(t *testing.T) {
		caps := ResolveCapabilities(ga4, models.SharedAccountPAM, &models.CapabilityContext{
			PamOwnership:    models.AgencyOwned,
			IdentityPurpose: models.IntegrationNonInteractive,
		})
		assert.False(t, caps.CanGrantAccess)
		assert.True(t, caps.RequiresEvidenceUpload)
	})
	t.Run("Partial_Context_Resolves_Like_Client_Owned", func(t *testing.T) {
		partial := ResolveCapabilities(ga4, models.SharedAccount, &models.CapabilityContext{
			PamOwnership: models.AgencyOwned,
		})
		clientOwned := ResolveCapabilities(ga4, models.SharedAccount, &models.CapabilityContext{
			PamOwnership: models.ClientOwned,
		})
		assert.Equal(t, clientOwned, partial)
		assert.True(t, partial.RequiresEvidenceUpload)
	})
	t.Run("Default_Equals_Client_Owned_Everywhere", func(t *testing.T) {
		clientOwned := &models.CapabilityContext{PamOwnership: models.ClientOwned}
		for _, manifest := range GetPlugins() {
			for _, spec := range manifest.SupportedAccessItemTypes {
				absent := ResolveCapabilities(manifest, spec.Type, nil)
				explicit := ResolveCapabilities(manifest, spec.Type, clientOwned)
				assert.Equal(t, explicit, absent, "%s %s", manifest.PlatformKey, spec.Type)
			}
		}
	})
}

func TestPlatformCeilings(t *testing.T) {
	automated := &models.CapabilityContext{
		PamOwnership:    models.AgencyOwned,
		IdentityPurpose: models.HumanInteractive,
	}
	t.Run("Search_Console_Cannot_Grant", func(t *testing.T) {
		gsc, err := GetPlugin("google-search-console")
		assert.Nil(t, err)
		caps := ResolveCapabilities(gsc, models.SharedAccount, automated)
		assert.False(t, caps.CanGrantAccess)
		assert.False(t, caps.CanRevokeAccess)
		assert.True(t, caps.CanVerifyAccess)
		assert.True(t, caps.ClientOAuthSupported)
	})
	t.Run("Snowflake_Has_No_OAuth", func(t *testing.T) {
		snowflake, err := GetPlugin("snowflake")
		assert.Nil(t, err)
		caps := ResolveCapabilities(snowflake, models.SharedAccountPAM, automated)
		assert.False(t, caps.ClientOAuthSupported)
		assert.True(t, caps.CanGrantAccess)
	})
	t.Run("Ceilings_Only_Remove", func(t *testing.T) {
		// a platform ceiling must never produce a capability the base row lacks
		for _, manifest := range GetPlugins() {
			for _, spec := range manifest.SupportedAccessItemTypes {
				base := baseRow(spec.Type, automated)
				resolved := ResolveCapabilities(manifest, spec.Type, automated)
				assert.False(t, resolved.CanGrantAccess && !base.CanGrantAccess)
				assert.False(t, resolved.CanVerifyAccess && !base.CanVerifyAccess)
				assert.False(t, resolved.CanRevokeAccess && !base.CanRevokeAccess)
				assert.False(t, resolved.ClientOAuthSupported && !base.ClientOAuthSupported)
			}
		}
	})
}

func TestEffectiveCapabilities(t *testing.T) {
	t.Run("Resolves_Known_Platform", func(t *testing.T) {
		caps, err := EffectiveCapabilities("ga4", models.NamedInvite, nil)
		assert.Nil(t, err)
		assert.True(t, caps.CanGrantAccess)
	})
	t.Run("Unknown_Platform", func(t *testing.T) {
		_, err := EffectiveCapabilities("nosuch", models.NamedInvite, nil)
		assert.NotNil(t, err)
	})
	t.Run("Invalid_Item_Type", func(t *testing.T) {
		_, err := EffectiveCapabilities("ga4", "WILDCARD", nil)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "invalid access item type")
	})
	t.Run("Unoffered_Item_Type", func(t *testing.T) {
		// snowflake has no invite flow
		_, err := EffectiveCapabilities("snowflake", models.NamedInvite, nil)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "does not offer")
	})
}
