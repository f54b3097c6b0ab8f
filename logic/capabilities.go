package logic

import (
	"fmt"

	"github.com/grantlink/grantlink/models"
)

// capability rows before platform ceilings are applied. Invite-shaped item
// types automate; shared accounts automate only once the agency owns the
// credential and a human drives it. An absent or partial context resolves
// like CLIENT_OWNED, so misconfiguration can never widen access.
var (
	automatedRow = models.ResolvedCapabilities{
		ClientOAuthSupported:   true,
		CanGrantAccess:         true,
		CanVerifyAccess:        true,
		CanRevokeAccess:        true,
		RequiresEvidenceUpload: false,
	}
	evidenceRow = models.ResolvedCapabilities{
		ClientOAuthSupported:   false,
		CanGrantAccess:         false,
		CanVerifyAccess:        false,
		CanRevokeAccess:        false,
		RequiresEvidenceUpload: true,
	}
)

// ResolveCapabilities - computes what GrantLink may automate for one
// (platform, item type, PAM context) combination. The base row comes from the
// item type and context; the platform's API ceilings are then ANDed on, which
// keeps trust monotone: a ceiling can only remove capability, never add it.
func ResolveCapabilities(manifest *models.PluginManifest, itemType models.AccessItemType, context *models.CapabilityContext) models.ResolvedCapabilities {
	row := baseRow(itemType, context)

	row.ClientOAuthSupported = row.ClientOAuthSupported && manifest.SecurityCapabilities.SupportsOAuth
	row.CanGrantAccess = row.CanGrantAccess && manifest.APIGrantCapable
	row.CanRevokeAccess = row.CanRevokeAccess && manifest.APIGrantCapable
	row.CanVerifyAccess = row.CanVerifyAccess && manifest.APIVerifyCapable

	return row
}

// baseRow - the platform-independent capability skeleton
func baseRow(itemType models.AccessItemType, context *models.CapabilityContext) models.ResolvedCapabilities {
	switch itemType {
	case models.NamedInvite, models.GroupAccess, models.PartnerDelegation:
		return automatedRow
	case models.SharedAccount, models.SharedAccountPAM:
		if context == nil {
			return evidenceRow
		}
		if context.PamOwnership == models.AgencyOwned &&
			context.IdentityPurpose == models.HumanInteractive {
			return automatedRow
		}
		return evidenceRow
	}
	return evidenceRow
}

// EffectiveCapabilities - resolver entry used by the HTTP layer: looks the
// plugin up, enforces its item-type whitelist, then resolves
func EffectiveCapabilities(platformKey string, itemType models.AccessItemType, context *models.CapabilityContext) (models.ResolvedCapabilities, error) {
	manifest, err := GetPlugin(platformKey)
	if err != nil {
		return models.ResolvedCapabilities{}, err
	}
	if !itemType.IsValid() {
		return models.ResolvedCapabilities{}, fmt.Errorf("invalid access item type %s", itemType)
	}
	if !manifest.SupportsItemType(itemType) {
		return models.ResolvedCapabilities{}, fmt.Errorf("platform %s does not offer item type %s", platformKey, itemType)
	}
	return ResolveCapabilities(manifest, itemType, context), nil
}
