package logic

import (
	"fmt"

	"github.com/grantlink/grantlink/models"
)

// ValidateAccessItem - the naming-and-binding rule set applied to every
// access item create and update. Rules are conjunctive and depend only on the
// normalized payload and the identity store, so the same bad payload is
// rejected the same way every time.
func ValidateAccessItem(manifest *models.PluginManifest, payload *models.APIAccessItem) error {
	payload.Normalize()

	if !payload.ItemType.IsValid() {
		return fmt.Errorf("invalid access item type %s", payload.ItemType)
	}
	if !manifest.SupportsItemType(payload.ItemType) {
		return fmt.Errorf("platform %s does not support item type %s", manifest.PlatformKey, payload.ItemType)
	}
	if payload.Role != "" && !manifest.HasRole(payload.ItemType, payload.Role) {
		return fmt.Errorf("role %s is not offered for %s on %s", payload.Role, payload.ItemType, manifest.PlatformKey)
	}
	if err := checkPamEnums(payload); err != nil {
		return err
	}
	if err := checkRequiredAgencyFields(manifest, payload); err != nil {
		return err
	}
	if payload.ItemType == models.NamedInvite {
		if err := checkNamedInviteRules(payload); err != nil {
			return err
		}
	}
	if payload.PamOwnership == models.ClientOwned {
		if err := checkClientOwnedRule(payload); err != nil {
			return err
		}
	}
	if payload.ItemType.IsPamManaged() {
		if err := checkIdentityBindingRules(payload); err != nil {
			return err
		}
		if payload.PamOwnership == models.AgencyOwned {
			if err := checkPamConfirmation(manifest, payload); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkPamEnums - reject unknown enum values before the rules interpret them
func checkPamEnums(payload *models.APIAccessItem) error {
	if payload.PamOwnership != "" && !payload.PamOwnership.IsValid() {
		return fmt.Errorf("pamOwnership must be AGENCY_OWNED or CLIENT_OWNED, got %s", payload.PamOwnership)
	}
	if payload.IdentityPurpose != "" && !payload.IdentityPurpose.IsValid() {
		return fmt.Errorf("identityPurpose must be HUMAN_INTERACTIVE or INTEGRATION_NON_INTERACTIVE, got %s", payload.IdentityPurpose)
	}
	if payload.PamIdentityStrategy != "" && !payload.PamIdentityStrategy.IsValid() {
		return fmt.Errorf("pamIdentityStrategy must be STATIC_AGENCY_IDENTITY or CLIENT_DEDICATED_IDENTITY, got %s", payload.PamIdentityStrategy)
	}
	if payload.PamIdentityType != "" && !payload.PamIdentityType.IsValid() {
		return fmt.Errorf("pamIdentityType must be MAILBOX or GROUP, got %s", payload.PamIdentityType)
	}
	if payload.HumanIdentityStrategy != "" && !payload.HumanIdentityStrategy.IsValid() {
		return fmt.Errorf("humanIdentityStrategy must be AGENCY_GROUP, INDIVIDUAL_USERS or CLIENT_DEDICATED, got %s", payload.HumanIdentityStrategy)
	}
	return nil
}

// checkRequiredAgencyFields - platform-declared required fields, e.g. the
// manager account behind a google-ads delegation
func checkRequiredAgencyFields(manifest *models.PluginManifest, payload *models.APIAccessItem) error {
	spec := manifest.ItemTypeSpec(payload.ItemType)
	if spec == nil {
		return nil
	}
	for _, field := range spec.AgencyConfigFields {
		if !field.Required {
			continue
		}
		if !agencyFieldPresent(payload, field.Name) {
			return fmt.Errorf("agencyData.%s is required for %s items on %s", field.Name, payload.ItemType, manifest.PlatformKey)
		}
	}
	return nil
}

func agencyFieldPresent(payload *models.APIAccessItem, name string) bool {
	value, ok := payload.AgencyData[name]
	if !ok || value == nil {
		return false
	}
	if s, isString := value.(string); isString {
		return s != ""
	}
	return true
}

// checkNamedInviteRules - invite routing: a group strategy needs the group
// address, and dedicated identities are a shared-account concept
func checkNamedInviteRules(payload *models.APIAccessItem) error {
	switch payload.HumanIdentityStrategy {
	case models.AgencyGroup:
		if payload.AgencyGroupEmail == "" {
			return fmt.Errorf("agencyGroupEmail is required when humanIdentityStrategy is AGENCY_GROUP")
		}
	case models.ClientDedicated:
		return fmt.Errorf("humanIdentityStrategy CLIENT_DEDICATED is not supported for named invites")
	}
	return nil
}

// checkClientOwnedRule - a client-owned credential is administered by the
// client, so no agency identity machinery may be configured on it
func checkClientOwnedRule(payload *models.APIAccessItem) error {
	if payload.HasIdentityProvisioningFields() {
		return fmt.Errorf("client_owned items are administered by the client: identity fields (identityPurpose, pamIdentityStrategy, pamNamingTemplate, pamIdentityType, pamCheckoutDurationMinutes, agencyIdentityId, integrationIdentityId) must not be set")
	}
	return nil
}

// checkIdentityBindingRules - identity binding for shared-account items,
// keyed on identityPurpose and pamIdentityStrategy so a payload carrying
// them is held to the rules whether or not pamOwnership is set
func checkIdentityBindingRules(payload *models.APIAccessItem) error {
	if payload.IdentityPurpose == models.IntegrationNonInteractive {
		if payload.IntegrationIdentityID == "" {
			return fmt.Errorf("identityPurpose INTEGRATION_NON_INTERACTIVE requires integrationIdentityId referencing a stored integration identity")
		}
		identity, err := GetIdentity(payload.IntegrationIdentityID)
		if err != nil {
			return fmt.Errorf("integration identity %s not found", payload.IntegrationIdentityID)
		}
		if !identity.IsActive {
			return fmt.Errorf("integration identity %s is inactive", payload.IntegrationIdentityID)
		}
	}

	switch payload.PamIdentityStrategy {
	case models.StaticAgencyIdentity:
		if payload.AgencyIdentityID == "" {
			return fmt.Errorf("pamIdentityStrategy STATIC_AGENCY_IDENTITY requires agencyIdentityId referencing a stored agency identity")
		}
		identity, err := GetIdentity(payload.AgencyIdentityID)
		if err != nil {
			return fmt.Errorf("agency identity %s not found", payload.AgencyIdentityID)
		}
		if !identity.Type.IsValid() {
			return fmt.Errorf("agency identity %s must be a SHARED_CREDENTIAL or SERVICE_ACCOUNT", payload.AgencyIdentityID)
		}
		if payload.PamNamingTemplate != "" {
			return fmt.Errorf("pamNamingTemplate cannot be combined with STATIC_AGENCY_IDENTITY; the identity already exists")
		}
	case models.ClientDedicatedIdentity:
		if payload.PamIdentityType == "" {
			return fmt.Errorf("pamIdentityStrategy CLIENT_DEDICATED_IDENTITY requires pamIdentityType (MAILBOX or GROUP)")
		}
		if payload.PamNamingTemplate == "" {
			return fmt.Errorf("pamIdentityStrategy CLIENT_DEDICATED_IDENTITY requires pamNamingTemplate to derive the identity name")
		}
		if payload.PamIdentityType == models.IdentityGroup && payload.PamCheckoutDurationMinutes != nil {
			return fmt.Errorf("pamCheckoutDurationMinutes applies to MAILBOX identities only, not GROUP")
		}
	}
	return nil
}

// checkPamConfirmation - platforms that advise against shared credentials
// require an explicit acknowledgement before such an item can be configured
func checkPamConfirmation(manifest *models.PluginManifest, payload *models.APIAccessItem) error {
	if manifest.SecurityCapabilities.PamRecommendation != models.PamNotRecommended {
		return nil
	}
	if !payload.PamConfirmation {
		return fmt.Errorf("shared credentials are not recommended on %s; set pamConfirmation to acknowledge the risk", manifest.DisplayName)
	}
	return nil
}
