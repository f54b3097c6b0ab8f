package logic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
)

// built-in plugin registry. Manifests are code, not data: the resolver, the
// rule engine and the schema generators all read from here, and the catalog
// table is seeded from here on startup.
var (
	pluginRegistry = make(map[string]*models.PluginManifest)
	pluginOrder    = []string{}
)

// RegisterPlugin - adds a manifest to the registry, computing its
// context-free capability view per supported item type. A manifest whose
// agency and client schemas overlap is a programming error and aborts startup.
func RegisterPlugin(manifest *models.PluginManifest) {
	if _, ok := pluginRegistry[manifest.PlatformKey]; ok {
		logger.FatalLog("duplicate plugin registration:", manifest.PlatformKey)
	}
	if err := checkSchemaDisjointness(manifest); err != nil {
		logger.FatalLog("bad plugin manifest:", err.Error())
	}
	manifest.AccessTypeCapabilities = make(map[models.AccessItemType]models.ResolvedCapabilities)
	for _, spec := range manifest.SupportedAccessItemTypes {
		manifest.AccessTypeCapabilities[spec.Type] = ResolveCapabilities(manifest, spec.Type, nil)
	}
	pluginRegistry[manifest.PlatformKey] = manifest
	pluginOrder = append(pluginOrder, manifest.PlatformKey)
}

// GetPlugins - all registered manifests in registration order
func GetPlugins() []*models.PluginManifest {
	plugins := make([]*models.PluginManifest, 0, len(pluginOrder))
	for _, key := range pluginOrder {
		plugins = append(plugins, pluginRegistry[key])
	}
	return plugins
}

// GetPlugin - fetches one manifest by platform key
func GetPlugin(platformKey string) (*models.PluginManifest, error) {
	plugin, ok := pluginRegistry[platformKey]
	if !ok {
		return nil, fmt.Errorf("no plugin found for platform %s", platformKey)
	}
	return plugin, nil
}

// GetPluginDetail - manifest plus flattened item type and role listings
func GetPluginDetail(platformKey string) (*models.PluginDetail, error) {
	plugin, err := GetPlugin(platformKey)
	if err != nil {
		return nil, err
	}
	return &models.PluginDetail{
		Manifest:                 plugin,
		SupportedAccessItemTypes: plugin.SupportedAccessItemTypes,
		SupportedRoleTemplates:   GetPluginRoles(plugin),
	}, nil
}

// GetPluginRoles - the union of role templates across item types, deduped by key
func GetPluginRoles(plugin *models.PluginManifest) []models.RoleTemplate {
	seen := make(map[string]bool)
	roles := []models.RoleTemplate{}
	for _, spec := range plugin.SupportedAccessItemTypes {
		for _, role := range spec.RoleTemplates {
			if seen[role.Key] {
				continue
			}
			seen[role.Key] = true
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Key < roles[j].Key })
	return roles
}

// RenderInstructions - substitutes request values into a manifest's
// instruction step templates for the given item type
func RenderInstructions(plugin *models.PluginManifest, params *models.InstructionParams) ([]models.InstructionStep, error) {
	if !params.AccessItemType.IsValid() {
		return nil, errors.New("invalid access item type " + string(params.AccessItemType))
	}
	if !plugin.SupportsItemType(params.AccessItemType) {
		return nil, fmt.Errorf("platform %s does not offer item type %s", plugin.PlatformKey, params.AccessItemType)
	}
	templates := plugin.InstructionSteps[params.AccessItemType]
	replacer := strings.NewReplacer(
		"{{identity}}", params.Identity,
		"{{role}}", params.Role,
		"{{target}}", params.Target,
	)
	steps := make([]models.InstructionStep, 0, len(templates))
	for _, step := range templates {
		steps = append(steps, models.InstructionStep{
			Order: step.Order,
			Title: step.Title,
			Body:  replacer.Replace(step.Body),
		})
	}
	return steps, nil
}

// == built-in manifests ==

func init() {
	RegisterPlugin(ga4Manifest())
	RegisterPlugin(tagManagerManifest())
	RegisterPlugin(searchConsoleManifest())
	RegisterPlugin(googleAdsManifest())
	RegisterPlugin(metaBusinessManifest())
	RegisterPlugin(linkedinAdsManifest())
	RegisterPlugin(snowflakeManifest())
}

// sharedAccountAgencyFields - the PAM configuration surface every
// shared-account item type exposes; conditional requirements between these
// fields are enforced by the rule engine, not the schema
func sharedAccountAgencyFields() []models.FieldSpec {
	return []models.FieldSpec{
		{Name: "pamOwnership", Label: "Credential ownership", Type: "enum", Enum: []string{"AGENCY_OWNED", "CLIENT_OWNED"}, Description: "Who administers the shared credential. Leaving this unset is treated as client-owned."},
		{Name: "identityPurpose", Label: "Identity purpose", Type: "enum", Enum: []string{"HUMAN_INTERACTIVE", "INTEGRATION_NON_INTERACTIVE"}},
		{Name: "pamIdentityStrategy", Label: "Identity strategy", Type: "enum", Enum: []string{"STATIC_AGENCY_IDENTITY", "CLIENT_DEDICATED_IDENTITY"}},
		{Name: "agencyIdentityId", Label: "Agency identity", Type: "string", Description: "Reference to a stored agency identity."},
		{Name: "integrationIdentityId", Label: "Integration identity", Type: "string", Description: "Reference to a stored integration identity."},
		{Name: "pamIdentityType", Label: "Dedicated identity shape", Type: "enum", Enum: []string{"MAILBOX", "GROUP"}},
		{Name: "pamNamingTemplate", Label: "Identity naming template", Type: "string", Description: "Template for generated identities, e.g. client-{{clientSlug}}@agency.example."},
		{Name: "pamCheckoutDurationMinutes", Label: "Checkout duration (minutes)", Type: "number"},
		{Name: "pamRotationPolicy", Label: "Rotation policy", Type: "enum", Enum: []string{"on_checkin", "quarterly", "never"}},
		{Name: "pamApprovalRequired", Label: "Checkout requires approval", Type: "boolean"},
		{Name: "pamConfirmation", Label: "Shared-credential acknowledgement", Type: "boolean", Description: "Required when the platform advises against shared credentials."},
	}
}

// namedInviteAgencyFields - identity routing for invite-based access
func namedInviteAgencyFields() []models.FieldSpec {
	return []models.FieldSpec{
		{Name: "humanIdentityStrategy", Label: "Who gets invited", Type: "enum", Enum: []string{"AGENCY_GROUP", "INDIVIDUAL_USERS"}},
		{Name: "agencyGroupEmail", Label: "Agency group address", Type: "string", Description: "Group alias invited when the strategy is AGENCY_GROUP."},
	}
}

func inviteRequestOptions() []models.FieldSpec {
	return []models.FieldSpec{
		{Name: "inviteMessage", Label: "Message to the client", Type: "string"},
		{Name: "expiresInDays", Label: "Invitation validity (days)", Type: "number"},
	}
}

func pamRequestOptions() []models.FieldSpec {
	return []models.FieldSpec{
		{Name: "checkoutReason", Label: "Reason shown on checkout", Type: "string"},
	}
}

func googleSharedAccountSteps() []models.InstructionStep {
	return []models.InstructionStep{
		{Order: 1, Title: "Create or pick the login", Body: "Use the Google account that should hold access to {{target}}."},
		{Order: 2, Title: "Grant it access", Body: "Add the account with the {{role}} role the same way you would invite a person."},
		{Order: 3, Title: "Hand over the credentials", Body: "Submit the username and password through the secure form; they are only released again through an audited checkout."},
	}
}

func ga4Manifest() *models.PluginManifest {
	inviteRoles := []models.RoleTemplate{
		{Key: "administrator", Label: "Administrator", Description: "Full control of the property including user management."},
		{Key: "editor", Label: "Editor", Description: "Edit settings and data streams, no user management."},
		{Key: "analyst", Label: "Analyst", Description: "Create and share reports and explorations."},
		{Key: "viewer", Label: "Viewer", Description: "Read-only reporting access."},
	}
	targetFields := []models.FieldSpec{
		{Name: "propertyId", Label: "GA4 property ID", Type: "string", Required: true, Description: "Numeric property identifier, e.g. 313420998."},
		{Name: "accountId", Label: "Analytics account ID", Type: "string"},
	}
	inviteSteps := []models.InstructionStep{
		{Order: 1, Title: "Open Analytics admin", Body: "Sign in to Google Analytics with an administrator of property {{target}} and open Admin."},
		{Order: 2, Title: "Open access management", Body: "Under the property column choose Property access management."},
		{Order: 3, Title: "Invite the user", Body: "Select +, choose Add users, and enter {{identity}}."},
		{Order: 4, Title: "Assign the role", Body: "Grant the {{role}} role and confirm."},
	}
	groupSteps := []models.InstructionStep{
		{Order: 1, Title: "Open access management", Body: "In Admin of property {{target}} open Property access management."},
		{Order: 2, Title: "Add the group", Body: "Add {{identity}} as a Google Group with the {{role}} role."},
	}
	return &models.PluginManifest{
		PlatformKey:  "ga4",
		DisplayName:  "Google Analytics 4",
		Category:     "analytics",
		Domain:       "google",
		Tier:         "core",
		ClientFacing: true,
		LogoPath:     "/static/logos/ga4.svg",
		BrandColor:   "#E37400",
		SupportedAccessItemTypes: []models.AccessItemTypeSpec{
			{
				Type: models.NamedInvite, Label: "Named invite", Icon: "user-plus",
				Description:         "Invite a person or agency group to the property.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  namedInviteAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: inviteRequestOptions(),
			},
			{
				Type: models.GroupAccess, Label: "Group access", Icon: "users",
				Description:        "Grant a Google Group instead of individual seats.",
				RoleTemplates:      inviteRoles,
				AgencyConfigFields: namedInviteAgencyFields(),
				ClientTargetFields: targetFields,
			},
			{
				Type: models.SharedAccount, Label: "Shared account", Icon: "key",
				Description:         "A standing login that holds access to the property.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
			{
				Type: models.SharedAccountPAM, Label: "Shared account (PAM)", Icon: "vault",
				Description:         "Shared login managed through checkout leases.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
		},
		SecurityCapabilities: models.SecurityCapabilities{
			SupportsDelegation:      false,
			SupportsGroupAccess:     true,
			SupportsOAuth:           true,
			SupportsCredentialLogin: true,
			PamRecommendation:       models.PamNotRecommended,
			PamRationale:            "Google flags shared sign-ins as suspicious and the audit trail loses the acting person.",
		},
		APIGrantCapable:   true,
		APIVerifyCapable:  true,
		IntegrationStatus: models.IntegrationImplemented,
		InstructionSteps: map[models.AccessItemType][]models.InstructionStep{
			models.NamedInvite:      inviteSteps,
			models.GroupAccess:      groupSteps,
			models.SharedAccount:    googleSharedAccountSteps(),
			models.SharedAccountPAM: googleSharedAccountSteps(),
		},
	}
}

func tagManagerManifest() *models.PluginManifest {
	roles := []models.RoleTemplate{
		{Key: "admin", Label: "Admin", Description: "Container admin, may manage users."},
		{Key: "publish", Label: "Publish", Description: "Edit and publish container versions."},
		{Key: "approve", Label: "Approve", Description: "Edit and approve, no publishing."},
		{Key: "edit", Label: "Edit", Description: "Create workspaces and edit tags."},
		{Key: "read", Label: "Read", Description: "View the container only."},
	}
	targetFields := []models.FieldSpec{
		{Name: "containerId", Label: "Container ID", Type: "string", Required: true, Description: "Public container ID, e.g. GTM-5FJXJ2."},
		{Name: "accountId", Label: "Tag Manager account ID", Type: "string"},
	}
	inviteSteps := []models.InstructionStep{
		{Order: 1, Title: "Open Tag Manager admin", Body: "Sign in to Tag Manager and open the Admin tab of container {{target}}."},
		{Order: 2, Title: "Invite the user", Body: "Under User Management, invite {{identity}}."},
		{Order: 3, Title: "Set permissions", Body: "Give container permission {{role}} and send the invitation."},
	}
	return &models.PluginManifest{
		PlatformKey:  "google-tag-manager",
		DisplayName:  "Google Tag Manager",
		Category:     "tag-management",
		Domain:       "google",
		Tier:         "core",
		ClientFacing: true,
		LogoPath:     "/static/logos/gtm.svg",
		BrandColor:   "#1A73E8",
		SupportedAccessItemTypes: []models.AccessItemTypeSpec{
			{
				Type: models.NamedInvite, Label: "Named invite", Icon: "user-plus",
				Description:         "Invite a person to the container.",
				RoleTemplates:       roles,
				AgencyConfigFields:  namedInviteAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: inviteRequestOptions(),
			},
			{
				Type: models.SharedAccount, Label: "Shared account", Icon: "key",
				Description:         "A standing login with container access.",
				RoleTemplates:       roles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
			{
				Type: models.SharedAccountPAM, Label: "Shared account (PAM)", Icon: "vault",
				Description:         "Shared login managed through checkout leases.",
				RoleTemplates:       roles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
		},
		SecurityCapabilities: models.SecurityCapabilities{
			SupportsDelegation:      false,
			SupportsGroupAccess:     false,
			SupportsOAuth:           true,
			SupportsCredentialLogin: true,
			PamRecommendation:       models.PamNotRecommended,
			PamRationale:            "Shared Google logins trip suspicious sign-in checks; publish history loses the acting person.",
		},
		APIGrantCapable:   true,
		APIVerifyCapable:  true,
		IntegrationStatus: models.IntegrationImplemented,
		InstructionSteps: map[models.AccessItemType][]models.InstructionStep{
			models.NamedInvite:      inviteSteps,
			models.SharedAccount:    googleSharedAccountSteps(),
			models.SharedAccountPAM: googleSharedAccountSteps(),
		},
	}
}

func searchConsoleManifest() *models.PluginManifest {
	roles := []models.RoleTemplate{
		{Key: "owner", Label: "Owner", Description: "Full control including user management."},
		{Key: "full", Label: "Full user", Description: "View all data and take most actions."},
		{Key: "restricted", Label: "Restricted user", Description: "View most data, limited actions."},
	}
	targetFields := []models.FieldSpec{
		{Name: "siteUrl", Label: "Property URL", Type: "string", Required: true, Description: "URL-prefix or sc-domain property, e.g. sc-domain:example.com."},
	}
	inviteSteps := []models.InstructionStep{
		{Order: 1, Title: "Open Search Console settings", Body: "Sign in as an owner of {{target}} and open Settings."},
		{Order: 2, Title: "Add the user", Body: "Under Users and permissions choose Add user and enter {{identity}}."},
		{Order: 3, Title: "Pick the permission", Body: "Select {{role}} and add."},
	}
	return &models.PluginManifest{
		PlatformKey:  "google-search-console",
		DisplayName:  "Google Search Console",
		Category:     "search",
		Domain:       "google",
		Tier:         "core",
		ClientFacing: true,
		LogoPath:     "/static/logos/gsc.svg",
		BrandColor:   "#458CF5",
		SupportedAccessItemTypes: []models.AccessItemTypeSpec{
			{
				Type: models.NamedInvite, Label: "Named invite", Icon: "user-plus",
				Description:         "Add a user to the Search Console property.",
				RoleTemplates:       roles,
				AgencyConfigFields:  namedInviteAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: inviteRequestOptions(),
			},
			{
				Type: models.SharedAccount, Label: "Shared account", Icon: "key",
				Description:         "A standing login verified against the property.",
				RoleTemplates:       roles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
			{
				Type: models.SharedAccountPAM, Label: "Shared account (PAM)", Icon: "vault",
				Description:         "Shared login managed through checkout leases.",
				RoleTemplates:       roles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
		},
		SecurityCapabilities: models.SecurityCapabilities{
			SupportsDelegation:      false,
			SupportsGroupAccess:     false,
			SupportsOAuth:           true,
			SupportsCredentialLogin: true,
			PamRecommendation:       models.PamNotRecommended,
			PamRationale:            "Google flags shared sign-ins as suspicious and ownership verification is tied to the person.",
		},
		// the Search Console API can list and verify permissions but cannot
		// add users, so automated granting is off for every item type
		APIGrantCapable:   false,
		APIVerifyCapable:  true,
		IntegrationStatus: models.IntegrationImplemented,
		InstructionSteps: map[models.AccessItemType][]models.InstructionStep{
			models.NamedInvite:      inviteSteps,
			models.SharedAccount:    googleSharedAccountSteps(),
			models.SharedAccountPAM: googleSharedAccountSteps(),
		},
	}
}

func googleAdsManifest() *models.PluginManifest {
	inviteRoles := []models.RoleTemplate{
		{Key: "admin", Label: "Admin", Description: "Full account control including user management."},
		{Key: "standard", Label: "Standard", Description: "Manage campaigns, no user management."},
		{Key: "read-only", Label: "Read only", Description: "View campaigns and reports."},
		{Key: "email-only", Label: "Email only", Description: "Receive reports by mail only."},
	}
	targetFields := []models.FieldSpec{
		{Name: "customerId", Label: "Customer ID", Type: "string", Required: true, Description: "Ten-digit customer ID, e.g. 123-456-7890."},
	}
	delegationSteps := []models.InstructionStep{
		{Order: 1, Title: "Share your customer ID", Body: "Find the customer ID of {{target}} in the top right of Google Ads and enter it below."},
		{Order: 2, Title: "Accept the link request", Body: "We request a manager link from our manager account; approve it under Access and security."},
	}
	inviteSteps := []models.InstructionStep{
		{Order: 1, Title: "Open access settings", Body: "In Google Ads for {{target}} open Admin, then Access and security."},
		{Order: 2, Title: "Invite the user", Body: "Select +, enter {{identity}} and choose access level {{role}}."},
	}
	return &models.PluginManifest{
		PlatformKey:  "google-ads",
		DisplayName:  "Google Ads",
		Category:     "advertising",
		Domain:       "google",
		Tier:         "growth",
		ClientFacing: true,
		LogoPath:     "/static/logos/google-ads.svg",
		BrandColor:   "#4285F4",
		SupportedAccessItemTypes: []models.AccessItemTypeSpec{
			{
				Type: models.NamedInvite, Label: "Named invite", Icon: "user-plus",
				Description:         "Invite a person to the client account.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  namedInviteAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: inviteRequestOptions(),
			},
			{
				Type: models.PartnerDelegation, Label: "Manager account link", Icon: "link",
				Description:   "Link the client account under the agency manager (MCC) account.",
				RoleTemplates: []models.RoleTemplate{},
				AgencyConfigFields: []models.FieldSpec{
					{Name: "managerAccountId", Label: "Manager account ID", Type: "string", Required: true, Description: "The agency MCC customer ID issuing the link request."},
				},
				ClientTargetFields: targetFields,
			},
			{
				Type: models.SharedAccount, Label: "Shared account", Icon: "key",
				Description:         "A standing login with account access.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
			{
				Type: models.SharedAccountPAM, Label: "Shared account (PAM)", Icon: "vault",
				Description:         "Shared login managed through checkout leases.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
		},
		SecurityCapabilities: models.SecurityCapabilities{
			SupportsDelegation:      true,
			SupportsGroupAccess:     false,
			SupportsOAuth:           true,
			SupportsCredentialLogin: true,
			PamRecommendation:       models.PamNotRecommended,
			PamRationale:            "Manager links make shared logins unnecessary; Google also flags shared sign-ins.",
		},
		APIGrantCapable:   true,
		APIVerifyCapable:  true,
		IntegrationStatus: models.IntegrationPending,
		InstructionSteps: map[models.AccessItemType][]models.InstructionStep{
			models.NamedInvite:       inviteSteps,
			models.PartnerDelegation: delegationSteps,
			models.SharedAccount:     googleSharedAccountSteps(),
			models.SharedAccountPAM:  googleSharedAccountSteps(),
		},
	}
}

func metaBusinessManifest() *models.PluginManifest {
	inviteRoles := []models.RoleTemplate{
		{Key: "admin", Label: "Admin", Description: "Full business asset control."},
		{Key: "advertiser", Label: "Advertiser", Description: "Create and manage ads."},
		{Key: "analyst", Label: "Analyst", Description: "View ads performance."},
	}
	targetFields := []models.FieldSpec{
		{Name: "adAccountId", Label: "Ad account ID", Type: "string", Required: true, Description: "Numeric ad account ID, without the act_ prefix."},
		{Name: "pageId", Label: "Page ID", Type: "string"},
	}
	delegationSteps := []models.InstructionStep{
		{Order: 1, Title: "Open Business settings", Body: "In Meta Business Manager for {{target}} open Business settings, then Partners."},
		{Order: 2, Title: "Add the partner", Body: "Choose Give a partner access to your assets and enter our Business Manager ID."},
		{Order: 3, Title: "Assign assets", Body: "Share the ad account {{target}} with the {{role}} level of control."},
	}
	inviteSteps := []models.InstructionStep{
		{Order: 1, Title: "Invite the person", Body: "Under Business settings, People, invite {{identity}}."},
		{Order: 2, Title: "Assign the asset", Body: "Give {{identity}} the {{role}} role on ad account {{target}}."},
	}
	return &models.PluginManifest{
		PlatformKey:  "meta-business",
		DisplayName:  "Meta Business Manager",
		Category:     "advertising",
		Domain:       "meta",
		Tier:         "growth",
		ClientFacing: true,
		LogoPath:     "/static/logos/meta.svg",
		BrandColor:   "#0668E1",
		SupportedAccessItemTypes: []models.AccessItemTypeSpec{
			{
				Type: models.NamedInvite, Label: "Named invite", Icon: "user-plus",
				Description:         "Invite a person to the business asset.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  namedInviteAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: inviteRequestOptions(),
			},
			{
				Type: models.PartnerDelegation, Label: "Partner access", Icon: "link",
				Description:   "Share assets with the agency Business Manager.",
				RoleTemplates: []models.RoleTemplate{},
				AgencyConfigFields: []models.FieldSpec{
					{Name: "businessManagerId", Label: "Business Manager ID", Type: "string", Required: true, Description: "The agency Business Manager receiving partner access."},
				},
				ClientTargetFields: targetFields,
			},
			{
				Type: models.SharedAccount, Label: "Shared account", Icon: "key",
				Description:         "A standing login with asset access.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
			{
				Type: models.SharedAccountPAM, Label: "Shared account (PAM)", Icon: "vault",
				Description:         "Shared login managed through checkout leases.",
				RoleTemplates:       inviteRoles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
		},
		SecurityCapabilities: models.SecurityCapabilities{
			SupportsDelegation:      true,
			SupportsGroupAccess:     false,
			SupportsOAuth:           true,
			SupportsCredentialLogin: true,
			PamRecommendation:       models.PamBreakGlassOnly,
			PamRationale:            "Meta checkpoints block unrecognized devices; shared logins routinely lock the account.",
		},
		APIGrantCapable:   true,
		APIVerifyCapable:  true,
		IntegrationStatus: models.IntegrationPending,
		InstructionSteps: map[models.AccessItemType][]models.InstructionStep{
			models.NamedInvite:       inviteSteps,
			models.PartnerDelegation: delegationSteps,
			models.SharedAccount:     googleSharedAccountSteps(),
			models.SharedAccountPAM:  googleSharedAccountSteps(),
		},
	}
}

func linkedinAdsManifest() *models.PluginManifest {
	roles := []models.RoleTemplate{
		{Key: "account-manager", Label: "Account manager", Description: "Full ad account management."},
		{Key: "campaign-manager", Label: "Campaign manager", Description: "Manage campaigns and creatives."},
		{Key: "creative-manager", Label: "Creative manager", Description: "Manage creatives only."},
		{Key: "viewer", Label: "Viewer", Description: "View campaigns and reporting."},
	}
	targetFields := []models.FieldSpec{
		{Name: "adAccountId", Label: "Ad account ID", Type: "string", Required: true, Description: "Numeric sponsored account ID."},
	}
	inviteSteps := []models.InstructionStep{
		{Order: 1, Title: "Open account settings", Body: "In Campaign Manager for account {{target}} open Account settings, Manage access."},
		{Order: 2, Title: "Add the user", Body: "Select Add user to account, enter the profile of {{identity}}."},
		{Order: 3, Title: "Pick the role", Body: "Assign the {{role}} role and save."},
	}
	return &models.PluginManifest{
		PlatformKey:  "linkedin-ads",
		DisplayName:  "LinkedIn Ads",
		Category:     "advertising",
		Domain:       "linkedin",
		Tier:         "growth",
		ClientFacing: true,
		LogoPath:     "/static/logos/linkedin.svg",
		BrandColor:   "#0A66C2",
		SupportedAccessItemTypes: []models.AccessItemTypeSpec{
			{
				Type: models.NamedInvite, Label: "Named invite", Icon: "user-plus",
				Description:         "Invite a member profile to the ad account.",
				RoleTemplates:       roles,
				AgencyConfigFields:  namedInviteAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: inviteRequestOptions(),
			},
			{
				Type: models.SharedAccount, Label: "Shared account", Icon: "key",
				Description:         "A standing member login with account access.",
				RoleTemplates:       roles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
			{
				Type: models.SharedAccountPAM, Label: "Shared account (PAM)", Icon: "vault",
				Description:         "Shared login managed through checkout leases.",
				RoleTemplates:       roles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
		},
		SecurityCapabilities: models.SecurityCapabilities{
			SupportsDelegation:      false,
			SupportsGroupAccess:     false,
			SupportsOAuth:           true,
			SupportsCredentialLogin: true,
			PamRecommendation:       models.PamNotRecommended,
			PamRationale:            "LinkedIn seats are personal profiles; sharing one violates platform terms.",
		},
		APIGrantCapable:   true,
		APIVerifyCapable:  true,
		IntegrationStatus: models.IntegrationPending,
		InstructionSteps: map[models.AccessItemType][]models.InstructionStep{
			models.NamedInvite:      inviteSteps,
			models.SharedAccount:    googleSharedAccountSteps(),
			models.SharedAccountPAM: googleSharedAccountSteps(),
		},
	}
}

func snowflakeManifest() *models.PluginManifest {
	roles := []models.RoleTemplate{
		{Key: "sysadmin", Label: "Sysadmin", Description: "Manage warehouses and databases."},
		{Key: "analyst", Label: "Analyst", Description: "Query granted schemas."},
		{Key: "reader", Label: "Reader", Description: "Read-only on granted shares."},
	}
	targetFields := []models.FieldSpec{
		{Name: "accountLocator", Label: "Account locator", Type: "string", Required: true, Description: "Snowflake account locator, e.g. xy12345.eu-central-1."},
		{Name: "warehouse", Label: "Default warehouse", Type: "string"},
	}
	sharedSteps := []models.InstructionStep{
		{Order: 1, Title: "Create the service user", Body: "Have an ACCOUNTADMIN create a dedicated user on {{target}} with the {{role}} role."},
		{Order: 2, Title: "Hand over the credentials", Body: "Submit the username and password through the secure form; rotation happens on check-in."},
	}
	return &models.PluginManifest{
		PlatformKey:  "snowflake",
		DisplayName:  "Snowflake",
		Category:     "data-warehouse",
		Domain:       "snowflake",
		Tier:         "enterprise",
		ClientFacing: false,
		LogoPath:     "/static/logos/snowflake.svg",
		BrandColor:   "#29B5E8",
		// deliberately no NAMED_INVITE: warehouse access is provisioned as
		// users/roles, not personal invitations
		SupportedAccessItemTypes: []models.AccessItemTypeSpec{
			{
				Type: models.SharedAccount, Label: "Shared account", Icon: "key",
				Description:         "A warehouse user shared by the team.",
				RoleTemplates:       roles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
			{
				Type: models.SharedAccountPAM, Label: "Shared account (PAM)", Icon: "vault",
				Description:         "Warehouse user managed through checkout leases.",
				RoleTemplates:       roles,
				AgencyConfigFields:  sharedAccountAgencyFields(),
				ClientTargetFields:  targetFields,
				RequestOptionFields: pamRequestOptions(),
			},
		},
		SecurityCapabilities: models.SecurityCapabilities{
			SupportsDelegation:      false,
			SupportsGroupAccess:     false,
			SupportsOAuth:           false,
			SupportsCredentialLogin: true,
			PamRecommendation:       models.PamRecommended,
			PamRationale:            "Scoped service users are designed for shared use; checkout keeps the audit trail.",
		},
		APIGrantCapable:   true,
		APIVerifyCapable:  true,
		IntegrationStatus: models.IntegrationPending,
		InstructionSteps: map[models.AccessItemType][]models.InstructionStep{
			models.SharedAccount:    sharedSteps,
			models.SharedAccountPAM: sharedSteps,
		},
	}
}
