package models

// IntegrationStatus - whether a platform's upstream connector is usable yet
type IntegrationStatus string

const (
	IntegrationImplemented IntegrationStatus = "implemented"
	IntegrationPending     IntegrationStatus = "pending"
)

// RoleTemplate - a role a platform can hand out for an item type
type RoleTemplate struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// FieldSpec - one field of an agency-config / client-target / request-options schema
type FieldSpec struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"` // string | number | boolean | enum
	Required    bool     `json:"required"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// AccessItemTypeSpec - descriptor of one item type a platform supports
type AccessItemTypeSpec struct {
	Type                AccessItemType `json:"type"`
	Label               string         `json:"label"`
	Description         string         `json:"description"`
	Icon                string         `json:"icon"`
	RoleTemplates       []RoleTemplate `json:"roleTemplates"`
	AgencyConfigFields  []FieldSpec    `json:"agencyConfigFields,omitempty"`
	ClientTargetFields  []FieldSpec    `json:"clientTargetFields,omitempty"`
	RequestOptionFields []FieldSpec    `json:"requestOptionFields,omitempty"`
}

// SecurityCapabilities - what the platform natively supports, plus the PAM posture
type SecurityCapabilities struct {
	SupportsDelegation     bool              `json:"supportsDelegation"`
	SupportsGroupAccess    bool              `json:"supportsGroupAccess"`
	SupportsOAuth          bool              `json:"supportsOAuth"`
	SupportsCredentialLogin bool             `json:"supportsCredentialLogin"`
	PamRecommendation      PamRecommendation `json:"pamRecommendation"`
	PamRationale           string            `json:"pamRationale,omitempty"`
}

// InstructionStep - one ordered step of the manual grant walkthrough
type InstructionStep struct {
	Order int    `json:"order"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PluginManifest - the code-defined descriptor of a marketing platform plugin.
// The resolver, the rule engine and the schema generators all read from this.
type PluginManifest struct {
	PlatformKey              string                                   `json:"platformKey"`
	DisplayName              string                                   `json:"displayName"`
	Category                 string                                   `json:"category"`
	Domain                   string                                   `json:"domain"`
	Tier                     string                                   `json:"tier"`
	ClientFacing             bool                                     `json:"clientFacing"`
	LogoPath                 string                                   `json:"logoPath"`
	BrandColor               string                                   `json:"brandColor"`
	SupportedAccessItemTypes []AccessItemTypeSpec                     `json:"supportedAccessItemTypes"`
	AccessTypeCapabilities   map[AccessItemType]ResolvedCapabilities  `json:"accessTypeCapabilities"`
	SecurityCapabilities     SecurityCapabilities                     `json:"securityCapabilities"`
	APIGrantCapable          bool                                     `json:"apiGrantCapable"`
	APIVerifyCapable         bool                                     `json:"apiVerifyCapable"`
	IntegrationStatus        IntegrationStatus                        `json:"integrationStatus"`
	InstructionSteps         map[AccessItemType][]InstructionStep     `json:"-"`
}

// SupportsItemType - whitelist check against the manifest
func (m *PluginManifest) SupportsItemType(t AccessItemType) bool {
	for i := range m.SupportedAccessItemTypes {
		if m.SupportedAccessItemTypes[i].Type == t {
			return true
		}
	}
	return false
}

// ItemTypeSpec - fetches the descriptor for one item type, nil when unsupported
func (m *PluginManifest) ItemTypeSpec(t AccessItemType) *AccessItemTypeSpec {
	for i := range m.SupportedAccessItemTypes {
		if m.SupportedAccessItemTypes[i].Type == t {
			return &m.SupportedAccessItemTypes[i]
		}
	}
	return nil
}

// HasRole - checks a role key against the item type's declared templates;
// an item type with no templates accepts any role
func (m *PluginManifest) HasRole(t AccessItemType, role string) bool {
	spec := m.ItemTypeSpec(t)
	if spec == nil || len(spec.RoleTemplates) == 0 {
		return true
	}
	for i := range spec.RoleTemplates {
		if spec.RoleTemplates[i].Key == role {
			return true
		}
	}
	return false
}

// PluginDetail - GET /plugins/{platformKey} response shape
type PluginDetail struct {
	Manifest                 *PluginManifest      `json:"manifest"`
	SupportedAccessItemTypes []AccessItemTypeSpec `json:"supportedAccessItemTypes"`
	SupportedRoleTemplates   []RoleTemplate       `json:"supportedRoleTemplates"`
}
