package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
)

// ErrAgencyPlatformExists - the agency already switched this platform on
var ErrAgencyPlatformExists = errors.New("agency platform already exists for this platform")

// CreateAgencyPlatform - switches a catalog platform on for the agency
func CreateAgencyPlatform(payload *models.APIAgencyPlatform) (*models.AgencyPlatform, error) {
	platform, err := GetPlatform(payload.PlatformKey)
	if err != nil {
		return nil, fmt.Errorf("unknown platform %s", payload.PlatformKey)
	}
	if _, err := GetAgencyPlatformByKey(payload.PlatformKey); err == nil {
		return nil, ErrAgencyPlatformExists
	}

	agencyPlatform := models.AgencyPlatform{
		ID:          uuid.NewString(),
		PlatformKey: platform.PlatformKey,
		DisplayName: platform.DisplayName,
		IsEnabled:   true,
		Items:       []models.AccessItem{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if payload.DisplayName != "" {
		agencyPlatform.DisplayName = payload.DisplayName
	}
	if payload.IsEnabled != nil {
		agencyPlatform.IsEnabled = *payload.IsEnabled
	}
	if err := upsertAgencyPlatform(&agencyPlatform); err != nil {
		return nil, err
	}
	logger.Log(1, "enabled agency platform", agencyPlatform.PlatformKey)
	return &agencyPlatform, nil
}

// GetAgencyPlatform - fetches one agency platform by id
func GetAgencyPlatform(id string) (models.AgencyPlatform, error) {
	var agencyPlatform models.AgencyPlatform
	record, err := database.FetchRecord(database.AGENCY_PLATFORMS_TABLE_NAME, id)
	if err != nil {
		return agencyPlatform, err
	}
	if err = json.Unmarshal([]byte(record), &agencyPlatform); err != nil {
		return models.AgencyPlatform{}, err
	}
	return agencyPlatform, nil
}

// GetAgencyPlatformByKey - fetches by platform key instead of id
func GetAgencyPlatformByKey(platformKey string) (models.AgencyPlatform, error) {
	platforms, err := GetAgencyPlatforms()
	if err != nil {
		return models.AgencyPlatform{}, err
	}
	for i := range platforms {
		if platforms[i].PlatformKey == platformKey {
			return platforms[i], nil
		}
	}
	return models.AgencyPlatform{}, fmt.Errorf("no agency platform for %s", platformKey)
}

// GetAgencyPlatforms - all agency platforms, oldest first
func GetAgencyPlatforms() ([]models.AgencyPlatform, error) {
	platforms := []models.AgencyPlatform{}
	records, err := database.FetchRecords(database.AGENCY_PLATFORMS_TABLE_NAME)
	if err != nil && !database.IsEmptyRecord(err) {
		return platforms, err
	}
	for _, record := range records {
		var agencyPlatform models.AgencyPlatform
		if err := json.Unmarshal([]byte(record), &agencyPlatform); err != nil {
			continue
		}
		platforms = append(platforms, agencyPlatform)
	}
	sort.Slice(platforms, func(i, j int) bool {
		return platforms[i].CreatedAt.Before(platforms[j].CreatedAt)
	})
	return platforms, nil
}

// DeleteAgencyPlatform - removes the agency platform and its item index rows
func DeleteAgencyPlatform(id string) error {
	agencyPlatform, err := GetAgencyPlatform(id)
	if err != nil {
		return err
	}
	for i := range agencyPlatform.Items {
		if err := database.DeleteRecord(database.ACCESS_ITEMS_TABLE_NAME, agencyPlatform.Items[i].ID); err != nil {
			logger.Log(1, "failed to drop item index", agencyPlatform.Items[i].ID, err.Error())
		}
	}
	return database.DeleteRecord(database.AGENCY_PLATFORMS_TABLE_NAME, id)
}

// ToggleAgencyPlatform - flips the enabled flag
func ToggleAgencyPlatform(id string) (*models.AgencyPlatform, error) {
	agencyPlatform, err := GetAgencyPlatform(id)
	if err != nil {
		return nil, err
	}
	agencyPlatform.IsEnabled = !agencyPlatform.IsEnabled
	agencyPlatform.UpdatedAt = time.Now().UTC()
	if err := upsertAgencyPlatform(&agencyPlatform); err != nil {
		return nil, err
	}
	return &agencyPlatform, nil
}

// ManifestForPlatform - the plugin manifest, or a synthesized one for custom
// catalog platforms that have no connector behind them
func ManifestForPlatform(platformKey string) (*models.PluginManifest, error) {
	if manifest, err := GetPlugin(platformKey); err == nil {
		return manifest, nil
	}
	platform, err := GetPlatform(platformKey)
	if err != nil {
		return nil, fmt.Errorf("unknown platform %s", platformKey)
	}
	return genericManifest(&platform), nil
}

// genericManifest - custom platforms accept every item type, offer no role
// templates and automate nothing
func genericManifest(platform *models.Platform) *models.PluginManifest {
	specs := make([]models.AccessItemTypeSpec, 0, len(models.AccessItemTypes))
	for _, itemType := range models.AccessItemTypes {
		spec := models.AccessItemTypeSpec{
			Type:          itemType,
			Label:         models.AccessPattern(itemType).Label(),
			RoleTemplates: []models.RoleTemplate{},
		}
		if itemType.IsPamManaged() {
			spec.AgencyConfigFields = sharedAccountAgencyFields()
		}
		specs = append(specs, spec)
	}
	manifest := &models.PluginManifest{
		PlatformKey:              platform.PlatformKey,
		DisplayName:              platform.DisplayName,
		Category:                 platform.Category,
		Domain:                   platform.Domain,
		Tier:                     platform.Tier,
		ClientFacing:             platform.ClientFacing,
		SupportedAccessItemTypes: specs,
		SecurityCapabilities: models.SecurityCapabilities{
			SupportsCredentialLogin: true,
			PamRecommendation:       models.PamRecommended,
		},
		IntegrationStatus: models.IntegrationPending,
		InstructionSteps:  map[models.AccessItemType][]models.InstructionStep{},
	}
	manifest.AccessTypeCapabilities = make(map[models.AccessItemType]models.ResolvedCapabilities)
	for _, spec := range specs {
		manifest.AccessTypeCapabilities[spec.Type] = ResolveCapabilities(manifest, spec.Type, nil)
	}
	return manifest
}

// CreateAccessItem - validates and appends an item to an agency platform
func CreateAccessItem(agencyPlatformID string, payload *models.APIAccessItem) (*models.AccessItem, error) {
	agencyPlatform, err := GetAgencyPlatform(agencyPlatformID)
	if err != nil {
		return nil, err
	}
	manifest, err := ManifestForPlatform(agencyPlatform.PlatformKey)
	if err != nil {
		return nil, err
	}
	if err := ValidateAccessItem(manifest, payload); err != nil {
		return nil, err
	}

	item := buildAccessItem(&agencyPlatform, manifest, payload)
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	agencyPlatform.Items = append(agencyPlatform.Items, *item)
	agencyPlatform.UpdatedAt = time.Now().UTC()

	if err := upsertAgencyPlatform(&agencyPlatform); err != nil {
		return nil, err
	}
	if err := indexAccessItem(item); err != nil {
		return nil, err
	}
	logger.Log(1, "configured access item", item.Label, "on", agencyPlatform.PlatformKey)
	return item, nil
}

// UpdateAccessItem - re-validates and replaces an item in place
func UpdateAccessItem(agencyPlatformID, itemID string, payload *models.APIAccessItem) (*models.AccessItem, error) {
	agencyPlatform, err := GetAgencyPlatform(agencyPlatformID)
	if err != nil {
		return nil, err
	}
	index := -1
	for i := range agencyPlatform.Items {
		if agencyPlatform.Items[i].ID == itemID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("no item %s on agency platform %s", itemID, agencyPlatformID)
	}
	manifest, err := ManifestForPlatform(agencyPlatform.PlatformKey)
	if err != nil {
		return nil, err
	}
	if err := ValidateAccessItem(manifest, payload); err != nil {
		return nil, err
	}

	item := buildAccessItem(&agencyPlatform, manifest, payload)
	item.ID = itemID
	item.CreatedAt = agencyPlatform.Items[index].CreatedAt
	item.UpdatedAt = time.Now().UTC()
	agencyPlatform.Items[index] = *item
	agencyPlatform.UpdatedAt = time.Now().UTC()

	if err := upsertAgencyPlatform(&agencyPlatform); err != nil {
		return nil, err
	}
	if err := indexAccessItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteAccessItem - removes an item from its agency platform
func DeleteAccessItem(agencyPlatformID, itemID string) error {
	agencyPlatform, err := GetAgencyPlatform(agencyPlatformID)
	if err != nil {
		return err
	}
	kept := agencyPlatform.Items[:0]
	found := false
	for i := range agencyPlatform.Items {
		if agencyPlatform.Items[i].ID == itemID {
			found = true
			continue
		}
		kept = append(kept, agencyPlatform.Items[i])
	}
	if !found {
		return fmt.Errorf("no item %s on agency platform %s", itemID, agencyPlatformID)
	}
	agencyPlatform.Items = kept
	agencyPlatform.UpdatedAt = time.Now().UTC()
	if err := upsertAgencyPlatform(&agencyPlatform); err != nil {
		return err
	}
	return database.DeleteRecord(database.ACCESS_ITEMS_TABLE_NAME, itemID)
}

// GetAccessItem - item lookup by id via the item index table
func GetAccessItem(itemID string) (models.AccessItem, error) {
	var item models.AccessItem
	record, err := database.FetchRecord(database.ACCESS_ITEMS_TABLE_NAME, itemID)
	if err != nil {
		return item, err
	}
	if err = json.Unmarshal([]byte(record), &item); err != nil {
		return models.AccessItem{}, err
	}
	return item, nil
}

// buildAccessItem - assembles the stored item from a validated payload
func buildAccessItem(agencyPlatform *models.AgencyPlatform, manifest *models.PluginManifest, payload *models.APIAccessItem) *models.AccessItem {
	pattern := payload.Pattern()
	label := payload.Label
	if label == "" {
		if spec := manifest.ItemTypeSpec(payload.ItemType); spec != nil {
			label = spec.Label
		} else {
			label = pattern.Label()
		}
	}

	item := models.AccessItem{
		AgencyPlatformID:           agencyPlatform.ID,
		PlatformKey:                agencyPlatform.PlatformKey,
		ItemType:                   payload.ItemType,
		Label:                      label,
		Role:                       payload.Role,
		AccessPattern:              pattern,
		PatternLabel:               pattern.Label(),
		SortOrder:                  payload.SortOrder,
		AgencyData:                 payload.AgencyData,
		PamOwnership:               payload.PamOwnership,
		IdentityPurpose:            payload.IdentityPurpose,
		PamIdentityStrategy:        payload.PamIdentityStrategy,
		AgencyIdentityID:           payload.AgencyIdentityID,
		IntegrationIdentityID:      payload.IntegrationIdentityID,
		PamIdentityType:            payload.PamIdentityType,
		PamNamingTemplate:          payload.PamNamingTemplate,
		PamCheckoutDurationMinutes: payload.PamCheckoutDurationMinutes,
		PamRotationPolicy:          payload.PamRotationPolicy,
		PamApprovalRequired:        payload.PamApprovalRequired,
		HumanIdentityStrategy:      payload.HumanIdentityStrategy,
		AgencyGroupEmail:           payload.AgencyGroupEmail,
		ClientInstructions:         payload.ClientInstructions,
	}
	if payload.PamOwnership != "" {
		item.PamConfig = derivePamConfig(payload)
	}
	return &item
}

// derivePamConfig - read-only summary view of the PAM posture
func derivePamConfig(payload *models.APIAccessItem) *models.PamConfig {
	config := models.PamConfig{
		Ownership:               payload.PamOwnership,
		IdentityStrategy:        payload.PamIdentityStrategy,
		NamingTemplate:          payload.PamNamingTemplate,
		CheckoutDurationMinutes: payload.PamCheckoutDurationMinutes,
		RotationPolicy:          payload.PamRotationPolicy,
		ApprovalRequired:        payload.PamApprovalRequired,
	}
	if payload.AgencyIdentityID != "" {
		if identity, err := GetIdentity(payload.AgencyIdentityID); err == nil {
			config.AgencyIdentityEmail = identity.Identifier
		}
	}
	return &config
}

func upsertAgencyPlatform(agencyPlatform *models.AgencyPlatform) error {
	data, err := json.Marshal(agencyPlatform)
	if err != nil {
		return err
	}
	return database.Insert(agencyPlatform.ID, string(data), database.AGENCY_PLATFORMS_TABLE_NAME)
}

func indexAccessItem(item *models.AccessItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return database.Insert(item.ID, string(data), database.ACCESS_ITEMS_TABLE_NAME)
}
