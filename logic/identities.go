package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
)

// CreateIdentity - stores a reusable identity for the given endpoint family.
// When an initial secret rides along it is parked in the secret store and the
// identity keeps only the reference.
func CreateIdentity(usage models.IdentityUsage, payload *models.APIIdentity) (*models.Identity, error) {
	if err := validateIdentityPayload(payload); err != nil {
		return nil, err
	}
	if payload.PlatformKey != "" {
		if _, err := GetPlatform(payload.PlatformKey); err != nil {
			return nil, fmt.Errorf("unknown platform %s", payload.PlatformKey)
		}
	}

	identity := models.Identity{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Type:        payload.Type,
		Identifier:  payload.Identifier,
		Usage:       usage,
		PlatformKey: payload.PlatformKey,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if payload.IsActive != nil {
		identity.IsActive = *payload.IsActive
	}
	if payload.InitialSecret != "" {
		secret := models.PamSecret{
			Ref:       uuid.NewString(),
			Username:  payload.Identifier,
			Password:  payload.InitialSecret,
			CreatedAt: time.Now().UTC(),
		}
		if err := StorePamSecret(&secret); err != nil {
			return nil, err
		}
		identity.SecretRef = secret.Ref
	}

	data, err := json.Marshal(&identity)
	if err != nil {
		return nil, err
	}
	if err = database.Insert(identity.ID, string(data), database.IDENTITIES_TABLE_NAME); err != nil {
		return nil, err
	}
	logger.Log(1, "created", string(usage), "identity", identity.Name)
	return &identity, nil
}

// GetIdentity - fetches one identity by id
func GetIdentity(id string) (models.Identity, error) {
	var identity models.Identity
	record, err := database.FetchRecord(database.IDENTITIES_TABLE_NAME, id)
	if err != nil {
		return identity, err
	}
	if err = json.Unmarshal([]byte(record), &identity); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

// GetIdentities - lists identities matching the filter, oldest first
func GetIdentities(filter *models.IdentityFilter) ([]models.Identity, error) {
	identities := []models.Identity{}
	records, err := database.FetchRecords(database.IDENTITIES_TABLE_NAME)
	if err != nil && !database.IsEmptyRecord(err) {
		return identities, err
	}
	for _, record := range records {
		var identity models.Identity
		if err := json.Unmarshal([]byte(record), &identity); err != nil {
			continue
		}
		if filter != nil && !filter.Matches(&identity) {
			continue
		}
		identities = append(identities, identity)
	}
	sort.Slice(identities, func(i, j int) bool {
		return identities[i].CreatedAt.Before(identities[j].CreatedAt)
	})
	return identities, nil
}

// validateIdentityPayload - struct tags plus the type enum
func validateIdentityPayload(payload *models.APIIdentity) error {
	v := validator.New()
	if err := v.Struct(payload); err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			logger.Log(2, e.Error())
		}
		return errors.New("invalid identity payload")
	}
	if !payload.Type.IsValid() {
		return fmt.Errorf("identity type must be SHARED_CREDENTIAL or SERVICE_ACCOUNT, got %s", payload.Type)
	}
	return nil
}
