package logic

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
)

// ErrPlatformExists - platform key already present in the catalog
var ErrPlatformExists = errors.New("platform already exists")

// search results further away than this are dropped entirely
const maxSearchDistance = 5

// SeedPlatforms - makes sure every registered plugin has its catalog row;
// called on startup, safe to run repeatedly
func SeedPlatforms() error {
	for _, plugin := range GetPlugins() {
		if _, err := GetPlatform(plugin.PlatformKey); err == nil {
			continue
		}
		platform := models.Platform{
			ID:           uuid.NewString(),
			PlatformKey:  plugin.PlatformKey,
			DisplayName:  plugin.DisplayName,
			Category:     plugin.Category,
			Domain:       plugin.Domain,
			Tier:         plugin.Tier,
			ClientFacing: plugin.ClientFacing,
			LogoPath:     plugin.LogoPath,
			BrandColor:   plugin.BrandColor,
			BuiltIn:      true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := upsertPlatform(&platform); err != nil {
			return err
		}
		logger.Log(2, "seeded catalog platform", plugin.PlatformKey)
	}
	return nil
}

// GetPlatform - fetches a catalog row by platform key
func GetPlatform(platformKey string) (models.Platform, error) {
	var platform models.Platform
	record, err := database.FetchRecord(database.PLATFORMS_TABLE_NAME, platformKey)
	if err != nil {
		return platform, err
	}
	if err = json.Unmarshal([]byte(record), &platform); err != nil {
		return models.Platform{}, err
	}
	return platform, nil
}

// GetPlatforms - lists the catalog with filters applied; a search term ranks
// rows by edit distance against key and display name
func GetPlatforms(filter *models.PlatformFilter) ([]models.Platform, error) {
	platforms := []models.Platform{}
	records, err := database.FetchRecords(database.PLATFORMS_TABLE_NAME)
	if err != nil && !database.IsEmptyRecord(err) {
		return platforms, err
	}
	for _, record := range records {
		var platform models.Platform
		if err := json.Unmarshal([]byte(record), &platform); err != nil {
			continue
		}
		if filter != nil && !matchesPlatformFilter(&platform, filter) {
			continue
		}
		platforms = append(platforms, platform)
	}

	if filter != nil && filter.Search != "" {
		rankPlatforms(platforms, filter.Search)
		platforms = trimByDistance(platforms, filter.Search)
	} else {
		slices.SortFunc(platforms, func(a, b models.Platform) bool {
			return a.PlatformKey < b.PlatformKey
		})
	}
	return platforms, nil
}

// CreatePlatform - adds a custom catalog row; built-ins win key conflicts
func CreatePlatform(payload *models.APIPlatform) (*models.Platform, error) {
	v := validator.New()
	_ = v.RegisterValidation("platformkey", models.CheckPlatformKey)
	if err := v.Struct(payload); err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			logger.Log(2, e.Error())
		}
		return nil, errors.New("invalid platform payload")
	}
	if _, err := GetPlatform(payload.PlatformKey); err == nil {
		return nil, ErrPlatformExists
	}

	platform := models.Platform{
		ID:           uuid.NewString(),
		PlatformKey:  payload.PlatformKey,
		DisplayName:  payload.DisplayName,
		Category:     payload.Category,
		Domain:       payload.Domain,
		Tier:         payload.Tier,
		ClientFacing: payload.ClientFacing,
		LogoPath:     payload.LogoPath,
		BrandColor:   payload.BrandColor,
		BuiltIn:      false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := upsertPlatform(&platform); err != nil {
		return nil, err
	}
	logger.Log(1, "created custom platform", platform.PlatformKey)
	return &platform, nil
}

func upsertPlatform(platform *models.Platform) error {
	data, err := json.Marshal(platform)
	if err != nil {
		return err
	}
	return database.Insert(platform.PlatformKey, string(data), database.PLATFORMS_TABLE_NAME)
}

func matchesPlatformFilter(platform *models.Platform, filter *models.PlatformFilter) bool {
	if filter.ClientFacing == "true" && !platform.ClientFacing {
		return false
	}
	if filter.ClientFacing == "false" && platform.ClientFacing {
		return false
	}
	if filter.Tier != "" && platform.Tier != filter.Tier {
		return false
	}
	if filter.Domain != "" && platform.Domain != filter.Domain {
		return false
	}
	return true
}

// searchDistance - the better of the edit distances against key and name;
// substring hits count as distance zero so prefix searches behave
func searchDistance(platform *models.Platform, term string) int {
	term = strings.ToLower(term)
	key := strings.ToLower(platform.PlatformKey)
	name := strings.ToLower(platform.DisplayName)
	if strings.Contains(key, term) || strings.Contains(name, term) {
		return 0
	}
	d := levenshtein.ComputeDistance(term, key)
	if nd := levenshtein.ComputeDistance(term, name); nd < d {
		d = nd
	}
	return d
}

func rankPlatforms(platforms []models.Platform, term string) {
	sort.SliceStable(platforms, func(i, j int) bool {
		di := searchDistance(&platforms[i], term)
		dj := searchDistance(&platforms[j], term)
		if di != dj {
			return di < dj
		}
		return platforms[i].PlatformKey < platforms[j].PlatformKey
	})
}

func trimByDistance(platforms []models.Platform, term string) []models.Platform {
	kept := platforms[:0]
	for i := range platforms {
		if searchDistance(&platforms[i], term) <= maxSearchDistance {
			kept = append(kept, platforms[i])
		}
	}
	return kept
}
