package models

import "time"

// Platform - a catalog row; built-in rows are seeded from the plugin registry,
// custom rows are created over the API and have no connector behind them
type Platform struct {
	ID           string    `json:"id"`
	PlatformKey  string    `json:"platformKey" validate:"required,platformkey"`
	DisplayName  string    `json:"displayName" validate:"required,min=2,max=64"`
	Category     string    `json:"category"`
	Domain       string    `json:"domain"`
	Tier         string    `json:"tier"`
	ClientFacing bool      `json:"clientFacing"`
	LogoPath     string    `json:"logoPath,omitempty"`
	BrandColor   string    `json:"brandColor,omitempty"`
	BuiltIn      bool      `json:"builtIn"`
	CreatedAt    time.Time `json:"createdAt"`
}

// APIPlatform - POST /platforms payload
type APIPlatform struct {
	PlatformKey  string `json:"platformKey" validate:"required,platformkey"`
	DisplayName  string `json:"displayName" validate:"required,min=2,max=64"`
	Category     string `json:"category"`
	Domain       string `json:"domain"`
	Tier         string `json:"tier"`
	ClientFacing bool   `json:"clientFacing"`
	LogoPath     string `json:"logoPath"`
	BrandColor   string `json:"brandColor"`
}

// PlatformFilter - GET /platforms query filters
type PlatformFilter struct {
	ClientFacing string
	Tier         string
	Domain       string
	Search       string
}
