package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var platformKeyRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CheckPlatformKey - validator for the "platformkey" tag; keys are lowercase
// kebab like "google-search-console"
func CheckPlatformKey(fl validator.FieldLevel) bool {
	return platformKeyRegex.MatchString(fl.Field().String())
}

// CheckRegex - validator for the "regexp" tag
func CheckRegex(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(fl.Param())
	return re.MatchString(fl.Field().String())
}
