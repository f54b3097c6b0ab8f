package logic

import (
	"fmt"
	"sort"

	"github.com/grantlink/grantlink/models"
)

// BuildSchema - generates the json-schema document for one
// (platform, item type, kind) combination from the manifest's field specs
func BuildSchema(manifest *models.PluginManifest, itemType models.AccessItemType, kind models.SchemaKind) (*models.SchemaDocument, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown schema kind %s", kind)
	}
	spec := manifest.ItemTypeSpec(itemType)
	if spec == nil {
		return nil, fmt.Errorf("platform %s does not offer item type %s", manifest.PlatformKey, itemType)
	}

	var fields []models.FieldSpec
	switch kind {
	case models.SchemaAgencyConfig:
		fields = spec.AgencyConfigFields
	case models.SchemaClientTarget:
		fields = spec.ClientTargetFields
	case models.SchemaRequestOptions:
		fields = spec.RequestOptionFields
	}

	doc := models.SchemaDocument{
		Schema:     "http://json-schema.org/draft-07/schema#",
		Title:      fmt.Sprintf("%s %s %s", manifest.DisplayName, itemType, kind),
		Type:       "object",
		Properties: make(map[string]models.SchemaProperty),
		Required:   []string{},
		// extra keys are tolerated so platform-specific blobs keep working
		AdditionalProperties: true,
	}
	for _, field := range fields {
		doc.Properties[field.Name] = models.SchemaProperty{
			Type:        schemaType(field.Type),
			Description: field.Description,
			Enum:        field.Enum,
		}
		if field.Required {
			doc.Required = append(doc.Required, field.Name)
		}
	}
	sort.Strings(doc.Required)
	return &doc, nil
}

func schemaType(fieldType string) string {
	switch fieldType {
	case "number":
		return "number"
	case "boolean":
		return "boolean"
	default:
		return "string"
	}
}

// ValidateAgainstSchema - checks a payload against a generated document;
// resulting errors name the offending property
func ValidateAgainstSchema(doc *models.SchemaDocument, payload map[string]any) models.ValidationResult {
	result := models.ValidationResult{Valid: true}

	for _, name := range doc.Required {
		value, ok := payload[name]
		if !ok || value == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s is required", name))
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s is required", name))
		}
	}

	for name, value := range payload {
		prop, declared := doc.Properties[name]
		if !declared || value == nil {
			continue
		}
		if !typeMatches(prop.Type, value) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s must be of type %s", name, prop.Type))
			continue
		}
		if len(prop.Enum) > 0 {
			if s, isString := value.(string); isString && !StringSliceContains(prop.Enum, s) {
				result.Errors = append(result.Errors, fmt.Sprintf("%s must be one of %v", name, prop.Enum))
			}
		}
	}

	sort.Strings(result.Errors)
	result.Valid = len(result.Errors) == 0
	return result
}

func typeMatches(schemaType string, value any) bool {
	switch schemaType {
	case "number":
		switch value.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	default:
		_, ok := value.(string)
		return ok
	}
}

// checkSchemaDisjointness - agency-config and client-target documents must
// never share a property name, otherwise a portal field could silently
// overwrite agency configuration. Enforced at registration.
func checkSchemaDisjointness(manifest *models.PluginManifest) error {
	for _, spec := range manifest.SupportedAccessItemTypes {
		agency := make(map[string]bool, len(spec.AgencyConfigFields))
		for _, field := range spec.AgencyConfigFields {
			agency[field.Name] = true
		}
		for _, field := range spec.ClientTargetFields {
			if agency[field.Name] {
				return fmt.Errorf("platform %s item type %s declares %s as both an agency and a client field",
					manifest.PlatformKey, spec.Type, field.Name)
			}
		}
	}
	return nil
}
