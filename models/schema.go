package models

// SchemaKind - which of the three generated documents is wanted
type SchemaKind string

const (
	SchemaAgencyConfig   SchemaKind = "agency-config"
	SchemaClientTarget   SchemaKind = "client-target"
	SchemaRequestOptions SchemaKind = "request-options"
)

// IsValid - schema kind enum check
func (k SchemaKind) IsValid() bool {
	return k == SchemaAgencyConfig || k == SchemaClientTarget || k == SchemaRequestOptions
}

// SchemaProperty - one property of a generated json schema
type SchemaProperty struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// SchemaDocument - a json-schema document generated from a plugin manifest
type SchemaDocument struct {
	Schema               string                    `json:"$schema"`
	Title                string                    `json:"title"`
	Type                 string                    `json:"type"`
	Properties           map[string]SchemaProperty `json:"properties"`
	Required             []string                  `json:"required"`
	AdditionalProperties bool                      `json:"additionalProperties"`
}

// PropertyNames - the declared property set, for overlap checks
func (d *SchemaDocument) PropertyNames() []string {
	names := make([]string, 0, len(d.Properties))
	for name := range d.Properties {
		names = append(names, name)
	}
	return names
}

// ValidationResult - POST validate/{kind} response body
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// SchemaValidateParams - POST validate/{kind} payload; the raw map is checked
// against the generated document for the named item type
type SchemaValidateParams struct {
	AccessItemType AccessItemType `json:"accessItemType"`
	Payload        map[string]any `json:"payload"`
}

// InstructionParams - POST /plugins/{platformKey}/instructions payload;
// values are substituted into the manifest's step templates
type InstructionParams struct {
	AccessItemType AccessItemType `json:"accessItemType"`
	Identity       string         `json:"identity"`
	Role           string         `json:"role"`
	Target         string         `json:"target"`
}
