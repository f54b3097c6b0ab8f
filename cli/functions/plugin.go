package functions

import (
	"net/http"
	"net/url"

	"github.com/grantlink/grantlink/models"
)

// GetPlugins - fetch all registered platform plugins
func GetPlugins() *[]models.PluginManifest {
	return request[[]models.PluginManifest](http.MethodGet, "/api/plugins", nil)
}

// GetPlugin - fetch one plugin with its item types and role templates
func GetPlugin(platformKey string) *models.PluginDetail {
	return request[models.PluginDetail](http.MethodGet, "/api/plugins/"+platformKey, nil)
}

// GetEffectiveCapabilities - resolve capabilities for an item type under an
// optional PAM context
func GetEffectiveCapabilities(platformKey, accessItemType, pamOwnership, identityPurpose string) *models.ResolvedCapabilities {
	qs := url.Values{}
	qs.Set("accessItemType", accessItemType)
	if pamOwnership != "" {
		qs.Set("pamOwnership", pamOwnership)
	}
	if identityPurpose != "" {
		qs.Set("identityPurpose", identityPurpose)
	}
	return request[models.ResolvedCapabilities](http.MethodGet, "/api/plugins/"+platformKey+"/effective-capabilities?"+qs.Encode(), nil)
}

// GetPluginSchema - fetch a generated schema document for an item type
func GetPluginSchema(platformKey, kind, accessItemType string) *models.SchemaDocument {
	return request[models.SchemaDocument](http.MethodGet, "/api/plugins/"+platformKey+"/schema/"+kind+"?accessItemType="+url.QueryEscape(accessItemType), nil)
}

// GetPluginRoles - fetch all role templates a plugin declares
func GetPluginRoles(platformKey string) *[]models.RoleTemplate {
	return request[[]models.RoleTemplate](http.MethodGet, "/api/plugins/"+platformKey+"/roles", nil)
}

// GetPluginAccessTypes - fetch the item types a plugin supports
func GetPluginAccessTypes(platformKey string) *[]models.AccessItemTypeSpec {
	return request[[]models.AccessItemTypeSpec](http.MethodGet, "/api/plugins/"+platformKey+"/access-types", nil)
}
