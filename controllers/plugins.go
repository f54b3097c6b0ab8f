package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
)

func pluginHandlers(r *mux.Router) {
	r.HandleFunc("/api/plugins", logic.SecurityCheck(false, http.HandlerFunc(getPlugins))).Methods(http.MethodGet)
	r.HandleFunc("/api/plugins/{platformkey}", logic.SecurityCheck(false, http.HandlerFunc(getPlugin))).Methods(http.MethodGet)
	r.HandleFunc("/api/plugins/{platformkey}/capabilities", logic.SecurityCheck(false, http.HandlerFunc(getPluginCapabilities))).Methods(http.MethodGet)
	r.HandleFunc("/api/plugins/{platformkey}/capabilities/{accessitemtype}", logic.SecurityCheck(false, http.HandlerFunc(getPluginCapabilityRow))).Methods(http.MethodGet)
	r.HandleFunc("/api/plugins/{platformkey}/effective-capabilities", logic.SecurityCheck(false, http.HandlerFunc(getEffectiveCapabilities))).Methods(http.MethodGet)
	r.HandleFunc("/api/plugins/{platformkey}/schema/{schemakind}", logic.SecurityCheck(false, http.HandlerFunc(getPluginSchema))).Methods(http.MethodGet)
	r.HandleFunc("/api/plugins/{platformkey}/validate/{schemakind}", logic.SecurityCheck(false, http.HandlerFunc(validateAgainstPluginSchema))).Methods(http.MethodPost)
	r.HandleFunc("/api/plugins/{platformkey}/instructions", logic.SecurityCheck(false, http.HandlerFunc(getPluginInstructions))).Methods(http.MethodPost)
	r.HandleFunc("/api/plugins/{platformkey}/roles", logic.SecurityCheck(false, http.HandlerFunc(getPluginRoles))).Methods(http.MethodGet)
	r.HandleFunc("/api/plugins/{platformkey}/access-types", logic.SecurityCheck(false, http.HandlerFunc(getPluginAccessTypes))).Methods(http.MethodGet)
}

// swagger:route GET /api/plugins plugins getPlugins
//
// Lists the manifests of every registered platform plugin.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: pluginSliceResponse
func getPlugins(w http.ResponseWriter, r *http.Request) {
	plugins := logic.GetPlugins()
	logger.Log(2, r.Header.Get("user"), "fetched plugins")
	logic.ReturnSuccessResponseWithJson(w, r, plugins, "fetched plugins")
}

// swagger:route GET /api/plugins/{platformkey} plugins getPlugin
//
// Fetches one plugin with its item types and role templates.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: pluginDetailResponse
func getPlugin(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	detail, err := logic.GetPluginDetail(platformKey)
	if err != nil {
		logger.Log(0, r.Header.Get("user"), "failed to fetch plugin:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, detail, "fetched plugin "+platformKey)
}

// swagger:route GET /api/plugins/{platformkey}/capabilities plugins getPluginCapabilities
//
// Returns the static capability table of a plugin, keyed by item type.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: capabilityTableResponse
func getPluginCapabilities(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	plugin, err := logic.GetPlugin(platformKey)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, plugin.AccessTypeCapabilities, "fetched capability table for "+platformKey)
}

// swagger:route GET /api/plugins/{platformkey}/capabilities/{accessitemtype} plugins getPluginCapabilityRow
//
// Returns a single row of a plugin's static capability table.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: capabilityRowResponse
func getPluginCapabilityRow(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	platformKey := params["platformkey"]
	itemType := models.AccessItemType(params["accessitemtype"])
	plugin, err := logic.GetPlugin(platformKey)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	row, ok := plugin.AccessTypeCapabilities[itemType]
	if !ok {
		err = fmt.Errorf("platform %s does not offer item type %s", platformKey, itemType)
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, row, "fetched capability row for "+platformKey)
}

// swagger:route GET /api/plugins/{platformkey}/effective-capabilities plugins getEffectiveCapabilities
//
// Resolves capabilities for an item type under the supplied PAM context.
// With no context the resolver answers with the evidence-required row.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: capabilityRowResponse
func getEffectiveCapabilities(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	itemType := models.AccessItemType(r.URL.Query().Get("accessItemType"))
	if itemType == "" {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("accessItemType is required"), "badrequest"))
		return
	}
	if !itemType.IsValid() {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("invalid access item type %s", itemType), "badrequest"))
		return
	}
	var context *models.CapabilityContext
	ownership := models.PamOwnership(r.URL.Query().Get("pamOwnership"))
	purpose := models.IdentityPurpose(r.URL.Query().Get("identityPurpose"))
	if ownership != "" || purpose != "" {
		if ownership != "" && !ownership.IsValid() {
			logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("invalid pamOwnership %s", ownership), "badrequest"))
			return
		}
		if purpose != "" && !purpose.IsValid() {
			logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("invalid identityPurpose %s", purpose), "badrequest"))
			return
		}
		context = &models.CapabilityContext{PamOwnership: ownership, IdentityPurpose: purpose}
	}
	capabilities, err := logic.EffectiveCapabilities(platformKey, itemType, context)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logger.Log(2, r.Header.Get("user"), "resolved capabilities for", platformKey)
	logic.ReturnSuccessResponseWithJson(w, r, capabilities, "resolved capabilities for "+platformKey)
}

// swagger:route GET /api/plugins/{platformkey}/schema/{schemakind} plugins getPluginSchema
//
// Generates the json schema for one (platform, item type, kind) combination.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: schemaDocumentResponse
func getPluginSchema(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	platformKey := params["platformkey"]
	kind := models.SchemaKind(params["schemakind"])
	itemType := models.AccessItemType(r.URL.Query().Get("accessItemType"))
	if itemType == "" {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("accessItemType is required"), "badrequest"))
		return
	}
	plugin, err := logic.GetPlugin(platformKey)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	doc, err := logic.BuildSchema(plugin, itemType, kind)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, doc, "generated schema for "+platformKey)
}

// swagger:route POST /api/plugins/{platformkey}/validate/{schemakind} plugins validateAgainstPluginSchema
//
// Checks a payload against the generated schema of a plugin.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: validationResultResponse
func validateAgainstPluginSchema(w http.ResponseWriter, r *http.Request) {
	var params = mux.Vars(r)
	platformKey := params["platformkey"]
	kind := models.SchemaKind(params["schemakind"])
	if kind == models.SchemaRequestOptions {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("only agency-config and client-target payloads can be validated"), "badrequest"))
		return
	}
	var body models.SchemaValidateParams
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	if body.AccessItemType == "" {
		logic.ReturnErrorResponse(w, r, logic.FormatError(fmt.Errorf("accessItemType is required"), "badrequest"))
		return
	}
	plugin, err := logic.GetPlugin(platformKey)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	doc, err := logic.BuildSchema(plugin, body.AccessItemType, kind)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	result := logic.ValidateAgainstSchema(doc, body.Payload)
	logic.ReturnSuccessResponseWithJson(w, r, result, "validated payload for "+platformKey)
}

// swagger:route POST /api/plugins/{platformkey}/instructions plugins getPluginInstructions
//
// Renders the ordered manual grant walkthrough with the caller's values.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: instructionStepsResponse
func getPluginInstructions(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	var body models.InstructionParams
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log(0, r.Header.Get("user"), "error decoding request body:", err.Error())
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	plugin, err := logic.GetPlugin(platformKey)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	steps, err := logic.RenderInstructions(plugin, &body)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "badrequest"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, steps, "rendered instructions for "+platformKey)
}

// swagger:route GET /api/plugins/{platformkey}/roles plugins getPluginRoles
//
// Lists the role templates a plugin offers across its item types.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: roleTemplatesResponse
func getPluginRoles(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	plugin, err := logic.GetPlugin(platformKey)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	roles := logic.GetPluginRoles(plugin)
	logic.ReturnSuccessResponseWithJson(w, r, roles, "fetched roles for "+platformKey)
}

// swagger:route GET /api/plugins/{platformkey}/access-types plugins getPluginAccessTypes
//
// Lists the access item types a plugin supports.
//
//			Schemes: https
//
//			Security:
//	  		oauth
//
//			Responses:
//				200: accessTypesResponse
func getPluginAccessTypes(w http.ResponseWriter, r *http.Request) {
	platformKey := mux.Vars(r)["platformkey"]
	plugin, err := logic.GetPlugin(platformKey)
	if err != nil {
		logic.ReturnErrorResponse(w, r, logic.FormatError(err, "notfound"))
		return
	}
	logic.ReturnSuccessResponseWithJson(w, r, plugin.SupportedAccessItemTypes, "fetched access types for "+platformKey)
}
