package integrations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
)

// == google endpoints ==
const (
	google_tokeninfo_endpoint = "https://www.googleapis.com/oauth2/v3/tokeninfo"
	ga4_admin_endpoint        = "https://analyticsadmin.googleapis.com/v1beta"
	gtm_endpoint              = "https://www.googleapis.com/tagmanager/v2"
	gsc_endpoint              = "https://www.googleapis.com/webmasters/v3"
)

var httpclient = &http.Client{Timeout: time.Second * 10}

var ga4_functions = map[string]interface{}{
	grant_access:   ga4GrantAccess,
	verify_access:  ga4VerifyAccess,
	revoke_access:  ga4RevokeAccess,
	fetch_accounts: ga4FetchAccounts,
}

var gtm_functions = map[string]interface{}{
	grant_access:   gtmGrantAccess,
	verify_access:  gtmVerifyAccess,
	revoke_access:  gtmRevokeAccess,
	fetch_accounts: gtmFetchAccounts,
}

// search console can list and verify but its API has no user management
var gsc_functions = map[string]interface{}{
	verify_access:  gscVerifyAccess,
	fetch_accounts: gscFetchAccounts,
}

// == shared google helpers ==

// checkGoogleToken - validates the bearer token against the tokeninfo
// endpoint before any API call is attempted
func checkGoogleToken(accessToken string) error {
	response, err := httpclient.Get(google_tokeninfo_endpoint + "?access_token=" + url.QueryEscape(accessToken))
	if err != nil {
		return fmt.Errorf("failed to reach google token endpoint: %s", err.Error())
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return &UpstreamError{
			Status:  http.StatusUnauthorized,
			Message: "google rejected the access token: invalid or expired credentials",
		}
	}
	return nil
}

// googleAPIRequest - performs one authenticated call and maps non-2xx
// responses to an UpstreamError carrying google's status
func googleAPIRequest(method, endpoint, accessToken string, body interface{}) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	}
	request, err := http.NewRequest(method, endpoint, payload)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := httpclient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to reach google: %s", err.Error())
	}
	defer response.Body.Close()
	contents, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		logger.Log(2, "google API returned", fmt.Sprintf("%d", response.StatusCode), "for", method, endpoint)
		return nil, &UpstreamError{
			Status:  response.StatusCode,
			Message: fmt.Sprintf("google API error (%d): check the token's credentials and scopes", response.StatusCode),
		}
	}
	return contents, nil
}

// ga4Role - maps a role template key onto the analytics admin role name
func ga4Role(role string) string {
	switch role {
	case "administrator":
		return "predefinedRoles/admin"
	case "editor":
		return "predefinedRoles/editor"
	case "analyst":
		return "predefinedRoles/analyst"
	default:
		return "predefinedRoles/viewer"
	}
}

// gtmPermission - maps a role template key onto the tag manager account permission
func gtmPermission(role string) string {
	if role == "admin" {
		return "admin"
	}
	return "user"
}

// == GA4 ==

type ga4AccessBinding struct {
	Name  string   `json:"name,omitempty"`
	User  string   `json:"user"`
	Roles []string `json:"roles"`
}

type ga4BindingList struct {
	AccessBindings []ga4AccessBinding `json:"accessBindings"`
}

func ga4GrantAccess(payload *models.ActionPayload) (*models.ActionResult, error) {
	if err := checkGoogleToken(payload.AccessToken); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/properties/%s/accessBindings", ga4_admin_endpoint, payload.Target)
	binding := ga4AccessBinding{
		User:  payload.Identity,
		Roles: []string{ga4Role(payload.Role)},
	}
	contents, err := googleAPIRequest(http.MethodPost, endpoint, payload.AccessToken, &binding)
	if err != nil {
		return nil, err
	}
	var created ga4AccessBinding
	_ = json.Unmarshal(contents, &created)
	return &models.ActionResult{
		Action:   models.ActionGrant,
		Platform: ga4_connector_name,
		Target:   payload.Target,
		Identity: payload.Identity,
		Role:     payload.Role,
		Granted:  true,
		Details:  map[string]any{"binding": created.Name},
	}, nil
}

func ga4VerifyAccess(payload *models.ActionPayload) (*models.ActionResult, error) {
	if err := checkGoogleToken(payload.AccessToken); err != nil {
		return nil, err
	}
	binding, err := ga4FindBinding(payload)
	if err != nil {
		return nil, err
	}
	result := models.ActionResult{
		Action:   models.ActionVerify,
		Platform: ga4_connector_name,
		Target:   payload.Target,
		Identity: payload.Identity,
		Role:     payload.Role,
	}
	if binding != nil {
		result.Verified = true
		result.Details = map[string]any{"roles": binding.Roles}
	}
	return &result, nil
}

func ga4RevokeAccess(payload *models.ActionPayload) (*models.ActionResult, error) {
	if err := checkGoogleToken(payload.AccessToken); err != nil {
		return nil, err
	}
	binding, err := ga4FindBinding(payload)
	if err != nil {
		return nil, err
	}
	if binding == nil {
		return nil, &UpstreamError{
			Status:  http.StatusNotFound,
			Message: fmt.Sprintf("no access binding found for %s on property %s", payload.Identity, payload.Target),
		}
	}
	endpoint := fmt.Sprintf("%s/%s", ga4_admin_endpoint, binding.Name)
	if _, err := googleAPIRequest(http.MethodDelete, endpoint, payload.AccessToken, nil); err != nil {
		return nil, err
	}
	return &models.ActionResult{
		Action:   models.ActionRevoke,
		Platform: ga4_connector_name,
		Target:   payload.Target,
		Identity: payload.Identity,
		Revoked:  true,
	}, nil
}

func ga4FindBinding(payload *models.ActionPayload) (*ga4AccessBinding, error) {
	endpoint := fmt.Sprintf("%s/properties/%s/accessBindings", ga4_admin_endpoint, payload.Target)
	contents, err := googleAPIRequest(http.MethodGet, endpoint, payload.AccessToken, nil)
	if err != nil {
		return nil, err
	}
	var list ga4BindingList
	if err := json.Unmarshal(contents, &list); err != nil {
		return nil, err
	}
	for i := range list.AccessBindings {
		if list.AccessBindings[i].User == payload.Identity {
			return &list.AccessBindings[i], nil
		}
	}
	return nil, nil
}

func ga4FetchAccounts(accessToken string) ([]models.PlatformAccount, error) {
	if err := checkGoogleToken(accessToken); err != nil {
		return nil, err
	}
	contents, err := googleAPIRequest(http.MethodGet, ga4_admin_endpoint+"/accountSummaries", accessToken, nil)
	if err != nil {
		return nil, err
	}
	var summaries struct {
		AccountSummaries []struct {
			Account           string `json:"account"`
			DisplayName       string `json:"displayName"`
			PropertySummaries []struct {
				Property    string `json:"property"`
				DisplayName string `json:"displayName"`
			} `json:"propertySummaries"`
		} `json:"accountSummaries"`
	}
	if err := json.Unmarshal(contents, &summaries); err != nil {
		return nil, err
	}
	accounts := []models.PlatformAccount{}
	for _, summary := range summaries.AccountSummaries {
		for _, property := range summary.PropertySummaries {
			accounts = append(accounts, models.PlatformAccount{
				ID:          property.Property,
				DisplayName: summary.DisplayName + " / " + property.DisplayName,
				Kind:        "property",
			})
		}
	}
	return accounts, nil
}

// == Tag Manager ==

type gtmUserPermission struct {
	Path          string `json:"path,omitempty"`
	AccountID     string `json:"accountId,omitempty"`
	EmailAddress  string `json:"emailAddress"`
	AccountAccess struct {
		Permission string `json:"permission"`
	} `json:"accountAccess"`
}

type gtmPermissionList struct {
	UserPermission []gtmUserPermission `json:"userPermission"`
}

func gtmGrantAccess(payload *models.ActionPayload) (*models.ActionResult, error) {
	if err := checkGoogleToken(payload.AccessToken); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/accounts/%s/user_permissions", gtm_endpoint, payload.Target)
	permission := gtmUserPermission{EmailAddress: payload.Identity}
	permission.AccountAccess.Permission = gtmPermission(payload.Role)
	contents, err := googleAPIRequest(http.MethodPost, endpoint, payload.AccessToken, &permission)
	if err != nil {
		return nil, err
	}
	var created gtmUserPermission
	_ = json.Unmarshal(contents, &created)
	return &models.ActionResult{
		Action:   models.ActionGrant,
		Platform: gtm_connector_name,
		Target:   payload.Target,
		Identity: payload.Identity,
		Role:     payload.Role,
		Granted:  true,
		Details:  map[string]any{"path": created.Path},
	}, nil
}

func gtmVerifyAccess(payload *models.ActionPayload) (*models.ActionResult, error) {
	if err := checkGoogleToken(payload.AccessToken); err != nil {
		return nil, err
	}
	permission, err := gtmFindPermission(payload)
	if err != nil {
		return nil, err
	}
	result := models.ActionResult{
		Action:   models.ActionVerify,
		Platform: gtm_connector_name,
		Target:   payload.Target,
		Identity: payload.Identity,
		Role:     payload.Role,
	}
	if permission != nil {
		result.Verified = true
		result.Details = map[string]any{"permission": permission.AccountAccess.Permission}
	}
	return &result, nil
}

func gtmRevokeAccess(payload *models.ActionPayload) (*models.ActionResult, error) {
	if err := checkGoogleToken(payload.AccessToken); err != nil {
		return nil, err
	}
	permission, err := gtmFindPermission(payload)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, &UpstreamError{
			Status:  http.StatusNotFound,
			Message: fmt.Sprintf("no permission found for %s on account %s", payload.Identity, payload.Target),
		}
	}
	endpoint := fmt.Sprintf("%s/%s", gtm_endpoint, permission.Path)
	if _, err := googleAPIRequest(http.MethodDelete, endpoint, payload.AccessToken, nil); err != nil {
		return nil, err
	}
	return &models.ActionResult{
		Action:   models.ActionRevoke,
		Platform: gtm_connector_name,
		Target:   payload.Target,
		Identity: payload.Identity,
		Revoked:  true,
	}, nil
}

func gtmFindPermission(payload *models.ActionPayload) (*gtmUserPermission, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/user_permissions", gtm_endpoint, payload.Target)
	contents, err := googleAPIRequest(http.MethodGet, endpoint, payload.AccessToken, nil)
	if err != nil {
		return nil, err
	}
	var list gtmPermissionList
	if err := json.Unmarshal(contents, &list); err != nil {
		return nil, err
	}
	for i := range list.UserPermission {
		if list.UserPermission[i].EmailAddress == payload.Identity {
			return &list.UserPermission[i], nil
		}
	}
	return nil, nil
}

func gtmFetchAccounts(accessToken string) ([]models.PlatformAccount, error) {
	if err := checkGoogleToken(accessToken); err != nil {
		return nil, err
	}
	contents, err := googleAPIRequest(http.MethodGet, gtm_endpoint+"/accounts", accessToken, nil)
	if err != nil {
		return nil, err
	}
	var list struct {
		Account []struct {
			AccountID string `json:"accountId"`
			Name      string `json:"name"`
		} `json:"account"`
	}
	if err := json.Unmarshal(contents, &list); err != nil {
		return nil, err
	}
	accounts := []models.PlatformAccount{}
	for _, account := range list.Account {
		accounts = append(accounts, models.PlatformAccount{
			ID:          account.AccountID,
			DisplayName: account.Name,
			Kind:        "account",
		})
	}
	return accounts, nil
}

// == Search Console ==

func gscVerifyAccess(payload *models.ActionPayload) (*models.ActionResult, error) {
	if err := checkGoogleToken(payload.AccessToken); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/sites/%s", gsc_endpoint, url.PathEscape(payload.Target))
	contents, err := googleAPIRequest(http.MethodGet, endpoint, payload.AccessToken, nil)
	if err != nil {
		return nil, err
	}
	var site struct {
		SiteURL         string `json:"siteUrl"`
		PermissionLevel string `json:"permissionLevel"`
	}
	if err := json.Unmarshal(contents, &site); err != nil {
		return nil, err
	}
	result := models.ActionResult{
		Action:   models.ActionVerify,
		Platform: gsc_connector_name,
		Target:   payload.Target,
		Identity: payload.Identity,
		Verified: site.PermissionLevel != "" && site.PermissionLevel != "siteUnverifiedUser",
		Details:  map[string]any{"permissionLevel": site.PermissionLevel},
	}
	return &result, nil
}

func gscFetchAccounts(accessToken string) ([]models.PlatformAccount, error) {
	if err := checkGoogleToken(accessToken); err != nil {
		return nil, err
	}
	contents, err := googleAPIRequest(http.MethodGet, gsc_endpoint+"/sites", accessToken, nil)
	if err != nil {
		return nil, err
	}
	var list struct {
		SiteEntry []struct {
			SiteURL         string `json:"siteUrl"`
			PermissionLevel string `json:"permissionLevel"`
		} `json:"siteEntry"`
	}
	if err := json.Unmarshal(contents, &list); err != nil {
		return nil, err
	}
	accounts := []models.PlatformAccount{}
	for _, site := range list.SiteEntry {
		accounts = append(accounts, models.PlatformAccount{
			ID:          site.SiteURL,
			DisplayName: site.SiteURL,
			Kind:        "site",
		})
	}
	return accounts, nil
}
