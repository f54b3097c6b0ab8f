package logic

import (
	b64 "encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

// RequestErrors - struct for holding access request error messages
var RequestErrors = struct {
	NoRequestFound     error
	NoItemFound        error
	AlreadyValidated   error
	NoItems            error
	FailedToTokenize   error
	FailedToDeTokenize error
}{
	NoRequestFound:     fmt.Errorf("no access request found"),
	NoItemFound:        fmt.Errorf("no matching item on access request"),
	AlreadyValidated:   fmt.Errorf("item is already validated"),
	NoItems:            fmt.Errorf("access request needs at least one item"),
	FailedToTokenize:   fmt.Errorf("failed to tokenize"),
	FailedToDeTokenize: fmt.Errorf("failed to detokenize"),
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// CreateAccessRequest - snapshots the referenced access items into a new
// request for one client and mints its onboarding token. The legacy
// platformIds shorthand resolves each platform to its default enabled item.
func CreateAccessRequest(payload *models.APIAccessRequest) (*models.AccessRequest, error) {
	client, err := GetClient(payload.ClientID)
	if err != nil {
		return nil, fmt.Errorf("client %s not found", payload.ClientID)
	}

	items := []models.AccessRequestItem{}
	for _, itemID := range payload.ItemIDs {
		item, err := GetAccessItem(itemID)
		if err != nil {
			return nil, fmt.Errorf("access item %s not found", itemID)
		}
		items = append(items, snapshotItem(&item, &client))
	}
	for _, platformKey := range payload.PlatformIDs {
		agencyPlatform, err := GetAgencyPlatformByKey(platformKey)
		if err != nil {
			return nil, fmt.Errorf("no agency platform configured for %s", platformKey)
		}
		if !agencyPlatform.IsEnabled {
			return nil, fmt.Errorf("agency platform %s is disabled", platformKey)
		}
		defaultItem := agencyPlatform.DefaultItem()
		if defaultItem == nil {
			return nil, fmt.Errorf("no access items configured for platform %s", platformKey)
		}
		items = append(items, snapshotItem(defaultItem, &client))
	}
	if len(items) == 0 {
		return nil, RequestErrors.NoItems
	}

	request := models.AccessRequest{
		ID:         uuid.NewString(),
		ClientID:   client.ID,
		TokenValue: getUniqueRequestToken(),
		Status:     models.RequestItemPending,
		Items:      items,
		CreatedAt:  time.Now().UTC(),
	}
	if err := TokenizeRequest(&request, servercfg.GetAPIHost()); err != nil {
		return nil, err
	}
	if err := upsertAccessRequest(&request); err != nil {
		return nil, err
	}
	logger.Log(1, "created access request for client", client.Name, "with", fmt.Sprintf("%d", len(items)), "items")
	return &request, nil
}

// snapshotItem - freezes the relevant item state onto the request; the
// resolved identity and PAM username are derived here so later item edits do
// not rewrite history
func snapshotItem(item *models.AccessItem, client *models.Client) models.AccessRequestItem {
	snapshot := models.AccessRequestItem{
		ItemID:        item.ID,
		PlatformKey:   item.PlatformKey,
		ItemType:      item.ItemType,
		Label:         item.Label,
		Role:          item.Role,
		AccessPattern: item.AccessPattern,
		PatternLabel:  item.PatternLabel,
		Status:        models.RequestItemPending,
	}

	switch {
	case item.ItemType == models.NamedInvite && item.HumanIdentityStrategy == models.AgencyGroup:
		snapshot.ResolvedIdentity = item.AgencyGroupEmail
	case item.PamIdentityStrategy == models.StaticAgencyIdentity && item.AgencyIdentityID != "":
		if identity, err := GetIdentity(item.AgencyIdentityID); err == nil {
			snapshot.ResolvedIdentity = identity.Identifier
			snapshot.PamUsername = identity.Identifier
			snapshot.PamSecretRef = identity.SecretRef
		}
	case item.IntegrationIdentityID != "":
		if identity, err := GetIdentity(item.IntegrationIdentityID); err == nil {
			snapshot.ResolvedIdentity = identity.Identifier
		}
	case item.PamIdentityStrategy == models.ClientDedicatedIdentity && item.PamNamingTemplate != "":
		rendered := renderNamingTemplate(item.PamNamingTemplate, client, item)
		snapshot.ResolvedIdentity = rendered
		snapshot.PamUsername = rendered
	}
	return snapshot
}

// renderNamingTemplate - fills a dedicated-identity template, e.g.
// client-{{clientSlug}}@agency.example
func renderNamingTemplate(template string, client *models.Client, item *models.AccessItem) string {
	return strings.NewReplacer(
		"{{clientSlug}}", slugify(client.Name),
		"{{clientName}}", client.Name,
		"{{platformKey}}", item.PlatformKey,
	).Replace(template)
}

func slugify(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// GetAccessRequest - fetches one request by id
func GetAccessRequest(id string) (models.AccessRequest, error) {
	var request models.AccessRequest
	record, err := database.FetchRecord(database.ACCESS_REQUESTS_TABLE_NAME, id)
	if err != nil {
		return request, err
	}
	if err = json.Unmarshal([]byte(record), &request); err != nil {
		return models.AccessRequest{}, err
	}
	return request, nil
}

// GetAccessRequests - all requests, oldest first
func GetAccessRequests() ([]models.AccessRequest, error) {
	requests := []models.AccessRequest{}
	records, err := database.FetchRecords(database.ACCESS_REQUESTS_TABLE_NAME)
	if err != nil && !database.IsEmptyRecord(err) {
		return requests, err
	}
	for _, record := range records {
		var request models.AccessRequest
		if err := json.Unmarshal([]byte(record), &request); err != nil {
			continue
		}
		requests = append(requests, request)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests, nil
}

// GetAccessRequestByToken - request lookup by the token's random value
func GetAccessRequestByToken(tokenValue string) (*models.AccessRequest, error) {
	requests, err := GetAccessRequests()
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].TokenValue == tokenValue {
			return &requests[i], nil
		}
	}
	return nil, RequestErrors.NoRequestFound
}

// TokenizeRequest - attaches the b64 onboarding token to the request
func TokenizeRequest(request *models.AccessRequest, serverAddr string) error {
	if len(serverAddr) == 0 || request == nil {
		return RequestErrors.FailedToTokenize
	}
	newToken := models.OnboardingToken{
		Server: serverAddr,
		Value:  request.TokenValue,
	}
	data, err := json.Marshal(&newToken)
	if err != nil {
		return err
	}
	request.Token = b64.StdEncoding.EncodeToString(data)
	return nil
}

// DeTokenizeRequest - decodes a b64 onboarding token and finds the
// associated access request. A raw token value works too, so portal links
// survive being stripped by mail clients.
func DeTokenizeRequest(b64Token string) (*models.AccessRequest, error) {
	if len(b64Token) == 0 {
		return nil, RequestErrors.FailedToDeTokenize
	}
	tokenData, err := b64.StdEncoding.DecodeString(b64Token)
	if err != nil {
		return GetAccessRequestByToken(b64Token)
	}

	var newToken models.OnboardingToken
	if err = json.Unmarshal(tokenData, &newToken); err != nil {
		return GetAccessRequestByToken(b64Token)
	}
	return GetAccessRequestByToken(newToken.Value)
}

// ValidateRequestItem - marks one request item validated; validating twice is
// a conflict so audit timestamps are never overwritten
func ValidateRequestItem(requestID string, params *models.ValidateItemParams, validatedBy string) (*models.AccessRequest, error) {
	request, err := GetAccessRequest(requestID)
	if err != nil {
		return nil, err
	}

	var item *models.AccessRequestItem
	if params.ItemID != "" {
		item = request.FindItem(params.ItemID)
	} else if params.PlatformID != "" {
		item = request.FindItemByPlatform(params.PlatformID)
	}
	if item == nil {
		return nil, RequestErrors.NoItemFound
	}
	if item.Status == models.RequestItemValidated {
		return nil, RequestErrors.AlreadyValidated
	}

	now := time.Now().UTC()
	item.Status = models.RequestItemValidated
	item.ValidatedAt = &now
	item.ValidatedBy = validatedBy
	if params.Note != "" {
		item.EvidenceNote = params.Note
	}
	if request.AllValidated() {
		request.Status = models.RequestItemValidated
	}
	if err := upsertAccessRequest(&request); err != nil {
		return nil, err
	}
	logger.Log(1, "validated item", item.ItemID, "on request", requestID)
	return &request, nil
}

// RefreshRequestToken - rotates the onboarding token; links minted before the
// refresh stop working, item state is untouched
func RefreshRequestToken(requestID string) (*models.AccessRequest, error) {
	request, err := GetAccessRequest(requestID)
	if err != nil {
		return nil, err
	}
	request.TokenValue = getUniqueRequestToken()
	if err := TokenizeRequest(&request, servercfg.GetAPIHost()); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	request.RefreshedAt = &now
	if err := upsertAccessRequest(&request); err != nil {
		return nil, err
	}
	logger.Log(1, "refreshed token on request", requestID)
	return &request, nil
}

// DeleteAccessRequest - removes a request
func DeleteAccessRequest(id string) error {
	if _, err := GetAccessRequest(id); err != nil {
		return err
	}
	return database.DeleteRecord(database.ACCESS_REQUESTS_TABLE_NAME, id)
}

// == private ==

func getUniqueRequestToken() string {
	value := RandomString(models.OnboardingTokenLength)
	for {
		if _, err := GetAccessRequestByToken(value); err != nil {
			return value
		}
		value = RandomString(models.OnboardingTokenLength)
	}
}

func upsertAccessRequest(request *models.AccessRequest) error {
	data, err := json.Marshal(request)
	if err != nil {
		return err
	}
	return database.Insert(request.ID, string(data), database.ACCESS_REQUESTS_TABLE_NAME)
}
