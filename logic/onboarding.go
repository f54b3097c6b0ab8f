package logic

import (
	"fmt"
	"time"

	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

// GetOnboardingView - assembles the client-facing portal payload for a
// tokenized request. Capabilities are resolved per item from the snapshot's
// platform and stored PAM posture, so each card shows the right mix of
// connect-with-oauth buttons and manual instructions.
func GetOnboardingView(b64Token string) (*models.OnboardingView, error) {
	request, err := DeTokenizeRequest(b64Token)
	if err != nil {
		return nil, err
	}
	client, err := GetClient(request.ClientID)
	if err != nil {
		return nil, err
	}

	view := models.OnboardingView{
		RequestID:  request.ID,
		AgencyName: servercfg.GetAgencyName(),
		ClientName: client.Name,
		Status:     request.Status,
		Items:      []models.OnboardingItem{},
	}
	for i := range request.Items {
		view.Items = append(view.Items, buildOnboardingItem(&request.Items[i]))
	}
	return &view, nil
}

func buildOnboardingItem(item *models.AccessRequestItem) models.OnboardingItem {
	card := models.OnboardingItem{
		ItemID:       item.ItemID,
		PlatformKey:  item.PlatformKey,
		DisplayName:  item.PlatformKey,
		ItemType:     item.ItemType,
		Label:        item.Label,
		Role:         item.Role,
		PatternLabel: item.PatternLabel,
		Status:       item.Status,
	}

	var ctx *models.CapabilityContext
	if stored, err := GetAccessItem(item.ItemID); err == nil {
		ctx = stored.Context()
	}
	manifest, err := ManifestForPlatform(item.PlatformKey)
	if err != nil {
		// platform removed after the snapshot; show the manual path
		card.Capabilities = models.ResolvedCapabilities{RequiresEvidenceUpload: true}
		return card
	}
	card.DisplayName = manifest.DisplayName
	card.LogoPath = manifest.LogoPath
	card.BrandColor = manifest.BrandColor
	card.Capabilities = ResolveCapabilities(manifest, item.ItemType, ctx)

	if spec := manifest.ItemTypeSpec(item.ItemType); spec != nil {
		card.TargetFields = spec.ClientTargetFields
	}
	if steps, err := RenderInstructions(manifest, &models.InstructionParams{
		AccessItemType: item.ItemType,
		Identity:       item.ResolvedIdentity,
		Role:           item.Role,
		Target:         item.ClientProvidedTarget,
	}); err == nil {
		card.Instructions = steps
	}
	return card
}

// SubmitCredentials - stores client-supplied shared-account credentials in
// the secret store and stamps the request item with the reference. The
// password itself never lands on the request record.
func SubmitCredentials(b64Token, itemID string, params *models.SubmitCredentialsParams) (*models.AccessRequest, error) {
	if err := validateCredentialParams(params); err != nil {
		return nil, err
	}
	request, err := DeTokenizeRequest(b64Token)
	if err != nil {
		return nil, err
	}
	item := request.FindItem(itemID)
	if item == nil {
		return nil, RequestErrors.NoItemFound
	}
	if item.ItemType != models.SharedAccount && item.ItemType != models.SharedAccountPAM {
		return nil, fmt.Errorf("item %s does not take shared credentials", itemID)
	}

	secretRef := fmt.Sprintf("request/%s/%s", request.ID, item.ItemID)
	if err := StorePamSecret(&models.PamSecret{
		Ref:       secretRef,
		Username:  params.Username,
		Password:  params.Password,
		Target:    params.Target,
		Notes:     params.Notes,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	item.PamUsername = params.Username
	item.PamSecretRef = secretRef
	item.Status = models.RequestItemSubmitted
	if params.Target != "" {
		item.ClientProvidedTarget = params.Target
	}
	if params.Notes != "" {
		item.EvidenceNote = params.Notes
	}
	if err := upsertAccessRequest(request); err != nil {
		return nil, err
	}
	logger.Log(1, "client submitted credentials for item", itemID, "on request", request.ID)
	return request, nil
}

func validateCredentialParams(params *models.SubmitCredentialsParams) error {
	if params.Username == "" {
		return fmt.Errorf("username is required")
	}
	if params.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// AttestAccess - the manual evidence path. The client records that access was
// set up by hand; the item moves to submitted and waits for agency validation.
func AttestAccess(b64Token, itemID string, params *models.AttestParams) (*models.AccessRequest, error) {
	request, err := DeTokenizeRequest(b64Token)
	if err != nil {
		return nil, err
	}
	item := request.FindItem(itemID)
	if item == nil {
		return nil, RequestErrors.NoItemFound
	}
	if item.Status == models.RequestItemValidated {
		return nil, RequestErrors.AlreadyValidated
	}

	item.Status = models.RequestItemSubmitted
	if params.Target != "" {
		item.ClientProvidedTarget = params.Target
	}
	note := params.EvidenceNote
	if note == "" {
		note = "client attested access manually"
	}
	if params.AttestedBy != "" {
		note = note + " (by " + params.AttestedBy + ")"
	}
	item.EvidenceNote = note
	if err := upsertAccessRequest(request); err != nil {
		return nil, err
	}
	logger.Log(1, "client attested item", itemID, "on request", request.ID)
	return request, nil
}
