package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
)

func TestOnboardingPortal(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()

	client, agencyPlatform := setupAgencyFixture(t)
	invite, err := CreateAccessItem(agencyPlatform.ID, &models.APIAccessItem{
		ItemType: models.NamedInvite,
		Label:    "Portal invite seat",
		Role:     "viewer",
	})
	assert.Nil(t, err)
	shared, err := CreateAccessItem(agencyPlatform.ID, &models.APIAccessItem{
		ItemType:     models.SharedAccount,
		Label:        "Portal shared login",
		Role:         "viewer",
		PamOwnership: models.ClientOwned,
	})
	assert.Nil(t, err)
	request, err := CreateAccessRequest(&models.APIAccessRequest{
		ClientID: client.ID,
		ItemIDs:  []string{invite.ID, shared.ID},
	})
	assert.Nil(t, err)

	t.Run("View_Resolves_Per_Item", func(t *testing.T) {
		view, err := GetOnboardingView(request.Token)
		assert.Nil(t, err)
		assert.Equal(t, request.ID, view.RequestID)
		assert.Equal(t, client.Name, view.ClientName)
		assert.Len(t, view.Items, 2)

		byID := map[string]models.OnboardingItem{}
		for _, card := range view.Items {
			byID[card.ItemID] = card
		}
		inviteCard := byID[invite.ID]
		assert.Equal(t, "Google Analytics 4", inviteCard.DisplayName)
		assert.True(t, inviteCard.Capabilities.CanGrantAccess)
		assert.NotEmpty(t, inviteCard.Instructions)
		assert.NotEmpty(t, inviteCard.TargetFields)

		// a client-owned shared login only offers the manual evidence path
		sharedCard := byID[shared.ID]
		assert.False(t, sharedCard.Capabilities.CanGrantAccess)
		assert.True(t, sharedCard.Capabilities.RequiresEvidenceUpload)
	})
	t.Run("Bad_Token", func(t *testing.T) {
		_, err := GetOnboardingView("not-a-token")
		assert.NotNil(t, err)
	})
	t.Run("Submit_On_Invite_Item_Is_Rejected", func(t *testing.T) {
		_, err := SubmitCredentials(request.Token, invite.ID, &models.SubmitCredentialsParams{
			Username: "someone@client.example",
			Password: "hunter2",
		})
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "does not take shared credentials")
	})
	t.Run("Incomplete_Credentials", func(t *testing.T) {
		_, err := SubmitCredentials(request.Token, shared.ID, &models.SubmitCredentialsParams{
			Username: "someone@client.example",
		})
		assert.NotNil(t, err)
	})
	t.Run("Attest_Marks_The_Item_Submitted", func(t *testing.T) {
		updated, err := AttestAccess(request.Token, invite.ID, &models.AttestParams{
			AttestedBy:   "pat@client.example",
			Target:       "313420998",
			EvidenceNote: "invited via property access management",
		})
		assert.Nil(t, err)
		item := updated.FindItem(invite.ID)
		assert.Equal(t, models.RequestItemSubmitted, item.Status)
		assert.Equal(t, "313420998", item.ClientProvidedTarget)
		assert.Contains(t, item.EvidenceNote, "pat@client.example")
	})
	t.Run("Attest_After_Validation_Conflicts", func(t *testing.T) {
		_, err := ValidateRequestItem(request.ID, &models.ValidateItemParams{ItemID: invite.ID}, "ops@agency.example")
		assert.Nil(t, err)
		_, err = AttestAccess(request.Token, invite.ID, &models.AttestParams{})
		assert.Equal(t, RequestErrors.AlreadyValidated, err)
	})
}
