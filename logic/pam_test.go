package logic

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
)

// setupPamRequest - a GA4 PAM item with a 120 minute checkout window,
// requested for a fresh client, credentials submitted through the portal
func setupPamRequest(t *testing.T) (*models.AccessRequest, *models.AccessItem) {
	t.Helper()
	client, agencyPlatform := setupAgencyFixture(t)
	item, err := CreateAccessItem(agencyPlatform.ID, &models.APIAccessItem{
		ItemType:                   models.SharedAccountPAM,
		Label:                      "Analytics vault login",
		Role:                       "viewer",
		PamOwnership:               models.AgencyOwned,
		IdentityPurpose:            models.HumanInteractive,
		PamIdentityStrategy:        models.ClientDedicatedIdentity,
		PamIdentityType:            models.IdentityMailbox,
		PamNamingTemplate:          "client-{{clientSlug}}@agency.example",
		PamCheckoutDurationMinutes: intPtr(120),
		PamConfirmation:            true,
	})
	assert.Nil(t, err)
	request, err := CreateAccessRequest(&models.APIAccessRequest{
		ClientID: client.ID,
		ItemIDs:  []string{item.ID},
	})
	assert.Nil(t, err)
	request, err = SubmitCredentials(request.Token, item.ID, &models.SubmitCredentialsParams{
		Username: "client-acme-rockets@agency.example",
		Password: "hunter2-rotated",
		Target:   "313420998",
	})
	assert.Nil(t, err)
	return request, item
}

func TestCheckoutCredential(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()
	defer database.DeleteAllRecords(database.PAM_SESSIONS_TABLE_NAME)

	request, item := setupPamRequest(t)
	submitted := request.FindItem(item.ID)
	assert.Equal(t, models.RequestItemSubmitted, submitted.Status)
	assert.NotEmpty(t, submitted.PamSecretRef)

	var sessionID string
	t.Run("Checkout_Releases_Material", func(t *testing.T) {
		checkout, err := CheckoutCredential(request.ID, item.ID, &models.CheckoutParams{
			CheckedOutBy: "ops@agency.example",
			Reason:       "monthly report pull",
		})
		assert.Nil(t, err)
		assert.Equal(t, "client-acme-rockets@agency.example", checkout.Username)
		assert.Equal(t, "hunter2-rotated", checkout.Password)
		assert.Equal(t, models.SessionActive, checkout.Session.Status)
		assert.Equal(t, "ops@agency.example", checkout.Session.CheckedOutBy)
		// the item's own window wins over the server default
		assert.Equal(t, checkout.Session.CheckedOutAt.Add(120*time.Minute), checkout.Session.ExpiresAt)
		sessionID = checkout.Session.ID
	})
	t.Run("Second_Checkout_Conflicts", func(t *testing.T) {
		_, err := CheckoutCredential(request.ID, item.ID, &models.CheckoutParams{
			CheckedOutBy: "second@agency.example",
		})
		assert.Equal(t, PamErrors.LeaseHeld, err)
	})
	t.Run("Item_View_Shows_Lease", func(t *testing.T) {
		views, err := GetPamItems()
		assert.Nil(t, err)
		var view *models.PamItemView
		for i := range views {
			if views[i].ItemID == item.ID {
				view = &views[i]
			}
		}
		assert.NotNil(t, view)
		assert.True(t, view.HasSecret)
		assert.NotNil(t, view.ActiveSession)
	})
	t.Run("Checkin_Frees_The_Item", func(t *testing.T) {
		session, err := CheckinCredential(sessionID)
		assert.Nil(t, err)
		assert.Equal(t, models.SessionReturned, session.Status)
		assert.NotNil(t, session.CheckedInAt)
		active, err := GetActiveSessionForItem(item.ID)
		assert.Nil(t, err)
		assert.Nil(t, active)
	})
	t.Run("Second_Checkin_Conflicts", func(t *testing.T) {
		_, err := CheckinCredential(sessionID)
		assert.Equal(t, PamErrors.AlreadyReturned, err)
	})
	t.Run("Checkout_After_Checkin", func(t *testing.T) {
		checkout, err := CheckoutCredential(request.ID, item.ID, &models.CheckoutParams{
			CheckedOutBy: "ops@agency.example",
		})
		assert.Nil(t, err)
		_, err = CheckinCredential(checkout.Session.ID)
		assert.Nil(t, err)
	})
	t.Run("Unknown_Session", func(t *testing.T) {
		_, err := CheckinCredential("nosuch")
		assert.Equal(t, PamErrors.NoSession, err)
	})
}

func TestCheckoutGuards(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()

	client, agencyPlatform := setupAgencyFixture(t)
	t.Run("Invite_Items_Are_Not_Pam_Managed", func(t *testing.T) {
		invite, err := CreateAccessItem(agencyPlatform.ID, &models.APIAccessItem{
			ItemType: models.NamedInvite,
			Label:    "Guarded invite seat",
			Role:     "viewer",
		})
		assert.Nil(t, err)
		request, err := CreateAccessRequest(&models.APIAccessRequest{
			ClientID: client.ID,
			ItemIDs:  []string{invite.ID},
		})
		assert.Nil(t, err)
		_, err = CheckoutCredential(request.ID, invite.ID, &models.CheckoutParams{})
		assert.Equal(t, PamErrors.NotPamManaged, err)
	})
	t.Run("No_Credential_Submitted_Yet", func(t *testing.T) {
		shared, err := CreateAccessItem(agencyPlatform.ID, &models.APIAccessItem{
			ItemType:        models.SharedAccount,
			Label:           "Unsubmitted shared login",
			Role:            "viewer",
			PamOwnership:    models.AgencyOwned,
			IdentityPurpose: models.HumanInteractive,
			PamConfirmation: true,
		})
		assert.Nil(t, err)
		request, err := CreateAccessRequest(&models.APIAccessRequest{
			ClientID: client.ID,
			ItemIDs:  []string{shared.ID},
		})
		assert.Nil(t, err)
		_, err = CheckoutCredential(request.ID, shared.ID, &models.CheckoutParams{})
		assert.Equal(t, PamErrors.NoSecret, err)
	})
	t.Run("Unknown_Request", func(t *testing.T) {
		_, err := CheckoutCredential("nosuch", "nosuch", &models.CheckoutParams{})
		assert.NotNil(t, err)
	})
}

func TestSweepExpiredSessions(t *testing.T) {
	database.InitializeDatabase()
	defer database.CloseDB()
	defer database.DeleteAllRecords(database.PAM_SESSIONS_TABLE_NAME)

	overdue := models.PamSession{
		ID:           uuid.NewString(),
		ItemID:       uuid.NewString(),
		PlatformKey:  "ga4",
		Username:     "stale@agency.example",
		CheckedOutAt: time.Now().UTC().Add(-3 * time.Hour),
		ExpiresAt:    time.Now().UTC().Add(-time.Hour),
		Status:       models.SessionActive,
	}
	assert.Nil(t, upsertPamSession(&overdue))

	swept := SweepExpiredSessions()
	assert.GreaterOrEqual(t, swept, 1)

	session, err := GetPamSession(overdue.ID)
	assert.Nil(t, err)
	assert.Equal(t, models.SessionExpired, session.Status)

	// an expired lease no longer blocks the item
	active, err := GetActiveSessionForItem(overdue.ItemID)
	assert.Nil(t, err)
	assert.Nil(t, active)

	t.Run("Nothing_Left_To_Sweep", func(t *testing.T) {
		assert.Equal(t, 0, SweepExpiredSessions())
	})
}
