package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

const (
	// SESSION_SWEEP_INTERVAL - minutes between lease expiry sweeps
	SESSION_SWEEP_INTERVAL = 1
)

// PamErrors - struct for holding vault error messages
var PamErrors = struct {
	NoSession       error
	LeaseHeld       error
	AlreadyReturned error
	NoSecret        error
	NotPamManaged   error
}{
	NoSession:       fmt.Errorf("no pam session found"),
	LeaseHeld:       fmt.Errorf("credential is already checked out"),
	AlreadyReturned: fmt.Errorf("session is already checked in"),
	NoSecret:        fmt.Errorf("no credential stored for this item"),
	NotPamManaged:   fmt.Errorf("item is not pam managed"),
}

// CheckoutCredential - opens an exclusive lease on a shared credential and
// returns the material. One active lease per item; a second checkout while
// the first is live is a conflict.
func CheckoutCredential(requestID, itemID string, params *models.CheckoutParams) (*models.CheckoutResponse, error) {
	request, err := GetAccessRequest(requestID)
	if err != nil {
		return nil, err
	}
	item := request.FindItem(itemID)
	if item == nil {
		return nil, RequestErrors.NoItemFound
	}
	if item.ItemType != models.SharedAccount && item.ItemType != models.SharedAccountPAM {
		return nil, PamErrors.NotPamManaged
	}
	if active, _ := GetActiveSessionForItem(itemID); active != nil {
		return nil, PamErrors.LeaseHeld
	}

	username, secret, err := resolveCredential(item)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := models.PamSession{
		ID:              uuid.NewString(),
		AccessRequestID: request.ID,
		ItemID:          item.ItemID,
		PlatformKey:     item.PlatformKey,
		Username:        username,
		SecretRef:       secret.Ref,
		CheckedOutAt:    now,
		CheckedOutBy:    params.CheckedOutBy,
		ExpiresAt:       now.Add(checkoutDuration(item)),
		Status:          models.SessionActive,
	}
	if err := upsertPamSession(&session); err != nil {
		return nil, err
	}
	logger.Log(1, "checked out credential for item", itemID, "until", session.ExpiresAt.Format(time.RFC3339))
	return &models.CheckoutResponse{
		Session:  session,
		Username: username,
		Password: secret.Password,
		Target:   secret.Target,
	}, nil
}

// resolveCredential - walks the credential chain: the secret the client
// submitted during onboarding wins, otherwise the item's bound agency
// identity supplies it
func resolveCredential(item *models.AccessRequestItem) (string, *models.PamSecret, error) {
	if item.PamSecretRef != "" {
		secret, err := GetPamSecret(item.PamSecretRef)
		if err != nil {
			return "", nil, PamErrors.NoSecret
		}
		username := item.PamUsername
		if username == "" {
			username = secret.Username
		}
		return username, &secret, nil
	}

	stored, err := GetAccessItem(item.ItemID)
	if err != nil || stored.AgencyIdentityID == "" {
		return "", nil, PamErrors.NoSecret
	}
	identity, err := GetIdentity(stored.AgencyIdentityID)
	if err != nil || identity.SecretRef == "" {
		return "", nil, PamErrors.NoSecret
	}
	secret, err := GetPamSecret(identity.SecretRef)
	if err != nil {
		return "", nil, PamErrors.NoSecret
	}
	username := identity.Identifier
	if secret.Username != "" {
		username = secret.Username
	}
	return username, &secret, nil
}

func checkoutDuration(item *models.AccessRequestItem) time.Duration {
	if stored, err := GetAccessItem(item.ItemID); err == nil {
		if stored.PamCheckoutDurationMinutes != nil && *stored.PamCheckoutDurationMinutes > 0 {
			return time.Duration(*stored.PamCheckoutDurationMinutes) * time.Minute
		}
	}
	return time.Duration(servercfg.GetDefaultCheckoutMinutes()) * time.Minute
}

// CheckinCredential - returns a lease early; checking in twice is a conflict
func CheckinCredential(sessionID string) (*models.PamSession, error) {
	session, err := GetPamSession(sessionID)
	if err != nil {
		return nil, PamErrors.NoSession
	}
	if session.Status != models.SessionActive {
		return nil, PamErrors.AlreadyReturned
	}
	now := time.Now().UTC()
	session.Status = models.SessionReturned
	session.CheckedInAt = &now
	if err := upsertPamSession(&session); err != nil {
		return nil, err
	}
	logger.Log(1, "checked in credential session", sessionID)
	return &session, nil
}

// GetPamSession - fetches one lease by id
func GetPamSession(id string) (models.PamSession, error) {
	var session models.PamSession
	record, err := database.FetchRecord(database.PAM_SESSIONS_TABLE_NAME, id)
	if err != nil {
		return session, err
	}
	if err = json.Unmarshal([]byte(record), &session); err != nil {
		return models.PamSession{}, err
	}
	return session, nil
}

// GetPamSessions - all leases, newest first
func GetPamSessions() ([]models.PamSession, error) {
	sessions := []models.PamSession{}
	records, err := database.FetchRecords(database.PAM_SESSIONS_TABLE_NAME)
	if err != nil && !database.IsEmptyRecord(err) {
		return sessions, err
	}
	for _, record := range records {
		var session models.PamSession
		if err := json.Unmarshal([]byte(record), &session); err != nil {
			continue
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CheckedOutAt.After(sessions[j].CheckedOutAt)
	})
	return sessions, nil
}

// GetActiveSessionForItem - the live lease on an item, nil when free
func GetActiveSessionForItem(itemID string) (*models.PamSession, error) {
	sessions, err := GetPamSessions()
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ItemID == itemID && sessions[i].IsActive() {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// GetPamItems - every PAM-managed item across all requests with its lease state
func GetPamItems() ([]models.PamItemView, error) {
	requests, err := GetAccessRequests()
	if err != nil {
		return nil, err
	}
	views := []models.PamItemView{}
	for i := range requests {
		for j := range requests[i].Items {
			item := &requests[i].Items[j]
			if item.ItemType != models.SharedAccount && item.ItemType != models.SharedAccountPAM {
				continue
			}
			view := models.PamItemView{
				AccessRequestID: requests[i].ID,
				ItemID:          item.ItemID,
				PlatformKey:     item.PlatformKey,
				Label:           item.Label,
				ItemType:        item.ItemType,
				PamUsername:     item.PamUsername,
				HasSecret:       item.PamSecretRef != "",
			}
			if active, _ := GetActiveSessionForItem(item.ItemID); active != nil {
				view.ActiveSession = active
			}
			views = append(views, view)
		}
	}
	return views, nil
}

// SweepExpiredSessions - moves past-expiry active leases to expired so the
// item frees up; returns how many were swept
func SweepExpiredSessions() int {
	sessions, err := GetPamSessions()
	if err != nil {
		logger.Log(1, "failed to retrieve pam sessions", err.Error())
		return 0
	}
	swept := 0
	for i := range sessions {
		session := sessions[i]
		if session.Status != models.SessionActive || time.Now().Before(session.ExpiresAt) {
			continue
		}
		session.Status = models.SessionExpired
		if err := upsertPamSession(&session); err != nil {
			logger.Log(1, "failed to expire pam session", session.ID, err.Error())
			continue
		}
		logger.Log(1, "expired pam session", session.ID, "on item", session.ItemID)
		swept++
	}
	return swept
}

// ManageSessionLeases - goroutine which expires overdue credential leases
func ManageSessionLeases(ctx context.Context) {
	logger.Log(2, "Credential lease management started")
	SweepExpiredSessions()

	duration := time.Minute * SESSION_SWEEP_INTERVAL
	delay := time.NewTimer(duration)
	for {
		select {
		case <-ctx.Done():
			return
		case <-delay.C:
			SweepExpiredSessions()
			delay.Reset(duration)
		}
	}
}

// == private ==

func upsertPamSession(session *models.PamSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return database.Insert(session.ID, string(data), database.PAM_SESSIONS_TABLE_NAME)
}
