package mq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
	"github.com/grantlink/grantlink/models"
	"github.com/grantlink/grantlink/servercfg"
)

var checkin_force_send = 0

// PublishAuditEvent - sends one lifecycle event to the audit topic; a noop
// when no broker is configured
func PublishAuditEvent(topic int, action, actor, subject, platform string, details map[string]any) error {
	if !servercfg.IsMessageQueueBackend() {
		return nil
	}
	event := models.AuditEvent{
		ID:       uuid.NewString(),
		Topic:    topic,
		Action:   action,
		Actor:    actor,
		Subject:  subject,
		Platform: platform,
		At:       time.Now().UTC(),
		Details:  details,
	}
	data, err := json.Marshal(&event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal audit event")
	}
	dest := fmt.Sprintf("audit/%s/%d", servercfg.GetServer(), topic)
	if token := mqclient.Publish(dest, 0, true, data); !token.WaitTimeout(MQ_TIMEOUT*time.Second) || token.Error() != nil {
		var errMsg string
		if token.Error() != nil {
			errMsg = token.Error().Error()
		}
		logger.Log(1, "failed to publish audit event", action, errMsg)
		return errors.Wrap(token.Error(), "failed to publish audit event")
	}
	logger.Log(3, "published audit event", action, "for", subject)
	return nil
}

// sendServerCheckin - publishes a liveness marker for dashboards watching the broker
func sendServerCheckin() {
	checkin_force_send++
	if checkin_force_send == 5 {
		checkin_force_send = 0
		err := logic.TimerCheckpoint() // run telemetry & log dumps if 24 hours has passed..
		if err != nil {
			logger.Log(3, "error occurred on timer,", err.Error())
		}
	}
	if !IsConnected() {
		return
	}
	dest := fmt.Sprintf("checkin/%s", servercfg.GetServer())
	data, err := json.Marshal(map[string]any{
		"version": servercfg.GetVersion(),
		"time":    time.Now().Unix(),
	})
	if err != nil {
		return
	}
	if token := mqclient.Publish(dest, 0, false, data); !token.WaitTimeout(MQ_TIMEOUT*time.Second) || token.Error() != nil {
		logger.Log(2, "failed to publish server checkin")
	}
}
