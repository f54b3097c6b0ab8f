package models

import "time"

// AuditEvent - lifecycle record published to the broker when one is configured
type AuditEvent struct {
	ID       string         `json:"id"`
	Topic    int            `json:"topic"`
	Action   string         `json:"action"`
	Actor    string         `json:"actor,omitempty"`
	Subject  string         `json:"subject"`
	Platform string         `json:"platform,omitempty"`
	At       time.Time      `json:"at"`
	Details  map[string]any `json:"details,omitempty"`
}

// == TOPICS ==

// EventTopics - hold topic IDs for each type of possible event
var EventTopics = struct {
	Test            int
	RequestCreated  int
	ItemValidated   int
	PamCheckout     int
	PamCheckin      int
	ItemConfigured  int
	IdentityCreated int
}{
	Test:            0,
	RequestCreated:  1,
	ItemValidated:   2,
	PamCheckout:     3,
	PamCheckin:      4,
	ItemConfigured:  5,
	IdentityCreated: 6,
}
