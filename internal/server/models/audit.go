package models

import (
	"encoding/json"
	"time"
)

// AuditRecord is an append-only log entry describing a mutating action,
// consumed by the notification feed. Meta is free-form JSON supplied by the
// producing handler (e.g. the changed fields).
type AuditRecord struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UserID    int64           `json:"userId"`
	UserEmail string          `json:"userEmail"`
	IP        string          `json:"ip,omitempty"`
	UA        string          `json:"ua,omitempty"`
}
