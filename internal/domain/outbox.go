package domain

import (
	"encoding/json"
	"time"
)

// OutboxItem 待同步的本地暂存提交
// Delivery status is deliberately NOT a field here: it only exists inside a
// running sync pass (see service.SyncReport), the durable store never
// records it.
type OutboxItem struct {
	ID          string          `json:"id"`
	SchoolID    string          `json:"schoolId"`
	Label       string          `json:"label"`
	Destination string          `json:"destination"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SyncStatus 单个 outbox 条目在一次同步中的状态
type SyncStatus string

const (
	SyncPending   SyncStatus = "pending"
	SyncInFlight  SyncStatus = "in_flight"
	SyncDelivered SyncStatus = "delivered"
	SyncFailed    SyncStatus = "failed"
)
