package models

import (
	"encoding/json"
	"time"
)

const (
	ShareTypeLink   = "link"
	ShareTypeDirect = "direct"
)

// AssetShare records a single grant. Link shares carry an unguessable token;
// direct shares reference the recipient user instead.
type AssetShare struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	AssetID     uint            `json:"asset_id" gorm:"not null;index"`
	SharedBy    uint            `json:"shared_by" gorm:"not null"`
	SharedWith  *uint           `json:"shared_with"`
	ShareType   string          `json:"share_type" gorm:"not null"`
	ShareToken  *string         `json:"share_token" gorm:"uniqueIndex"`
	ExpiresAt   *time.Time      `json:"expires_at"`
	Permissions json.RawMessage `json:"permissions" gorm:"type:jsonb"`
	CreatedAt   time.Time       `json:"created_at"`
}
