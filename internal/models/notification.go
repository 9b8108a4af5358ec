package models

import (
	"encoding/json"
	"time"
)

type Notification struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Title     string          `json:"title" gorm:"not null"`
	Message   string          `json:"message" gorm:"not null"`
	Type      string          `json:"type" gorm:"not null;default:info"`
	Data      json.RawMessage `json:"data" gorm:"type:jsonb"`
	CreatedAt time.Time       `json:"created_at"`
	ReadAt    *time.Time      `json:"read_at"`
}

func (n *Notification) Unread() bool {
	return n.ReadAt == nil
}
