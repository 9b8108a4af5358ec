package models

import "time"

// Folder names are unique per (parent, owner). The composite index closes the
// create race at the store level; NULL parents fall back to the pre-insert
// check since the database treats NULLs as distinct.
type Folder struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_folders_name_parent_owner"`
	ParentID  *uint     `json:"parent_id" gorm:"uniqueIndex:idx_folders_name_parent_owner"`
	BrandID   *uint     `json:"brand_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_folders_name_parent_owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
