package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// AssetStatus is the lifecycle state of an asset. Deleting an asset archives
// it; archived rows stay in the table but are excluded from default queries.
type AssetStatus string

const (
	AssetActive   AssetStatus = "active"
	AssetArchived AssetStatus = "archived"
)

// File type categories derived from the MIME type at upload time.
const (
	FileTypeImage    = "image"
	FileTypeVideo    = "video"
	FileTypeAudio    = "audio"
	FileTypeDocument = "document"
	FileTypeOther    = "other"
)

type Asset struct {
	ID          uint        `json:"id" gorm:"primarykey"`
	Name        string      `json:"name" gorm:"not null"`
	Description string      `json:"description"`
	FilePath    string      `json:"file_path" gorm:"not null"`
	FileName    string      `json:"file_name" gorm:"not null"`
	FileSize    int64       `json:"file_size"`
	FileType    string      `json:"file_type" gorm:"index"`
	MimeType    string      `json:"mime_type"`
	FolderID    *uint       `json:"folder_id" gorm:"index"`
	BrandID     *uint       `json:"brand_id" gorm:"index"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	Tags        StringList  `json:"tags" gorm:"type:jsonb"`
	Status      AssetStatus `json:"status" gorm:"not null;default:active;index"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*l = nil
		return nil
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*l = result
	return nil
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// FileTypeFromMime maps a declared MIME type onto a file-type category.
func FileTypeFromMime(mimeType string) string {
	mt := strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(mt, "image/"):
		return FileTypeImage
	case strings.HasPrefix(mt, "video/"):
		return FileTypeVideo
	case strings.HasPrefix(mt, "audio/"):
		return FileTypeAudio
	case strings.Contains(mt, "pdf"),
		strings.Contains(mt, "document"),
		strings.Contains(mt, "spreadsheet"),
		strings.Contains(mt, "presentation"):
		return FileTypeDocument
	default:
		return FileTypeOther
	}
}

// ParseTags accepts either a JSON array of strings or a comma separated list.
// A single tag containing a literal comma is an accepted limitation of the
// fallback branch.
func ParseTags(input string) StringList {
	if input == "" {
		return nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(input), &tags); err == nil {
		return tags
	}

	for _, part := range strings.Split(input, ",") {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}

func (Asset) TableName() string {
	return "assets"
}
