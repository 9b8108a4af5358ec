package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"brand-portal/internal/auth"
	"brand-portal/internal/models"
	"brand-portal/internal/query"
	"brand-portal/internal/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssetDetail is an asset row joined with its display names.
type AssetDetail struct {
	models.Asset
	UserName   string `json:"user_name"`
	BrandName  string `json:"brand_name"`
	FolderName string `json:"folder_name"`
}

type AssetFilter struct {
	Search   string
	Type     string
	FolderID string
	BrandID  string
	Page     query.Page
}

type CreateAssetInput struct {
	Name        string
	Description string
	FolderID    string
	BrandID     string
	Tags        string
}

type UpdateAssetInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	FolderID    *uint   `json:"folder_id"`
	BrandID     *uint   `json:"brand_id"`
	Tags        *string `json:"tags"`
}

type ShareInput struct {
	ShareType   string          `json:"shareType"`
	SharedWith  *uint           `json:"sharedWith"`
	ExpiresAt   *time.Time      `json:"expiresAt"`
	Permissions json.RawMessage `json:"permissions"`
}

type AssetService struct {
	db     *gorm.DB
	files  storage.Storage
	notifs *NotificationService
	log    *zap.SugaredLogger
}

func NewAssetService(db *gorm.DB, files storage.Storage, notifs *NotificationService, log *zap.SugaredLogger) *AssetService {
	return &AssetService{db: db, files: files, notifs: notifs, log: log}
}

func (s *AssetService) filterFor(caller auth.Identity, f AssetFilter) *query.Builder {
	return query.New().
		Where("assets.status = ?", models.AssetActive).
		Visible(caller, "assets.brand_id", "assets.user_id").
		Search(f.Search, "assets.name", "assets.description").
		Eq("assets.file_type", f.Type).
		EqID("assets.folder_id", f.FolderID).
		EqID("assets.brand_id", f.BrandID)
}

func (s *AssetService) detailQuery() *gorm.DB {
	return s.db.Model(&models.Asset{}).
		Select("assets.*, users.name AS user_name, brands.name AS brand_name, folders.name AS folder_name").
		Joins("LEFT JOIN users ON users.id = assets.user_id").
		Joins("LEFT JOIN brands ON brands.id = assets.brand_id").
		Joins("LEFT JOIN folders ON folders.id = assets.folder_id")
}

// List returns one page of active assets visible to the caller, newest
// first, plus the pagination summary. Issues one count and one page query.
func (s *AssetService) List(caller auth.Identity, f AssetFilter) ([]AssetDetail, query.Pagination, error) {
	b := s.filterFor(caller, f)

	var total int64
	if err := b.Apply(s.db.Model(&models.Asset{})).Count(&total).Error; err != nil {
		return nil, query.Pagination{}, fmt.Errorf("count assets: %w", err)
	}

	rows := []AssetDetail{}
	err := b.Apply(s.detailQuery()).
		Order("assets.created_at DESC").
		Offset(f.Page.Offset()).
		Limit(f.Page.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list assets: %w", err)
	}

	return rows, query.Paginate(total, f.Page), nil
}

// Get returns a single active asset with joined names. Archived rows are
// not found; non-admin callers must be the uploader or brand-matched.
func (s *AssetService) Get(caller auth.Identity, id uint) (*AssetDetail, error) {
	var row AssetDetail
	err := s.detailQuery().
		Where("assets.id = ? AND assets.status = ?", id, models.AssetActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Asset not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}

	if !caller.IsAdmin() && row.UserID != caller.UserID && !caller.BrandMatches(row.BrandID) {
		return nil, Forbidden("Access denied.")
	}
	return &row, nil
}

// Create persists metadata for an already-stored file payload. If the
// insert fails the payload is deleted best-effort before the error is
// returned.
func (s *AssetService) Create(caller auth.Identity, file *StoredFile, in CreateAssetInput) (*AssetDetail, error) {
	if file == nil {
		return nil, Invalid("No file uploaded.")
	}

	name := in.Name
	if name == "" {
		name = file.OriginalName
	}

	brandID := parseID(in.BrandID)
	if brandID == nil {
		brandID = caller.BrandID
	}

	asset := models.Asset{
		Name:        name,
		Description: in.Description,
		FilePath:    file.Key,
		FileName:    file.OriginalName,
		FileSize:    file.Size,
		FileType:    models.FileTypeFromMime(file.MimeType),
		MimeType:    file.MimeType,
		FolderID:    parseID(in.FolderID),
		BrandID:     brandID,
		UserID:      caller.UserID,
		Tags:        models.ParseTags(in.Tags),
		Status:      models.AssetActive,
	}

	if err := s.db.Create(&asset).Error; err != nil {
		if cleanupErr := s.files.Delete(file.Key); cleanupErr != nil {
			s.log.Errorw("failed to delete orphaned upload", "key", file.Key, "error", cleanupErr)
		}
		return nil, fmt.Errorf("create asset: %w", err)
	}

	return s.Get(caller, asset.ID)
}

// mutable loads an active asset and checks the caller may modify it. Only
// the uploader or an admin can mutate; brand visibility is not enough.
func (s *AssetService) mutable(caller auth.Identity, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.Where("id = ? AND status = ?", id, models.AssetActive).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Asset not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	if !caller.IsAdmin() && asset.UserID != caller.UserID {
		return nil, Forbidden("Access denied.")
	}
	return &asset, nil
}

// Update overwrites only the supplied fields and returns the joined record.
func (s *AssetService) Update(caller auth.Identity, id uint, in UpdateAssetInput) (*AssetDetail, error) {
	asset, err := s.mutable(caller, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.FolderID != nil {
		updates["folder_id"] = in.FolderID
	}
	if in.BrandID != nil {
		updates["brand_id"] = in.BrandID
	}
	if in.Tags != nil {
		updates["tags"] = models.ParseTags(*in.Tags)
	}

	if len(updates) > 0 {
		if err := s.db.Model(asset).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update asset: %w", err)
		}
	}

	return s.Get(caller, id)
}

// Delete archives the asset. The stored payload is kept; a second delete
// reports NotFound because the row is no longer active.
func (s *AssetService) Delete(caller auth.Identity, id uint) error {
	asset, err := s.mutable(caller, id)
	if err != nil {
		return err
	}
	if err := s.db.Model(asset).Update("status", models.AssetArchived).Error; err != nil {
		return fmt.Errorf("archive asset: %w", err)
	}
	return nil
}

// Share creates a share record for the asset. Link shares get a random
// token; direct shares notify the recipient.
func (s *AssetService) Share(caller auth.Identity, id uint, in ShareInput) (*models.AssetShare, error) {
	asset, err := s.mutable(caller, id)
	if err != nil {
		return nil, err
	}

	share := models.AssetShare{
		AssetID:     asset.ID,
		SharedBy:    caller.UserID,
		SharedWith:  in.SharedWith,
		ShareType:   in.ShareType,
		ExpiresAt:   in.ExpiresAt,
		Permissions: in.Permissions,
	}
	if share.Permissions == nil {
		share.Permissions = json.RawMessage("{}")
	}
	if in.ShareType == models.ShareTypeLink {
		token, err := shareToken()
		if err != nil {
			return nil, fmt.Errorf("generate share token: %w", err)
		}
		share.ShareToken = &token
	}

	if err := s.db.Create(&share).Error; err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}

	if in.SharedWith != nil && s.notifs != nil {
		data, _ := json.Marshal(map[string]interface{}{"asset_id": asset.ID, "share_id": share.ID})
		if err := s.notifs.Notify(*in.SharedWith, "Asset shared with you",
			fmt.Sprintf("%q was shared with you.", asset.Name), "share", data); err != nil {
			s.log.Errorw("failed to notify share recipient", "user_id", *in.SharedWith, "error", err)
		}
	}

	return &share, nil
}

// ListAll returns every active asset visible to the caller, for exports.
func (s *AssetService) ListAll(caller auth.Identity) ([]AssetDetail, error) {
	b := s.filterFor(caller, AssetFilter{})
	rows := []AssetDetail{}
	err := b.Apply(s.detailQuery()).
		Order("assets.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("export assets: %w", err)
	}
	return rows, nil
}
