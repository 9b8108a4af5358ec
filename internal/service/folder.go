package service

import (
	"errors"
	"fmt"

	"brand-portal/internal/auth"
	"brand-portal/internal/models"
	"brand-portal/internal/query"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FolderDetail is a folder row joined with its brand name.
type FolderDetail struct {
	models.Folder
	BrandName string `json:"brand_name"`
}

type FolderFilter struct {
	BrandID  string
	ParentID string
}

type FolderInput struct {
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
	BrandID  *uint  `json:"brand_id"`
}

type FolderService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewFolderService(db *gorm.DB, log *zap.SugaredLogger) *FolderService {
	return &FolderService{db: db, log: log}
}

func (s *FolderService) detailQuery() *gorm.DB {
	return s.db.Model(&models.Folder{}).
		Select("folders.*, brands.name AS brand_name").
		Joins("LEFT JOIN brands ON brands.id = folders.brand_id")
}

// List returns the caller's folders, newest first. With no parent filter
// only root-level folders are returned.
func (s *FolderService) List(caller auth.Identity, f FolderFilter) ([]FolderDetail, error) {
	b := query.New().
		Where("folders.user_id = ?", caller.UserID).
		EqID("folders.brand_id", f.BrandID)

	if f.ParentID != "" {
		b.EqID("folders.parent_id", f.ParentID)
	} else {
		b.Where("folders.parent_id IS NULL")
	}

	rows := []FolderDetail{}
	err := b.Apply(s.detailQuery()).
		Order("folders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return rows, nil
}

// Get returns one of the caller's folders. Folders are private: other
// users' folders are not found rather than forbidden.
func (s *FolderService) Get(caller auth.Identity, id uint) (*FolderDetail, error) {
	var row FolderDetail
	err := s.detailQuery().
		Where("folders.id = ? AND folders.user_id = ?", id, caller.UserID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Folder not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &row, nil
}

// nameTaken checks the (name, parent, owner) uniqueness rule, optionally
// excluding one folder id (for updates).
func (s *FolderService) nameTaken(caller auth.Identity, name string, parentID *uint, excludeID uint) (bool, error) {
	q := s.db.Model(&models.Folder{}).
		Where("name = ? AND user_id = ?", name, caller.UserID)
	if parentID != nil {
		q = q.Where("parent_id = ?", *parentID)
	} else {
		q = q.Where("parent_id IS NULL")
	}
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check folder name: %w", err)
	}
	return count > 0, nil
}

func (s *FolderService) Create(caller auth.Identity, in FolderInput) (*FolderDetail, error) {
	if in.Name == "" {
		return nil, Invalid("Folder name is required.")
	}

	taken, err := s.nameTaken(caller, in.Name, in.ParentID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Conflict("Folder with this name already exists in this location.")
	}

	folder := models.Folder{
		Name:     in.Name,
		ParentID: in.ParentID,
		BrandID:  in.BrandID,
		UserID:   caller.UserID,
	}
	if err := s.db.Create(&folder).Error; err != nil {
		// the unique index wins a concurrent identical create
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Folder with this name already exists in this location.")
		}
		return nil, fmt.Errorf("create folder: %w", err)
	}

	return s.Get(caller, folder.ID)
}

func (s *FolderService) Update(caller auth.Identity, id uint, in FolderInput) (*FolderDetail, error) {
	if in.Name == "" {
		return nil, Invalid("Folder name is required.")
	}

	var folder models.Folder
	err := s.db.Where("id = ? AND user_id = ?", id, caller.UserID).First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Folder not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}

	taken, err := s.nameTaken(caller, in.Name, in.ParentID, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Conflict("Folder with this name already exists in this location.")
	}

	updates := map[string]interface{}{
		"name":      in.Name,
		"parent_id": in.ParentID,
		"brand_id":  in.BrandID,
	}
	if err := s.db.Model(&folder).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Folder with this name already exists in this location.")
		}
		return nil, fmt.Errorf("update folder: %w", err)
	}

	return s.Get(caller, id)
}

// Delete removes a folder for good. Blocked while subfolders exist.
func (s *FolderService) Delete(caller auth.Identity, id uint) error {
	var folder models.Folder
	err := s.db.Where("id = ? AND user_id = ?", id, caller.UserID).First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Folder not found.")
	}
	if err != nil {
		return fmt.Errorf("get folder: %w", err)
	}

	var children int64
	if err := s.db.Model(&models.Folder{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
		return fmt.Errorf("check subfolders: %w", err)
	}
	if children > 0 {
		return Conflict("Cannot delete folder that contains subfolders.")
	}

	if err := s.db.Delete(&folder).Error; err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}
