package service

import (
	"errors"
	"fmt"

	"brand-portal/internal/models"
	"brand-portal/internal/query"
	"brand-portal/internal/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BrandFilter struct {
	Search string
	Status string
	Page   query.Page
}

type BrandInput struct {
	Name        string
	Description string
	Status      string
}

type BrandService struct {
	db    *gorm.DB
	files storage.Storage
	log   *zap.SugaredLogger
}

func NewBrandService(db *gorm.DB, files storage.Storage, log *zap.SugaredLogger) *BrandService {
	return &BrandService{db: db, files: files, log: log}
}

func (s *BrandService) List(f BrandFilter) ([]models.Brand, query.Pagination, error) {
	b := query.New().
		Search(f.Search, "name", "description").
		Eq("status", f.Status)

	var total int64
	if err := b.Apply(s.db.Model(&models.Brand{})).Count(&total).Error; err != nil {
		return nil, query.Pagination{}, fmt.Errorf("count brands: %w", err)
	}

	brands := []models.Brand{}
	err := b.Apply(s.db.Model(&models.Brand{})).
		Order("created_at DESC").
		Offset(f.Page.Offset()).
		Limit(f.Page.Limit).
		Find(&brands).Error
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list brands: %w", err)
	}

	return brands, query.Paginate(total, f.Page), nil
}

func (s *BrandService) Get(id uint) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.First(&brand, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Brand not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &brand, nil
}

func (s *BrandService) nameTaken(name string, excludeID uint) (bool, error) {
	q := s.db.Model(&models.Brand{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check brand name: %w", err)
	}
	return count > 0, nil
}

// Create adds a brand; logo is an optional already-stored payload.
func (s *BrandService) Create(in BrandInput, logo *StoredFile) (*models.Brand, error) {
	if in.Name == "" {
		return nil, Invalid("Brand name is required.")
	}

	taken, err := s.nameTaken(in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Conflict("Brand with this name already exists.")
	}

	status := in.Status
	if status == "" {
		status = models.StatusActive
	}

	brand := models.Brand{
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
	}
	if logo != nil {
		brand.LogoURL = s.files.PublicURL(logo.Key)
	}

	if err := s.db.Create(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Brand with this name already exists.")
		}
		return nil, fmt.Errorf("create brand: %w", err)
	}
	return &brand, nil
}

func (s *BrandService) Update(id uint, in BrandInput, logo *StoredFile) (*models.Brand, error) {
	if in.Name == "" {
		return nil, Invalid("Brand name is required.")
	}

	brand, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(in.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Conflict("Brand with this name already exists.")
	}

	updates := map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
	}
	if in.Status != "" {
		updates["status"] = in.Status
	}
	if logo != nil {
		updates["logo_url"] = s.files.PublicURL(logo.Key)
	}

	if err := s.db.Model(brand).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Brand with this name already exists.")
		}
		return nil, fmt.Errorf("update brand: %w", err)
	}
	return s.Get(id)
}

// Delete removes a brand unless users or folders still reference it.
func (s *BrandService) Delete(id uint) error {
	brand, err := s.Get(id)
	if err != nil {
		return err
	}

	var users, folders int64
	if err := s.db.Model(&models.User{}).Where("brand_id = ?", id).Count(&users).Error; err != nil {
		return fmt.Errorf("check brand users: %w", err)
	}
	if err := s.db.Model(&models.Folder{}).Where("brand_id = ?", id).Count(&folders).Error; err != nil {
		return fmt.Errorf("check brand folders: %w", err)
	}
	if users > 0 || folders > 0 {
		return Conflict("Cannot delete brand that has associated users or folders.")
	}

	if err := s.db.Delete(brand).Error; err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	return nil
}
