package service

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"brand-portal/internal/auth"
	"brand-portal/internal/database"
	"brand-portal/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// memStorage keeps payloads in a map so storage side effects can be asserted.
type memStorage struct {
	mu    sync.Mutex
	next  int
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Save(r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	key := fmt.Sprintf("%d%s", m.next, filepath.Ext(originalName))
	m.files[key] = data
	return key, nil
}

func (m *memStorage) Open(key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("no such key %q", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

func (m *memStorage) PublicURL(key string) string {
	return "/uploads/" + key
}

func (m *memStorage) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[key]
	return ok
}

func seedBrand(t *testing.T, db *gorm.DB, name string) models.Brand {
	t.Helper()
	brand := models.Brand{Name: name, Status: models.StatusActive}
	require.NoError(t, db.Create(&brand).Error)
	return brand
}

func seedUser(t *testing.T, db *gorm.DB, username, role string, brandID *uint) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Name:     username,
		Role:     role,
		BrandID:  brandID,
		Status:   models.StatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedAsset(t *testing.T, db *gorm.DB, name string, userID uint, brandID *uint) models.Asset {
	t.Helper()
	asset := models.Asset{
		Name:     name,
		FilePath: "files/" + name,
		FileName: name,
		FileType: models.FileTypeImage,
		MimeType: "image/png",
		UserID:   userID,
		BrandID:  brandID,
		Status:   models.AssetActive,
	}
	require.NoError(t, db.Create(&asset).Error)
	return asset
}

func identity(u models.User) auth.Identity {
	return auth.IdentityOf(&u)
}
