package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"brand-portal/internal/config"
	"brand-portal/internal/database"
	"brand-portal/internal/models"
	"brand-portal/internal/service"
	"brand-portal/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStorage struct {
	mu    sync.Mutex
	next  int
	files map[string][]byte
}

func (f *fakeStorage) Save(r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	key := fmt.Sprintf("file-%d", f.next)
	f.files[key] = data
	return key, nil
}

func (f *fakeStorage) Open(key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[key]
	if !ok {
		return nil, fmt.Errorf("no such key %q", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "/uploads/" + key
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	users  *service.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			RefreshSecret: "test-refresh-secret",
			Expiration:    "1h",
			RefreshExpiry: "24h",
		},
		Storage: config.StorageConfig{
			Provider:      "local",
			MaxUploadSize: 10 << 20,
		},
	}

	log := zap.NewNop().Sugar()
	router := gin.New()
	Setup(router, db, &fakeStorage{files: map[string][]byte{}}, ws.NewHub(), cfg, log)

	return &testServer{
		router: router,
		db:     db,
		users:  service.NewUserService(db, log),
	}
}

func (s *testServer) createUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	user, err := s.users.Create(service.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		Name:     username,
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	body, _ := json.Marshal(gin.H{"username": username, "password": "secret123"})
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", "application/json", bytes.NewReader(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (s *testServer) do(method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/v1/health", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/assets", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required.", message(t, w))

	w = s.do(http.MethodGet, "/api/v1/assets", "garbage", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token.", message(t, w))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", models.RoleUser)

	token := s.login(t, "alice")

	w := s.do(http.MethodGet, "/api/v1/auth/profile", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", models.RoleUser)

	body, _ := json.Marshal(gin.H{"username": "alice", "password": "wrong"})
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", "application/json", bytes.NewReader(body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials.", message(t, w))
}

func TestAssetUploadListDownload(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", models.RoleUser)
	token := s.login(t, "alice")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.WriteField("name", "Company Logo"))
	require.NoError(t, form.WriteField("tags", "logo, brand"))
	require.NoError(t, form.Close())

	w := s.do(http.MethodPost, "/api/v1/assets", token, form.FormDataContentType(), &buf)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Asset struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"asset"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Company Logo", created.Asset.Name)

	w = s.do(http.MethodGet, "/api/v1/assets", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Assets     []json.RawMessage `json:"assets"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Assets, 1)
	assert.Equal(t, int64(1), listed.Pagination.Total)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/assets/%d/download", created.Asset.ID), token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "logo.png")
}

func TestAssetUploadWithoutFile(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", models.RoleUser)
	token := s.login(t, "alice")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("name", "ghost"))
	require.NoError(t, form.Close())

	w := s.do(http.MethodPost, "/api/v1/assets", token, form.FormDataContentType(), &buf)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded.", message(t, w))
}

func TestFolderDuplicateIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", models.RoleUser)
	token := s.login(t, "alice")

	body, _ := json.Marshal(gin.H{"name": "Campaigns"})
	w := s.do(http.MethodPost, "/api/v1/folders", token, "application/json", bytes.NewReader(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body, _ = json.Marshal(gin.H{"name": "Campaigns"})
	w = s.do(http.MethodPost, "/api/v1/folders", token, "application/json", bytes.NewReader(body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Folder with this name already exists in this location.", message(t, w))
}

func TestBrandWritesAreAdminOnly(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", models.RoleUser)
	s.createUser(t, "root", models.RoleAdmin)

	form := url.Values{"name": {"Acme"}}

	token := s.login(t, "alice")
	w := s.do(http.MethodPost, "/api/v1/brands", token, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required.", message(t, w))

	admin := s.login(t, "root")
	w = s.do(http.MethodPost, "/api/v1/brands", admin, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// reads stay open to everyone signed in
	w = s.do(http.MethodGet, "/api/v1/brands", token, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssetExportCSV(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", models.RoleUser)
	token := s.login(t, "alice")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.WriteField("name", "Quarterly Report"))
	require.NoError(t, form.Close())

	w := s.do(http.MethodPost, "/api/v1/assets", token, form.FormDataContentType(), &buf)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/assets/export/csv", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "assets_export.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2, "header plus one record")
	assert.Contains(t, lines[0], "Uploader")
	assert.Contains(t, lines[1], "Quarterly Report")
}

func TestMalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", models.RoleUser)
	token := s.login(t, "alice")

	w := s.do(http.MethodGet, "/api/v1/assets/abc", token, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found.", message(t, w))
}

func TestDeactivatedUserTokenRejected(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "alice", models.RoleUser)
	token := s.login(t, "alice")

	require.NoError(t, s.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("status", "suspended").Error)

	w := s.do(http.MethodGet, "/api/v1/assets", token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token.", message(t, w))
}
