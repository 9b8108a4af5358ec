package service

import (
	"errors"
	"fmt"

	"brand-portal/internal/auth"
	"brand-portal/internal/models"
	"brand-portal/internal/query"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type UserFilter struct {
	Search  string
	Role    string
	BrandID string
	Page    query.Page
}

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	BrandID  *uint  `json:"brand_id"`
	Status   string `json:"status"`
}

type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	BrandID  *uint   `json:"brand_id"`
	Status   *string `json:"status"`
}

type UserService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewUserService(db *gorm.DB, log *zap.SugaredLogger) *UserService {
	return &UserService{db: db, log: log}
}

func (s *UserService) List(f UserFilter) ([]models.User, query.Pagination, error) {
	b := query.New().
		Search(f.Search, "username", "email", "name").
		Eq("role", f.Role).
		EqID("brand_id", f.BrandID)

	var total int64
	if err := b.Apply(s.db.Model(&models.User{})).Count(&total).Error; err != nil {
		return nil, query.Pagination{}, fmt.Errorf("count users: %w", err)
	}

	users := []models.User{}
	err := b.Apply(s.db.Model(&models.User{})).
		Order("created_at DESC").
		Offset(f.Page.Offset()).
		Limit(f.Page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list users: %w", err)
	}

	return users, query.Paginate(total, f.Page), nil
}

// Get returns a user profile. Non-admins can only read their own.
func (s *UserService) Get(caller auth.Identity, id uint) (*models.User, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, Forbidden("Access denied.")
	}
	return s.byID(id)
}

func (s *UserService) byID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("User not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) credentialsTaken(username, email string, excludeID uint) (bool, error) {
	q := s.db.Model(&models.User{}).Where("username = ? OR email = ?", username, email)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user credentials: %w", err)
	}
	return count > 0, nil
}

func (s *UserService) Create(in CreateUserInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, Invalid("Username, email, password, and name are required.")
	}

	taken, err := s.credentialsTaken(in.Username, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Conflict("User with this username or email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	status := in.Status
	if status == "" {
		status = models.StatusActive
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Name:     in.Name,
		Role:     role,
		BrandID:  in.BrandID,
		Status:   status,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("User with this username or email already exists.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update edits a profile. Non-admins may only edit their own username,
// email and name; role, brand and status stay admin-only.
func (s *UserService) Update(caller auth.Identity, id uint, in UpdateUserInput) (*models.User, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, Forbidden("Access denied.")
	}

	user, err := s.byID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Username != nil {
		updates["username"] = *in.Username
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if caller.IsAdmin() {
		if in.Role != nil {
			updates["role"] = *in.Role
		}
		if in.BrandID != nil {
			updates["brand_id"] = in.BrandID
		}
		if in.Status != nil {
			updates["status"] = *in.Status
		}
	}
	if len(updates) == 0 {
		return nil, Invalid("No valid fields to update.")
	}

	if in.Username != nil || in.Email != nil {
		username := user.Username
		if in.Username != nil {
			username = *in.Username
		}
		email := user.Email
		if in.Email != nil {
			email = *in.Email
		}
		taken, err := s.credentialsTaken(username, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, Conflict("Username or email already exists.")
		}
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Username or email already exists.")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.byID(id)
}

// Delete removes a user permanently. Callers cannot delete themselves.
func (s *UserService) Delete(caller auth.Identity, id uint) error {
	if caller.UserID == id {
		return Invalid("You cannot delete your own account.")
	}

	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFound("User not found.")
	}
	return nil
}

// ActiveByID returns the user only if the account is still active, for
// token validation paths.
func (s *UserService) ActiveByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND status = ?", id, models.StatusActive).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unauthorized("Invalid token.")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies a username-or-email plus password pair against an
// active account.
func (s *UserService) Authenticate(login, password string) (*models.User, error) {
	if login == "" || password == "" {
		return nil, Invalid("Username and password are required.")
	}

	var user models.User
	err := s.db.Where("username = ? OR email = ?", login, login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unauthorized("Invalid credentials.")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Status != models.StatusActive {
		return nil, Unauthorized("Account is not active.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, Unauthorized("Invalid credentials.")
	}
	return &user, nil
}

// ChangePassword swaps the caller's password after checking the current one.
func (s *UserService) ChangePassword(caller auth.Identity, current, next string) error {
	if current == "" || next == "" {
		return Invalid("Current and new passwords are required.")
	}

	user, err := s.byID(caller.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return Invalid("Current password is incorrect.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.Model(user).Update("password", string(hash)).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
