package service

import (
	"encoding/json"
	"fmt"
	"time"

	"brand-portal/internal/auth"
	"brand-portal/internal/models"
	"brand-portal/internal/query"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Publisher pushes freshly created notifications to connected clients.
type Publisher interface {
	Publish(n *models.Notification)
}

type NotificationFilter struct {
	UnreadOnly bool
	Page       query.Page
}

type NotificationInput struct {
	UserID  uint            `json:"user_id"`
	Title   string          `json:"title"`
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
}

type NotificationService struct {
	db  *gorm.DB
	hub Publisher
	log *zap.SugaredLogger
}

func NewNotificationService(db *gorm.DB, hub Publisher, log *zap.SugaredLogger) *NotificationService {
	return &NotificationService{db: db, hub: hub, log: log}
}

// List returns one page of the caller's notifications plus the unread count.
func (s *NotificationService) List(caller auth.Identity, f NotificationFilter) ([]models.Notification, query.Pagination, int64, error) {
	b := query.New().Where("user_id = ?", caller.UserID)
	if f.UnreadOnly {
		b.Where("read_at IS NULL")
	}

	var total int64
	if err := b.Apply(s.db.Model(&models.Notification{})).Count(&total).Error; err != nil {
		return nil, query.Pagination{}, 0, fmt.Errorf("count notifications: %w", err)
	}

	rows := []models.Notification{}
	err := b.Apply(s.db.Model(&models.Notification{})).
		Order("created_at DESC").
		Offset(f.Page.Offset()).
		Limit(f.Page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, query.Pagination{}, 0, fmt.Errorf("list notifications: %w", err)
	}

	var unread int64
	err = s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", caller.UserID).
		Count(&unread).Error
	if err != nil {
		return nil, query.Pagination{}, 0, fmt.Errorf("count unread: %w", err)
	}

	return rows, query.Paginate(total, f.Page), unread, nil
}

func (s *NotificationService) MarkRead(caller auth.Identity, id uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, caller.UserID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return fmt.Errorf("mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFound("Notification not found.")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(caller auth.Identity) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", caller.UserID).
		Update("read_at", time.Now()).Error
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

func (s *NotificationService) Create(in NotificationInput) (*models.Notification, error) {
	if in.UserID == 0 || in.Title == "" || in.Message == "" {
		return nil, Invalid("User ID, title, and message are required.")
	}

	typ := in.Type
	if typ == "" {
		typ = "info"
	}

	n := models.Notification{
		UserID:  in.UserID,
		Title:   in.Title,
		Message: in.Message,
		Type:    typ,
		Data:    in.Data,
	}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if s.hub != nil {
		s.hub.Publish(&n)
	}
	return &n, nil
}

func (s *NotificationService) Delete(caller auth.Identity, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, caller.UserID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFound("Notification not found.")
	}
	return nil
}

// Notify is the internal producer used by other services for user-facing
// events.
func (s *NotificationService) Notify(userID uint, title, message, typ string, data json.RawMessage) error {
	_, err := s.Create(NotificationInput{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
		Data:    data,
	})
	return err
}
