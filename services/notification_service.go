package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vonvha/Nutri-Smart/models"
)

const (
	NotificationAlert = "alert"
	NotificationGoal  = "goal"
	NotificationInfo  = "info"
)

var ErrNotFound = errors.New("not found")

// Notifier is how the core reports user-facing events. Emit never fails the
// caller.
type Notifier interface {
	Emit(ctx context.Context, email, typ, title, description string)
}

// NotificationView is the list shape the front end renders.
type NotificationView struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	Description string `json:"description"`
	IsRead      bool   `json:"isRead"`
}

// NotificationService persists notifications, then fans them out over
// websockets and mobile push when those are configured.
type NotificationService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
	log  zerolog.Logger
	now  func() time.Time
}

// NewNotificationService wires the store. hub and push may be nil.
func NewNotificationService(db *gorm.DB, hub *RealtimeHub, push *PushService, log zerolog.Logger) *NotificationService {
	return &NotificationService{db: db, hub: hub, push: push, log: log, now: time.Now}
}

func (s *NotificationService) Emit(ctx context.Context, email, typ, title, description string) {
	n := &models.Notification{
		UserEmail:   email,
		Type:        typ,
		Title:       title,
		Description: description,
		CreatedAt:   s.now(),
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		s.log.Error().Err(err).Str("user", email).Str("type", typ).Msg("saving notification failed")
		return
	}

	if s.hub != nil {
		s.hub.Broadcast(email, map[string]any{
			"kind":         "notification.created",
			"notification": s.view(*n),
		})
	}
	if s.push != nil {
		s.push.PushToUser(ctx, email, title, description, map[string]string{
			"type": typ, "notificationId": fmt.Sprintf("%d", n.ID),
		})
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, email string) ([]NotificationView, error) {
	var rows []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]NotificationView, 0, len(rows))
	for _, n := range rows {
		out = append(out, s.view(n))
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, email string, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_email = ?", id, email).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) view(n models.Notification) NotificationView {
	return NotificationView{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Time:        humanize.RelTime(n.CreatedAt, s.now(), "ago", "from now"),
		Description: n.Description,
		IsRead:      n.IsRead,
	}
}
