package services

import (
	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
)

type NotificationService struct {
	NotificationRepo *repositories.NotificationRepository
}

func NewNotificationService(notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

// ListByUser 用户的通知列表
func (s *NotificationService) ListByUser(userID uint) ([]models.Notification, error) {
	return s.NotificationRepo.ListByUser(userID)
}

// MarkRead 标记单条通知已读，不属于该用户时报错
func (s *NotificationService) MarkRead(id, userID uint) error {
	affected, err := s.NotificationRepo.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead 标记全部通知已读
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.NotificationRepo.MarkAllRead(userID)
}
