package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/repository"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, actor domain.Actor, unreadOnly bool) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, actor domain.Actor, notificationID string) (*domain.Notification, error)
}

type NotificationServiceImpl struct {
	log           *slog.Logger
	notifications repository.NotificationRepository
}

func NewNotificationService(log *slog.Logger, notifications repository.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		log:           log,
		notifications: notifications,
	}
}

func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, actor domain.Actor, unreadOnly bool) ([]domain.Notification, error) {
	const op = "internal.service.notification.ListNotifications"

	list, err := s.notifications.ListNotifications(ctx, actor.UserID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// MarkNotificationRead reports another user's notification as not found.
func (s *NotificationServiceImpl) MarkNotificationRead(ctx context.Context, actor domain.Actor, notificationID string) (*domain.Notification, error) {
	const op = "internal.service.notification.MarkNotificationRead"

	n, err := s.notifications.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if n.UserID != actor.UserID {
		return nil, fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "notification", ID: notificationID})
	}

	if n.Read {
		return n, nil
	}

	n, err = s.notifications.MarkRead(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("notification marked read", slog.String("op", op), slog.String("notification_id", notificationID))

	return n, nil
}
