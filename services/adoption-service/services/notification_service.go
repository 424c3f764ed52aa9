package services

import (
	"context"
	"net/http"

	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"github.com/whiteheadbella/vet-management/services/adoption-service/repository"
	"github.com/whiteheadbella/vet-management/services/adoption-service/sender"
	"go.uber.org/zap"
)

// NotificationService sends best-effort emails and logs every attempt,
// failed ones included. A send failure never propagates to the caller.
type NotificationService struct {
	notifications repository.NotificationRepository
	email         sender.EmailSender
	logger        *zap.Logger
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	email sender.EmailSender,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{notifications: notifications, email: email, logger: logger}
}

// Notify emails the user and records the outcome.
func (s *NotificationService) Notify(ctx context.Context, user *models.User, subject, body string) {
	n := &models.Notification{
		UserID:  user.ID,
		Type:    "email",
		Subject: subject,
		Message: body,
		Status:  models.NotificationSent,
	}

	if s.email == nil {
		n.Status = models.NotificationFailed
		s.logger.Debug("email disabled, logging notification only", zap.Int64("user_id", user.ID))
	} else if result, err := s.email.SendEmail(ctx, user.Email, subject, body); err != nil {
		n.Status = models.NotificationFailed
		s.logger.Warn("failed to send email",
			zap.Int64("user_id", user.ID),
			zap.String("subject", subject),
			zap.Error(err))
	} else {
		n.MessageID = result.MessageID
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Warn("failed to log notification", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

// UserNotifications returns a user's notification log, newest first.
func (s *NotificationService) UserNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications, err := s.notifications.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list notifications", zap.Int64("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch notifications"}
	}
	return notifications, nil
}
