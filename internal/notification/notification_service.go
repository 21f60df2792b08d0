package notification

import (
	"context"
	"errors"
	"strings"
	"time"

	notificationerrors "github.com/ibrahim77gh/salary-portal-backend/internal/notification/errors"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	UnreadCountKeyPrefix = "notifications:unread:"
	unreadCountTTL       = 5 * time.Minute
)

func UnreadCountKey(userID string) string {
	return UnreadCountKeyPrefix + userID
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID, message string) (NotificationResponse, error)
	List(ctx context.Context, userID string) ([]NotificationResponse, error)
	GetByID(ctx context.Context, userID, id string) (NotificationResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateNotificationRequest) (NotificationResponse, error)
	// MarkAllRead succeeds even when nothing was unread.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService caches unread counts in rdb when it is not nil.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) invalidate(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, UnreadCountKey(userID)).Err(); err != nil {
		s.log(ctx).Warn("invalidate unread count failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func (s *service) Create(ctx context.Context, userID, message string) (NotificationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return NotificationResponse{}, apperror.ErrInvalidUserID
	}
	if strings.TrimSpace(message) == "" {
		return NotificationResponse{}, notificationerrors.ErrEmptyMessage
	}

	n := &Notification{
		ID:      uuid.New(),
		UserID:  userUUID,
		Message: message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.log(ctx).Error("create notification failed", zap.String("user_id", userID), zap.Error(err))
		return NotificationResponse{}, err
	}

	s.invalidate(ctx, userID)
	return mapToResponse(*n), nil
}

func (s *service) List(ctx context.Context, userID string) ([]NotificationResponse, error) {
	items, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (NotificationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return NotificationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*n), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req UpdateNotificationRequest) (NotificationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidNotificationID
	}
	if req.IsRead == nil {
		return NotificationResponse{}, apperror.RequiredField("Is Read")
	}

	n, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return NotificationResponse{}, mapRepositoryError(err)
	}

	if n.IsRead != *req.IsRead {
		n.IsRead = *req.IsRead
		if err := s.repo.Update(ctx, n); err != nil {
			return NotificationResponse{}, err
		}
		s.invalidate(ctx, userID)
	}

	return mapToResponse(*n), nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	updated, err := s.repo.MarkAllReadByUser(ctx, userID)
	if err != nil {
		s.log(ctx).Error("mark all notifications read failed", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}

	if updated > 0 {
		s.invalidate(ctx, userID)
	}
	s.log(ctx).Info("notifications marked as read", zap.String("user_id", userID), zap.Int64("updated", updated))
	return updated, nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	cacheKey := UnreadCountKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Int64(); err == nil {
			return cached, nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		count, err := s.repo.CountUnreadByUser(ctx, userID)
		if err != nil {
			return int64(0), err
		}

		if s.rdb != nil {
			if err := s.rdb.Set(ctx, cacheKey, count, unreadCountTTL).Err(); err != nil {
				s.log(ctx).Warn("cache unread count failed", zap.String("user_id", userID), zap.Error(err))
			}
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int64), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notificationerrors.ErrNotificationNotFound
	}
	return err
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
