package uploadlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/contextutil"
	uploadlogerrors "github.com/ibrahim77gh/salary-portal-backend/internal/uploadlog/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns the lifecycle of an upload log. Progress methods persist
// immediately.
//
//go:generate mockgen -source=upload_log_service.go -destination=mock/upload_log_service_mock.go -package=mock
type Service interface {
	Start(ctx context.Context, userID, fileName string) (*UploadLog, error)
	SetTotal(ctx context.Context, l *UploadLog, total int) error
	RecordRowSuccess(ctx context.Context, l *UploadLog) error
	RecordRowError(ctx context.Context, l *UploadLog, row int, rowErr error) error
	Complete(ctx context.Context, l *UploadLog) error
	Fail(ctx context.Context, l *UploadLog, cause error) error
	List(ctx context.Context, userID string) ([]UploadLogResponse, error)
	Get(ctx context.Context, userID, id string) (UploadLogResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("uploadlog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("uploadlog.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Start(ctx context.Context, userID, fileName string) (*UploadLog, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidUserID
	}

	l := &UploadLog{
		ID:         uuid.New(),
		UserID:     userUUID,
		FileName:   strings.TrimSpace(fileName),
		UploadTime: s.now(),
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		s.log(ctx).Error("create upload log failed", zap.Error(err))
		return nil, err
	}

	s.log(ctx).Info("upload log started",
		zap.String("upload_log_id", l.ID.String()),
		zap.String("file_name", l.FileName),
	)
	return l, nil
}

func (s *service) SetTotal(ctx context.Context, l *UploadLog, total int) error {
	if l.IsTerminal() {
		return uploadlogerrors.ErrUploadLogClosed
	}
	l.TotalRecords = total
	return s.repo.Update(ctx, l)
}

func (s *service) RecordRowSuccess(ctx context.Context, l *UploadLog) error {
	if l.IsTerminal() {
		return uploadlogerrors.ErrUploadLogClosed
	}
	l.ProcessedRecords++
	return s.repo.Update(ctx, l)
}

func (s *service) RecordRowError(ctx context.Context, l *UploadLog, row int, rowErr error) error {
	if l.IsTerminal() {
		return uploadlogerrors.ErrUploadLogClosed
	}
	l.appendError(RowError(row, rowErr))
	s.log(ctx).Warn("upload row failed",
		zap.String("upload_log_id", l.ID.String()),
		zap.Int("row", row+1),
		zap.Error(rowErr),
	)
	return s.repo.Update(ctx, l)
}

func (s *service) Complete(ctx context.Context, l *UploadLog) error {
	if l.IsTerminal() {
		return uploadlogerrors.ErrUploadLogClosed
	}
	l.Status = StatusCompleted
	if err := s.repo.Update(ctx, l); err != nil {
		return err
	}

	s.log(ctx).Info("upload log completed",
		zap.String("upload_log_id", l.ID.String()),
		zap.Int("total_records", l.TotalRecords),
		zap.Int("processed_records", l.ProcessedRecords),
	)
	return nil
}

// Fail is allowed after Complete: a failed hand-off to the disbursement job
// still fails the upload.
func (s *service) Fail(ctx context.Context, l *UploadLog, cause error) error {
	l.Status = StatusFailed
	if cause != nil {
		l.appendError(cause.Error() + "\n")
	}
	if err := s.repo.Update(ctx, l); err != nil {
		s.log(ctx).Error("mark upload log failed", zap.String("upload_log_id", l.ID.String()), zap.Error(err))
		return err
	}

	s.log(ctx).Warn("upload log failed", zap.String("upload_log_id", l.ID.String()), zap.Error(cause))
	return nil
}

func (s *service) List(ctx context.Context, userID string) ([]UploadLogResponse, error) {
	logs, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]UploadLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = ToResponse(l)
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, userID, id string) (UploadLogResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UploadLogResponse{}, uploadlogerrors.ErrInvalidUploadLogID
	}

	l, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UploadLogResponse{}, uploadlogerrors.ErrUploadLogNotFound
		}
		return UploadLogResponse{}, err
	}
	return ToResponse(*l), nil
}
