package notification_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ibrahim77gh/salary-portal-backend/internal/notification"
	notificationerrors "github.com/ibrahim77gh/salary-portal-backend/internal/notification/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationService struct {
	CreateFn      func(ctx context.Context, userID, message string) (notification.NotificationResponse, error)
	ListFn        func(ctx context.Context, userID string) ([]notification.NotificationResponse, error)
	GetByIDFn     func(ctx context.Context, userID, id string) (notification.NotificationResponse, error)
	UpdateFn      func(ctx context.Context, userID, id string, req notification.UpdateNotificationRequest) (notification.NotificationResponse, error)
	MarkAllReadFn func(ctx context.Context, userID string) (int64, error)
	UnreadCountFn func(ctx context.Context, userID string) (int64, error)
}

func (f *fakeNotificationService) Create(ctx context.Context, userID, message string) (notification.NotificationResponse, error) {
	return f.CreateFn(ctx, userID, message)
}
func (f *fakeNotificationService) List(ctx context.Context, userID string) ([]notification.NotificationResponse, error) {
	return f.ListFn(ctx, userID)
}
func (f *fakeNotificationService) GetByID(ctx context.Context, userID, id string) (notification.NotificationResponse, error) {
	return f.GetByIDFn(ctx, userID, id)
}
func (f *fakeNotificationService) Update(ctx context.Context, userID, id string, req notification.UpdateNotificationRequest) (notification.NotificationResponse, error) {
	return f.UpdateFn(ctx, userID, id, req)
}
func (f *fakeNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return f.MarkAllReadFn(ctx, userID)
}
func (f *fakeNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return f.UnreadCountFn(ctx, userID)
}

func setupRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", userID)
		c.Next()
	})
	return r
}

func TestNotificationHandler_GetAll(t *testing.T) {
	userID := uuid.NewString()
	svc := &fakeNotificationService{
		ListFn: func(ctx context.Context, uid string) ([]notification.NotificationResponse, error) {
			assert.Equal(t, userID, uid)
			return []notification.NotificationResponse{{ID: "1", Message: "a"}, {ID: "2", Message: "b"}}, nil
		},
	}
	h := notification.NewHandler(svc)
	r := setupRouter(userID)
	r.GET("/notifications", h.GetAll)

	req := httptest.NewRequest(http.MethodGet, "/notifications?page=1&page_size=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []notification.NotificationResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, int64(2), body.Meta.Total)
}

func TestNotificationHandler_Update(t *testing.T) {
	userID := uuid.NewString()
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeNotificationService{
			UpdateFn: func(ctx context.Context, uid, nid string, req notification.UpdateNotificationRequest) (notification.NotificationResponse, error) {
				assert.Equal(t, id, nid)
				assert.True(t, *req.IsRead)
				return notification.NotificationResponse{ID: nid, IsRead: true}, nil
			},
		}
		h := notification.NewHandler(svc)
		r := setupRouter(userID)
		r.PATCH("/notifications/:id", h.Update)

		req := httptest.NewRequest(http.MethodPatch, "/notifications/"+id, strings.NewReader(`{"is_read":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"is_read":true`)
	})

	t.Run("missing is_read", func(t *testing.T) {
		h := notification.NewHandler(&fakeNotificationService{})
		r := setupRouter(userID)
		r.PATCH("/notifications/:id", h.Update)

		req := httptest.NewRequest(http.MethodPatch, "/notifications/"+id, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeNotificationService{
			UpdateFn: func(ctx context.Context, uid, nid string, req notification.UpdateNotificationRequest) (notification.NotificationResponse, error) {
				return notification.NotificationResponse{}, notificationerrors.ErrNotificationNotFound
			},
		}
		h := notification.NewHandler(svc)
		r := setupRouter(userID)
		r.PATCH("/notifications/:id", h.Update)

		req := httptest.NewRequest(http.MethodPatch, "/notifications/"+id, strings.NewReader(`{"is_read":false}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	svc := &fakeNotificationService{
		MarkAllReadFn: func(ctx context.Context, uid string) (int64, error) { return 0, nil },
	}
	h := notification.NewHandler(svc)
	r := setupRouter(uuid.NewString())
	r.POST("/notifications/mark-all-read", h.MarkAllRead)

	req := httptest.NewRequest(http.MethodPost, "/notifications/mark-all-read", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), notification.MarkAllReadMessage)
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	svc := &fakeNotificationService{
		UnreadCountFn: func(ctx context.Context, uid string) (int64, error) { return 7, nil },
	}
	h := notification.NewHandler(svc)
	r := setupRouter(uuid.NewString())
	r.GET("/notifications/unread-count", h.UnreadCount)

	req := httptest.NewRequest(http.MethodGet, "/notifications/unread-count", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":7`)
}
