package notification_test

import (
	"context"
	"database/sql"
	"testing"

	"hrms/internal/notification"
	notificationerrors "hrms/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows map[string]*notification.Notification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]*notification.Notification)}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) notification.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, n *notification.Notification) error {
	cp := *n
	f.rows[n.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	if n, ok := f.rows[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range f.rows {
		if n.UserID.String() != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, id string) error {
	if n, ok := f.rows[id]; ok {
		n.IsRead = true
	}
	return nil
}

func (f *fakeRepo) MarkAllRead(ctx context.Context, userID string) error {
	for _, n := range f.rows {
		if n.UserID.String() == userID {
			n.IsRead = true
		}
	}
	return nil
}

func TestMarkRead_OwnershipEnforced(t *testing.T) {
	repo := newFakeRepo()
	svc := notification.NewService(repo)

	owner := uuid.New()
	n := &notification.Notification{ID: uuid.New(), UserID: owner, Title: "Leave approved", Body: "Your leave was approved"}
	_ = repo.Create(context.Background(), n)

	err := svc.MarkRead(context.Background(), uuid.New().String(), n.ID.String())
	assert.ErrorIs(t, err, notificationerrors.ErrNotOwner)

	err = svc.MarkRead(context.Background(), owner.String(), n.ID.String())
	assert.NoError(t, err)
	assert.True(t, repo.rows[n.ID.String()].IsRead)
}

func TestMarkRead_NotFound(t *testing.T) {
	svc := notification.NewService(newFakeRepo())

	err := svc.MarkRead(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)

	err = svc.MarkRead(context.Background(), uuid.New().String(), "not-a-uuid")
	assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationID)
}

func TestGetMy_UnreadFilter(t *testing.T) {
	repo := newFakeRepo()
	svc := notification.NewService(repo)

	owner := uuid.New()
	read := &notification.Notification{ID: uuid.New(), UserID: owner, Title: "a", Body: "b", IsRead: true}
	unread := &notification.Notification{ID: uuid.New(), UserID: owner, Title: "c", Body: "d"}
	_ = repo.Create(context.Background(), read)
	_ = repo.Create(context.Background(), unread)

	all, err := svc.GetMy(context.Background(), owner.String(), false)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	unreadOnly, err := svc.GetMy(context.Background(), owner.String(), true)
	assert.NoError(t, err)
	assert.Len(t, unreadOnly, 1)
	assert.Equal(t, "c", unreadOnly[0].Title)
}
