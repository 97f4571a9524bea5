package user_test

import (
	"context"
	"database/sql"
	"testing"

	"hrms/internal/messaging/kafka"
	"hrms/internal/user"
	usererrors "hrms/internal/user/errors"
	userMock "hrms/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeCounterRepo struct {
	next int64
}

func (f *fakeCounterRepo) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, e kafka.OutboxEvent) error {
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *userMock.MockRepository
	outbox  *fakeOutboxRepo
	service user.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := userMock.NewMockRepository(ctrl)
	outbox := &fakeOutboxRepo{}

	svc := user.NewService(db, repo, &fakeCounterRepo{}, outbox, 12)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		outbox:  outbox,
		service: svc,
	}
}

func TestUserService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

	var saved *user.User
	deps.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, u *user.User) error {
			saved = u
			return nil
		})

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, "actor", user.CreateUserRequest{
		Email:    "jane@acme.test",
		Password: "supersecret",
		FullName: "Jane Doe",
		Role:     "EMPLOYEE",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMP-0001", resp.EmployeeCode)
	assert.Equal(t, "jane@acme.test", resp.Email)
	assert.Equal(t, float64(12), resp.LeaveBalance.CasualLeave)
	assert.NotNil(t, saved)
	assert.NotEqual(t, "supersecret", saved.Password, "password must be stored hashed")

	// Creating a user also writes a user.created outbox event in the same tx
	assert.Len(t, deps.outbox.created, 1)
	assert.Equal(t, "user.created", deps.outbox.created[0].EventType)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestUserService_Create_InvalidJoinDate(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	badDate := "31-12-2025"
	_, err := deps.service.Create(context.Background(), "actor", user.CreateUserRequest{
		Email:    "jane@acme.test",
		Password: "supersecret",
		FullName: "Jane Doe",
		Role:     "EMPLOYEE",
		JoinDate: &badDate,
	})

	assert.ErrorIs(t, err, usererrors.ErrInvalidJoinDate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.EXPECT().
		FindByID(gomock.Any(), gomock.Any()).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := deps.service.GetByID(context.Background(), "c56a4180-65aa-42ec-a945-5fd21dec0538")
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestUserService_GetByID_InvalidID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
}

func TestUserService_Deactivate(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	id := "c56a4180-65aa-42ec-a945-5fd21dec0538"

	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{IsActive: true}, nil)
	deps.repo.EXPECT().Deactivate(gomock.Any(), id).Return(nil)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	err := deps.service.Deactivate(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
