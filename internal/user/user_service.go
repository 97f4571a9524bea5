package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hrms/internal/events"
	"hrms/internal/messaging/kafka"
	"hrms/internal/shared/counter"
	usererrors "hrms/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db               *sql.DB
	repo             Repository
	counterRepo      counter.Repository
	outboxRepo       kafka.OutboxRepository
	casualLeavePerYr float64
	logger           *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	casualLeavePerYear float64,
) Service {
	if casualLeavePerYear <= 0 {
		casualLeavePerYear = 12
	}
	return &service{
		db:               db,
		repo:             repo,
		counterRepo:      counterRepo,
		outboxRepo:       outboxRepo,
		casualLeavePerYr: casualLeavePerYear,
		logger:           zap.L().Named("user.service"),
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("actor_id", actorID),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var reportingTo *uuid.UUID
	if req.ReportingTo != nil && *req.ReportingTo != "" {
		approverID, err := uuid.Parse(*req.ReportingTo)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidReportingTo
		}
		approver, err := qtx.FindByID(ctx, approverID.String())
		if err != nil || !approver.IsActive {
			return UserResponse{}, usererrors.ErrApproverNotFound
		}
		reportingTo = &approverID
	}

	var joinDate *time.Time
	if req.JoinDate != nil && *req.JoinDate != "" {
		d, err := time.Parse("2006-01-02", *req.JoinDate)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidJoinDate
		}
		joinDate = &d
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	seq, err := s.counterRepo.GetNextValue(ctx, counter.TypeEmployeeCode)
	if err != nil {
		s.logger.Error("allocate employee code failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.New(),
		EmployeeCode: fmt.Sprintf("EMP-%04d", seq),
		Email:        req.Email,
		Password:     string(hashed),
		FullName:     req.FullName,
		Role:         req.Role,
		Designation:  req.Designation,
		Department:   req.Department,
		ContactNo:    req.ContactNo,
		PhotoPath:    req.PhotoPath,
		ReportingTo:  reportingTo,
		JoinDate:     joinDate,
		CasualLeave:  s.casualLeavePerYr,
		IsActive:     true,
	}

	if err := qtx.Create(ctx, u); err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return UserResponse{}, usererrors.ErrEmailTaken
		}
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	event := events.UserCreatedEvent{
		EventType:  "user.created",
		UserID:     u.ID.String(),
		Email:      u.Email,
		Role:       u.Role,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return UserResponse{}, err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "user",
		AggregateID:   u.ID.String(),
		EventType:     event.EventType,
		Topic:         events.UserCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("create user outbox persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("employee_code", u.EmployeeCode),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Designation != nil {
		u.Designation = req.Designation
	}
	if req.Department != nil {
		u.Department = req.Department
	}
	if req.ContactNo != nil {
		u.ContactNo = req.ContactNo
	}
	if req.PhotoPath != nil {
		u.PhotoPath = req.PhotoPath
	}
	if req.ReportingTo != nil {
		if *req.ReportingTo == "" {
			u.ReportingTo = nil
		} else {
			approverID, err := uuid.Parse(*req.ReportingTo)
			if err != nil {
				return UserResponse{}, usererrors.ErrInvalidReportingTo
			}
			approver, err := qtx.FindByID(ctx, approverID.String())
			if err != nil || !approver.IsActive {
				return UserResponse{}, usererrors.ErrApproverNotFound
			}
			u.ReportingTo = &approverID
		}
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.logger.Info("update user success", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	if err := qtx.Deactivate(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("deactivate user success", zap.String("user_id", id))
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return false
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:           u.ID.String(),
		EmployeeCode: u.EmployeeCode,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		Designation:  u.Designation,
		Department:   u.Department,
		ContactNo:    u.ContactNo,
		PhotoPath:    u.PhotoPath,
		LeaveBalance: LeaveBalanceResponse{
			CasualLeave:        u.CasualLeave,
			OnDutyLeave:        u.OnDutyLeave,
			LeaveWithoutPay:    u.LeaveWithoutPay,
			CasualLeaveAvailed: u.CasualLeaveAvailed,
		},
		IsActive: u.IsActive,
	}
	if u.ReportingTo != nil {
		v := u.ReportingTo.String()
		resp.ReportingTo = &v
	}
	if u.JoinDate != nil {
		v := u.JoinDate.Format("2006-01-02")
		resp.JoinDate = &v
	}
	return resp
}
