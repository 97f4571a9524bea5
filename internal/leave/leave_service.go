package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"hrms/internal/attendance"
	"hrms/internal/events"
	leaveerrors "hrms/internal/leave/errors"
	"hrms/internal/messaging/kafka"
	"hrms/internal/rbac"
	"hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, actorRole, leaveID string, remarks *string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, actorRole, leaveID string, remarks *string) (LeaveResponse, error)
	GetMy(ctx context.Context, userID string, status *string, year *int) ([]LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetPending(ctx context.Context, actorID, actorRole string) ([]LeaveResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	userRepo       user.Repository
	attendanceRepo attendance.Repository
	outboxRepo     kafka.OutboxRepository
	logger         *zap.Logger
	nowFn          func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	userRepo user.Repository,
	attendanceRepo attendance.Repository,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:             db,
		repo:           repo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		outboxRepo:     outboxRepo,
		logger:         zap.L().Named("leave.service"),
		nowFn:          time.Now,
	}
}

func (s *service) Apply(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("user_id", userID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	days := inclusiveDays(startDate, endDate)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	userTx := s.userRepo.WithTx(tx)

	applicant, err := userTx.FindByID(ctx, userID)
	if err != nil {
		return LeaveResponse{}, err
	}

	approver, err := userTx.FindByID(ctx, req.ReportingTo)
	if err != nil || !approver.IsActive {
		return LeaveResponse{}, leaveerrors.ErrApproverNotFound
	}

	l := &Leave{
		ID:             uuid.New(),
		UserID:         userUUID,
		LeaveType:      req.LeaveType,
		StartDate:      startDate,
		EndDate:        endDate,
		NumberOfDays:   days,
		Reason:         req.Reason,
		ContactNo:      req.ContactNo,
		PersonInCharge: req.PersonInCharge,
		ReportingTo:    approver.ID,
		Status:         StatusPending,
	}

	// Snapshot only; nothing is deducted until approval.
	if req.LeaveType == TypeCasual {
		remaining, err := s.remainingCasualBalance(ctx, qtx, applicant, startDate.Year())
		if err != nil {
			return LeaveResponse{}, err
		}
		l.BalanceBefore = &remaining
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID),
		zap.Float64("number_of_days", days),
	)
	l.User = applicant
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, actorRole, leaveID string, remarks *string) (LeaveResponse, error) {
	return s.review(ctx, actorID, actorRole, leaveID, StatusApproved, remarks)
}

func (s *service) Reject(ctx context.Context, actorID, actorRole, leaveID string, remarks *string) (LeaveResponse, error) {
	return s.review(ctx, actorID, actorRole, leaveID, StatusRejected, remarks)
}

func (s *service) review(ctx context.Context, actorID, actorRole, leaveID, targetStatus string, remarks *string) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", leaveID),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}
	if !s.canReview(actorID, actorRole, l) {
		return LeaveResponse{}, leaveerrors.ErrNotApprover
	}

	if targetStatus == StatusApproved {
		if err := s.applyApproval(ctx, tx, qtx, l); err != nil {
			return LeaveResponse{}, err
		}
	}

	now := s.nowFn().UTC()
	l.Status = targetStatus
	l.ReviewedBy = &actorUUID
	l.ReviewedOn = &now
	l.ReviewRemarks = remarks

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("review leave persist failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.writeDecisionEvent(ctx, tx, l, actorID, remarks, now); err != nil {
		s.logger.Error("review leave outbox persist failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("review leave success",
		zap.String("leave_id", leaveID),
		zap.String("status", targetStatus),
		zap.String("reviewed_by", actorID),
	)
	return mapToResponse(*l), nil
}

// applyApproval runs the casual-leave balance check and stamps the ON_LEAVE
// attendance rows for every day in the range. On Duty Leave and Leave Without
// Pay carry no balance constraint.
func (s *service) applyApproval(ctx context.Context, tx *sql.Tx, qtx Repository, l *Leave) error {
	if l.LeaveType == TypeCasual {
		applicant, err := s.userRepo.WithTx(tx).FindByID(ctx, l.UserID.String())
		if err != nil {
			return err
		}
		remaining, err := s.remainingCasualBalance(ctx, qtx, applicant, l.StartDate.Year())
		if err != nil {
			return err
		}
		if l.NumberOfDays > remaining {
			s.logger.Warn("approve leave insufficient balance",
				zap.String("leave_id", l.ID.String()),
				zap.Float64("requested", l.NumberOfDays),
				zap.Float64("remaining", remaining),
			)
			return leaveerrors.ErrInsufficientBalance
		}
		after := remaining - l.NumberOfDays
		l.BalanceBefore = &remaining
		l.BalanceAfter = &after
	}

	attTx := s.attendanceRepo.WithTx(tx)
	for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
		row := &attendance.Attendance{
			ID:       uuid.New(),
			UserID:   l.UserID,
			WorkDate: d,
			Status:   attendance.StatusOnLeave,
		}
		if err := attTx.UpsertStatus(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) writeDecisionEvent(ctx context.Context, tx *sql.Tx, l *Leave, actorID string, remarks *string, now time.Time) error {
	eventType := events.LeaveApprovedEventType
	if l.Status == StatusRejected {
		eventType = events.LeaveRejectedEventType
	}

	event := events.LeaveDecidedEvent{
		EventType:  eventType,
		LeaveID:    l.ID.String(),
		UserID:     l.UserID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Status:     l.Status,
		ReviewedBy: actorID,
		OccurredAt: now,
	}
	if remarks != nil {
		event.Remarks = *remarks
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetMy(ctx context.Context, userID string, status *string, year *int) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, leaveerrors.ErrInvalidUserID
	}
	rows, err := s.repo.FindByUser(ctx, userID, status, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetPending(ctx context.Context, actorID, actorRole string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidUserID
	}

	var (
		rows []Leave
		err  error
	)
	if rbac.IsAdministrative(actorRole) {
		rows, err = s.repo.FindAllPending(ctx)
	} else {
		rows, err = s.repo.FindPendingByApprover(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) canReview(actorID, actorRole string, l *Leave) bool {
	if rbac.IsAdministrative(actorRole) {
		return true
	}
	return l.ReportingTo.String() == actorID
}

// remainingCasualBalance derives the remaining entitlement from approved-leave
// aggregation; the users.casual_leave column is the annual entitlement, never a
// mutable counter.
func (s *service) remainingCasualBalance(ctx context.Context, qtx Repository, applicant *user.User, year int) (float64, error) {
	approved, err := qtx.SumApprovedDaysByTypeAndYear(ctx, applicant.ID.String(), TypeCasual, year)
	if err != nil {
		return 0, err
	}
	return applicant.CasualLeave - approved, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func inclusiveDays(start, end time.Time) float64 {
	return end.Sub(start).Hours()/24 + 1
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		UserID:         l.UserID.String(),
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		NumberOfDays:   l.NumberOfDays,
		Reason:         l.Reason,
		ContactNo:      l.ContactNo,
		PersonInCharge: l.PersonInCharge,
		ReportingTo:    l.ReportingTo.String(),
		Status:         l.Status,
		ReviewRemarks:  l.ReviewRemarks,
		BalanceBefore:  l.BalanceBefore,
		BalanceAfter:   l.BalanceAfter,
	}
	if l.User != nil {
		resp.UserName = l.User.FullName
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedOn != nil {
		v := l.ReviewedOn.Format(time.RFC3339)
		resp.ReviewedOn = &v
	}
	return resp
}

func mapToListResponse(rows []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp
}
