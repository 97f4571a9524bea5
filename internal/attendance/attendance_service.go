package attendance

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	attendanceerrors "hrms/internal/attendance/errors"
	"hrms/internal/rbac"
	"hrms/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Rules carries the office timing parameters applied by the ledger.
type Rules struct {
	LateCutoffHour   int
	LateCutoffMinute int
	SweepHour        int
	MinFullDayHours  float64
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, userID, sourceIP string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID, sourceIP string) (AttendanceResponse, error)
	MarkStatus(ctx context.Context, actorID, actorRole string, req MarkStatusRequest) (AttendanceResponse, error)
	Sweep(ctx context.Context, now time.Time) (SweepResult, error)
	GetMonth(ctx context.Context, userID string, month, year int) ([]AttendanceResponse, error)
	GetByDate(ctx context.Context, date string) (DayAttendanceResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	userRepo user.Repository
	rules    Rules
	logger   *zap.Logger
	nowFn    func() time.Time
}

func NewService(db *sql.DB, repo Repository, userRepo user.Repository, rules Rules) Service {
	return &service{
		db:       db,
		repo:     repo,
		userRepo: userRepo,
		rules:    rules,
		logger:   zap.L().Named("attendance.service"),
		nowFn:    time.Now,
	}
}

func (s *service) CheckIn(ctx context.Context, userID, sourceIP string) (AttendanceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.nowFn().UTC()
	today := dateOnly(now)

	existing, err := qtx.FindByUserAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing.CheckInTime != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	isLate := s.isAfterCutoff(now)
	status := StatusPresent
	if isLate {
		status = StatusLate
	}

	row := &Attendance{
		ID:          uuid.New(),
		UserID:      userUUID,
		WorkDate:    today,
		Status:      status,
		CheckInTime: &now,
		CheckInIP:   &sourceIP,
		IsLate:      isLate,
	}

	if err := qtx.Create(ctx, row); err != nil {
		// A concurrent check-in may insert first; the unique index turns
		// the race into the same state conflict.
		if isUniqueAttendanceViolation(err) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		s.logger.Error("check-in persist failed", zap.String("user_id", userID), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("user_id", userID),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, userID, sourceIP string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.nowFn().UTC()
	today := dateOnly(now)

	row, err := qtx.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoCheckInFound
		}
		return AttendanceResponse{}, err
	}
	if row.CheckInTime == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoCheckInFound
	}
	if row.CheckOutTime != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	hours := roundHours(now.Sub(*row.CheckInTime))
	row.CheckOutTime = &now
	row.CheckOutIP = &sourceIP
	row.WorkingHours = &hours
	row.Status = s.closedStatus(hours, row.IsLate)

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.String("user_id", userID), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("user_id", userID),
		zap.Float64("working_hours", hours),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) MarkStatus(ctx context.Context, actorID, actorRole string, req MarkStatusRequest) (AttendanceResponse, error) {
	s.logger.Debug("mark status requested",
		zap.String("actor_id", actorID),
		zap.String("target_user_id", req.UserID),
		zap.String("status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	target, err := s.userRepo.WithTx(tx).FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrTargetNotFound
		}
		return AttendanceResponse{}, err
	}

	if !s.canMark(actorID, actorRole, target) {
		return AttendanceResponse{}, attendanceerrors.ErrNotApprover
	}

	now := s.nowFn().UTC()
	today := dateOnly(now)

	row, err := qtx.FindByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, err
		}
		row = &Attendance{
			ID:       uuid.New(),
			UserID:   target.ID,
			WorkDate: today,
		}
	}

	wasHalfDay := row.Status == StatusHalfDay

	row.Status = req.Status
	if req.Remarks != nil {
		row.Remarks = req.Remarks
	}

	switch req.Status {
	case StatusPresent:
		if row.CheckInTime == nil {
			row.CheckInTime = &now
		}
	case StatusAbsent, StatusHalfDay:
		// Close the day so the sweep skips this row
		if row.CheckOutTime == nil {
			row.CheckOutTime = &now
		}
		if row.CheckInTime != nil && row.WorkingHours == nil {
			hours := roundHours(row.CheckOutTime.Sub(*row.CheckInTime))
			row.WorkingHours = &hours
		}
	}

	if err := qtx.UpsertStatus(ctx, row); err != nil {
		s.logger.Error("mark status persist failed",
			zap.String("target_user_id", req.UserID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	// Half-day marks move the availed tally; the entitlement itself stays
	// untouched because remaining balance is derived from approved leaves.
	isHalfDay := req.Status == StatusHalfDay
	if isHalfDay != wasHalfDay {
		delta := 0.5
		if wasHalfDay {
			delta = -0.5
		}
		if err := s.userRepo.WithTx(tx).AdjustCasualLeaveAvailed(ctx, req.UserID, delta); err != nil {
			s.logger.Error("adjust availed tally failed",
				zap.String("target_user_id", req.UserID),
				zap.Float64("delta", delta),
				zap.Error(err),
			)
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark status success",
		zap.String("actor_id", actorID),
		zap.String("target_user_id", req.UserID),
		zap.String("status", req.Status),
	)
	return mapToResponse(*row), nil
}

// Sweep force-closes every open check-in for now's date at the configured
// sweep hour. Safe to run repeatedly: closed rows never match the query.
func (s *service) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	now = now.UTC()
	today := dateOnly(now)
	closeAt := time.Date(now.Year(), now.Month(), now.Day(), s.rules.SweepHour, 0, 0, 0, time.UTC)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SweepResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	open, err := qtx.FindOpenByDate(ctx, today)
	if err != nil {
		return SweepResult{}, err
	}

	for i := range open {
		row := &open[i]
		hours := roundHours(closeAt.Sub(*row.CheckInTime))
		if hours < 0 {
			hours = 0
		}
		checkOut := closeAt
		row.CheckOutTime = &checkOut
		row.WorkingHours = &hours
		row.Status = s.closedStatus(hours, row.IsLate)

		if err := qtx.Update(ctx, row); err != nil {
			s.logger.Error("sweep close failed",
				zap.String("attendance_id", row.ID.String()),
				zap.Error(err),
			)
			return SweepResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SweepResult{}, err
	}

	s.logger.Info("sweep finished",
		zap.String("date", today.Format("2006-01-02")),
		zap.Int("closed", len(open)),
	)
	return SweepResult{Date: today.Format("2006-01-02"), Closed: len(open)}, nil
}

func (s *service) GetMonth(ctx context.Context, userID string, month, year int) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, attendanceerrors.ErrInvalidUserID
	}
	if month < 1 || month > 12 {
		return nil, attendanceerrors.ErrInvalidMonth
	}

	rows, err := s.repo.FindByUserAndMonth(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByDate(ctx context.Context, date string) (DayAttendanceResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return DayAttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.FindAllByDate(ctx, day)
	if err != nil {
		return DayAttendanceResponse{}, err
	}

	active, err := s.userRepo.FindAllActive(ctx)
	if err != nil {
		return DayAttendanceResponse{}, err
	}

	recorded := make(map[string]bool, len(rows))
	records := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		recorded[r.UserID.String()] = true
		records[i] = mapToResponse(r)
	}

	absentees := make([]AbsenteeResponse, 0)
	for _, u := range active {
		if !recorded[u.ID.String()] {
			absentees = append(absentees, AbsenteeResponse{
				UserID:   u.ID.String(),
				UserName: u.FullName,
			})
		}
	}

	return DayAttendanceResponse{
		Date:      day.Format("2006-01-02"),
		Records:   records,
		Absentees: absentees,
	}, nil
}

func (s *service) canMark(actorID, actorRole string, target *user.User) bool {
	if rbac.IsAdministrative(actorRole) {
		return true
	}
	return target.ReportingTo != nil && target.ReportingTo.String() == actorID
}

func (s *service) isAfterCutoff(now time.Time) bool {
	cutoff := s.rules.LateCutoffHour*60 + s.rules.LateCutoffMinute
	return now.Hour()*60+now.Minute() >= cutoff
}

// closedStatus applies the downgrade rule on check-out: under the minimum
// working hours the day becomes HALF_DAY regardless of prior status.
func (s *service) closedStatus(hours float64, wasLate bool) string {
	if hours < s.rules.MinFullDayHours {
		return StatusHalfDay
	}
	if wasLate {
		return StatusLate
	}
	return StatusPresent
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isUniqueAttendanceViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_user_date"
	}
	return false
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID.String(),
		UserID:       a.UserID.String(),
		WorkDate:     a.WorkDate.Format("2006-01-02"),
		Status:       a.Status,
		CheckInIP:    a.CheckInIP,
		CheckOutIP:   a.CheckOutIP,
		WorkingHours: a.WorkingHours,
		IsLate:       a.IsLate,
		Remarks:      a.Remarks,
	}
	if a.User != nil {
		resp.UserName = a.User.FullName
	}
	if a.CheckInTime != nil {
		v := a.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}
