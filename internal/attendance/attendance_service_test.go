package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "hrms/internal/attendance/errors"
	"hrms/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows map[string]*Attendance // keyed by userID + date
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]*Attendance)}
}

func key(userID string, date time.Time) string {
	return userID + ":" + date.Format("2006-01-02")
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	cp := *a
	f.rows[key(a.UserID.String(), a.WorkDate)] = &cp
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error {
	cp := *a
	f.rows[key(a.UserID.String(), a.WorkDate)] = &cp
	return nil
}

func (f *fakeRepo) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	if row, ok := f.rows[key(userID, date)]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByUserAndMonth(ctx context.Context, userID string, month, year int) ([]Attendance, error) {
	var out []Attendance
	for _, row := range f.rows {
		if row.UserID.String() == userID && int(row.WorkDate.Month()) == month && row.WorkDate.Year() == year {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var out []Attendance
	for _, row := range f.rows {
		if row.WorkDate.Equal(date) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var out []Attendance
	for _, row := range f.rows {
		if row.WorkDate.Equal(date) && row.CheckInTime != nil && row.CheckOutTime == nil {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error) {
	return nil, nil
}

func (f *fakeRepo) UpsertStatus(ctx context.Context, a *Attendance) error {
	return f.Update(ctx, a)
}

type fakeUserRepo struct {
	users   map[string]*user.User
	availed map[string]float64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User), availed: make(map[string]float64)}
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.users[u.ID.String()] = u
	return nil
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindAllActive(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) FindSubordinates(ctx context.Context, approverID string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) AdjustCasualLeaveAvailed(ctx context.Context, id string, delta float64) error {
	f.availed[id] += delta
	return nil
}
func (f *fakeUserRepo) Deactivate(ctx context.Context, id string) error { return nil }

func defaultRules() Rules {
	return Rules{
		LateCutoffHour:   9,
		LateCutoffMinute: 30,
		SweepHour:        19,
		MinFullDayHours:  4,
	}
}

func newTestService(t *testing.T, repo Repository, userRepo user.Repository, now time.Time) (*service, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, _ := sqlmock.New()
	svc := NewService(db, repo, userRepo, defaultRules()).(*service)
	svc.nowFn = func() time.Time { return now }
	return svc, mock, db
}

func TestCheckIn_BeforeCutoffIsPresent(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc, mock, db := newTestService(t, repo, newFakeUserRepo(), now)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckIn(context.Background(), uuid.New().String(), "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
	assert.False(t, resp.IsLate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_AtCutoffIsLate(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	svc, mock, db := newTestService(t, repo, newFakeUserRepo(), now)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckIn(context.Background(), uuid.New().String(), "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)
	assert.True(t, resp.IsLate)
}

func TestCheckIn_Duplicate(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc, mock, db := newTestService(t, repo, newFakeUserRepo(), now)
	defer db.Close()

	userID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(context.Background(), userID, "10.0.0.1")
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckIn(context.Background(), userID, "10.0.0.1")
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	svc, mock, db := newTestService(t, repo, newFakeUserRepo(), now)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckOut(context.Background(), uuid.New().String(), "10.0.0.1")
	assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckInFound)
}

func TestCheckOut_ShortDayDowngradesToHalfDay(t *testing.T) {
	// 09:00 check-in, 12:30 check-out: 3.5 hours, half-day even though
	// the check-in was before the late cutoff.
	repo := newFakeRepo()
	userID := uuid.New().String()

	checkInAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc, mock, db := newTestService(t, repo, newFakeUserRepo(), checkInAt)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(context.Background(), userID, "10.0.0.1")
	assert.NoError(t, err)

	svc.nowFn = func() time.Time { return time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC) }
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckOut(context.Background(), userID, "10.0.0.1")
	assert.NoError(t, err)
	assert.NotNil(t, resp.WorkingHours)
	assert.Equal(t, 3.5, *resp.WorkingHours)
	assert.Equal(t, StatusHalfDay, resp.Status)
}

func TestCheckOut_FullDayKeepsLateStatus(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New().String()

	checkInAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, mock, db := newTestService(t, repo, newFakeUserRepo(), checkInAt)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(context.Background(), userID, "10.0.0.1")
	assert.NoError(t, err)

	svc.nowFn = func() time.Time { return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC) }
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckOut(context.Background(), userID, "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, 8.0, *resp.WorkingHours)
	assert.Equal(t, StatusLate, resp.Status)
}

func TestCheckOut_Twice(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New().String()

	svc, mock, db := newTestService(t, repo, newFakeUserRepo(), time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(context.Background(), userID, "10.0.0.1")
	assert.NoError(t, err)

	svc.nowFn = func() time.Time { return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC) }
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.CheckOut(context.Background(), userID, "10.0.0.1")
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(context.Background(), userID, "10.0.0.1")
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
}

func TestMarkStatus_RequiresApproverOrAdmin(t *testing.T) {
	repo := newFakeRepo()
	userRepo := newFakeUserRepo()

	approverID := uuid.New()
	target := &user.User{ID: uuid.New(), ReportingTo: &approverID, IsActive: true}
	userRepo.users[target.ID.String()] = target

	svc, mock, db := newTestService(t, repo, userRepo, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC))
	defer db.Close()

	// A random manager who is not the designated approver is refused
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.MarkStatus(context.Background(), uuid.New().String(), "MANAGER", MarkStatusRequest{
		UserID: target.ID.String(),
		Status: StatusPresent,
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrNotApprover)

	// The designated approver is allowed
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.MarkStatus(context.Background(), approverID.String(), "MANAGER", MarkStatusRequest{
		UserID: target.ID.String(),
		Status: StatusPresent,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
	assert.NotNil(t, resp.CheckInTime, "PRESENT mark synthesizes a check-in")

	// An admin who is nobody's approver is also allowed
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.MarkStatus(context.Background(), uuid.New().String(), "ADMIN", MarkStatusRequest{
		UserID: target.ID.String(),
		Status: StatusAbsent,
	})
	assert.NoError(t, err)
}

func TestMarkStatus_HalfDayMovesAvailedTally(t *testing.T) {
	repo := newFakeRepo()
	userRepo := newFakeUserRepo()

	target := &user.User{ID: uuid.New(), IsActive: true}
	userRepo.users[target.ID.String()] = target

	svc, mock, db := newTestService(t, repo, userRepo, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC))
	defer db.Close()

	// Into half-day: +0.5
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.MarkStatus(context.Background(), uuid.New().String(), "ADMIN", MarkStatusRequest{
		UserID: target.ID.String(),
		Status: StatusHalfDay,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusHalfDay, resp.Status)
	assert.Equal(t, 0.5, userRepo.availed[target.ID.String()])

	// Re-marking half-day does not move the tally again
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.MarkStatus(context.Background(), uuid.New().String(), "ADMIN", MarkStatusRequest{
		UserID: target.ID.String(),
		Status: StatusHalfDay,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0.5, userRepo.availed[target.ID.String()])

	// Out of half-day: -0.5
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.MarkStatus(context.Background(), uuid.New().String(), "ADMIN", MarkStatusRequest{
		UserID: target.ID.String(),
		Status: StatusPresent,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, userRepo.availed[target.ID.String()])
}

func TestSweep_ClosesOpenCheckInsAtFixedHour(t *testing.T) {
	repo := newFakeRepo()
	userRepo := newFakeUserRepo()

	now := time.Date(2026, 3, 2, 19, 5, 0, 0, time.UTC)
	svc, mock, db := newTestService(t, repo, userRepo, now)
	defer db.Close()

	// One open row checked in at 09:00, one already closed
	openUser := uuid.New()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo.rows[key(openUser.String(), dateOnly(now))] = &Attendance{
		ID:          uuid.New(),
		UserID:      openUser,
		WorkDate:    dateOnly(now),
		Status:      StatusPresent,
		CheckInTime: &checkIn,
	}

	closedUser := uuid.New()
	closedOut := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	repo.rows[key(closedUser.String(), dateOnly(now))] = &Attendance{
		ID:           uuid.New(),
		UserID:       closedUser,
		WorkDate:     dateOnly(now),
		Status:       StatusPresent,
		CheckInTime:  &checkIn,
		CheckOutTime: &closedOut,
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	result, err := svc.Sweep(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Closed)

	swept := repo.rows[key(openUser.String(), dateOnly(now))]
	assert.NotNil(t, swept.CheckOutTime)
	assert.Equal(t, 19, swept.CheckOutTime.Hour())
	assert.Equal(t, 10.0, *swept.WorkingHours)
	assert.Equal(t, StatusPresent, swept.Status)

	// Second run finds nothing open
	mock.ExpectBegin()
	mock.ExpectCommit()
	again, err := svc.Sweep(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 0, again.Closed)
}

func TestSweep_ShortOpenDayBecomesHalfDay(t *testing.T) {
	repo := newFakeRepo()

	now := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
	svc, mock, db := newTestService(t, repo, newFakeUserRepo(), now)
	defer db.Close()

	uid := uuid.New()
	checkIn := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	repo.rows[key(uid.String(), dateOnly(now))] = &Attendance{
		ID:          uuid.New(),
		UserID:      uid,
		WorkDate:    dateOnly(now),
		Status:      StatusLate,
		IsLate:      true,
		CheckInTime: &checkIn,
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Sweep(context.Background(), now)
	assert.NoError(t, err)

	swept := repo.rows[key(uid.String(), dateOnly(now))]
	assert.Equal(t, 3.0, *swept.WorkingHours)
	assert.Equal(t, StatusHalfDay, swept.Status)
}

func TestGetByDate_ComputesAbsentees(t *testing.T) {
	repo := newFakeRepo()
	userRepo := newFakeUserRepo()

	present := &user.User{ID: uuid.New(), FullName: "Present Person", IsActive: true}
	absent := &user.User{ID: uuid.New(), FullName: "Absent Person", IsActive: true}
	userRepo.users[present.ID.String()] = present
	userRepo.users[absent.ID.String()] = absent

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc, _, db := newTestService(t, repo, userRepo, now)
	defer db.Close()

	checkIn := now
	repo.rows[key(present.ID.String(), dateOnly(now))] = &Attendance{
		ID:          uuid.New(),
		UserID:      present.ID,
		WorkDate:    dateOnly(now),
		Status:      StatusPresent,
		CheckInTime: &checkIn,
	}

	resp, err := svc.GetByDate(context.Background(), "2026-03-02")
	assert.NoError(t, err)
	assert.Len(t, resp.Records, 1)
	assert.Len(t, resp.Absentees, 1)
	assert.Equal(t, absent.ID.String(), resp.Absentees[0].UserID)
}
