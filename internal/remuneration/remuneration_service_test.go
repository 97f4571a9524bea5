package remuneration_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"hrms/internal/holiday"
	"hrms/internal/remuneration"
	remunerationerrors "hrms/internal/remuneration/errors"
	"hrms/internal/user"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	counts []remuneration.StatusCount
	calls  int
}

func (f *fakeRepo) StatusCountsByMonth(ctx context.Context, month, year int) ([]remuneration.StatusCount, error) {
	f.calls++
	return f.counts, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository              { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindAllActive(ctx context.Context) ([]user.User, error) {
	return f.users, nil
}
func (f *fakeUserRepo) FindSubordinates(ctx context.Context, approverID string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) AdjustCasualLeaveAvailed(ctx context.Context, id string, delta float64) error {
	return nil
}
func (f *fakeUserRepo) Deactivate(ctx context.Context, id string) error { return nil }

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) WithTx(tx *sql.Tx) holiday.Repository            { return f }
func (f *fakeHolidayRepo) Create(ctx context.Context, h *holiday.Holiday) error { return nil }
func (f *fakeHolidayRepo) Update(ctx context.Context, h *holiday.Holiday) error { return nil }
func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error          { return nil }
func (f *fakeHolidayRepo) FindByID(ctx context.Context, id string) (*holiday.Holiday, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeHolidayRepo) FindByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	return f.holidays, nil
}
func (f *fakeHolidayRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	return nil, nil
}

func date(v string) time.Time {
	t, _ := time.Parse("2006-01-02", v)
	return t
}

func TestGetMonthlySummary_Computation(t *testing.T) {
	emp := user.User{ID: uuid.New(), FullName: "Eli Employee", EmployeeCode: "EMP-0001", IsActive: true}

	repo := &fakeRepo{counts: []remuneration.StatusCount{
		{UserID: emp.ID.String(), Status: "PRESENT", Count: 18},
		{UserID: emp.ID.String(), Status: "LATE", Count: 2},
		{UserID: emp.ID.String(), Status: "ON_LEAVE", Count: 2},
		{UserID: emp.ID.String(), Status: "HALF_DAY", Count: 1},
		{UserID: emp.ID.String(), Status: "ABSENT", Count: 1},
	}}
	holidays := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{ID: uuid.New(), HolidayDate: date("2026-03-25"), Name: "Festival", Year: 2026},   // Wednesday
		{ID: uuid.New(), HolidayDate: date("2026-03-07"), Name: "Observance", Year: 2026}, // Saturday, skipped
		{ID: uuid.New(), HolidayDate: date("2026-08-15"), Name: "Other month", Year: 2026},
	}}

	svc := remuneration.NewService(repo, &fakeUserRepo{users: []user.User{emp}}, holidays, nil)

	summary, err := svc.GetMonthlySummary(context.Background(), 3, 2026)
	assert.NoError(t, err)
	assert.Len(t, summary.Employees, 1)

	row := summary.Employees[0]
	assert.Equal(t, 20.0, row.DaysWorked)       // PRESENT + LATE
	assert.Equal(t, 2.5, row.CasualLeaveDays)   // ON_LEAVE + 0.5 per half-day
	assert.Equal(t, 1.0, row.AbsentDays)
	assert.Equal(t, 31, row.TotalDays)
	assert.Equal(t, 9, row.WeeklyOffs)          // March 2026: 4 Saturdays, 5 Sundays
	assert.Equal(t, 1, row.Holidays)            // weekend holiday excluded
	assert.Equal(t, 30.0, row.PayableDays)      // total - absent
}

func TestGetMonthlySummary_EmployeeWithoutRows(t *testing.T) {
	emp := user.User{ID: uuid.New(), FullName: "New Joiner", EmployeeCode: "EMP-0002", IsActive: true}

	svc := remuneration.NewService(&fakeRepo{}, &fakeUserRepo{users: []user.User{emp}}, &fakeHolidayRepo{}, nil)

	summary, err := svc.GetMonthlySummary(context.Background(), 2, 2026)
	assert.NoError(t, err)
	assert.Len(t, summary.Employees, 1)
	assert.Equal(t, 0.0, summary.Employees[0].DaysWorked)
	assert.Equal(t, 28, summary.Employees[0].TotalDays)
	assert.Equal(t, 28.0, summary.Employees[0].PayableDays)
}

func TestGetMonthlySummary_InvalidPeriod(t *testing.T) {
	svc := remuneration.NewService(&fakeRepo{}, &fakeUserRepo{}, &fakeHolidayRepo{}, nil)

	_, err := svc.GetMonthlySummary(context.Background(), 0, 2026)
	assert.ErrorIs(t, err, remunerationerrors.ErrInvalidMonth)

	_, err = svc.GetMonthlySummary(context.Background(), 3, 1)
	assert.ErrorIs(t, err, remunerationerrors.ErrInvalidYear)
}

func TestGetMonthlySummary_CacheHitSkipsCompute(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached := remuneration.MonthlySummary{Month: 3, Year: 2026}
	payload, _ := json.Marshal(cached)
	mock.ExpectGet("remuneration:summary:2026:03").SetVal(string(payload))

	repo := &fakeRepo{}
	svc := remuneration.NewService(repo, &fakeUserRepo{}, &fakeHolidayRepo{}, rdb)

	summary, err := svc.GetMonthlySummary(context.Background(), 3, 2026)
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.Month)
	assert.Equal(t, 0, repo.calls, "cache hit must not touch the database")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportExcel(t *testing.T) {
	emp := user.User{ID: uuid.New(), FullName: "Eli Employee", EmployeeCode: "EMP-0001", IsActive: true}
	repo := &fakeRepo{counts: []remuneration.StatusCount{
		{UserID: emp.ID.String(), Status: "PRESENT", Count: 20},
	}}

	svc := remuneration.NewService(repo, &fakeUserRepo{users: []user.User{emp}}, &fakeHolidayRepo{}, nil)

	buf, filename, err := svc.ExportExcel(context.Background(), 3, 2026)
	assert.NoError(t, err)
	assert.Equal(t, "remuneration_2026_03.xlsx", filename)
	assert.Greater(t, buf.Len(), 0)
}
