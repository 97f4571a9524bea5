package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	FindByUserAndMonth(ctx context.Context, userID string, month, year int) ([]Attendance, error)
	FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	FindOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
	UpsertStatus(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByUserAndMonth(ctx context.Context, userID string, month, year int) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("EXTRACT(MONTH FROM work_date) = ?", month).
		Where("EXTRACT(YEAR FROM work_date) = ?", year).
		Order("work_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("work_date = ?", date.Format("2006-01-02")).
		Order("check_in_time ASC").
		Find(&rows).Error
	return rows, err
}

// FindOpenByDate returns the day's rows with a check-in but no check-out.
// Rows already closed are excluded by the query, which is what makes the
// sweep idempotent.
func (r *repository) FindOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("work_date = ?", date.Format("2006-01-02")).
		Where("check_in_time IS NOT NULL").
		Where("check_out_time IS NULL").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("work_date >= ?", from.Format("2006-01-02")).
		Where("work_date <= ?", to.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

// UpsertStatus overwrites the row for (user, date) regardless of its current
// contents. Leave approval uses it to stamp ON_LEAVE days.
func (r *repository) UpsertStatus(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "work_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "check_in_time", "check_in_ip", "check_out_time",
				"check_out_ip", "working_hours", "is_late", "remarks", "updated_at",
			}),
		}).
		Create(a).Error
}
