package remuneration

import (
	"context"

	"hrms/internal/attendance"

	"gorm.io/gorm"
)

// StatusCount is one (user, status) bucket of the month's attendance rows.
type StatusCount struct {
	UserID string
	Status string
	Count  int
}

//go:generate mockgen -source=remuneration_repo.go -destination=mock/remuneration_repo_mock.go -package=mock
type Repository interface {
	StatusCountsByMonth(ctx context.Context, month, year int) ([]StatusCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) StatusCountsByMonth(ctx context.Context, month, year int) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&attendance.Attendance{}).
		Select("user_id::text AS user_id, status, COUNT(*) AS count").
		Where("EXTRACT(MONTH FROM work_date) = ?", month).
		Where("EXTRACT(YEAR FROM work_date) = ?", year).
		Group("user_id, status").
		Scan(&rows).Error
	return rows, err
}
