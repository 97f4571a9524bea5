package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	Update(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByUser(ctx context.Context, userID string, status *string, year *int) ([]Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	FindPendingByApprover(ctx context.Context, approverID string) ([]Leave, error)
	FindAllPending(ctx context.Context) ([]Leave, error)
	SumApprovedDaysByTypeAndYear(ctx context.Context, userID, leaveType string, year int) (float64, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&l).Error
	return &l, err
}

func (r *repository) FindByUser(ctx context.Context, userID string, status *string, year *int) ([]Leave, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if year != nil {
		q = q.Where("EXTRACT(YEAR FROM start_date) = ?", *year)
	}

	var rows []Leave
	err := q.Order("start_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPendingByApprover(ctx context.Context, approverID string) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", StatusPending).
		Where("reporting_to = ?", approverID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllPending(ctx context.Context) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// SumApprovedDaysByTypeAndYear is the aggregation behind the remaining-balance
// derivation: remaining = entitlement - this sum.
func (r *repository) SumApprovedDaysByTypeAndYear(ctx context.Context, userID, leaveType string, year int) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Select("COALESCE(SUM(number_of_days), 0)").
		Where("user_id = ?", userID).
		Where("leave_type = ?", leaveType).
		Where("status = ?", StatusApproved).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Scan(&total).Error
	return total, err
}
