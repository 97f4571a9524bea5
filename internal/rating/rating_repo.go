package rating

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rating_repo.go -destination=mock/rating_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *PeerRating) error
	FindByRater(ctx context.Context, raterID string, month, year int) ([]PeerRating, error)
	FindByRatee(ctx context.Context, rateeID string, month, year int) ([]PeerRating, error)
	AggregateByPeriod(ctx context.Context, month, year int) ([]MonthlyAverage, error)
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

func (r *repository) Create(ctx context.Context, pr *PeerRating) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *repository) FindByRater(ctx context.Context, raterID string, month, year int) ([]PeerRating, error) {
	var rows []PeerRating
	err := r.db.WithContext(ctx).
		Preload("Ratee").
		Where("rater_id = ?", raterID).
		Where("month = ? AND year = ?", month, year).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByRatee(ctx context.Context, rateeID string, month, year int) ([]PeerRating, error) {
	var rows []PeerRating
	err := r.db.WithContext(ctx).
		Where("ratee_id = ?", rateeID).
		Where("month = ? AND year = ?", month, year).
		Find(&rows).Error
	return rows, err
}

func (r *repository) AggregateByPeriod(ctx context.Context, month, year int) ([]MonthlyAverage, error) {
	var rows []MonthlyAverage
	err := r.db.WithContext(ctx).
		Model(&PeerRating{}).
		Select(`
			peer_ratings.ratee_id::text AS ratee_id,
			users.full_name AS ratee_name,
			COUNT(*) AS rating_count,
			AVG(peer_ratings.teamwork_score) AS avg_teamwork,
			AVG(peer_ratings.delivery_score) AS avg_delivery,
			AVG((peer_ratings.teamwork_score + peer_ratings.delivery_score) / 2) AS overall_average`).
		Joins("JOIN users ON users.id = peer_ratings.ratee_id").
		Where("peer_ratings.month = ? AND peer_ratings.year = ?", month, year).
		Group("peer_ratings.ratee_id, users.full_name").
		Order("overall_average DESC").
		Scan(&rows).Error
	return rows, err
}
