package rating

import (
	"context"
	"database/sql"
	"errors"

	ratingerrors "hrms/internal/rating/errors"
	"hrms/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rating_service.go -destination=mock/rating_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, raterID string, req CreateRatingRequest) (RatingResponse, error)
	GetGiven(ctx context.Context, raterID string, month, year int) ([]RatingResponse, error)
	GetReceived(ctx context.Context, rateeID string, month, year int) ([]RatingResponse, error)
	GetMonthlyAverages(ctx context.Context, month, year int) ([]MonthlyAverage, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	userRepo user.Repository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, userRepo user.Repository) Service {
	return &service{
		db:       db,
		repo:     repo,
		userRepo: userRepo,
		logger:   zap.L().Named("rating.service"),
	}
}

func (s *service) Create(ctx context.Context, raterID string, req CreateRatingRequest) (RatingResponse, error) {
	raterUUID, err := uuid.Parse(raterID)
	if err != nil {
		return RatingResponse{}, ratingerrors.ErrInvalidUserID
	}
	rateeUUID, err := uuid.Parse(req.RateeID)
	if err != nil {
		return RatingResponse{}, ratingerrors.ErrInvalidUserID
	}
	if raterUUID == rateeUUID {
		return RatingResponse{}, ratingerrors.ErrSelfRating
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RatingResponse{}, err
	}
	defer tx.Rollback()

	if _, err := s.userRepo.WithTx(tx).FindByID(ctx, req.RateeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RatingResponse{}, ratingerrors.ErrRateeNotFound
		}
		return RatingResponse{}, err
	}

	pr := &PeerRating{
		ID:            uuid.New(),
		RaterID:       raterUUID,
		RateeID:       rateeUUID,
		Month:         req.Month,
		Year:          req.Year,
		TeamworkScore: req.TeamworkScore,
		DeliveryScore: req.DeliveryScore,
	}

	if err := s.repo.WithTx(tx).Create(ctx, pr); err != nil {
		// The unique index turns a concurrent duplicate into the same conflict
		if isDuplicateRating(err) {
			return RatingResponse{}, ratingerrors.ErrDuplicateRating
		}
		s.logger.Error("create rating persist failed", zap.Error(err))
		return RatingResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RatingResponse{}, err
	}

	s.logger.Info("create rating success",
		zap.String("rater_id", raterID),
		zap.String("ratee_id", req.RateeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)
	return mapToResponse(*pr), nil
}

func (s *service) GetGiven(ctx context.Context, raterID string, month, year int) ([]RatingResponse, error) {
	if _, err := uuid.Parse(raterID); err != nil {
		return nil, ratingerrors.ErrInvalidUserID
	}
	if month < 1 || month > 12 {
		return nil, ratingerrors.ErrInvalidMonth
	}
	rows, err := s.repo.FindByRater(ctx, raterID, month, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetReceived(ctx context.Context, rateeID string, month, year int) ([]RatingResponse, error) {
	if _, err := uuid.Parse(rateeID); err != nil {
		return nil, ratingerrors.ErrInvalidUserID
	}
	if month < 1 || month > 12 {
		return nil, ratingerrors.ErrInvalidMonth
	}
	rows, err := s.repo.FindByRatee(ctx, rateeID, month, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetMonthlyAverages(ctx context.Context, month, year int) ([]MonthlyAverage, error) {
	if month < 1 || month > 12 {
		return nil, ratingerrors.ErrInvalidMonth
	}
	return s.repo.AggregateByPeriod(ctx, month, year)
}

func isDuplicateRating(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func mapToResponse(pr PeerRating) RatingResponse {
	resp := RatingResponse{
		ID:            pr.ID.String(),
		RaterID:       pr.RaterID.String(),
		RateeID:       pr.RateeID.String(),
		Month:         pr.Month,
		Year:          pr.Year,
		TeamworkScore: pr.TeamworkScore,
		DeliveryScore: pr.DeliveryScore,
	}
	if pr.Ratee != nil {
		resp.RateeName = pr.Ratee.FullName
	}
	return resp
}

func mapToListResponse(rows []PeerRating) []RatingResponse {
	resp := make([]RatingResponse, len(rows))
	for i, pr := range rows {
		resp[i] = mapToResponse(pr)
	}
	return resp
}
